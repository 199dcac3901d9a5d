package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterInit exposes the one-time sample seeding endpoint.
func RegisterInit(rg *gin.RouterGroup, mgr SessionManager, identity string) {
	rg.POST("/init", func(c *gin.Context) {
		sess, err := mgr.Acquire(identity)
		if err != nil {
			respondError(c, err)
			return
		}
		defer sess.Close()

		if _, err := sess.Submit("InitLedger"); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "ledger initialized with sample data"})
	})
}

// RegisterHealth exposes liveness; it never touches the ledger.
func RegisterHealth(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "healthy")
	})
}
