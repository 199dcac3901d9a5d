package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/farmnet/farmledger/internal/config"
	"github.com/farmnet/farmledger/internal/tokens"
	"github.com/farmnet/farmledger/pkg/logger"
)

// RegisterRequest creates a ledger user account.
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	HoTen    string `json:"hoTen"`
	Role     string `json:"role"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// AuthHandler issues JWTs for users whose credentials the ledger
// verifies. Application users all transact under the app's enrolled
// wallet identity; the ledger user account is authorization, not a
// signing identity.
type AuthHandler struct {
	cfg *config.Config
	mgr SessionManager
}

func NewAuthHandler(cfg *config.Config, mgr SessionManager) *AuthHandler {
	return &AuthHandler{cfg: cfg, mgr: mgr}
}

func (h *AuthHandler) Register(rg *gin.RouterGroup) {
	rg.POST("/users", h.CreateUser)
	rg.POST("/login", h.Login)
}

func (h *AuthHandler) CreateUser(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.mgr.Acquire(h.cfg.Fabric.Identity)
	if err != nil {
		respondError(c, err)
		return
	}
	defer sess.Close()

	data, err := sess.Submit("CreateUser", req.Username, req.Password, req.HoTen, req.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": json.RawMessage(data)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sess, err := h.mgr.Acquire(h.cfg.Fabric.Identity)
	if err != nil {
		respondError(c, err)
		return
	}
	defer sess.Close()

	verdict, err := sess.Evaluate("VerifyUser", req.Username, req.Password)
	if err != nil || string(verdict) != "true" {
		// same answer for unknown user and wrong password
		if err != nil {
			logger.Debugf("login %s: %v", req.Username, err)
		}
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}

	var user struct {
		Username string `json:"username"`
		HoTen    string `json:"hoTen"`
		Role     string `json:"role"`
	}
	if data, err := sess.Evaluate("GetUser", req.Username); err == nil {
		_ = json.Unmarshal(data, &user)
	}

	token, err := tokens.Generate(h.cfg, req.Username, h.cfg.Fabric.Identity, user.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{"token": token, "user": user}})
}
