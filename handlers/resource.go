package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/farmnet/farmledger/internal/ledger"
	"github.com/farmnet/farmledger/internal/records"
	"github.com/farmnet/farmledger/pkg/middleware"
)

// SessionManager is the slice of the connection manager the handlers
// depend on.
type SessionManager interface {
	Acquire(identity string) (*ledger.Session, error)
}

// ResourceHandler serves the full HTTP surface of one record type.
// Every request is one acquire → invoke → release cycle; sessions are
// never held across requests.
type ResourceHandler struct {
	svc             *records.Service
	mgr             SessionManager
	defaultIdentity string
}

func NewResourceHandler(mgr SessionManager, res records.Resource, defaultIdentity string) *ResourceHandler {
	return &ResourceHandler{svc: records.NewService(res), mgr: mgr, defaultIdentity: defaultIdentity}
}

// Register wires the resource routes. Mutating routes go through the
// auth middleware; reads run under the configured default identity.
func (h *ResourceHandler) Register(rg *gin.RouterGroup, auth gin.HandlerFunc) {
	res := h.svc.Resource()
	rg.GET("/"+res.Name, h.List)
	rg.GET("/"+res.Name+"/:key", h.Get)
	rg.POST("/"+res.Name, auth, h.Create)
	rg.PUT("/"+res.Name+"/:key", auth, h.Update)
	rg.DELETE("/"+res.Name+"/:key", auth, h.Delete)
	for dim := range res.Dimensions {
		rg.GET("/"+res.Name+"/"+dim+"/:value", h.filter(dim))
	}
	for action := range res.Actions {
		rg.PATCH("/"+res.Name+"/:key/"+action, auth, h.patch(action))
	}
}

func (h *ResourceHandler) List(c *gin.Context) {
	h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
		return h.svc.List(sess)
	})
}

func (h *ResourceHandler) Get(c *gin.Context) {
	key := c.Param("key")
	h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
		return h.svc.Get(sess, key)
	})
}

func (h *ResourceHandler) Create(c *gin.Context) {
	key, fields, ok := h.bindRecord(c, true)
	if !ok {
		return
	}
	h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
		return h.svc.Create(sess, key, fields)
	})
}

func (h *ResourceHandler) Update(c *gin.Context) {
	_, fields, ok := h.bindRecord(c, false)
	if !ok {
		return
	}
	key := c.Param("key")
	h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
		return h.svc.Update(sess, key, fields)
	})
}

func (h *ResourceHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	sess, err := h.mgr.Acquire(h.identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer sess.Close()
	if err := h.svc.Delete(sess, key); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": key + " deleted"})
}

func (h *ResourceHandler) filter(dimension string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value := c.Param("value")
		h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
			return h.svc.Filter(sess, dimension, value)
		})
	}
}

func (h *ResourceHandler) patch(action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		field := h.svc.Resource().Actions[action]
		var body map[string]interface{}
		if err := c.ShouldBindJSON(&body); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		value := toStr(body[field])
		if value == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: " + field})
			return
		}
		key := c.Param("key")
		h.withSession(c, func(sess *ledger.Session) (interface{}, error) {
			return h.svc.SetField(sess, key, action, value)
		})
	}
}

// bindRecord validates required fields before any session is opened,
// so malformed input never costs a connection.
func (h *ResourceHandler) bindRecord(c *gin.Context, wantKey bool) (string, map[string]string, bool) {
	res := h.svc.Resource()
	var body map[string]interface{}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return "", nil, false
	}

	var key string
	if wantKey {
		key = toStr(body[res.KeyField])
		if key == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: " + res.KeyField})
			return "", nil, false
		}
	}
	fields := make(map[string]string, len(res.Fields))
	for _, f := range res.Fields {
		v := toStr(body[f])
		if v == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "missing required field: " + f})
			return "", nil, false
		}
		fields[f] = v
	}
	return key, fields, true
}

func (h *ResourceHandler) withSession(c *gin.Context, fn func(sess *ledger.Session) (interface{}, error)) {
	sess, err := h.mgr.Acquire(h.identity(c))
	if err != nil {
		respondError(c, err)
		return
	}
	defer sess.Close()

	data, err := fn(sess)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": data})
}

func (h *ResourceHandler) identity(c *gin.Context) string {
	if id := c.GetString(middleware.IdentityKey); id != "" {
		return id
	}
	return h.defaultIdentity
}

// respondError maps every manager or store failure to 500 with the
// failure's message; no retry is attempted, each call is one
// best-effort unit of work.
func respondError(c *gin.Context, err error) {
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}

// toStr renders a JSON body value as a chaincode argument. Numbers
// keep their shortest decimal form.
func toStr(v interface{}) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
