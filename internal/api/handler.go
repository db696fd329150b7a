package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/graciegould/snaglet/internal/auth"
	"github.com/graciegould/snaglet/internal/auth/provider"
	"github.com/graciegould/snaglet/internal/content"
	"github.com/graciegould/snaglet/internal/logger"
	"github.com/graciegould/snaglet/internal/middleware"
)

type Handler struct {
	provider provider.IdentityProvider
	store    content.Store
}

func NewHandler(idp provider.IdentityProvider, store content.Store) *Handler {
	return &Handler{
		provider: idp,
		store:    store,
	}
}

// RegisterRoutes wires the API route table. The table is shared
// across both app hostnames; host dispatch never applies to /api.
func (h *Handler) RegisterRoutes(r *gin.Engine, authMW *middleware.AuthMiddleware) {
	api := r.Group("/api")

	api.GET("/public-data", h.PublicData)

	secured := api.Group("")
	secured.Use(middleware.GinAuthenticate(authMW))

	secured.POST("/secure-action", h.SecureAction)

	admin := secured.Group("")
	admin.Use(middleware.GinRequireClaim(authMW, auth.AdminClaim))

	admin.POST("/set-admin-claim", h.SetAdminClaim)
}

// PublicData lists the public_content collection. No auth.
func (h *Handler) PublicData(c *gin.Context) {

	docs, err := h.store.ListPublic(c.Request.Context())
	if err != nil {
		logger.Error("public content read failed", map[string]any{
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to load public content",
		})
		return
	}

	out := make([]gin.H, 0, len(docs))
	for _, doc := range docs {
		obj := gin.H{}
		for k, v := range doc.Fields {
			obj[k] = v
		}
		obj["id"] = doc.ID
		out = append(out, obj)
	}

	c.JSON(http.StatusOK, out)
}

// SecureAction is the identity-scoped trusted operation: anything the
// client must not be able to do unauthenticated goes through a handler
// shaped like this one. It acknowledges the invoker and echoes the
// payload back.
func (h *Handler) SecureAction(c *gin.Context) {

	identity, ok := middleware.IdentityFromContext(c.Request.Context())
	if !ok {
		c.JSON(http.StatusForbidden, gin.H{"error": "Unauthorized: no identity"})
		return
	}

	var payload map[string]any
	if err := c.ShouldBindJSON(&payload); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "request body must be JSON"})
		return
	}

	invoker := identity.Email
	if invoker == "" {
		invoker = identity.SubjectID
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  fmt.Sprintf("Secure action completed for %s", invoker),
		"yourData": payload,
	})
}

// SetAdminClaim grants the isAdmin claim to the account registered
// under the requested email. Reachable only through Authenticate +
// RequireClaim(isAdmin), so escalation always originates from an
// existing admin; there is no self-service path. Granting an account
// that is already an admin succeeds identically.
func (h *Handler) SetAdminClaim(c *gin.Context) {

	var req struct {
		EmailToMakeAdmin string `json:"emailToMakeAdmin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.EmailToMakeAdmin == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "emailToMakeAdmin is required",
		})
		return
	}

	ctx := c.Request.Context()

	target, err := h.provider.LookupByEmail(ctx, req.EmailToMakeAdmin)
	if err != nil {
		if errors.Is(err, auth.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "no account found for that email",
			})
			return
		}
		logger.Error("admin grant lookup failed", map[string]any{
			"email": req.EmailToMakeAdmin,
			"error": err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to look up account",
		})
		return
	}

	if err := h.provider.SetClaims(ctx, target.SubjectID, map[string]any{
		auth.AdminClaim: true,
	}); err != nil {
		logger.Error("admin grant update failed", map[string]any{
			"subject": target.SubjectID,
			"error":   err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "failed to update account claims",
		})
		return
	}

	grantedBy := "unknown"
	if invoker, ok := middleware.IdentityFromContext(ctx); ok {
		grantedBy = invoker.SubjectID
	}
	logger.Info("admin claim granted", map[string]any{
		"target":     target.SubjectID,
		"granted_by": grantedBy,
	})

	// Tokens the target already holds keep their old claims; the
	// grant shows up after their next sign-in.
	c.JSON(http.StatusOK, gin.H{
		"message": fmt.Sprintf("%s is now an admin; the change applies on their next sign-in", req.EmailToMakeAdmin),
	})
}
