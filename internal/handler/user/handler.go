package user

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/records-api/internal/middleware"
	"github.com/medrec/records-api/internal/service/auth"
	"github.com/medrec/records-api/pkg/httputil"
)

type Handler struct {
	svc *auth.Service
}

func NewHandler(svc *auth.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	r.GET("/user/:uid", authMW.Authenticate(), h.FetchUser)
}

// FetchUser returns the user record for a uid. The password digest is never
// part of the response.
func (h *Handler) FetchUser(c *gin.Context) {
	user, err := h.svc.FetchUser(c.Request.Context(), c.Param("uid"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, user)
}
