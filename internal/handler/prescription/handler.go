package prescription

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/medrec/records-api/internal/middleware"
	"github.com/medrec/records-api/internal/model"
	"github.com/medrec/records-api/internal/service/prescription"
	apperrors "github.com/medrec/records-api/pkg/errors"
	"github.com/medrec/records-api/pkg/httputil"
)

type Handler struct {
	svc *prescription.Service
}

func NewHandler(svc *prescription.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authMW *middleware.AuthMiddleware) {
	r.POST("/prescription", authMW.Authenticate(), authMW.RequireRole(model.RoleDoctor), h.Create)
	r.GET("/prescriptions/:uid", authMW.Authenticate(), h.ListForPatient)

	pharmacist := r.Group("/pharmacist", authMW.Authenticate(), authMW.RequireRole(model.RolePharmacist))
	{
		pharmacist.GET("/prescriptions", h.List)
		pharmacist.PATCH("/prescription/:id", h.MarkFulfilled)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("missing or invalid required field"))
		return
	}

	created, err := h.svc.Create(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusCreated, created)
}

// ListForPatient returns the prescriptions for one patient uid. Patients may
// only list their own; doctors and pharmacists may list anyone's.
func (h *Handler) ListForPatient(c *gin.Context) {
	uid := c.Param("uid")

	if c.GetString(middleware.ContextRole) == model.RolePatient && c.GetString(middleware.ContextUID) != uid {
		c.JSON(http.StatusForbidden, httputil.Response{
			Status:  "error",
			Message: "patients may only view their own prescriptions",
		})
		return
	}

	prescriptions, err := h.svc.List(c.Request.Context(), model.PrescriptionFilter{UID: uid})
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, prescriptions)
}

// List returns prescriptions matching optional uid and doctor query filters.
func (h *Handler) List(c *gin.Context) {
	var filter model.PrescriptionFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid filter parameters"))
		return
	}

	prescriptions, err := h.svc.List(c.Request.Context(), filter)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, prescriptions)
}

func (h *Handler) MarkFulfilled(c *gin.Context) {
	updated, err := h.svc.MarkFulfilled(c.Request.Context(), c.Param("id"))
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, http.StatusOK, updated)
}
