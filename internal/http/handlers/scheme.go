package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	types "github.com/kisansaathi/kisansaathi-backend/internal/domain"
	"github.com/kisansaathi/kisansaathi-backend/internal/http/response"
	"github.com/kisansaathi/kisansaathi-backend/internal/platform/apierr"
	"github.com/kisansaathi/kisansaathi-backend/internal/services"
)

type SchemeHandler struct {
	svc services.SchemeSearchService
}

func NewSchemeHandler(svc services.SchemeSearchService) *SchemeHandler {
	return &SchemeHandler{svc: svc}
}

// POST /api/schemes/search
// body: { "query": "...", "userProfile": { "state": "...", "soilType": "...", "role": "...", "address": "..." } }
func (h *SchemeHandler) Search(c *gin.Context) {
	var req types.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	resp, err := h.svc.Search(c.Request.Context(), req)
	if err != nil {
		response.RespondAPIError(c, mapServiceError(err))
		return
	}
	response.RespondOK(c, resp)
}

// GET /api/schemes
func (h *SchemeHandler) List(c *gin.Context) {
	all := h.svc.ListSchemes(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"schemes": all, "total": len(all)})
}

// GET /api/schemes/:id
func (h *SchemeHandler) Get(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		response.RespondError(c, http.StatusBadRequest, "invalid_scheme_id", errors.New("invalid scheme id"))
		return
	}
	rec, err := h.svc.GetScheme(c.Request.Context(), id)
	if err != nil {
		response.RespondAPIError(c, mapServiceError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"scheme": rec})
}

func mapServiceError(err error) error {
	switch {
	case errors.Is(err, services.ErrQueryRequired):
		return apierr.BadRequest("query_required", err)
	case errors.Is(err, services.ErrRankerNotConfigured):
		return apierr.Internal("ranker_not_configured", err)
	case errors.Is(err, services.ErrSchemeNotFound):
		return apierr.NotFound("scheme_not_found", err)
	default:
		return apierr.Internal("internal_error", err)
	}
}
