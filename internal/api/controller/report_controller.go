package controller

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lromero/cajaclinic/internal/api/response"
	"github.com/lromero/cajaclinic/internal/reconcile"
	"github.com/lromero/cajaclinic/internal/service"
)

type ReportController struct {
	service *service.ReportService
}

func NewReportController(s *service.ReportService) *ReportController {
	return &ReportController{service: s}
}

type SummaryRequest struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Week     string `form:"week"`  // YYYY-Www
	Month    string `form:"month"` // YYYY-MM
}

// Summary resolves the period selector and assembles the report. Exactly one
// selector kind is accepted; an explicit range needs both bounds — one alone
// is a caller input error.
func (ctrl *ReportController) Summary(c *gin.Context) {
	var req SummaryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	var (
		period  reconcile.Period
		err     error
		isMonth bool
	)
	switch {
	case req.Month != "":
		period, err = reconcile.ResolveMonth(req.Month)
		isMonth = true
	case req.Week != "":
		period, err = reconcile.ResolveWeek(req.Week)
	case req.DateFrom != "" || req.DateTo != "":
		period, err = reconcile.ResolveRange(req.DateFrom, req.DateTo)
	default:
		response.Error(c, http.StatusBadRequest, "Selecciona un periodo")
		return
	}
	if err != nil {
		if errors.Is(err, reconcile.ErrIncompleteRange) {
			response.Error(c, http.StatusBadRequest, "Indica ambas fechas del rango")
			return
		}
		response.Error(c, http.StatusBadRequest, "Periodo inválido")
		return
	}

	summary, err := ctrl.service.Summary(c.Request.Context(), period, isMonth)
	if err != nil {
		slog.Error("summary failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al cargar datos. Por favor recarga la página.")
		return
	}

	response.Success(c, summary)
}
