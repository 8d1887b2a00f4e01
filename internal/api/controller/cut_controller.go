package controller

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/lromero/cajaclinic/internal/api/response"
	"github.com/lromero/cajaclinic/internal/model"
	"github.com/lromero/cajaclinic/internal/service"
)

const dayLayout = "2006-01-02"

type CutController struct {
	service *service.CutService
}

func NewCutController(s *service.CutService) *CutController {
	return &CutController{service: s}
}

type SubmitExpenseLineRequest struct {
	Category      string          `json:"category" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=cash transfer card"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
}

type SubmitCutRequest struct {
	// ValidDate may be in the past: closings can be backdated.
	ValidDate      string                     `json:"valid_date" binding:"required"`
	CashCounted    decimal.Decimal            `json:"cash_counted"`
	VoucherCounted decimal.Decimal            `json:"voucher_counted"`
	Expenses       []SubmitExpenseLineRequest `json:"expenses" binding:"omitempty,dive"`
}

// SubmitCutResponse is deliberately blind: no expected amounts, no
// discrepancy, nothing that would tell the submitter whether they match.
type SubmitCutResponse struct {
	ID           string          `json:"id"`
	ValidDate    string          `json:"valid_date"`
	TotalCounted decimal.Decimal `json:"total_counted"`
	Status       string          `json:"status"`
}

func (ctrl *CutController) Submit(c *gin.Context) {
	var req SubmitCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	validDate, err := time.ParseInLocation(dayLayout, req.ValidDate, time.UTC)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Fecha inválida")
		return
	}

	lines := make([]service.SubmitExpenseLine, 0, len(req.Expenses))
	for _, line := range req.Expenses {
		lines = append(lines, service.SubmitExpenseLine{
			Category:      model.ExpenseCategory(line.Category),
			PaymentMethod: model.PaymentMethod(line.PaymentMethod),
			Description:   line.Description,
			Amount:        line.Amount,
		})
	}

	cut, err := ctrl.service.Submit(c.Request.Context(), service.SubmitCutInput{
		UserID:         c.GetString("userID"),
		UserName:       c.GetString("userName"),
		ValidDate:      validDate,
		CashCounted:    req.CashCounted,
		VoucherCounted: req.VoucherCounted,
		Expenses:       lines,
	})
	if err != nil {
		slog.Error("cut submit failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al guardar. Por favor intenta de nuevo.")
		return
	}

	slog.Info("cut submitted", "cutID", cut.ID, "validDate", req.ValidDate)
	response.Success(c, SubmitCutResponse{
		ID:           cut.ID,
		ValidDate:    cut.ValidDate.Format(dayLayout),
		TotalCounted: cut.TotalCounted,
		Status:       string(cut.Status),
	})
}

type ListCutsRequest struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}

type ListCutsResponse struct {
	Rows  []service.ReconciledCut `json:"rows"`
	Total int                     `json:"total"`
}

// List is the audit table: every row carries the combined discrepancy plus
// the independent cash and voucher triples. Bounds are optional and
// independent, matching the dashboard's free-form date filter.
func (ctrl *CutController) List(c *gin.Context) {
	var req ListCutsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	var from, to *time.Time
	if req.DateFrom != "" {
		t, err := time.ParseInLocation(dayLayout, req.DateFrom, time.UTC)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Fecha inválida")
			return
		}
		from = &t
	}
	if req.DateTo != "" {
		t, err := time.ParseInLocation(dayLayout, req.DateTo, time.UTC)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "Fecha inválida")
			return
		}
		to = &t
	}

	rows, err := ctrl.service.ListReconciled(c.Request.Context(), from, to)
	if err != nil {
		slog.Error("cut listing failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al cargar datos. Por favor recarga la página.")
		return
	}

	response.Success(c, ListCutsResponse{Rows: rows, Total: len(rows)})
}

type ReviewCutRequest struct {
	ID              string           `json:"id" binding:"required"`
	ExpectedCash    *decimal.Decimal `json:"expected_cash"`
	ExpectedVoucher *decimal.Decimal `json:"expected_voucher"`
	Expected        *decimal.Decimal `json:"expected"` // legacy rows only
	Status          string           `json:"status" binding:"required,oneof=pending reviewed disputed"`
	Notes           *string          `json:"notes"`
}

func (ctrl *CutController) Review(c *gin.Context) {
	var req ReviewCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	input := service.ReviewInput{
		Status: model.CutStatus(req.Status),
		Notes:  req.Notes,
	}
	if req.ExpectedCash != nil {
		input.ExpectedCash = decimal.NewNullDecimal(*req.ExpectedCash)
	}
	if req.ExpectedVoucher != nil {
		input.ExpectedVoucher = decimal.NewNullDecimal(*req.ExpectedVoucher)
	}
	if req.Expected != nil {
		input.Expected = decimal.NewNullDecimal(*req.Expected)
	}

	if err := ctrl.service.Review(c.Request.Context(), req.ID, input); err != nil {
		if errors.Is(err, service.ErrCutNotFound) {
			response.Error(c, http.StatusNotFound, "Corte no encontrado")
			return
		}
		slog.Error("review save failed", "cutID", req.ID, "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al guardar. Por favor intenta de nuevo.")
		return
	}

	slog.Info("cut reviewed", "cutID", req.ID, "status", req.Status, "reviewer", c.GetString("userID"))
	response.Success(c, nil)
}

type DeleteCutRequest struct {
	ID string `json:"id" binding:"required"`
}

func (ctrl *CutController) Delete(c *gin.Context) {
	var req DeleteCutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrCutNotFound) {
			response.Error(c, http.StatusNotFound, "Corte no encontrado")
			return
		}
		slog.Error("cut delete failed", "cutID", req.ID, "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al eliminar")
		return
	}

	slog.Info("cut deleted", "cutID", req.ID, "by", c.GetString("userID"))
	response.Success(c, nil)
}
