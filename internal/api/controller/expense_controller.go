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
	"github.com/lromero/cajaclinic/internal/repository"
	"github.com/lromero/cajaclinic/internal/service"
)

type ExpenseController struct {
	service *service.ExpenseService
}

func NewExpenseController(s *service.ExpenseService) *ExpenseController {
	return &ExpenseController{service: s}
}

type CreateExpenseRequest struct {
	ValidDate     string          `json:"valid_date" binding:"required"`
	Category      string          `json:"category" binding:"required"`
	PaymentMethod string          `json:"payment_method" binding:"required,oneof=cash transfer card"`
	Description   string          `json:"description" binding:"required"`
	Amount        decimal.Decimal `json:"amount" binding:"required"`
	IsGlobal      bool            `json:"is_global"`
}

func (ctrl *ExpenseController) Create(c *gin.Context) {
	var req CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	validDate, err := time.ParseInLocation(dayLayout, req.ValidDate, time.UTC)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "Fecha inválida")
		return
	}

	expense, err := ctrl.service.Create(c.Request.Context(), service.CreateExpenseInput{
		UserID:        c.GetString("userID"),
		UserName:      c.GetString("userName"),
		ValidDate:     validDate,
		Category:      model.ExpenseCategory(req.Category),
		PaymentMethod: model.PaymentMethod(req.PaymentMethod),
		Description:   req.Description,
		Amount:        req.Amount,
		IsGlobal:      req.IsGlobal,
	})
	if err != nil {
		slog.Error("expense create failed", "err", err)
		response.Error(c, http.StatusBadRequest, "No se pudo registrar el gasto: "+err.Error())
		return
	}

	slog.Info("expense created", "expenseID", expense.ID, "global", expense.IsGlobal)
	response.Success(c, expense)
}

type ListExpensesRequest struct {
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
	Date     string `form:"date"`
	Category string `form:"category"`
	Global   *bool  `form:"global"`
}

type ListExpensesResponse struct {
	List  []model.Expense `json:"list"`
	Total int             `json:"total"`
}

func (ctrl *ExpenseController) List(c *gin.Context) {
	var req ListExpensesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	filter := repository.ExpenseFilter{
		Category: model.ExpenseCategory(req.Category),
		Global:   req.Global,
	}
	parse := func(s string) (*time.Time, bool) {
		if s == "" {
			return nil, true
		}
		t, err := time.ParseInLocation(dayLayout, s, time.UTC)
		if err != nil {
			return nil, false
		}
		return &t, true
	}
	var ok bool
	if filter.From, ok = parse(req.DateFrom); !ok {
		response.Error(c, http.StatusBadRequest, "Fecha inválida")
		return
	}
	if filter.To, ok = parse(req.DateTo); !ok {
		response.Error(c, http.StatusBadRequest, "Fecha inválida")
		return
	}
	if filter.Date, ok = parse(req.Date); !ok {
		response.Error(c, http.StatusBadRequest, "Fecha inválida")
		return
	}

	list, err := ctrl.service.List(c.Request.Context(), filter)
	if err != nil {
		slog.Error("expense listing failed", "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al cargar datos. Por favor recarga la página.")
		return
	}

	response.Success(c, ListExpensesResponse{List: list, Total: len(list)})
}

type UpdateExpenseRequest struct {
	ID            string           `json:"id" binding:"required"`
	Category      *string          `json:"category"`
	PaymentMethod *string          `json:"payment_method"`
	Description   *string          `json:"description"`
	Amount        *decimal.Decimal `json:"amount"`
	IsGlobal      *bool            `json:"is_global"`
}

func (ctrl *ExpenseController) Update(c *gin.Context) {
	var req UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	input := service.UpdateExpenseInput{
		Description: req.Description,
		Amount:      req.Amount,
		IsGlobal:    req.IsGlobal,
	}
	if req.Category != nil {
		cat := model.ExpenseCategory(*req.Category)
		input.Category = &cat
	}
	if req.PaymentMethod != nil {
		method := model.PaymentMethod(*req.PaymentMethod)
		input.PaymentMethod = &method
	}

	expense, err := ctrl.service.Update(c.Request.Context(), req.ID, input)
	if err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			response.Error(c, http.StatusNotFound, "Gasto no encontrado")
			return
		}
		slog.Error("expense update failed", "expenseID", req.ID, "err", err)
		response.Error(c, http.StatusBadRequest, "No se pudo actualizar el gasto: "+err.Error())
		return
	}

	slog.Info("expense updated", "expenseID", req.ID, "by", c.GetString("userID"))
	response.Success(c, expense)
}

type DeleteExpenseRequest struct {
	ID string `json:"id" binding:"required"`
}

func (ctrl *ExpenseController) Delete(c *gin.Context) {
	var req DeleteExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	if err := ctrl.service.Delete(c.Request.Context(), req.ID); err != nil {
		if errors.Is(err, service.ErrExpenseNotFound) {
			response.Error(c, http.StatusNotFound, "Gasto no encontrado")
			return
		}
		slog.Error("expense delete failed", "expenseID", req.ID, "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al eliminar")
		return
	}

	slog.Info("expense deleted", "expenseID", req.ID, "by", c.GetString("userID"))
	response.Success(c, nil)
}
