package controller

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lromero/cajaclinic/internal/api/response"
	"github.com/lromero/cajaclinic/internal/model"
	"github.com/lromero/cajaclinic/internal/service"
)

type AuthController struct {
	authService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{
		authService: authService,
	}
}

type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role" binding:"omitempty,oneof=admin receptionist"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token    string `json:"token"`
	UserID   string `json:"user_id"`
	UserName string `json:"user_name"`
	Role     string `json:"role"`
}

func (ctrl *AuthController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("register params invalid", "err", err)
		response.Error(c, http.StatusBadRequest, "Datos inválidos: "+err.Error())
		return
	}

	err := ctrl.authService.Register(c.Request.Context(), req.Username, req.Email, req.Password, model.Role(req.Role))
	if err != nil {
		slog.Error("register failed", "email", req.Email, "err", err)
		response.Error(c, http.StatusOK, "No se pudo crear la cuenta")
		return
	}

	slog.Info("user registered", "email", req.Email)
	response.Success(c, nil)
}

func (ctrl *AuthController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Datos inválidos")
		return
	}

	token, user, err := ctrl.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		slog.Warn("login failed", "email", req.Email, "err", err)
		// vague on purpose
		response.Error(c, http.StatusOK, "Correo o contraseña incorrectos")
		return
	}

	slog.Info("user logged in", "userID", user.ID)
	response.Success(c, LoginResponse{
		Token:    token,
		UserID:   user.ID,
		UserName: user.Username,
		Role:     string(user.Role),
	})
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required,eqfield=NewPassword"`
}

// ChangePassword replaces the caller's password. Mismatched confirmation or
// a short password fails binding and never reaches the store.
func (ctrl *AuthController) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "Las contraseñas no coinciden o son muy cortas")
		return
	}

	userID := c.GetString("userID")
	if err := ctrl.authService.ChangePassword(c.Request.Context(), userID, req.NewPassword); err != nil {
		slog.Error("password change failed", "userID", userID, "err", err)
		response.Error(c, http.StatusInternalServerError, "Error al actualizar contraseña")
		return
	}

	slog.Info("password changed", "userID", userID)
	response.Success(c, nil)
}
