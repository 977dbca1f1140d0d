package handler

import (
	"errors"
	"net/http"

	"eduadmin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type StudentHandler interface {
	Register(c *gin.Context)
}

type studentHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

func NewStudentHandler(authService service.AuthService, logger *zap.Logger) StudentHandler {
	return &studentHandler{authService: authService, logger: logger}
}

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Phone    string `json:"phone" binding:"required"`
}

func (h *studentHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.authService.RegisterStudent(service.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		if errors.Is(err, service.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
			return
		}
		h.logger.Error("Failed to register student", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to register"})
		return
	}

	c.JSON(http.StatusCreated, user)
}
