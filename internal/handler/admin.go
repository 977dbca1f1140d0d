package handler

import (
	"errors"
	"net/http"

	"eduadmin/internal/middleware"
	"eduadmin/internal/repository"
	"eduadmin/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type AdminHandler interface {
	Login(c *gin.Context)
	GetStudentProfiles(c *gin.Context)
	GetStudentCount(c *gin.Context)
	GetStudentProfile(c *gin.Context)
	ApproveStudent(c *gin.Context)
	CheckSlip(c *gin.Context)
	DeleteStudent(c *gin.Context)
}

type adminHandler struct {
	authService service.AuthService
	userRepo    repository.UserRepository
	logger      *zap.Logger
}

func NewAdminHandler(authService service.AuthService, userRepo repository.UserRepository, logger *zap.Logger) AdminHandler {
	return &adminHandler{authService: authService, userRepo: userRepo, logger: logger}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type ApproveRequest struct {
	ID       string `json:"id" binding:"required"`
	Approval *bool  `json:"approval" binding:"required"`
}

type CheckSlipRequest struct {
	ID string `json:"id" binding:"required"`
}

func (h *adminHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
			return
		}
		h.logger.Error("Login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to login"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token": result.Token,
		"id":    result.UserID,
		"phone": result.Phone,
	})
}

func (h *adminHandler) GetStudentProfiles(c *gin.Context) {
	profiles, err := h.userRepo.GetStudents()
	if err != nil {
		h.logger.Error("Failed to fetch student profiles", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profiles"})
		return
	}
	c.JSON(http.StatusOK, profiles)
}

func (h *adminHandler) GetStudentCount(c *gin.Context) {
	count, err := h.userRepo.CountStudents()
	if err != nil {
		h.logger.Error("Failed to count students", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count students"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h *adminHandler) GetStudentProfile(c *gin.Context) {
	profile, err := h.userRepo.GetUserByID(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to fetch student profile", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *adminHandler) ApproveStudent(c *gin.Context) {
	var req ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.userRepo.SetApproval(req.ID, *req.Approval)
	if err != nil {
		h.logger.Error("Failed to update approval", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *adminHandler) CheckSlip(c *gin.Context) {
	var req CheckSlipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.userRepo.SetChecked(req.ID)
	if err != nil {
		h.logger.Error("Failed to mark slip checked", zap.String("id", req.ID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}

func (h *adminHandler) DeleteStudent(c *gin.Context) {
	h.logger.Info("Deleting user",
		zap.String("id", c.Param("id")),
		zap.String("by", c.GetString(middleware.ContextUserID)))

	profile, err := h.userRepo.DeleteUser(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to delete user", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete profile"})
		return
	}
	if profile == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "profile not found"})
		return
	}
	c.JSON(http.StatusOK, profile)
}
