package handler

import (
	"net/http"

	"eduadmin/internal/models"
	"eduadmin/internal/repository"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type VideoHandler interface {
	ListVideos(c *gin.Context)
	GetVideo(c *gin.Context)
	CreateVideo(c *gin.Context)
	DeleteVideo(c *gin.Context)
}

type videoHandler struct {
	videoRepo repository.VideoRepository
	logger    *zap.Logger
}

func NewVideoHandler(videoRepo repository.VideoRepository, logger *zap.Logger) VideoHandler {
	return &videoHandler{videoRepo: videoRepo, logger: logger}
}

type CreateVideoRequest struct {
	Title       string `json:"title" binding:"required"`
	VideoURL    string `json:"video_url" binding:"required,url"`
	Limit       int64  `json:"limit"`
	Description string `json:"description"`
}

func (h *videoHandler) ListVideos(c *gin.Context) {
	videos, err := h.videoRepo.GetAllVideos()
	if err != nil {
		h.logger.Error("Failed to fetch videos", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch videos"})
		return
	}
	c.JSON(http.StatusOK, videos)
}

func (h *videoHandler) GetVideo(c *gin.Context) {
	video, err := h.videoRepo.GetVideoByID(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to fetch video", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to fetch video"})
		return
	}
	if video == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *videoHandler) CreateVideo(c *gin.Context) {
	var req CreateVideoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	video := &models.Video{
		Title:       req.Title,
		VideoURL:    req.VideoURL,
		Limit:       req.Limit,
		Description: req.Description,
	}
	if err := h.videoRepo.CreateVideo(video); err != nil {
		h.logger.Error("Failed to create video", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create video"})
		return
	}

	c.JSON(http.StatusCreated, video)
}

func (h *videoHandler) DeleteVideo(c *gin.Context) {
	video, err := h.videoRepo.DeleteVideo(c.Param("id"))
	if err != nil {
		h.logger.Error("Failed to delete video", zap.String("id", c.Param("id")), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to delete video"})
		return
	}
	if video == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "video not found"})
		return
	}
	c.JSON(http.StatusOK, video)
}
