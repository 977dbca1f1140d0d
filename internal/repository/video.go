package repository

import (
	"database/sql"
	"errors"

	"eduadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type VideoRepository interface {
	CreateVideo(video *models.Video) error
	GetAllVideos() ([]*models.Video, error)
	GetVideoByID(id string) (*models.Video, error)
	DeleteVideo(id string) (*models.Video, error)
}

type videoRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewVideoRepository(db *sqlx.DB, logger *zap.Logger) VideoRepository {
	return &videoRepository{db: db, logger: logger}
}

const videoColumns = `id, title, video_url, view_limit, description, created_at, updated_at`

func (r *videoRepository) CreateVideo(video *models.Video) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	query := `INSERT INTO videos (id, title, video_url, view_limit, description)
	          VALUES ($1, $2, $3, $4, $5) RETURNING ` + videoColumns
	return r.db.QueryRowx(query, video.ID, video.Title, video.VideoURL, video.Limit, video.Description).StructScan(video)
}

func (r *videoRepository) GetAllVideos() ([]*models.Video, error) {
	var videos []*models.Video
	query := `SELECT ` + videoColumns + ` FROM videos ORDER BY created_at DESC`
	if err := r.db.Select(&videos, query); err != nil {
		return nil, err
	}
	return videos, nil
}

func (r *videoRepository) GetVideoByID(id string) (*models.Video, error) {
	var video models.Video
	query := `SELECT ` + videoColumns + ` FROM videos WHERE id = $1`
	err := r.db.Get(&video, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Video not found
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) DeleteVideo(id string) (*models.Video, error) {
	var video models.Video
	query := `DELETE FROM videos WHERE id = $1 RETURNING ` + videoColumns
	err := r.db.QueryRowx(query, id).StructScan(&video)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &video, nil
}
