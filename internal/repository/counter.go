package repository

import (
	"eduadmin/internal/models"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

type CounterRepository interface {
	GetAllCounters() ([]*models.Counter, error)
	IncrementCounter(name string) (*models.Counter, error)
	ResetCounters() (int64, error)
}

type counterRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewCounterRepository(db *sqlx.DB, logger *zap.Logger) CounterRepository {
	return &counterRepository{db: db, logger: logger}
}

func (r *counterRepository) GetAllCounters() ([]*models.Counter, error) {
	var counters []*models.Counter
	query := `SELECT id, name, value, updated_at FROM counters ORDER BY name`
	if err := r.db.Select(&counters, query); err != nil {
		return nil, err
	}
	return counters, nil
}

// IncrementCounter bumps the named counter, creating it on first hit.
func (r *counterRepository) IncrementCounter(name string) (*models.Counter, error) {
	var counter models.Counter
	query := `INSERT INTO counters (name, value) VALUES ($1, 1)
	          ON CONFLICT (name) DO UPDATE SET value = counters.value + 1, updated_at = NOW()
	          RETURNING id, name, value, updated_at`
	if err := r.db.QueryRowx(query, name).StructScan(&counter); err != nil {
		return nil, err
	}
	return &counter, nil
}

// ResetCounters zeroes every counter and reports how many were touched.
func (r *counterRepository) ResetCounters() (int64, error) {
	result, err := r.db.Exec(`UPDATE counters SET value = 0, updated_at = NOW()`)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}
