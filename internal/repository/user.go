package repository

import (
	"database/sql"
	"errors"

	"eduadmin/internal/models"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

// ErrDuplicateEmail reports an insert that collided with an existing email.
var ErrDuplicateEmail = errors.New("email already registered")

type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByEmail(email string) (*models.User, error)
	GetUserByID(id string) (*models.User, error)
	GetStudents() ([]*models.User, error)
	CountStudents() (int, error)
	SetApproval(id string, approved bool) (*models.User, error)
	SetChecked(id string) (*models.User, error)
	DeleteUser(id string) (*models.User, error)
}

type userRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewUserRepository(db *sqlx.DB, logger *zap.Logger) UserRepository {
	return &userRepository{db: db, logger: logger}
}

const userColumns = `id, email, password_hash, salt, role, phone, approved, checked, created_at`

func (r *userRepository) CreateUser(user *models.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	query := `INSERT INTO users (id, email, password_hash, salt, role, phone)
	          VALUES ($1, $2, $3, $4, $5, $6) RETURNING ` + userColumns
	err := r.db.QueryRowx(query, user.ID, user.Email, user.PasswordHash, user.Salt, user.Role, user.Phone).StructScan(user)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) GetUserByEmail(email string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	err := r.db.Get(&user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // User not found
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetUserByID(id string) (*models.User, error) {
	var user models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	err := r.db.Get(&user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetStudents() ([]*models.User, error) {
	var students []*models.User
	query := `SELECT ` + userColumns + ` FROM users WHERE role = $1 ORDER BY created_at`
	if err := r.db.Select(&students, query, models.RoleStudent); err != nil {
		return nil, err
	}
	return students, nil
}

func (r *userRepository) CountStudents() (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = $1`
	if err := r.db.Get(&count, query, models.RoleStudent); err != nil {
		return 0, err
	}
	return count, nil
}

func (r *userRepository) SetApproval(id string, approved bool) (*models.User, error) {
	var user models.User
	query := `UPDATE users SET approved = $1 WHERE id = $2 RETURNING ` + userColumns
	err := r.db.QueryRowx(query, approved, id).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SetChecked(id string) (*models.User, error) {
	var user models.User
	query := `UPDATE users SET checked = TRUE WHERE id = $1 RETURNING ` + userColumns
	err := r.db.QueryRowx(query, id).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) DeleteUser(id string) (*models.User, error) {
	var user models.User
	query := `DELETE FROM users WHERE id = $1 RETURNING ` + userColumns
	err := r.db.QueryRowx(query, id).StructScan(&user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}
