package repository

import (
	"regexp"
	"testing"
	"time"

	"eduadmin/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

func newMockRepo(t *testing.T) (UserRepository, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewUserRepository(sqlx.NewDb(db, "sqlmock"), zap.NewNop()), mock
}

func userRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "email", "password_hash", "salt", "role", "phone", "approved", "checked", "created_at",
	}).AddRow("id-1", "s@x.com", "hash", "salt", "student", "+1555", false, false, time.Now())
}

func TestGetUserByEmail_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id, email, password_hash, salt, role, phone, approved, checked, created_at FROM users WHERE email = $1`)).
		WithArgs("nobody@x.com").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.GetUserByEmail("nobody@x.com")
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user, got %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestSetApproval_NotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`UPDATE users SET approved = $1 WHERE id = $2 RETURNING`)).
		WithArgs(true, "missing-id").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	user, err := repo.SetApproval("missing-id", true)
	if err != nil {
		t.Fatalf("expected nil error for missing user, got %v", err)
	}
	if user != nil {
		t.Fatalf("expected nil user for missing id, got %+v", user)
	}
}

func TestDeleteUser_ReturnsDeletedRecord(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`DELETE FROM users WHERE id = $1 RETURNING`)).
		WithArgs("id-1").
		WillReturnRows(userRows())

	user, err := repo.DeleteUser("id-1")
	if err != nil {
		t.Fatalf("DeleteUser error: %v", err)
	}
	if user == nil || user.ID != "id-1" {
		t.Fatalf("expected deleted record back, got %+v", user)
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("role mismatch: %q", user.Role)
	}
}

func TestCountStudents(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT COUNT(*) FROM users WHERE role = $1`)).
		WithArgs(models.RoleStudent).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(7))

	count, err := repo.CountStudents()
	if err != nil {
		t.Fatalf("CountStudents error: %v", err)
	}
	if count != 7 {
		t.Fatalf("count mismatch: got %d want 7", count)
	}
}
