package service

import (
	"errors"
	"testing"
	"time"

	"eduadmin/internal/crypto"
	"eduadmin/internal/models"
	"eduadmin/internal/repository"
	"eduadmin/internal/token"

	"go.uber.org/zap"
)

// -------- test fakes --------

type fakeUserRepo struct {
	repository.UserRepository
	usersByEmail map[string]*models.User
	created      []*models.User
	createErr    error
	lookupErr    error
}

func (f *fakeUserRepo) GetUserByEmail(email string) (*models.User, error) {
	if f.lookupErr != nil {
		return nil, f.lookupErr
	}
	return f.usersByEmail[email], nil
}

func (f *fakeUserRepo) CreateUser(user *models.User) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.created = append(f.created, user)
	return nil
}

func newTestService(t *testing.T, repo repository.UserRepository) (AuthService, *token.Issuer) {
	t.Helper()
	issuer := token.NewIssuer([]byte("test-secret"), nil, time.Hour)
	return NewAuthService(repo, issuer, zap.NewNop()), issuer
}

func storedUser(t *testing.T, email, password string, role models.Role) *models.User {
	t.Helper()
	salt, err := crypto.GenerateSalt()
	if err != nil {
		t.Fatalf("GenerateSalt error: %v", err)
	}
	hash, err := crypto.HashPassword(password, salt)
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	return &models.User{
		ID:           "id-" + email,
		Email:        email,
		PasswordHash: hash,
		Salt:         salt,
		Role:         role,
		Phone:        "+15550100",
	}
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	admin := storedUser(t, "admin@x.com", "correct", models.RoleAdmin)
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{"admin@x.com": admin}}
	svc, issuer := newTestService(t, repo)

	result, err := svc.Login("Admin@X.com", "correct")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if result.UserID != admin.ID {
		t.Fatalf("UserID mismatch: got %q", result.UserID)
	}
	if result.Phone != admin.Phone {
		t.Fatalf("Phone mismatch: got %q", result.Phone)
	}

	claims, err := issuer.Verify(result.Token)
	if err != nil {
		t.Fatalf("issued token failed verification: %v", err)
	}
	if claims.UserID != admin.ID || claims.Role != string(models.RoleAdmin) {
		t.Fatalf("claims mismatch: %+v", claims)
	}
}

// Unknown email, wrong password, and non-admin role must be indistinguishable.
func TestLogin_UniformFailure(t *testing.T) {
	t.Parallel()

	admin := storedUser(t, "admin@x.com", "correct", models.RoleAdmin)
	student := storedUser(t, "student@x.com", "correct", models.RoleStudent)
	repo := &fakeUserRepo{usersByEmail: map[string]*models.User{
		"admin@x.com":   admin,
		"student@x.com": student,
	}}
	svc, _ := newTestService(t, repo)

	cases := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@x.com", "correct"},
		{"wrong password", "admin@x.com", "wrong"},
		{"wrong role", "student@x.com", "correct"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			result, err := svc.Login(tc.email, tc.password)
			if !errors.Is(err, ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
			if result != nil {
				t.Fatalf("expected no token on failure, got %+v", result)
			}
		})
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{lookupErr: errors.New("connection refused")}
	svc, _ := newTestService(t, repo)

	_, err := svc.Login("admin@x.com", "correct")
	if err == nil || errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("store failures must not masquerade as bad credentials, got %v", err)
	}
}

func TestRegisterStudent(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{}
	svc, _ := newTestService(t, repo)

	user, err := svc.RegisterStudent(RegisterInput{
		Email:    " Student@X.com ",
		Password: "hunter22",
		Phone:    "+15550199",
	})
	if err != nil {
		t.Fatalf("RegisterStudent error: %v", err)
	}

	if user.Email != "student@x.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Role != models.RoleStudent {
		t.Fatalf("role mismatch: %q", user.Role)
	}
	if user.PasswordHash == "hunter22" || user.PasswordHash == "" {
		t.Fatalf("plaintext password must not be stored")
	}
	if !crypto.VerifyPassword("hunter22", user.PasswordHash, user.Salt) {
		t.Fatalf("stored hash does not verify against original password")
	}
	if len(repo.created) != 1 {
		t.Fatalf("expected exactly one CreateUser call, got %d", len(repo.created))
	}
}

func TestRegisterStudent_DuplicateEmail(t *testing.T) {
	t.Parallel()

	repo := &fakeUserRepo{createErr: repository.ErrDuplicateEmail}
	svc, _ := newTestService(t, repo)

	_, err := svc.RegisterStudent(RegisterInput{Email: "dup@x.com", Password: "pw"})
	if !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
}
