package token

import (
	"errors"
	"time"

	"eduadmin/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrTokenInvalid = errors.New("invalid token")
	ErrTokenExpired = errors.New("token expired")
)

// Issuer mints and verifies stateless HS256 session tokens. Verification
// also accepts tokens signed with any of the previous secrets, so rotating
// the active secret does not cut off sessions issued before the rotation;
// those tokens stay valid until their own expiry.
type Issuer struct {
	secret   []byte
	previous [][]byte
	ttl      time.Duration
}

func NewIssuer(secret []byte, previous [][]byte, ttl time.Duration) *Issuer {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Issuer{secret: secret, previous: previous, ttl: ttl}
}

// Issue creates a signed token carrying the user's identity and role.
func (i *Issuer) Issue(userID, phone string, role models.Role) (string, error) {
	now := time.Now()
	claims := &models.Claims{
		UserID: userID,
		Phone:  phone,
		Role:   string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
}

// Verify parses tokenString and returns its claims. It tries the active
// secret first, then each previous secret in order. An expired token is
// reported as ErrTokenExpired; every other failure collapses to
// ErrTokenInvalid.
func (i *Issuer) Verify(tokenString string) (*models.Claims, error) {
	secrets := append([][]byte{i.secret}, i.previous...)

	for _, secret := range secrets {
		claims := &models.Claims{}
		tok, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return secret, nil
		})
		if err == nil && tok.Valid {
			return claims, nil
		}
		if errors.Is(err, jwt.ErrTokenExpired) {
			// Correctly signed, just stale. No other secret can save it.
			return nil, ErrTokenExpired
		}
	}
	return nil, ErrTokenInvalid
}
