package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"geotrack/internal/model"
)

// DefaultTokenTTL is the token lifetime used when none is configured.
const DefaultTokenTTL = 90 * time.Minute

var (
	// ErrInvalidToken is returned for malformed, expired or badly signed tokens.
	ErrInvalidToken = errors.New("could not validate credentials")
	// ErrMissingClaims is returned when a token lacks the identity claim set.
	ErrMissingClaims = errors.New("invalid token payload")
)

// Claims carries the identity embedded in a bearer token.
type Claims struct {
	UserID string     `json:"user_id"`
	Email  string     `json:"email"`
	Role   model.Role `json:"role"`
	jwt.RegisteredClaims
}

// IsAdmin reports whether the token grants admin privileges.
func (c *Claims) IsAdmin() bool { return c.Role == model.RoleAdmin }

// JWTService issues and validates HMAC-signed bearer tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTService creates a JWT service with the given secret and token lifetime.
func NewJWTService(secret string, ttl time.Duration) *JWTService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTService{secret: []byte(secret), ttl: ttl}
}

// Generate signs a token embedding the user's id, email and role.
func (s *JWTService) Generate(userID, email string, role model.Role) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Validate parses a token string and returns its claims.
//
// Tokens signed with an unexpected method, expired tokens and tokens that
// carry only a partial identity (no user_id, email or role) are all
// rejected. Every token issued by Generate carries the full claim set, so
// there is no degenerate role-only form to honor on the way back in.
func (s *JWTService) Validate(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == "" || claims.Email == "" || claims.Role == "" {
		return nil, ErrMissingClaims
	}

	return claims, nil
}
