package jwt

import (
	"errors"
	"os"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("missing authorization token")
)

const issuer = "go-sales-territory"

// Claims represents the JWT claims structure. Role and wilaya are informative
// only: authorization always reloads the representative from the database.
type Claims struct {
	RepresentativeID uuid.UUID `json:"representative_id"`
	Username         string    `json:"username"`
	RoleCode         string    `json:"role_code"`
	Wilaya           string    `json:"wilaya"`
	Privileges       []string  `json:"privileges"`
	TokenVersion     string    `json:"token_version"`
	jwt.RegisteredClaims
}

// GetSecretKey returns the JWT secret from environment or a default
func GetSecretKey() []byte {
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "change-me-in-production"
	}
	return []byte(secret)
}

// GenerateToken creates a new JWT token for a representative, valid for 24 hours
func GenerateToken(id uuid.UUID, username, roleCode, wilaya string, privileges []string, tokenVersion string) (string, error) {
	now := time.Now()
	claims := &Claims{
		RepresentativeID: id,
		Username:         username,
		RoleCode:         roleCode,
		Wilaya:           wilaya,
		Privileges:       privileges,
		TokenVersion:     tokenVersion,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   id.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(24 * time.Hour)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(GetSecretKey())
}

// ValidateToken parses and validates a JWT token
func ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, ErrMissingToken
	}

	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return GetSecretKey(), nil
	}, jwt.WithIssuer(issuer))

	if err != nil {
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
