package token

import (
	"errors"
	"time"

	"github.com/beka-birhanu/sheefra/service/i"
	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

const puzzleIDClaim = "puzzleID"

var (
	ErrInvalidToken  = errors.New("invalid token")
	ErrUnknownIssuer = errors.New("token issued elsewhere")
)

// JwtService handles JWT operations.
// Implements i.Tokenizer.
type JwtService struct {
	secretKey string
	issuer    string
}

// NewJwtService creates a new JWT Service with the provided configuration.
func NewJwtService(secretKey, issuer string) i.Tokenizer {
	return &JwtService{
		secretKey: secretKey,
		issuer:    issuer,
	}
}

// Issue creates a JWT granting the solution of puzzleID.
func (s *JwtService) Issue(puzzleID uuid.UUID, expTime time.Duration) (string, error) {
	jwtClaims := jwt.MapClaims{
		puzzleIDClaim: puzzleID.String(),
		"iss":         s.issuer,
		"exp":         time.Now().UTC().Add(expTime).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwtClaims)
	return token.SignedString([]byte(s.secretKey))
}

// Verify parses and validates a JWT, returning the puzzle it grants.
func (s *JwtService) Verify(tokenString string) (uuid.UUID, error) {
	token, err := jwt.Parse(tokenString, s.getSigningKey)
	if err != nil {
		return uuid.Nil, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return uuid.Nil, ErrInvalidToken
	}

	if !claims.VerifyIssuer(s.issuer, true) {
		return uuid.Nil, ErrUnknownIssuer
	}

	raw, ok := claims[puzzleIDClaim].(string)
	if !ok {
		return uuid.Nil, ErrInvalidToken
	}
	return uuid.Parse(raw)
}

// getSigningKey returns the signing key for token validation.
func (s *JwtService) getSigningKey(token *jwt.Token) (interface{}, error) {
	if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
		return nil, errors.New("unexpected signing method")
	}
	return []byte(s.secretKey), nil
}
