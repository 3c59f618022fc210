package auth

import (
	"errors"
	"fmt"
	"strings"

	"github.com/golang-jwt/jwt/v5"

	"trackr/internal/core/domain"
	"trackr/internal/core/ports"
)

const accessTokenType = "access"

var (
	ErrSecretNotConfigured = errors.New("jwt secret not configured")
	ErrInvalidToken        = errors.New("invalid token")
)

type accessClaims struct {
	jwt.RegisteredClaims
	UserID    string `json:"user_id"`
	Role      string `json:"role,omitempty"`
	Verify    int    `json:"verify"`
	TokenType string `json:"token_type"`
}

// JWTResolver validates HS256 access tokens and extracts the caller.
type JWTResolver struct {
	secret []byte
	parser *jwt.Parser
}

var _ ports.PrincipalResolver = (*JWTResolver)(nil)

func NewJWTResolver(secret string) *JWTResolver {
	return &JWTResolver{
		secret: []byte(secret),
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		),
	}
}

func (r *JWTResolver) Resolve(token string) (domain.Principal, error) {
	if len(r.secret) == 0 {
		return domain.Principal{}, ErrSecretNotConfigured
	}
	claims := &accessClaims{}
	parsed, err := r.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return r.secret, nil
	})
	if err != nil {
		return domain.Principal{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !parsed.Valid {
		return domain.Principal{}, ErrInvalidToken
	}
	if claims.TokenType != accessTokenType {
		return domain.Principal{}, fmt.Errorf("%w: unexpected token type %q", ErrInvalidToken, claims.TokenType)
	}
	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return domain.Principal{}, fmt.Errorf("%w: user_id claim required", ErrInvalidToken)
	}
	return domain.Principal{
		UserID: userID,
		Role:   claims.Role,
		Verify: domain.VerificationStatus(claims.Verify),
	}, nil
}

// BearerToken extracts the credential of an "Authorization: Bearer <token>" header.
func BearerToken(authz string) (string, bool) {
	parts := strings.Fields(authz)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	return parts[1], true
}
