package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/sundayezeilo/linkstore/internal/errx"
	"github.com/sundayezeilo/linkstore/internal/idgen"
)

// MinSecretLength is the shortest HMAC secret accepted by NewTokenManager.
const MinSecretLength = 32

// Claims are the JWT claims carried by an access token.
// The subject is the decimal principal id.
type Claims struct {
	Admin bool `json:"adm,omitempty"`
	jwt.RegisteredClaims
}

// TokenManager issues and verifies HS256 access tokens.
type TokenManager struct {
	secret []byte
	issuer string
	ids    idgen.Generator
	now    func() time.Time
}

// TokenConfig holds configuration for the token manager.
type TokenConfig struct {
	Secret      string
	Issuer      string
	IDGenerator idgen.Generator // token ids (jti); defaults to UUID v7
}

// NewTokenManager creates a TokenManager.
func NewTokenManager(cfg TokenConfig) (*TokenManager, error) {
	if len(cfg.Secret) < MinSecretLength {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", MinSecretLength)
	}
	ids := cfg.IDGenerator
	if ids == nil {
		ids = idgen.NewV7()
	}
	return &TokenManager{
		secret: []byte(cfg.Secret),
		issuer: cfg.Issuer,
		ids:    ids,
		now:    time.Now,
	}, nil
}

// Issue signs a token for p that expires after ttl.
func (m *TokenManager) Issue(p Principal, ttl time.Duration) (string, error) {
	const op = "auth.token.Issue"

	if p.ID <= 0 {
		return "", errx.E(op, errx.Invalid, errors.New("principal id must be positive"))
	}
	if ttl <= 0 {
		return "", errx.E(op, errx.Invalid, errors.New("ttl must be positive"))
	}

	jti, err := m.ids.Generate()
	if err != nil {
		return "", errx.E(op, errx.Internal, err)
	}

	now := m.now()
	claims := Claims{
		Admin: p.IsAdmin,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(p.ID, 10),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			ID:        jti.String(),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errx.E(op, errx.Internal, err)
	}
	return signed, nil
}

// Verify parses token and returns the principal it names.
func (m *TokenManager) Verify(token string) (Principal, error) {
	const op = "auth.token.Verify"

	if token == "" {
		return Principal{}, errx.E(op, errx.Unauthorized, errors.New("token is empty"))
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	}
	if m.issuer != "" {
		opts = append(opts, jwt.WithIssuer(m.issuer))
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, opts...)
	if err != nil {
		return Principal{}, errx.E(op, errx.Unauthorized, err)
	}
	if !parsed.Valid {
		return Principal{}, errx.E(op, errx.Unauthorized, errors.New("token is invalid"))
	}

	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id <= 0 {
		return Principal{}, errx.E(op, errx.Unauthorized, fmt.Errorf("invalid subject %q", claims.Subject))
	}

	return Principal{ID: id, IsAdmin: claims.Admin}, nil
}
