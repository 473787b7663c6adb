package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/talentwire/scout/pkg/errx"
	"github.com/talentwire/scout/pkg/kernel"
)

// TokenClaims is the validated content of an access token.
type TokenClaims struct {
	RecruiterID kernel.RecruiterID
	Email       kernel.Email
	Scopes      []string
	ExpiresAt   time.Time
}

// TokenService issues and validates access tokens.
type TokenService interface {
	// GenerateAccessToken creates a signed token for a recruiter
	GenerateAccessToken(recruiterID kernel.RecruiterID, email kernel.Email, scopes []string) (string, time.Time, error)

	// ValidateAccessToken parses and verifies a token string
	ValidateAccessToken(tokenString string) (*TokenClaims, error)
}

type jwtClaims struct {
	Email  string   `json:"email"`
	Scopes []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService implements TokenService with HS256 signed JWTs.
type JWTService struct {
	secretKey []byte
	tokenTTL  time.Duration
	issuer    string
}

// NewJWTService creates a JWT-based token service.
func NewJWTService(secretKey string, tokenTTL time.Duration, issuer string) *JWTService {
	return &JWTService{
		secretKey: []byte(secretKey),
		tokenTTL:  tokenTTL,
		issuer:    issuer,
	}
}

// GenerateAccessToken creates a signed token for a recruiter
func (s *JWTService) GenerateAccessToken(recruiterID kernel.RecruiterID, email kernel.Email, scopes []string) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.tokenTTL)

	claims := jwtClaims{
		Email:  email.String(),
		Scopes: scopes,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   recruiterID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}

	return signed, expiresAt, nil
}

// ValidateAccessToken parses and verifies a token string
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	token, err := jwt.ParseWithClaims(
		tokenString,
		&claims,
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secretKey, nil
		},
		jwt.WithIssuer(s.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken()
	}

	var expiresAt time.Time
	if claims.ExpiresAt != nil {
		expiresAt = claims.ExpiresAt.Time
	}

	return &TokenClaims{
		RecruiterID: kernel.NewRecruiterID(claims.Subject),
		Email:       kernel.Email(claims.Email),
		Scopes:      claims.Scopes,
		ExpiresAt:   expiresAt,
	}, nil
}
