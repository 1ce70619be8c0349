package auth

import (
	"time"

	"github.com/Abraxas-365/hireflow/pkg/errx"
	"github.com/Abraxas-365/hireflow/pkg/kernel"
	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims is what an access token says about its bearer.
type TokenClaims struct {
	UserID    kernel.UserID
	UserType  string
	CompanyID kernel.CompanyID
	Scopes    []string
	ExpiresAt time.Time
}

type TokenService interface {
	GenerateAccessToken(userID kernel.UserID, userType string, companyID kernel.CompanyID) (string, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	AccessTokenTTL() time.Duration
}

type jwtClaims struct {
	UserType  string   `json:"user_type"`
	CompanyID string   `json:"company_id,omitempty"`
	Scopes    []string `json:"scopes"`
	jwt.RegisteredClaims
}

// JWTService issues HS256 access tokens.
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: issuer,
		now:    time.Now,
	}
}

func (s *JWTService) AccessTokenTTL() time.Duration { return s.ttl }

// GenerateAccessToken signs a token carrying the user's role scopes.
func (s *JWTService) GenerateAccessToken(userID kernel.UserID, userType string, companyID kernel.CompanyID) (string, error) {
	now := s.now()
	claims := jwtClaims{
		UserType:  userType,
		CompanyID: companyID.String(),
		Scopes:    ScopesFor(userType),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", errx.Wrap(err, "failed to sign access token", errx.TypeInternal)
	}
	return token, nil
}

// ValidateAccessToken parses and verifies a token.
func (s *JWTService) ValidateAccessToken(tokenString string) (*TokenClaims, error) {
	var claims jwtClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.issuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}

	out := &TokenClaims{
		UserID:    kernel.UserID(claims.Subject),
		UserType:  claims.UserType,
		CompanyID: kernel.CompanyID(claims.CompanyID),
		Scopes:    claims.Scopes,
	}
	if claims.ExpiresAt != nil {
		out.ExpiresAt = claims.ExpiresAt.Time
	}
	return out, nil
}
