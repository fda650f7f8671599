package auth

import (
	"errors"
	"time"

	"github.com/PhucNguyen-rsc/job-board-application/pkg/kernel"
	jwt "github.com/golang-jwt/jwt/v5"
)

// TokenService issues and validates access tokens carrying a Principal
type TokenService interface {
	Issue(p Principal) (string, time.Time, error)
	Validate(token string) (*Principal, error)
}

// Claims is the JWT payload
type Claims struct {
	Kind        PrincipalKind `json:"kind"`
	CompanyID   string        `json:"company_id,omitempty"`
	CompanyName string        `json:"company_name,omitempty"`
	Email       string        `json:"email"`
	FirstName   string        `json:"first_name,omitempty"`
	jwt.RegisteredClaims
}

// JWTService signs tokens with HS256
type JWTService struct {
	secret []byte
	ttl    time.Duration
	issuer string
}

func NewJWTService(secret string, ttl time.Duration, issuer string) *JWTService {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &JWTService{secret: []byte(secret), ttl: ttl, issuer: issuer}
}

func (s *JWTService) Issue(p Principal) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := &Claims{
		Kind:        p.Kind,
		CompanyID:   p.CompanyID.String(),
		CompanyName: p.CompanyName.String(),
		Email:       p.Email.String(),
		FirstName:   string(p.FirstName),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   p.Email.String(),
			Issuer:    s.issuer,
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (s *JWTService) Validate(token string) (*Principal, error) {
	parsed, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken().WithCause(err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken()
	}

	if claims.Kind != KindCompany && claims.Kind != KindJobSeeker {
		return nil, ErrInvalidToken().WithDetail("kind", claims.Kind)
	}

	return &Principal{
		Kind:        claims.Kind,
		CompanyID:   kernel.CompanyID(claims.CompanyID),
		CompanyName: kernel.Slug(claims.CompanyName),
		Email:       kernel.Email(claims.Email),
		FirstName:   kernel.FirstName(claims.FirstName),
	}, nil
}
