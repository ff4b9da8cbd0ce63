package service

import (
	"errors"
	"realitycheck/internal/model"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid or expired token")

// VisitorService issues anonymous visitor tokens. A token only gives the
// daily quota a stable key; it grants nothing.
type VisitorService struct {
	jwtSecret  []byte
	ttl        time.Duration
	dailyLimit int
	now        func() time.Time
}

// NewVisitorService creates a new visitor service
func NewVisitorService(secret string, ttl time.Duration, dailyLimit int) *VisitorService {
	return &VisitorService{
		jwtSecret:  []byte(secret),
		ttl:        ttl,
		dailyLimit: dailyLimit,
		now:        time.Now,
	}
}

// Issue mints a fresh visitor id inside a signed token
func (s *VisitorService) Issue() (*model.VisitorResponse, error) {
	visitorID := "v_" + uuid.New().String()
	now := s.now()

	claims := &model.VisitorClaims{
		VisitorID: visitorID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, err
	}

	return &model.VisitorResponse{
		Token:      tokenString,
		VisitorID:  visitorID,
		DailyLimit: s.dailyLimit,
	}, nil
}

// Validate checks a visitor token and returns its claims
func (s *VisitorService) Validate(tokenString string) (*model.VisitorClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &model.VisitorClaims{}, func(token *jwt.Token) (interface{}, error) {
		return s.jwtSecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*model.VisitorClaims)
	if !ok || !token.Valid || claims.VisitorID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
