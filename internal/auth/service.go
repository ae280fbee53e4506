package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/menu-board/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrAuthDisabled = errors.New("dev auth is disabled")
)

const defaultDevPerson = "dev-user"

// Service: сервис авторизации
type Service struct {
	config *config.Config
	now    func() time.Time
}

func NewService(cfg *config.Config) *Service {
	return &Service{config: cfg, now: time.Now}
}

// SignInDev выдаёт HS256 токен для person_id (по умолчанию dev-user)
func (s *Service) SignInDev(personID string) (*DevAuthResponse, error) {
	if s.config.AuthMode != config.AuthModeDev {
		return nil, ErrAuthDisabled
	}

	personID = strings.TrimSpace(personID)
	if personID == "" {
		personID = defaultDevPerson
	}

	ttl := time.Duration(s.config.JWTTTLMinutes) * time.Minute
	token, err := s.issue(personID, ttl)
	if err != nil {
		return nil, fmt.Errorf("failed to generate dev JWT: %w", err)
	}

	return &DevAuthResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(ttl.Seconds()),
		PersonID:    personID,
	}, nil
}

func (s *Service) issue(subject string, ttl time.Duration) (string, error) {
	now := s.now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		Issuer:    s.config.JWTIssuer,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.config.JWTSecret))
}

// VerifyJWT returns the subject of a valid token issued by this service.
func (s *Service) VerifyJWT(tokenString string) (string, error) {
	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(s.config.JWTSecret), nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(s.config.JWTIssuer),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
