package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/clinicboard/clinicboard/configs"
	"github.com/clinicboard/clinicboard/internal/core/domain/auth"
	"github.com/clinicboard/clinicboard/internal/core/domain/doctor"
	"github.com/clinicboard/clinicboard/internal/core/ports"
)

// AuthService issues and validates doctor session tokens.
type AuthService struct {
	doctors   ports.DoctorRepository
	jwtConfig *configs.JWTConfig
	logger    *logrus.Logger
}

func NewAuthService(doctors ports.DoctorRepository, jwtConfig *configs.JWTConfig, logger *logrus.Logger) ports.AuthService {
	return &AuthService{
		doctors:   doctors,
		jwtConfig: jwtConfig,
		logger:    logger,
	}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *doctor.Doctor, error) {
	d, err := s.doctors.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ports.ErrDoctorNotFound) {
			return "", nil, ports.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(d.PasswordHash), []byte(password)); err != nil {
		if s.logger != nil {
			s.logger.WithFields(logrus.Fields{"email": email}).Warn("login failed, password mismatch")
		}
		return "", nil, ports.ErrInvalidCredentials
	}

	now := time.Now()
	claims := &auth.Claims{
		DoctorID: d.ID,
		Email:    d.Email,
		Name:     d.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   d.ID.String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtConfig.AccessTokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(s.jwtConfig.Secret))
	if err != nil {
		return "", nil, fmt.Errorf("failed to sign token: %w", err)
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{"doctor_id": d.ID}).Info("doctor logged in")
	}
	return token, d, nil
}

func (s *AuthService) ValidateToken(token string) (*auth.Claims, error) {
	claims := &auth.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(s.jwtConfig.Secret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !parsed.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}
