package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"github.com/jcmexdev/storefront/internal/auth/domain"
	"github.com/jcmexdev/storefront/internal/pkg/apperr"
)

// ErrInvalidCredentials is returned for an unknown user and for a wrong
// password alike.
var ErrInvalidCredentials = apperr.AuthFailure("auth.VerifyCredentials", "invalid username or password")

type Service struct {
	repo   UserRepo
	cost   int
	dummy  []byte
	tracer trace.Tracer
}

// NewService hashes with the given bcrypt cost. Unknown usernames are
// checked against a throwaway hash so both failure paths take as long.
func NewService(repo UserRepo, cost int) (*Service, error) {
	dummy, err := bcrypt.GenerateFromPassword([]byte("storefront"), cost)
	if err != nil {
		return nil, fmt.Errorf("auth: bcrypt cost %d: %w", cost, err)
	}
	return &Service{
		repo:   repo,
		cost:   cost,
		dummy:  dummy,
		tracer: otel.Tracer("github.com/jcmexdev/storefront/internal/auth"),
	}, nil
}

type SignupRequest struct {
	Username     string
	Password     string
	FirstName    string
	LastName     string
	MobileNumber string
}

func (s *Service) CreateAccount(ctx context.Context, req SignupRequest) (domain.Profile, error) {
	const op = "auth.CreateAccount"
	ctx, span := s.tracer.Start(ctx, op, trace.WithAttributes(attribute.String("username", req.Username)))
	defer span.End()

	username := strings.TrimSpace(req.Username)
	if username == "" || req.Password == "" {
		return domain.Profile{}, apperr.Validation(op, "username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return domain.Profile{}, apperr.Validation(op, "password is longer than 72 bytes")
	}
	if err != nil {
		return domain.Profile{}, fmt.Errorf("auth: hash password: %w", err)
	}

	user := domain.User{
		Username:     username,
		PasswordHash: hash,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		MobileNumber: req.MobileNumber,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		span.RecordError(err)
		return domain.Profile{}, err
	}

	slog.InfoContext(ctx, "account created", "username", username)
	return user.Profile(), nil
}

func (s *Service) VerifyCredentials(ctx context.Context, username, password string) (domain.Profile, error) {
	ctx, span := s.tracer.Start(ctx, "auth.VerifyCredentials", trace.WithAttributes(attribute.String("username", username)))
	defer span.End()

	user, err := s.repo.FindByUsername(ctx, strings.TrimSpace(username))
	if apperr.KindOf(err) == apperr.KindNotFound {
		_ = bcrypt.CompareHashAndPassword(s.dummy, []byte(password))
		slog.InfoContext(ctx, "login rejected", "username", username, "reason", "unknown user")
		return domain.Profile{}, ErrInvalidCredentials
	}
	if err != nil {
		span.RecordError(err)
		return domain.Profile{}, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		slog.InfoContext(ctx, "login rejected", "username", username, "reason", "password mismatch")
		return domain.Profile{}, ErrInvalidCredentials
	}
	return user.Profile(), nil
}
