package identity

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/mamadbah2/agrilink/internal/domain/models"
	repo "github.com/mamadbah2/agrilink/internal/repository/mysql"
	"github.com/mamadbah2/agrilink/pkg/clients/googletoken"
)

// ErrUnknownAccount is returned when a token verifies but no user record
// exists for its email.
var ErrUnknownAccount = errors.New("no account for verified email")

// Resolver turns a bearer credential into an internal user with a role.
type Resolver interface {
	ResolveCaller(ctx context.Context, credential string) (*models.User, error)
}

// Service verifies tokens against the identity provider and resolves the
// verified email to a user row.
type Service struct {
	verifier googletoken.Verifier
	users    repo.UserRepository
	logger   *zap.Logger
}

// NewService wires an identity resolver.
func NewService(verifier googletoken.Verifier, users repo.UserRepository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{verifier: verifier, users: users, logger: logger}
}

// ResolveCaller verifies the credential and looks up the account behind it.
func (s *Service) ResolveCaller(ctx context.Context, credential string) (*models.User, error) {
	email, err := s.verifier.VerifyIDToken(ctx, credential)
	if err != nil {
		return nil, &models.DependencyError{Dependency: "identity verifier", Err: err}
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, models.ErrNotFound) {
			return nil, fmt.Errorf("%s: %w", email, ErrUnknownAccount)
		}
		return nil, err
	}

	s.logger.Debug("caller resolved",
		zap.String("email", email),
		zap.String("role", string(user.Role)))
	return user, nil
}
