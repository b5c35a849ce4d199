package identity

import (
	"context"
	"errors"
	"testing"

	"github.com/mamadbah2/agrilink/internal/domain/models"
)

type verifierStub struct {
	email string
	err   error
}

func (v *verifierStub) VerifyIDToken(ctx context.Context, token string) (string, error) {
	return v.email, v.err
}

type userRepoStub struct {
	users map[string]*models.User
	err   error
}

func (r *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if r.err != nil {
		return nil, r.err
	}
	user, ok := r.users[email]
	if !ok {
		return nil, models.ErrNotFound
	}
	return user, nil
}

func (r *userRepoStub) Create(ctx context.Context, user *models.User) error {
	r.users[user.Email] = user
	return nil
}

func TestResolveCaller(t *testing.T) {
	users := &userRepoStub{users: map[string]*models.User{
		"staff@agrilink.sn": {ID: 1, Email: "staff@agrilink.sn", Role: models.RoleStaff},
	}}
	svc := NewService(&verifierStub{email: "staff@agrilink.sn"}, users, nil)

	caller, err := svc.ResolveCaller(context.Background(), "token")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if caller.Role != models.RoleStaff {
		t.Fatalf("role %q", caller.Role)
	}
}

func TestResolveCaller_BadToken(t *testing.T) {
	svc := NewService(&verifierStub{err: errors.New("invalid signature")}, &userRepoStub{}, nil)

	_, err := svc.ResolveCaller(context.Background(), "token")
	var dep *models.DependencyError
	if !errors.As(err, &dep) {
		t.Fatalf("want DependencyError, got %v", err)
	}
}

func TestResolveCaller_NoAccount(t *testing.T) {
	users := &userRepoStub{users: map[string]*models.User{}}
	svc := NewService(&verifierStub{email: "ghost@agrilink.sn"}, users, nil)

	_, err := svc.ResolveCaller(context.Background(), "token")
	if !errors.Is(err, ErrUnknownAccount) {
		t.Fatalf("want ErrUnknownAccount, got %v", err)
	}
}

func TestResolveCaller_StorageFailure(t *testing.T) {
	users := &userRepoStub{err: &models.StorageError{Op: "get user", Err: errors.New("down")}}
	svc := NewService(&verifierStub{email: "staff@agrilink.sn"}, users, nil)

	_, err := svc.ResolveCaller(context.Background(), "token")
	if errors.Is(err, ErrUnknownAccount) {
		t.Fatal("storage failures must not masquerade as unknown accounts")
	}
	var storage *models.StorageError
	if !errors.As(err, &storage) {
		t.Fatalf("want StorageError, got %v", err)
	}
}
