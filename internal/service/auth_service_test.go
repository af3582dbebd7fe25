package service

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/helpdesk-labs/ticketera/internal/auth"
	"github.com/helpdesk-labs/ticketera/internal/config"
	"github.com/helpdesk-labs/ticketera/internal/domain"
)

type fakeUserRepo struct {
	nextID int64
	users  map[string]domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]domain.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	f.nextID++
	user.ID = f.nextID
	f.users[user.Username] = *user
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			u := user
			return &u, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &user, nil
}

func testAuthService() (*AuthService, *fakeUserRepo) {
	repo := newFakeUserRepo()
	return NewAuthService(config.AuthConfig{BcryptCost: bcrypt.MinCost}, repo), repo
}

func TestAuthServiceCreateAdmin(t *testing.T) {
	svc, _ := testAuthService()
	ctx := context.Background()

	user, err := svc.CreateAdmin(ctx, "admin", "secreta")
	require.NoError(t, err)
	require.True(t, user.IsAdmin)
	require.Equal(t, "admin", user.Username)
	require.NotEqual(t, "secreta", user.PasswordHash)
	require.NoError(t, auth.ComparePassword(user.PasswordHash, "secreta"))
}

func TestAuthServiceCreateAdminRefusesDuplicate(t *testing.T) {
	svc, _ := testAuthService()
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "admin", "secreta")
	require.NoError(t, err)

	_, err = svc.CreateAdmin(ctx, "admin", "otra")
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthServiceLogin(t *testing.T) {
	svc, _ := testAuthService()
	ctx := context.Background()

	created, err := svc.CreateAdmin(ctx, "admin", "secreta")
	require.NoError(t, err)

	user, err := svc.Login(ctx, "admin", "secreta")
	require.NoError(t, err)
	require.Equal(t, created.ID, user.ID)
}

func TestAuthServiceLoginFailuresAreGeneric(t *testing.T) {
	svc, _ := testAuthService()
	ctx := context.Background()

	_, err := svc.CreateAdmin(ctx, "admin", "secreta")
	require.NoError(t, err)

	// wrong password and unknown user yield the same error so the flash
	// cannot reveal which field was wrong
	_, wrongPass := svc.Login(ctx, "admin", "incorrecta")
	require.ErrorIs(t, wrongPass, ErrInvalidCredentials)

	_, unknownUser := svc.Login(ctx, "nadie", "secreta")
	require.ErrorIs(t, unknownUser, ErrInvalidCredentials)
}
