package identities_test

import (
	"context"
	"testing"
	"time"

	"github.com/Aidin1998/apiexercises/internal/auth"
	"github.com/Aidin1998/apiexercises/internal/config"
	"github.com/Aidin1998/apiexercises/internal/database"
	"github.com/Aidin1998/apiexercises/internal/identities"
	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func setupService(t *testing.T) (*identities.Service, *auth.TokenService) {
	t.Helper()
	db, err := database.OpenInMemory(&identities.User{})
	require.NoError(t, err)
	t.Cleanup(func() { _ = database.Close(db) })

	tokens, err := auth.NewTokenService(config.JWTConfig{Secret: "test-secret", Expiry: 15 * time.Minute})
	require.NoError(t, err)
	return identities.NewService(zap.NewNop(), db, tokens), tokens
}

func intPtr(v int) *int { return &v }

func strPtr(v string) *string { return &v }

func register(t *testing.T, svc *identities.Service, username string) *identities.User {
	t.Helper()
	user, err := svc.Register(context.Background(), &identities.RegisterRequest{
		Username: strPtr(username),
		Password: strPtr("password123"),
		Name:     strPtr("Test User"),
		Age:      intPtr(30),
		Gender:   strPtr("female"),
		Bio:      strPtr("hello"),
	})
	require.NoError(t, err)
	return user
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()

	user := register(t, svc, "testuser")
	assert.Equal(t, "testuser", user.Username)
	assert.NotEqual(t, "password123", user.Password)

	loggedIn, err := svc.Login(ctx, &identities.LoginRequest{Username: strPtr("testuser"), Password: strPtr("password123")})
	require.NoError(t, err)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, err = svc.Login(ctx, &identities.LoginRequest{Username: strPtr("testuser"), Password: strPtr("nope")})
	assert.ErrorIs(t, err, identities.ErrIncorrectPassword)

	_, err = svc.Login(ctx, &identities.LoginRequest{Username: strPtr("ghost"), Password: strPtr("password123")})
	assert.ErrorIs(t, err, identities.ErrUserNotFound)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, _ := setupService(t)
	register(t, svc, "testuser")

	_, err := svc.Register(context.Background(), &identities.RegisterRequest{
		Username: strPtr("testuser"), Password: strPtr("x"), Name: strPtr("Other"), Age: intPtr(1),
		Gender: strPtr(""), Bio: strPtr(""),
	})
	require.Error(t, err)
	assert.Equal(t, 400, errors.HTTPStatus(err))
	assert.Equal(t, "User already exists!", errors.KindOf(err).Message)
}

func TestUsersEmpty(t *testing.T) {
	svc, _ := setupService(t)
	_, err := svc.Users(context.Background())
	assert.ErrorIs(t, err, identities.ErrNoUsers)

	register(t, svc, "a")
	register(t, svc, "b")
	users, err := svc.Users(context.Background())
	require.NoError(t, err)
	assert.Len(t, users, 2)
}

func TestIssueTokenAndAccount(t *testing.T) {
	svc, tokens := setupService(t)
	ctx := context.Background()
	user := register(t, svc, "testuser")

	_, err := svc.IssueToken(ctx, "testuser", "wrong")
	assert.ErrorIs(t, err, identities.ErrIncorrectCredential)
	_, err = svc.IssueToken(ctx, "ghost", "password123")
	assert.ErrorIs(t, err, identities.ErrIncorrectCredential)

	token, err := svc.IssueToken(ctx, "testuser", "password123")
	require.NoError(t, err)
	assert.Equal(t, "bearer", token.TokenType)

	claims, err := tokens.ValidateToken(token.AccessToken)
	require.NoError(t, err)
	resolved, err := svc.Account(ctx, claims.Subject)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = svc.Account(ctx, "ghost")
	assert.ErrorIs(t, err, auth.ErrInvalidToken)
}

func TestUpdateProfile(t *testing.T) {
	svc, _ := setupService(t)
	register(t, svc, "testuser")

	updated, err := svc.UpdateProfile(context.Background(), "testuser", &identities.ProfileIn{
		Name: strPtr("Renamed"), Age: intPtr(31), Gender: strPtr("male"), Bio: strPtr("new bio"),
	})
	require.NoError(t, err)
	assert.Equal(t, identities.Profile{
		Name: "Renamed", Age: 31, Gender: "male", Bio: "new bio", Username: "testuser",
	}, updated.Profile())
}

func TestRequireAdmin(t *testing.T) {
	svc, _ := setupService(t)
	assert.NoError(t, svc.RequireAdmin(&identities.User{Username: "admin"}))
	assert.ErrorIs(t, svc.RequireAdmin(&identities.User{Username: "bob"}), identities.ErrNotAdmin)
}
