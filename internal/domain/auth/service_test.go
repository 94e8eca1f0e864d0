package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"posledger/internal/core/apperror"
	appctx "posledger/internal/core/context"
	"posledger/internal/domain/auth"
	"posledger/internal/infrastructure/storage/memory"
)

func newService(t *testing.T) (*auth.Service, auth.Repository) {
	t.Helper()
	repo := memory.NewStore().Users()
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))
	svc := auth.NewService(repo, jwtService, auth.DefaultServiceConfig())
	require.NoError(t, svc.Bootstrap(context.Background()))
	return svc, repo
}

func adminCtx(t *testing.T, repo auth.Repository) context.Context {
	t.Helper()
	admin, err := repo.GetByUsername(context.Background(), "admin")
	require.NoError(t, err)
	return appctx.WithUser(context.Background(), admin.Context())
}

func TestBootstrap_CreatesDefaultAdminOnce(t *testing.T) {
	ctx := context.Background()
	svc, repo := newService(t)

	admin, err := repo.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.True(t, admin.IsAdmin)
	assert.True(t, admin.Permissions.Has("closingStock"))

	// A second bootstrap against a populated store does nothing.
	require.NoError(t, svc.Bootstrap(ctx))
	users, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	t.Run("valid credentials", func(t *testing.T) {
		result, err := svc.Login(ctx, auth.Credentials{Username: "admin", Password: "admin123"})
		require.NoError(t, err)
		assert.NotEmpty(t, result.Token)
		assert.Equal(t, "admin", result.User.Username)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.Credentials{Username: "admin", Password: "nope"})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})

	t.Run("unknown user looks like wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, auth.Credentials{Username: "ghost", Password: "x"})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig("test-secret"))

	result, err := svc.Login(ctx, auth.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	user, err := jwtService.ValidateToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin", user.Username)
	assert.True(t, user.IsAdmin)
	assert.True(t, user.Permissions.Has("sale"))
}

func TestValidateToken_RejectsWrongSecret(t *testing.T) {
	ctx := context.Background()
	svc, _ := newService(t)

	result, err := svc.Login(ctx, auth.Credentials{Username: "admin", Password: "admin123"})
	require.NoError(t, err)

	other := auth.NewJWTService(auth.DefaultJWTConfig("different-secret"))
	_, err = other.ValidateToken(result.Token)
	assert.Error(t, err)
}

func TestCreateUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := adminCtx(t, repo)

	t.Run("admin creates user with flags", func(t *testing.T) {
		user, err := svc.CreateUser(ctx, auth.CreateUserRequest{
			Username: "cashier",
			Password: "secret1",
			FullName: "Till Operator",
			Permissions: appctx.Permissions{
				Sale:       true,
				SaleReturn: true,
			},
		})
		require.NoError(t, err)
		assert.True(t, user.Permissions.Has("sale"))
		assert.False(t, user.Permissions.Has("users"))
		assert.False(t, user.IsAdmin)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, auth.CreateUserRequest{Username: "cashier", Password: "secret1"})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeConflict, appErr.Code)
	})

	t.Run("short password", func(t *testing.T) {
		_, err := svc.CreateUser(ctx, auth.CreateUserRequest{Username: "x", Password: "ab"})
		assert.Error(t, err)
	})

	t.Run("non-admin is forbidden", func(t *testing.T) {
		cashier, err := repo.GetByUsername(context.Background(), "cashier")
		require.NoError(t, err)
		cashierCtx := appctx.WithUser(context.Background(), cashier.Context())

		_, err = svc.CreateUser(cashierCtx, auth.CreateUserRequest{Username: "y", Password: "secret1"})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeForbidden, appErr.Code)
	})

	t.Run("anonymous is unauthorized", func(t *testing.T) {
		_, err := svc.CreateUser(context.Background(), auth.CreateUserRequest{Username: "z", Password: "secret1"})
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeUnauthorized, appErr.Code)
	})
}

func TestUpdateUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := adminCtx(t, repo)

	user, err := svc.CreateUser(ctx, auth.CreateUserRequest{Username: "clerk", Password: "secret1"})
	require.NoError(t, err)

	newName := "Stock Clerk"
	perms := appctx.Permissions{Items: true, ClosingStock: true}
	updated, err := svc.UpdateUser(ctx, user.ID, auth.UpdateUserRequest{
		FullName:    &newName,
		Permissions: &perms,
	})
	require.NoError(t, err)
	assert.Equal(t, "Stock Clerk", updated.FullName)
	assert.True(t, updated.Permissions.Has("closingStock"))
	assert.False(t, updated.Permissions.Has("sale"))

	t.Run("password change invalidates old one", func(t *testing.T) {
		newPassword := "changed1"
		_, err := svc.UpdateUser(ctx, user.ID, auth.UpdateUserRequest{Password: &newPassword})
		require.NoError(t, err)

		_, err = svc.Login(context.Background(), auth.Credentials{Username: "clerk", Password: "secret1"})
		assert.Error(t, err)
		_, err = svc.Login(context.Background(), auth.Credentials{Username: "clerk", Password: "changed1"})
		assert.NoError(t, err)
	})
}

func TestDeleteUser(t *testing.T) {
	svc, repo := newService(t)
	ctx := adminCtx(t, repo)

	user, err := svc.CreateUser(ctx, auth.CreateUserRequest{Username: "temp", Password: "secret1"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteUser(ctx, user.ID))
	_, err = repo.Get(context.Background(), user.ID)
	assert.True(t, apperror.IsNotFound(err))

	t.Run("self deletion rejected", func(t *testing.T) {
		admin, err := repo.GetByUsername(context.Background(), "admin")
		require.NoError(t, err)

		err = svc.DeleteUser(ctx, admin.ID)
		require.Error(t, err)
		appErr, ok := apperror.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, apperror.CodeBusinessRule, appErr.Code)
	})
}
