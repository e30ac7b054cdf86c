package service

import (
	"context"
	"testing"
	"time"

	"quiz-hub/internal/config"
	"quiz-hub/internal/domain"
	"quiz-hub/internal/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAuthService_RequiresSecret(t *testing.T) {
	f := newFixture(t)
	_, err := NewAuthService(f.store, f.store, config.JWTConfig{SecretKey: "short"})
	assert.Error(t, err)
}

func TestLoginIssuesValidToken(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	token, user, err := f.auth.Login(ctx, rootEmail, rootPassword)
	require.NoError(t, err)
	assert.Equal(t, f.root.UserID, user.ID)

	claims, err := f.auth.ValidateJWT(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, string(domain.RoleProductAdmin), claims.Role)

	actor, err := f.auth.CurrentActor(ctx, claims)
	require.NoError(t, err)
	assert.True(t, actor.IsProductAdmin())
	assert.Equal(t, "", ScopeFor(actor))

	session, err := f.auth.SessionUser(ctx)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, user.ID, session.ID)

	require.NoError(t, f.auth.Logout(ctx))
	session, err = f.auth.SessionUser(ctx)
	require.NoError(t, err)
	assert.Nil(t, session)
}

func TestLoginFailuresLookAlike(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, _, unknown := f.auth.Login(ctx, "nobody@quizhub.test", rootPassword)
	_, _, wrong := f.auth.Login(ctx, rootEmail, "wrong")
	require.Error(t, unknown)
	require.Error(t, wrong)
	assert.Equal(t, unknown.Error(), wrong.Error())
	assert.ErrorIs(t, unknown, domain.ErrUnauthorized)
}

func TestValidateJWTRejectsBadTokens(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	_, err := f.auth.ValidateJWT(ctx, "not-a-token")
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.AuthClaims{
		UserID:    f.root.UserID,
		TokenType: "access",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
		},
	})
	signed, err := expired.SignedString([]byte("0123456789abcdef0123456789abcdef"))
	require.NoError(t, err)
	_, err = f.auth.ValidateJWT(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)

	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, dto.AuthClaims{UserID: f.root.UserID, TokenType: "access"})
	signed, err = foreign.SignedString([]byte("another-secret-entirely-32-bytes"))
	require.NoError(t, err)
	_, err = f.auth.ValidateJWT(ctx, signed)
	assert.ErrorIs(t, err, ErrInvalidJWTToken)
}

func TestCurrentActorRejectsSuspendedUsers(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	_, admin := f.approvedTenant(t, "A", "admin@a.test")
	member := f.member(t, admin, "m@a.test")

	user, err := f.store.GetUserByID(ctx, member.UserID)
	require.NoError(t, err)
	token, err := f.auth.CreateJWT(ctx, user)
	require.NoError(t, err)
	claims, err := f.auth.ValidateJWT(ctx, token)
	require.NoError(t, err)

	_, err = f.users.SetUserStatus(ctx, admin, member.UserID, domain.UserSuspended)
	require.NoError(t, err)

	_, err = f.auth.CurrentActor(ctx, claims)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
