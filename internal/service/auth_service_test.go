package service

import (
	"context"
	"testing"

	"gradebook_backend/internal/model"
	"gradebook_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoginAfterSignup(t *testing.T) {
	env := newTestEnv(t)

	created, err := env.auth.Signup("Ada", "ada@example.com", "hunter22", "hunter22", model.Teacher)
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	user, token, err := env.auth.Login("ada@example.com", "hunter22")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, model.Teacher, user.Role)
	require.NotEmpty(t, token)

	claims, err := util.ParseJWT(token, env.cfg.JWT.Secret)
	require.NoError(t, err)
	assert.Equal(t, created.ID, claims.UserID)
	assert.Equal(t, model.Teacher, claims.Role)
}

// 口令错误与邮箱不存在必须返回同一个错误，不泄露账号是否存在
func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Bob", "bob@example.com", model.Student)

	_, _, err := env.auth.Login("bob@example.com", "wrong-password")
	assert.ErrorIs(t, err, util.ErrUserNotFound)

	_, _, err = env.auth.Login("nobody@example.com", "whatever")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestGetProfile(t *testing.T) {
	env := newTestEnv(t)
	created := env.signup(t, "Dana", "dana@example.com", model.Student)

	user, err := env.auth.GetProfile(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dana", user.Name)
	assert.Equal(t, "dana@example.com", user.Email)

	_, err = env.auth.GetProfile(9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

// Redis 不可用时拒绝名单放行，认证不至于全局瘫痪
func TestIsTokenRevokedFailsOpenWithoutRedis(t *testing.T) {
	env := newTestEnv(t)

	assert.False(t, env.auth.IsTokenRevoked(context.Background(), "any-token"))
}

func TestSignupPasswordMismatchWritesNothing(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.auth.Signup("Eve", "eve@example.com", "first", "second", model.Student)
	assert.ErrorIs(t, err, util.ErrPasswordMismatch)
	assert.Zero(t, env.countRows(t, &model.User{}))
}

func TestSignupDuplicateEmailWritesNothing(t *testing.T) {
	env := newTestEnv(t)
	env.signup(t, "Cara", "cara@example.com", model.Student)

	_, err := env.auth.Signup("Impostor", "cara@example.com", "pw", "pw", model.Student)
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
	assert.EqualValues(t, 1, env.countRows(t, &model.User{}))

	// 原账号仍可登录
	user, _, err := env.auth.Login("cara@example.com", "pa55word")
	require.NoError(t, err)
	assert.Equal(t, "Cara", user.Name)
}
