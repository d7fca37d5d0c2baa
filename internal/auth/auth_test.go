package auth

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ironmind/internal/config"
)

type memBlacklist struct {
	mu   sync.Mutex
	jtis map[string]time.Time
}

func (m *memBlacklist) Add(_ context.Context, jti string, exp time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.jtis == nil {
		m.jtis = map[string]time.Time{}
	}
	m.jtis[jti] = exp
	return nil
}

func (m *memBlacklist) IsBlacklisted(_ context.Context, jti string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.jtis[jti]
	return ok, nil
}

var testAuthCfg = config.AuthConfig{
	JWTSecretKey: "test-secret",
	JWTExpiry:    time.Hour,
	Issuer:       "ironmind-test",
}

func TestGenerateAndValidateToken(t *testing.T) {
	token, exp, err := GenerateToken(42, "ana@example.com", testAuthCfg)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := ValidateToken(context.Background(), token, testAuthCfg.JWTSecretKey, nil)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, "ana@example.com", claims.Email)
	assert.Equal(t, "ironmind-test", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestValidateTokenRejectsWrongKeyAndExpired(t *testing.T) {
	token, _, err := GenerateToken(1, "a@example.com", testAuthCfg)
	require.NoError(t, err)

	_, err = ValidateToken(context.Background(), token, "other", nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	expiredCfg := testAuthCfg
	expiredCfg.JWTExpiry = -time.Minute
	expired, _, err := GenerateToken(1, "a@example.com", expiredCfg)
	require.NoError(t, err)
	_, err = ValidateToken(context.Background(), expired, testAuthCfg.JWTSecretKey, nil)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestValidateTokenBlacklisted(t *testing.T) {
	bl := &memBlacklist{}
	token, exp, err := GenerateToken(7, "b@example.com", testAuthCfg)
	require.NoError(t, err)

	claims, err := ValidateToken(context.Background(), token, testAuthCfg.JWTSecretKey, bl)
	require.NoError(t, err)

	require.NoError(t, bl.Add(context.Background(), claims.ID, exp))
	_, err = ValidateToken(context.Background(), token, testAuthCfg.JWTSecretKey, bl)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	assert.True(t, CheckPasswordHash("secret1", hash))
	assert.False(t, CheckPasswordHash("secret2", hash))

	_, err = HashPassword("12345")
	assert.ErrorIs(t, err, ErrPasswordTooShort)
	_, err = HashPassword(strings.Repeat("x", MaxPasswordBytes+1))
	assert.ErrorIs(t, err, ErrPasswordTooLong)
	assert.NoError(t, ValidatePassword(strings.Repeat("x", MaxPasswordBytes)))
}

func TestRevoke(t *testing.T) {
	ctx := context.Background()
	token, _, err := GenerateToken(3, "c@example.com", testAuthCfg)
	require.NoError(t, err)
	claims, err := ValidateToken(ctx, token, testAuthCfg.JWTSecretKey, nil)
	require.NoError(t, err)

	// 没有黑名单时吊销是空操作
	require.NoError(t, Revoke(ctx, nil, claims))

	bl := &memBlacklist{}
	assert.ErrorIs(t, Revoke(ctx, bl, &Claims{}), ErrTokenInvalid)
	require.NoError(t, Revoke(ctx, bl, claims))

	_, err = ValidateToken(ctx, token, testAuthCfg.JWTSecretKey, bl)
	assert.ErrorIs(t, err, ErrTokenRevoked)
}
