package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testManager() *JWTManager {
	return NewJWTManager("test-secret", time.Hour, 15*time.Minute)
}

func TestGenerateAndValidatePromoterToken(t *testing.T) {
	m := testManager()
	subject := uuid.New()
	company := uuid.New().String()

	token, err := m.GenerateToken(RealmPromoter, subject, "booker@example.com", "promoter", company)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := m.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, subject.String(), claims.Subject)
	assert.Equal(t, RealmPromoter, claims.Realm)
	assert.Equal(t, "booker@example.com", claims.Email)
	assert.Equal(t, "promoter", claims.Role)
	assert.Equal(t, company, claims.CompanyID)
}

func TestGenerateAndValidateAdminToken(t *testing.T) {
	m := testManager()
	subject := uuid.New()

	token, err := m.GenerateToken(RealmAdmin, subject, "ops@example.com", "admin", "")
	require.NoError(t, err)

	claims, err := m.ValidateTokenForRealm(token, RealmAdmin)
	require.NoError(t, err)
	assert.Equal(t, RealmAdmin, claims.Realm)
	assert.Empty(t, claims.CompanyID)
}

func TestGenerateTokenUnknownRealm(t *testing.T) {
	m := testManager()

	_, err := m.GenerateToken(Realm("backstage"), uuid.New(), "", "", "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown realm")
}

func TestValidateTokenForRealmMismatch(t *testing.T) {
	m := testManager()

	token, err := m.GenerateToken(RealmPromoter, uuid.New(), "booker@example.com", "promoter", "")
	require.NoError(t, err)

	_, err = m.ValidateTokenForRealm(token, RealmAdmin)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected realm")
}

func TestValidateTokenWrongSecret(t *testing.T) {
	m := testManager()
	other := NewJWTManager("other-secret", time.Hour, time.Hour)

	token, err := m.GenerateToken(RealmPromoter, uuid.New(), "", "", "")
	require.NoError(t, err)

	_, err = other.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenExpired(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute, -time.Minute)

	token, err := m.GenerateToken(RealmPromoter, uuid.New(), "", "", "")
	require.NoError(t, err)

	_, err = m.ValidateToken(token)
	require.Error(t, err)
}

func TestValidateTokenGarbage(t *testing.T) {
	m := testManager()

	_, err := m.ValidateToken("not-a-jwt")
	require.Error(t, err)
}
