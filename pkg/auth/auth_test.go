package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/auth"
	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func init() { logger.Discard() }

func TestPasswordHashing(t *testing.T) {
	hash, err := auth.HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)
	assert.True(t, auth.CheckPassword(hash, "s3cret-pass"))
	assert.False(t, auth.CheckPassword(hash, "wrong"))
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := auth.GenerateToken(42, auth.RoleAdmin)
	require.NoError(t, err)

	claims, err := auth.ValidateToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(42), claims.UserID)
	assert.Equal(t, auth.RoleAdmin, claims.Role)

	_, err = auth.ValidateToken(tok + "x")
	assert.Error(t, err)
}

func TestRoleValid(t *testing.T) {
	assert.True(t, auth.RoleAdmin.Valid())
	assert.True(t, auth.RoleCustomer.Valid())
	assert.False(t, auth.RoleNone.Valid())
	assert.False(t, auth.Role("staff").Valid())
}

type stubResolver map[uint]*auth.Principal

func (s stubResolver) ResolvePrincipal(_ context.Context, id uint) (*auth.Principal, error) {
	return s[id], nil
}

func TestAuthenticateWithBearer(t *testing.T) {
	users := stubResolver{7: {UserID: 7, Username: "ada", Role: auth.RoleCustomer}}
	tok, err := auth.GenerateToken(7, auth.RoleCustomer)
	require.NoError(t, err)

	var got *auth.Principal
	h := auth.Authenticate(users)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = auth.PrincipalFrom(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	require.NotNil(t, got)
	assert.Equal(t, "ada", got.Username)

	got = nil
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Nil(t, got, "anonymous requests carry no principal")
}

func TestAuthenticateUnknownUser(t *testing.T) {
	tok, err := auth.GenerateToken(99, auth.RoleAdmin)
	require.NoError(t, err)

	called := false
	h := auth.Authenticate(stubResolver{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
		_, ok := auth.PrincipalFrom(r.Context())
		assert.False(t, ok)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	h.ServeHTTP(httptest.NewRecorder(), req)
	assert.True(t, called)
}
