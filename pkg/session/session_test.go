package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

func init() { logger.Discard() }

func serve(t *testing.T, m *Manager, cookie *http.Cookie, h http.HandlerFunc) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	m.Middleware()(h).ServeHTTP(rec, req)
	return rec
}

func sessionCookie(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "orderdesk_session" {
			return c
		}
	}
	return nil
}

func TestUntouchedSessionSetsNoCookie(t *testing.T) {
	m := NewManager(NewMemoryStore(), DefaultOptions())
	rec := serve(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	assert.Nil(t, sessionCookie(t, rec))
}

func TestValuesSurviveAcrossRequests(t *testing.T) {
	m := NewManager(NewMemoryStore(), DefaultOptions())
	rec := serve(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Set("user_id", uint(7))
		http.Redirect(w, r, "/", http.StatusFound)
	})
	c := sessionCookie(t, rec)
	require.NotNil(t, c, "cookie must be written before the redirect header")

	serve(t, m, c, func(w http.ResponseWriter, r *http.Request) {
		id, ok := FromCtx(r).GetUint("user_id")
		assert.True(t, ok)
		assert.Equal(t, uint(7), id)
	})
}

func TestFlashesAreOneShot(t *testing.T) {
	m := NewManager(NewMemoryStore(), DefaultOptions())
	rec := serve(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Flash("Account was created for alice")
	})
	c := sessionCookie(t, rec)
	require.NotNil(t, c)

	serve(t, m, c, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, []string{"Account was created for alice"}, FromCtx(r).Flashes())
	})
	serve(t, m, c, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, FromCtx(r).Flashes())
	})
}

func TestRegenerateDropsOldID(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, DefaultOptions())
	first := sessionCookie(t, serve(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Set("k", "v")
	}))
	require.NotNil(t, first)

	second := sessionCookie(t, serve(t, m, first, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Regenerate()
	}))
	require.NotNil(t, second)
	assert.NotEqual(t, first.Value, second.Value)

	old, _ := store.Load(context.Background(), first.Value)
	assert.Nil(t, old)
	data, _ := store.Load(context.Background(), second.Value)
	assert.Equal(t, "v", data["k"])
}

func TestDestroyExpiresCookie(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(store, DefaultOptions())
	c := sessionCookie(t, serve(t, m, nil, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Set("user_id", 1)
	}))
	require.NotNil(t, c)

	out := sessionCookie(t, serve(t, m, c, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Destroy()
	}))
	require.NotNil(t, out)
	assert.True(t, out.MaxAge < 0)

	data, _ := store.Load(context.Background(), c.Value)
	assert.Nil(t, data)
}

func TestUnknownCookieStartsFreshSession(t *testing.T) {
	m := NewManager(NewMemoryStore(), DefaultOptions())
	forged := &http.Cookie{Name: "orderdesk_session", Value: "attacker-chosen"}
	c := sessionCookie(t, serve(t, m, forged, func(w http.ResponseWriter, r *http.Request) {
		FromCtx(r).Set("k", 1)
	}))
	require.NotNil(t, c)
	assert.NotEqual(t, "attacker-chosen", c.Value)
}

func TestMemoryStoreExpiry(t *testing.T) {
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }
	require.NoError(t, s.Save(context.Background(), "id", map[string]any{"a": 1}, time.Minute))

	got, err := s.Load(context.Background(), "id")
	require.NoError(t, err)
	assert.Equal(t, float64(1), got["a"])

	now = now.Add(2 * time.Minute)
	got, err = s.Load(context.Background(), "id")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreSweepsAbandonedSessions(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	now := time.Now()
	s.now = func() time.Time { return now }

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, s.Save(ctx, id, map[string]any{"_flashes": []string{"x"}}, time.Minute))
	}
	require.NoError(t, s.Save(ctx, "long", map[string]any{"user_id": 1}, time.Hour))
	assert.Len(t, s.entries, 4)

	// Nobody loads a, b or c again; a later Save clears them out.
	now = now.Add(2 * time.Minute)
	require.NoError(t, s.Save(ctx, "d", map[string]any{}, time.Minute))
	assert.Len(t, s.entries, 2)

	got, err := s.Load(ctx, "long")
	require.NoError(t, err)
	assert.NotNil(t, got)
}
