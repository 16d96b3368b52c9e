package testkit_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/orderdesk/pkg/testkit"
)

// testHandler is a tiny cookie-session app for the runner's own tests.
var testHandler http.Handler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/health":
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	case "/login":
		_ = r.ParseForm()
		if r.PostForm.Get("username") == "" {
			w.WriteHeader(http.StatusUnprocessableEntity)
			w.Write([]byte(`{"errors":{"username":"required"}}`)) //nolint:errcheck
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sid", Value: r.PostForm.Get("username"), Path: "/"})
		http.Redirect(w, r, "/me", http.StatusFound)
	case "/me":
		ck, err := r.Cookie("sid")
		if err != nil {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}
		json.NewEncoder(w).Encode(map[string]interface{}{ //nolint:errcheck
			"data": map[string]interface{}{"user": ck.Value, "orders": []int{1, 2}},
		})
	default:
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"message":"Not found"}`)) //nolint:errcheck
	}
})

func TestRunSingleScenario(t *testing.T) {
	testkit.Run(t, testHandler, "fixtures/health_check.json")
}

func TestRunDir(t *testing.T) {
	testkit.RunDir(t, testHandler, "fixtures")
}

func TestRunFlowSharesCookies(t *testing.T) {
	testkit.RunFlow(t, testHandler, "fixtures/flows/login_then_me.json")
}

func TestClientKeepsCookies(t *testing.T) {
	c := testkit.NewClient(testHandler)
	rec := c.Get("/me")
	assert.Equal(t, http.StatusFound, rec.Code)

	rec = c.PostForm("/login", url.Values{"username": {"alice"}})
	require.Equal(t, http.StatusFound, rec.Code)

	rec = c.Get("/me")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"user":"alice"`)
}

func TestLookup(t *testing.T) {
	var body interface{}
	require.NoError(t, json.Unmarshal([]byte(`{"data":{"orders":[{"status":"Pending"}],"n":2}}`), &body))

	v, ok := testkit.Lookup(body, "data.orders.0.status")
	assert.True(t, ok)
	assert.Equal(t, "Pending", v)

	v, ok = testkit.Lookup(body, "data.n")
	assert.True(t, ok)
	assert.Equal(t, float64(2), v)

	_, ok = testkit.Lookup(body, "data.orders.3")
	assert.False(t, ok)
	_, ok = testkit.Lookup(body, "data.missing")
	assert.False(t, ok)
}

func TestLoadScenarioValidation(t *testing.T) {
	s, err := testkit.LoadScenario("fixtures/health_check.json")
	require.NoError(t, err)
	assert.Equal(t, "GET", s.RequestMethod)
	assert.Empty(t, s.RequestBodyPath())

	_, err = testkit.LoadScenario("fixtures/does_not_exist.json")
	assert.Error(t, err)
}
