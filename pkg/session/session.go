// Package session provides cookie-keyed server-side sessions backed by a
// pluggable Store (memory or Redis).
//
// Usage (middleware):
//
//	mgr := session.NewManager(store, session.DefaultOptions())
//	r.Use(mgr.Middleware())
//
// Usage (handler):
//
//	sess := session.FromCtx(r)
//	sess.Set("user_id", 42)
//	sess.Flash("Account was created for alice")
//	id, _ := sess.GetUint("user_id")
//
// Changes are persisted automatically just before the response headers go
// out, so handlers never call Save themselves.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	"github.com/shashiranjanraj/orderdesk/pkg/logger"
)

// Options configures the session cookie.
type Options struct {
	CookieName string
	TTL        time.Duration
	HTTPOnly   bool
	Secure     bool
	SameSite   http.SameSite
	Path       string
}

// DefaultOptions returns sensible defaults.
func DefaultOptions() Options {
	return Options{
		CookieName: "orderdesk_session",
		TTL:        2 * time.Hour,
		HTTPOnly:   true,
		SameSite:   http.SameSiteLaxMode,
		Path:       "/",
	}
}

const flashKey = "_flashes"

type ctxKey struct{}

// Session is an in-request session handle.
type Session struct {
	id        string
	oldID     string
	data      map[string]any
	changed   bool
	destroyed bool
}

func newID() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(fmt.Sprintf("session: crypto/rand: %v", err))
	}
	return hex.EncodeToString(b)
}

func newSession() *Session {
	return &Session{id: newID(), data: map[string]any{}}
}

// ID returns the session ID.
func (s *Session) ID() string { return s.id }

// Set stores a value under key.
func (s *Session) Set(key string, value any) {
	s.data[key] = value
	s.changed = true
}

// Get retrieves a value.
func (s *Session) Get(key string) (any, bool) {
	v, ok := s.data[key]
	return v, ok
}

// GetUint is a typed convenience getter. Stored numbers round-trip through
// JSON and come back as float64.
func (s *Session) GetUint(key string) (uint, bool) {
	switch n := s.data[key].(type) {
	case float64:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case int:
		if n < 0 {
			return 0, false
		}
		return uint(n), true
	case uint:
		return n, true
	}
	return 0, false
}

// Delete removes key.
func (s *Session) Delete(key string) {
	if _, ok := s.data[key]; ok {
		delete(s.data, key)
		s.changed = true
	}
}

// Flash queues a one-shot message for the next rendered page.
func (s *Session) Flash(msg string) {
	s.Set(flashKey, append(s.peekFlashes(), msg))
}

// Flashes returns queued messages and clears them.
func (s *Session) Flashes() []string {
	out := s.peekFlashes()
	if len(out) > 0 {
		s.Delete(flashKey)
	}
	return out
}

func (s *Session) peekFlashes() []string {
	switch v := s.data[flashKey].(type) {
	case []string:
		return append([]string(nil), v...)
	case []any:
		out := make([]string, 0, len(v))
		for _, m := range v {
			if str, ok := m.(string); ok {
				out = append(out, str)
			}
		}
		return out
	}
	return nil
}

// Regenerate moves the data to a fresh ID. Call it after login so a session
// ID issued before authentication is never promoted.
func (s *Session) Regenerate() {
	if s.oldID == "" {
		s.oldID = s.id
	}
	s.id = newID()
	s.changed = true
}

// Destroy drops all data and expires the cookie (logout).
func (s *Session) Destroy() {
	s.data = map[string]any{}
	s.destroyed = true
	s.changed = true
}

// Manager loads sessions from a Store and writes them back.
type Manager struct {
	store Store
	opts  Options
}

func NewManager(store Store, opts Options) *Manager {
	return &Manager{store: store, opts: opts}
}

// Middleware loads (or starts) the session for every request and saves it
// just before the response is committed.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sess := m.load(r)
			sw := &sessionWriter{ResponseWriter: w, m: m, r: r, sess: sess}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), ctxKey{}, sess)))
			sw.commit()
		})
	}
}

func (m *Manager) load(r *http.Request) *Session {
	c, err := r.Cookie(m.opts.CookieName)
	if err != nil || c.Value == "" {
		return newSession()
	}
	data, err := m.store.Load(r.Context(), c.Value)
	if err != nil {
		logger.WithCtx(r.Context()).Warn("session: load failed", "error", err)
	}
	if data == nil {
		// Unknown or expired ID: start over rather than adopt the client's ID.
		return newSession()
	}
	return &Session{id: c.Value, data: data}
}

// save persists s and sets (or expires) the cookie on w.
func (m *Manager) save(ctx context.Context, w http.ResponseWriter, s *Session) {
	if !s.changed {
		return
	}
	if s.oldID != "" {
		if err := m.store.Destroy(ctx, s.oldID); err != nil {
			logger.WithCtx(ctx).Warn("session: destroy old id failed", "error", err)
		}
	}

	if s.destroyed {
		if err := m.store.Destroy(ctx, s.id); err != nil {
			logger.WithCtx(ctx).Warn("session: destroy failed", "error", err)
		}
		http.SetCookie(w, m.cookie("", -1))
		return
	}

	if err := m.store.Save(ctx, s.id, s.data, m.opts.TTL); err != nil {
		logger.WithCtx(ctx).Error("session: save failed", "error", err)
		return
	}
	http.SetCookie(w, m.cookie(s.id, int(m.opts.TTL.Seconds())))
}

func (m *Manager) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     m.opts.CookieName,
		Value:    value,
		Path:     m.opts.Path,
		MaxAge:   maxAge,
		HttpOnly: m.opts.HTTPOnly,
		Secure:   m.opts.Secure,
		SameSite: m.opts.SameSite,
	}
}

// sessionWriter saves the session the first time headers are written.
type sessionWriter struct {
	http.ResponseWriter
	m         *Manager
	r         *http.Request
	sess      *Session
	committed bool
}

func (w *sessionWriter) commit() {
	if w.committed {
		return
	}
	w.committed = true
	w.m.save(w.r.Context(), w.ResponseWriter, w.sess)
}

func (w *sessionWriter) WriteHeader(code int) {
	w.commit()
	w.ResponseWriter.WriteHeader(code)
}

func (w *sessionWriter) Write(b []byte) (int, error) {
	w.commit()
	return w.ResponseWriter.Write(b)
}

func (w *sessionWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }

// FromCtx retrieves the session from the request context. Outside the
// middleware it returns a detached session whose changes are discarded.
func FromCtx(r *http.Request) *Session {
	return FromContext(r.Context())
}

// FromContext is FromCtx for code that only has a context.
func FromContext(ctx context.Context) *Session {
	if s, ok := ctx.Value(ctxKey{}).(*Session); ok {
		return s
	}
	return newSession()
}
