package httpserver

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetCreatesSessionAndSetsCookie(t *testing.T) {
	m := NewSessionManager(time.Hour)

	w := httptest.NewRecorder()
	r := httptest.NewRequest(http.MethodGet, "/", nil)

	s := m.Get(w, r)
	require.NotNil(t, s)
	assert.NotEmpty(t, s.ID)
	assert.Equal(t, 1, m.Len())

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, sessionCookie, cookies[0].Name)
	assert.Equal(t, s.ID, cookies[0].Value)
}

func TestGetReusesSessionFromCookie(t *testing.T) {
	m := NewSessionManager(time.Hour)

	w1 := httptest.NewRecorder()
	r1 := httptest.NewRequest(http.MethodGet, "/", nil)
	first := m.Get(w1, r1)
	first.History.RecordTurn("komut", "sonuç")

	r2 := httptest.NewRequest(http.MethodGet, "/", nil)
	r2.AddCookie(&http.Cookie{Name: sessionCookie, Value: first.ID})
	second := m.Get(httptest.NewRecorder(), r2)

	assert.Same(t, first, second)
	assert.Equal(t, 1, second.History.Turns())
	assert.Equal(t, 1, m.Len())
}

func TestSessionsAreIsolated(t *testing.T) {
	m := NewSessionManager(time.Hour)

	a := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	b := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	a.History.RecordTurn("a komutu", "a sonucu")

	assert.NotEqual(t, a.ID, b.ID)
	assert.Zero(t, b.History.Turns())
	assert.Equal(t, 2, m.Len())
}

func TestSweepDropsIdleSessions(t *testing.T) {
	m := NewSessionManager(time.Minute)

	s := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	fresh := m.Get(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	s.lastSeen = time.Now().Add(-2 * time.Minute)
	m.sweep()

	assert.Equal(t, 1, m.Len())

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: fresh.ID})
	assert.Same(t, fresh, m.Get(httptest.NewRecorder(), r))
}

func TestGetUnknownCookieCreatesNewSession(t *testing.T) {
	m := NewSessionManager(time.Hour)

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookie, Value: "expired-id"})

	s := m.Get(httptest.NewRecorder(), r)
	assert.NotEqual(t, "expired-id", s.ID)
}
