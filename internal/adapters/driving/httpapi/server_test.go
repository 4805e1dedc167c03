package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/veritas-labs/paperchat-cli/internal/core/domain"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// stubBot answers with fixed content and records the last request.
type stubBot struct {
	answer     domain.Answer
	err        error
	lastQuery  string
	lastLength string
}

func (s *stubBot) Ask(_ context.Context, query, length string) (domain.Answer, error) {
	s.lastQuery = query
	s.lastLength = length
	if s.err != nil {
		return domain.Answer{}, s.err
	}
	return s.answer, nil
}

func (s *stubBot) Lengths() []string {
	return []string{"long", "medium", "short"}
}

func doAsk(t *testing.T, srv *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestAsk(t *testing.T) {
	bot := &stubBot{answer: domain.Answer{
		Text:    "An answer.",
		Sources: []string{"Paper A (cs.AI)"},
	}}
	srv := NewServer(bot, "medium")

	w := doAsk(t, srv, `{"query":"Why?","length":"short"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp askResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "An answer.", resp.Answer)
	assert.Equal(t, []string{"Paper A (cs.AI)"}, resp.Sources)
	assert.Equal(t, "Why?", bot.lastQuery)
	assert.Equal(t, "short", bot.lastLength)
}

func TestAsk_DefaultLength(t *testing.T) {
	bot := &stubBot{answer: domain.Answer{Text: "ok"}}
	srv := NewServer(bot, "medium")

	w := doAsk(t, srv, `{"query":"Why?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "medium", bot.lastLength)
}

func TestAsk_MissingQuery(t *testing.T) {
	srv := NewServer(&stubBot{}, "medium")

	w := doAsk(t, srv, `{"length":"short"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_request")
}

func TestAsk_InvalidLength(t *testing.T) {
	bot := &stubBot{err: domain.ErrInvalidAnswerLength}
	srv := NewServer(bot, "medium")

	w := doAsk(t, srv, `{"query":"Why?","length":"epic"}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_length")
}

func TestAsk_InternalError(t *testing.T) {
	bot := &stubBot{err: context.DeadlineExceeded}
	srv := NewServer(bot, "medium")

	w := doAsk(t, srv, `{"query":"Why?"}`)

	require.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "internal_error")
}

func TestAsk_NilBot(t *testing.T) {
	srv := NewServer(nil, "medium")

	w := doAsk(t, srv, `{"query":"Why?"}`)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHealthz(t *testing.T) {
	srv := NewServer(&stubBot{}, "medium")

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/healthz", http.NoBody)
	srv.Router().ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
