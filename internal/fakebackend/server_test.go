// ABOUTME: Tests for the fake backend handlers
// ABOUTME: Covers validation errors, echo responses, method checks, and auth

package fakebackend

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/assistant-client/internal/auth"
)

const testSecret = "test-secret-key-for-jwt-signing!"

func post(t *testing.T, h http.Handler, path, body string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for k, v := range header {
		req.Header[k] = v
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body["error"]
}

func TestChatEchoesLastMessage(t *testing.T) {
	s := New(nil)

	body := `{"threadId":"t1","messages":[
		{"role":"user","content":[{"type":"text","text":"first"}]},
		{"role":"user","content":[{"type":"text","text":"hello"},{"type":"image","image":"x"},{"type":"text","text":"world"}]}
	]}`
	rec := post(t, s, "/api/chat", body, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "t1", resp.ThreadID)
	assert.Equal(t, "hello\nworld", resp.Echo)
	assert.NotEmpty(t, resp.MessageID)

	reqs := s.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, http.MethodPost, reqs[0].Method)
	assert.Equal(t, "/api/chat", reqs[0].Path)
	assert.Equal(t, "t1", reqs[0].Body["threadId"])
	assert.Equal(t, "application/json", reqs[0].Header.Get("Content-Type"))
}

func TestChatWithoutMessages(t *testing.T) {
	s := New(nil)

	rec := post(t, s, "/api/chat", `{"threadId":"t1","messages":[]}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Empty(t, resp.Echo)
}

func TestCancel(t *testing.T) {
	s := New(nil)

	rec := post(t, s, "/api/cancel", `{"threadId":"t9"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp CancelResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, CancelResponse{ThreadID: "t9", Status: "cancelled"}, resp)

	reqs := s.Requests()
	require.Len(t, reqs, 1)
	assert.Equal(t, "/api/cancel", reqs[0].Path)
}

func TestBadRequests(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		body    string
		wantErr string
	}{
		{"chat invalid json", "/api/chat", `{not json`, "invalid JSON body"},
		{"chat missing thread", "/api/chat", `{"messages":[]}`, "threadId is required"},
		{"chat non-string thread", "/api/chat", `{"threadId":42}`, "threadId is required"},
		{"cancel missing thread", "/api/cancel", `{}`, "threadId is required"},
		{"cancel invalid json", "/api/cancel", ``, "invalid JSON body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(nil)
			rec := post(t, s, tt.path, tt.body, nil)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tt.wantErr, decodeError(t, rec))
			assert.Empty(t, s.Requests())
		})
	}
}

func TestMethodNotAllowed(t *testing.T) {
	s := New(nil)

	for _, path := range []string{"/api/chat", "/api/cancel"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		s.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
	assert.Empty(t, s.Requests())
}

func TestVerifier(t *testing.T) {
	verifier, err := auth.NewVerifier([]byte(testSecret))
	require.NoError(t, err)
	issuer, err := auth.NewTokenIssuer([]byte(testSecret), "tester", 0)
	require.NoError(t, err)
	token, err := issuer.Token()
	require.NoError(t, err)

	s := New(nil, WithVerifier(verifier))

	t.Run("missing token", func(t *testing.T) {
		rec := post(t, s, "/api/chat", `{"threadId":"t"}`, nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "missing authorization header", decodeError(t, rec))
	})

	t.Run("bad token", func(t *testing.T) {
		rec := post(t, s, "/api/chat", `{"threadId":"t"}`, http.Header{"Authorization": {"Bearer nope"}})
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Equal(t, "invalid token", decodeError(t, rec))
	})

	t.Run("valid token", func(t *testing.T) {
		rec := post(t, s, "/api/chat", `{"threadId":"t"}`, http.Header{"Authorization": {"Bearer " + token}})
		require.Equal(t, http.StatusOK, rec.Code)

		reqs := s.Requests()
		require.Len(t, reqs, 1)
		assert.Equal(t, "tester", reqs[0].Subject)
	})
}

func TestRequestsReturnsCopy(t *testing.T) {
	s := New(nil)
	post(t, s, "/api/cancel", `{"threadId":"a"}`, nil)

	reqs := s.Requests()
	reqs[0].Path = "changed"

	assert.Equal(t, "/api/cancel", s.Requests()[0].Path)
}
