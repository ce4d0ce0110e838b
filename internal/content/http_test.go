package content

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizladder/internal/quiz"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(NewServer(NewEmbeddedStore(), ServerOptions{
		AllowedOrigins: []string{"http://localhost:3000"},
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestHTTPStore_RoundTrip(t *testing.T) {
	srv := newTestServer(t)
	s, err := NewHTTPStore(srv.URL+"/", nil)
	require.NoError(t, err)

	b, err := s.Get(context.Background(), "Java")
	require.NoError(t, err)
	assert.Equal(t, "Java", b.Topic)
	assert.NotEmpty(t, b.Sets)
	require.NoError(t, quiz.ValidateBundle(b))
}

func TestHTTPStore_TopicWithSpaces(t *testing.T) {
	fs := NewFSStore(Embedded(), NewCatalog([]Entry{
		{ID: "javascript (basics)", Domain: DomainWeb, Path: "web/html.json"},
	}))
	srv := httptest.NewServer(NewServer(fs, ServerOptions{}))
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL, nil)
	require.NoError(t, err)

	b, err := s.Get(context.Background(), "JavaScript (Basics)")
	require.NoError(t, err)
	assert.Equal(t, "HTML", b.Topic)
}

func TestHTTPStore_NotFound(t *testing.T) {
	srv := newTestServer(t)
	s, err := NewHTTPStore(srv.URL, nil)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "react")
	assert.True(t, errors.Is(err, quiz.ErrNotFound), "err = %v", err)

	_, err = s.Get(context.Background(), "cobol")
	assert.True(t, errors.Is(err, quiz.ErrNotFound), "err = %v", err)
}

func TestHTTPStore_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	s, err := NewHTTPStore(srv.URL, nil)
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "java")
	require.Error(t, err)
	assert.False(t, errors.Is(err, quiz.ErrNotFound))
	assert.Contains(t, err.Error(), "unexpected status")
}

func TestNewHTTPStore_BadScheme(t *testing.T) {
	_, err := NewHTTPStore("ftp://example.com", nil)
	assert.Error(t, err)
}

func TestServer_ListTopics(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/topics")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var topics []TopicInfo
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&topics))
	assert.Len(t, topics, len(DefaultCatalog().Entries()))

	avail := make(map[string]bool)
	for _, ti := range topics {
		avail[ti.ID] = ti.Available
	}
	assert.True(t, avail["java"])
	assert.False(t, avail["react"])
}

func TestServer_Healthz(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestHTTPStore_Topics(t *testing.T) {
	srv := newTestServer(t)
	s, err := NewHTTPStore(srv.URL, nil)
	require.NoError(t, err)

	remote, err := s.Topics(context.Background())
	require.NoError(t, err)

	local, err := NewEmbeddedStore().Topics(context.Background())
	require.NoError(t, err)
	assert.Equal(t, local, remote)
}
