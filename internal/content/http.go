package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/abhisek/quizladder/internal/quiz"
)

// maxBundleBytes caps the size of a bundle fetched over HTTP.
const maxBundleBytes = 4 << 20

// HTTPStore fetches topic bundles from a content server (see Server).
type HTTPStore struct {
	baseURL string
	client  *http.Client
}

var _ quiz.ContentStore = (*HTTPStore)(nil)

// NewHTTPStore creates a store rooted at baseURL. A nil client uses a client
// with a 10 second timeout.
func NewHTTPStore(baseURL string, client *http.Client) (*HTTPStore, error) {
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parse content URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("content URL %q: scheme must be http or https", baseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPStore{baseURL: strings.TrimSuffix(baseURL, "/"), client: client}, nil
}

// Get fetches GET {base}/topics/{topicID}. A 404 maps to quiz.ErrNotFound.
func (s *HTTPStore) Get(ctx context.Context, topicID string) (*quiz.TopicBundle, error) {
	endpoint := s.baseURL + "/topics/" + url.PathEscape(normalizeID(topicID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %q", quiz.ErrNotFound, topicID)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("fetch %s: unexpected status %s", endpoint, resp.Status)
	}

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBundleBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if len(raw) > maxBundleBytes {
		return nil, errors.New("bundle exceeds size limit")
	}
	return Decode(raw)
}

// Topics fetches GET {base}/topics, the server's catalog with availability.
func (s *HTTPStore) Topics(ctx context.Context) ([]TopicInfo, error) {
	endpoint := s.baseURL + "/topics"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %s: unexpected status %s", endpoint, resp.Status)
	}

	var topics []TopicInfo
	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBundleBytes)).Decode(&topics); err != nil {
		return nil, fmt.Errorf("decode topics: %w", err)
	}
	return topics, nil
}
