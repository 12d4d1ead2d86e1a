package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
)

// PostedMessage is a message received by the mock chatMessages POST endpoint
type PostedMessage struct {
	RoomID      string
	Text        string
	ContentType string
}

// RecordedRequest is a request seen by the mock API
type RecordedRequest struct {
	Method        string
	Path          string
	RawQuery      string
	Authorization string
	Accept        string
}

// MockAPI is an in-process fake of the Gitter v1 REST API
type MockAPI struct {
	Server *httptest.Server
	Token  string

	mu       sync.Mutex
	user     interface{}
	rooms    interface{}
	messages map[string]interface{}
	raw      map[string]string
	status   int
	hold     chan struct{}
	posts    []PostedMessage
	requests []RecordedRequest
}

// NewMockAPI starts a fake API that accepts token. It is closed when the test ends.
func NewMockAPI(t *testing.T, token string) *MockAPI {
	t.Helper()
	m := &MockAPI{
		Token:    token,
		messages: make(map[string]interface{}),
		raw:      make(map[string]string),
	}
	m.Server = httptest.NewServer(http.HandlerFunc(m.handle))
	t.Cleanup(m.Server.Close)
	return m
}

// URL returns the API root, equivalent to https://api.gitter.im/v1
func (m *MockAPI) URL() string {
	return m.Server.URL + "/v1"
}

// SetUser sets the value served (inside a one-element array) by GET /v1/user
func (m *MockAPI) SetUser(user interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = user
}

// SetRooms sets the array served by GET /v1/rooms
func (m *MockAPI) SetRooms(rooms interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.rooms = rooms
}

// SetMessages sets the array served by GET /v1/rooms/{roomID}/chatMessages
func (m *MockAPI) SetMessages(roomID string, messages interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages[roomID] = messages
}

// SetRaw serves body verbatim for path (e.g. "/v1/rooms"), bypassing JSON encoding
func (m *MockAPI) SetRaw(path, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.raw[path] = body
}

// SetStatus forces every response to status; 0 restores normal behaviour
func (m *MockAPI) SetStatus(status int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = status
}

// HoldMessages makes GET chatMessages requests wait until release is
// called. Tests must call release before the server is closed.
func (m *MockAPI) HoldMessages() (release func()) {
	hold := make(chan struct{})
	m.mu.Lock()
	m.hold = hold
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			m.hold = nil
			m.mu.Unlock()
			close(hold)
		})
	}
}

// Posts returns the messages posted so far
func (m *MockAPI) Posts() []PostedMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]PostedMessage, len(m.posts))
	copy(out, m.posts)
	return out
}

// Requests returns every request seen so far
func (m *MockAPI) Requests() []RecordedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RecordedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// RequestCount counts requests for method and path
func (m *MockAPI) RequestCount(method, path string) int {
	n := 0
	for _, r := range m.Requests() {
		if r.Method == method && r.Path == path {
			n++
		}
	}
	return n
}

func (m *MockAPI) handle(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	m.requests = append(m.requests, RecordedRequest{
		Method:        r.Method,
		Path:          r.URL.Path,
		RawQuery:      r.URL.RawQuery,
		Authorization: r.Header.Get("Authorization"),
		Accept:        r.Header.Get("Accept"),
	})
	status := m.status
	raw, hasRaw := m.raw[r.URL.Path]
	m.mu.Unlock()

	if r.Header.Get("Authorization") != "Bearer "+m.Token {
		http.Error(w, `{"error":"Unauthorized"}`, http.StatusUnauthorized)
		return
	}
	if status != 0 {
		http.Error(w, http.StatusText(status), status)
		return
	}
	if hasRaw {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(raw))
		return
	}

	switch {
	case r.Method == http.MethodGet && r.URL.Path == "/v1/user":
		m.mu.Lock()
		user := m.user
		m.mu.Unlock()
		if user == nil {
			writeJSON(w, []interface{}{})
			return
		}
		writeJSON(w, []interface{}{user})

	case r.Method == http.MethodGet && r.URL.Path == "/v1/rooms":
		m.mu.Lock()
		rooms := m.rooms
		m.mu.Unlock()
		if rooms == nil {
			rooms = []interface{}{}
		}
		writeJSON(w, rooms)

	case strings.HasPrefix(r.URL.Path, "/v1/rooms/") && strings.HasSuffix(r.URL.Path, "/chatMessages"):
		roomID := strings.TrimSuffix(strings.TrimPrefix(r.URL.Path, "/v1/rooms/"), "/chatMessages")
		switch r.Method {
		case http.MethodGet:
			m.mu.Lock()
			hold := m.hold
			m.mu.Unlock()
			if hold != nil {
				select {
				case <-hold:
				case <-r.Context().Done():
					return
				}
			}
			m.mu.Lock()
			messages, ok := m.messages[roomID]
			m.mu.Unlock()
			if !ok {
				http.Error(w, `{"error":"Not Found"}`, http.StatusNotFound)
				return
			}
			writeJSON(w, messages)
		case http.MethodPost:
			m.handlePost(w, r, roomID)
		default:
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		}

	default:
		http.Error(w, `{"error":"Not Found"}`, http.StatusNotFound)
	}
}

func (m *MockAPI) handlePost(w http.ResponseWriter, r *http.Request, roomID string) {
	var body struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, fmt.Sprintf(`{"error":%q}`, err.Error()), http.StatusBadRequest)
		return
	}

	m.mu.Lock()
	m.posts = append(m.posts, PostedMessage{
		RoomID:      roomID,
		Text:        body.Text,
		ContentType: r.Header.Get("Content-Type"),
	})
	id := len(m.posts)
	m.mu.Unlock()

	writeJSON(w, map[string]interface{}{
		"id":   fmt.Sprintf("posted-%d", id),
		"text": body.Text,
	})
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}
