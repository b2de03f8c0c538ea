package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"expense_tracker/internal/models"
	"expense_tracker/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// --- parseInterval unit tests ---

func TestParseInterval(t *testing.T) {
	cases := []struct {
		name string
		u    string
		want time.Duration
	}{
		{"default_when_missing", "/expenses/stream", 1 * time.Second},
		{"interval_string_valid", "/expenses/stream?interval=200ms", 200 * time.Millisecond},
		{"interval_ms_valid", "/expenses/stream?interval_ms=150", 150 * time.Millisecond},
		{"interval_too_large", "/expenses/stream?interval=20s", 1 * time.Second},
		{"interval_ms_too_large", "/expenses/stream?interval_ms=20000", 1 * time.Second},
		{"interval_invalid_string", "/expenses/stream?interval=bogus", 1 * time.Second},
		{"interval_ms_invalid", "/expenses/stream?interval_ms=NaN", 1 * time.Second},
		{"both_present_interval_wins", "/expenses/stream?interval=2s&interval_ms=150", 2 * time.Second},
		{"both_present_invalid_interval_ms_used", "/expenses/stream?interval=bogus&interval_ms=250", 250 * time.Millisecond},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = httptest.NewRequest(http.MethodGet, tc.u, nil)
			if got := parseInterval(c); got != tc.want {
				t.Fatalf("got %v, want %v for %s", got, tc.want, tc.u)
			}
		})
	}
}

// --- websocket integration tests ---

type envelope struct {
	Type  string          `json:"type"`
	Data  json.RawMessage `json:"data"`
	Error string          `json:"error"`
}

func dialStream(t *testing.T, srvURL string, query url.Values, header http.Header) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	u, _ := url.Parse(srvURL)
	u.Scheme = "ws"
	u.Path = "/expenses/stream"
	u.RawQuery = query.Encode()

	dialer := websocket.Dialer{HandshakeTimeout: 2 * time.Second}
	return dialer.Dial(u.String(), header)
}

func TestWebSocket_SummaryStream_InitialAndPeriodic(t *testing.T) {
	exp := &mockExpenses{summary: models.Summary{
		Total: 87.5,
		Count: 3,
		Categories: []models.CategoryTotal{
			{Category: "Food", Total: 75.5, Count: 2},
			{Category: "Transport", Total: 12, Count: 1},
		},
	}}
	r := newTestRouter(&service.Service{Authorization: authedAs(4, "alice"), Expenses: exp})

	srv := httptest.NewServer(r)
	defer srv.Close()

	q := url.Values{}
	q.Set("interval_ms", "20") // fast ticks for the test
	q.Set("from", "2024-06-01")
	conn, _, err := dialStream(t, srv.URL, q, authHeader("tok"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	// initial summary
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read initial: %v", err)
	}
	if env.Type != wsTypeSummary || len(env.Data) == 0 {
		t.Fatalf("bad envelope: %+v", env)
	}
	var sum models.Summary
	if err := json.Unmarshal(env.Data, &sum); err != nil {
		t.Fatalf("unmarshal summary: %v", err)
	}
	if sum.Total != 87.5 || len(sum.Categories) != 2 || sum.Categories[0].Category != "Food" {
		t.Fatalf("unexpected summary: %+v", sum)
	}

	// a subsequent tick
	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	env = envelope{}
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read second: %v", err)
	}
	if env.Type != wsTypeSummary {
		t.Fatalf("expected type=summary, got %+v", env)
	}
}

func TestWebSocket_RejectsMissingToken(t *testing.T) {
	r := newTestRouter(&service.Service{Authorization: &mockAuth{}, Expenses: &mockExpenses{}})
	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, resp, err := dialStream(t, srv.URL, url.Values{}, nil)
	if err == nil {
		conn.Close()
		t.Fatal("expected handshake to fail without a token")
	}
	if resp == nil || resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected 401 handshake response, got %+v", resp)
	}
}

func TestWebSocket_SummaryError_SendsErrorFrameAndCloses(t *testing.T) {
	exp := &mockExpenses{summErr: errors.New("boom")}
	r := newTestRouter(&service.Service{Authorization: authedAs(4, "alice"), Expenses: exp})

	srv := httptest.NewServer(r)
	defer srv.Close()

	conn, _, err := dialStream(t, srv.URL, url.Values{}, authHeader("tok"))
	if err != nil {
		t.Fatalf("dial error: %v", err)
	}
	defer conn.Close()

	_ = conn.SetReadDeadline(time.Now().Add(1 * time.Second))
	var env envelope
	if err := conn.ReadJSON(&env); err != nil {
		t.Fatalf("read error frame: %v", err)
	}
	if env.Type != wsTypeError || env.Error != errLoadSummary {
		t.Fatalf("unexpected envelope: %+v", env)
	}

	// the server closes after the failed initial load
	_ = conn.SetReadDeadline(time.Now().Add(500 * time.Millisecond))
	var raw json.RawMessage
	if err := conn.ReadJSON(&raw); err == nil {
		t.Fatalf("expected read error (closed), got message: %s", string(raw))
	}
}
