package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"expense_tracker/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	defaultInterval  = 1 * time.Second
	maxInterval      = 10 * time.Second
	maxIntervalMilli = 10_000 // 10s in ms

	wsTypeSummary = "summary"
	wsTypeError   = "error"

	errLoadSummary = "failed to load summary"
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"`
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. The route sits behind authMiddleware.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// @Summary      Stream spending summary
// @Description  Upgrades to a WebSocket and pushes {"type":"summary","data":Summary} every interval.
// @Tags         expenses
// @Param        interval     query  string  false  "Go duration, max 10s"  example(2s)
// @Param        interval_ms  query  int     false  "Milliseconds, max 10000"
// @Param        from         query  string  false  "Start date"
// @Param        to           query  string  false  "End date"
// @Success      101
// @Failure      400  {object}  map[string]string
// @Failure      401  {object}  map[string]string
// @Router       /expenses/stream [get]
// @Security     BearerAuth
func (h *Handler) streamSummary(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}
	f, msg, err := expenseFilterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}
	interval := parseInterval(c)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Errorw("ws_upgrade_failed", "err", err)
		return
	}
	defer func() { _ = conn.Close() }()

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ticker := time.NewTicker(interval)
	ping := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		ping.Stop()
	}()

	ctx := c.Request.Context()
	if err := h.sendSummary(ctx, conn, userID, f); err != nil {
		h.log.Infow("ws_write_failed_initial", "user_id", userID, "err", err)
		return
	}

	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.log.Infow("ws_ping_failed", "err", err)
				return
			}
		case <-ticker.C:
			if err := h.sendSummary(ctx, conn, userID, f); err != nil {
				h.log.Infow("ws_write_failed", "user_id", userID, "err", err)
				return
			}
		}
	}
}

// parseInterval reads ?interval=2s or ?interval_ms=2000 with bounds.
func parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			return time.Duration(v) * time.Millisecond
		}
	}

	return defaultInterval
}

// startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.log.Debugw("ws_read_closed", "err", err)
			return
		}
	}
}

// sendSummary writes the current summary. On a load failure it sends an error frame and returns the error.
func (h *Handler) sendSummary(ctx context.Context, conn *websocket.Conn, userID int64, f models.ExpenseFilter) error {
	sum, err := h.services.Expenses.Summary(ctx, userID, f)
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	if err != nil {
		h.log.Errorw("ws_summary_failed", "user_id", userID, "err", err)
		_ = conn.WriteJSON(wsEnvelope{Type: wsTypeError, Error: errLoadSummary})
		return err
	}
	return conn.WriteJSON(wsEnvelope{Type: wsTypeSummary, Data: sum})
}
