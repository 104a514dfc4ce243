package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	streamBuffer       = 64
	streamWriteTimeout = 5 * time.Second
	streamPingInterval = 30 * time.Second
)

var streamUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		u, err := url.Parse(origin)
		if err != nil {
			return false
		}
		host := strings.ToLower(strings.TrimSpace(r.Host))
		originHost := strings.ToLower(strings.TrimSpace(u.Host))
		return host == originHost
	},
}

// StreamMessage is one websocket frame. The first frame is a snapshot of the
// stored lines; each later frame carries a single new line.
type StreamMessage struct {
	Type   string   `json:"type"`
	Uptime string   `json:"uptime,omitempty"`
	Lines  []string `json:"lines,omitempty"`
	Line   string   `json:"line,omitempty"`
}

const (
	MessageSnapshot = "snapshot"
	MessageLine     = "line"
)

// ServeWS upgrades the request and streams log lines as they are recorded.
func (h *StatusHandler) ServeWS(w http.ResponseWriter, r *http.Request) {
	conn, err := streamUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Debug("Websocket upgrade failed", slog.Any("err", err))
		return
	}
	defer conn.Close()

	snapshot, lines, unsubscribe := h.state.Subscribe(streamBuffer)
	defer unsubscribe()

	h.logger.Debug("Log stream opened", slog.String("from", extractClientIP(r)))
	defer h.logger.Debug("Log stream closed", slog.String("from", extractClientIP(r)))

	report := h.reporter.Report()
	if err := writeStream(conn, StreamMessage{Type: MessageSnapshot, Uptime: report.Uptime, Lines: snapshot}); err != nil {
		return
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ping := time.NewTicker(streamPingInterval)
	defer ping.Stop()

	for {
		select {
		case line, ok := <-lines:
			if !ok {
				return
			}
			if err := writeStream(conn, StreamMessage{Type: MessageLine, Line: line}); err != nil {
				return
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteTimeout)); err != nil {
				return
			}
		case <-done:
			return
		}
	}
}

func writeStream(conn *websocket.Conn, msg StreamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
	return conn.WriteJSON(msg)
}
