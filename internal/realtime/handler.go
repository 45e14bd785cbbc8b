// Package realtime streams sentiment feedback to journal clients over
// WebSocket while the user is still typing.
package realtime

import (
	"crypto/rand"
	"encoding/hex"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/net/websocket"

	"github.com/mindfulme/ml-service/internal/sentiment"
	"github.com/mindfulme/ml-service/pkg/logging"
)

// minFragmentLen is the shortest fragment worth scoring; anything shorter
// gets a flat neutral so the widget does not flicker on the first keystrokes.
const minFragmentLen = 3

// Handler manages live journal connections.
type Handler struct {
	analyzer *sentiment.Analyzer
	logger   *logging.Logger

	mu       sync.RWMutex
	sessions map[string]*wsConn // sessionID -> active connection
}

type wsConn struct {
	conn *websocket.Conn
	done chan struct{}
}

// InboundMessage is what the journal widget sends.
type InboundMessage struct {
	Type      string `json:"type"` // "text", "ping"
	SessionID string `json:"sessionId"`
	Text      string `json:"text"`
}

// OutboundMessage is what we send to the widget.
type OutboundMessage struct {
	Type           string  `json:"type"` // "analysis", "session", "pong", "error"
	SessionID      string  `json:"sessionId,omitempty"`
	SentimentScore float64 `json:"sentimentScore,omitempty"`
	Sentiment      string  `json:"sentiment,omitempty"`
	IsCrisis       bool    `json:"isCrisis,omitempty"`
	Text           string  `json:"text,omitempty"`
	Timestamp      string  `json:"timestamp,omitempty"`
}

// NewHandler creates a live journal handler.
func NewHandler(analyzer *sentiment.Analyzer, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{
		analyzer: analyzer,
		logger:   logger,
		sessions: make(map[string]*wsConn),
	}
}

// generateSessionID creates a random session identifier.
func generateSessionID() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return hex.EncodeToString(b)
}

// HandleWebSocket upgrades to WebSocket and streams analysis results.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		sessionID = generateSessionID()
	}

	_ = websocket.JSON.Send(conn, OutboundMessage{
		Type:      "session",
		SessionID: sessionID,
	})

	wsc := &wsConn{conn: conn, done: make(chan struct{})}
	h.mu.Lock()
	h.sessions[sessionID] = wsc
	h.mu.Unlock()
	defer func() {
		h.mu.Lock()
		if h.sessions[sessionID] == wsc {
			delete(h.sessions, sessionID)
		}
		h.mu.Unlock()
		close(wsc.done)
	}()

	h.logger.Info("realtime: connection opened", "session_id", sessionID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("realtime: connection closed", "session_id", sessionID, "error", err)
			return
		}

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}

		if msg.Type != "text" {
			continue
		}

		_ = websocket.JSON.Send(conn, h.analyzeFragment(msg.Text))
	}
}

// analyzeFragment scores one typed fragment. Crisis language is checked on
// every fragment so the widget can surface help resources immediately.
func (h *Handler) analyzeFragment(text string) OutboundMessage {
	out := OutboundMessage{
		Type:      "analysis",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}

	if len(strings.TrimSpace(text)) < minFragmentLen {
		out.SentimentScore = 0.5
		out.Sentiment = sentiment.LabelNeutral
		return out
	}

	analysis := h.analyzer.Analyze(text)
	out.SentimentScore = analysis.SentimentScore
	out.Sentiment = analysis.Sentiment
	out.IsCrisis = analysis.IsCrisis
	if analysis.IsCrisis {
		h.logger.Warn("realtime: crisis language detected")
	}
	return out
}

// ActiveSessions reports how many connections are currently open.
func (h *Handler) ActiveSessions() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions)
}
