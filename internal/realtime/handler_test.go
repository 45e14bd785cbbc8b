package realtime

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/websocket"

	"github.com/mindfulme/ml-service/internal/sentiment"
	"github.com/mindfulme/ml-service/pkg/logging"
)

func newTestServer(t *testing.T) (*Handler, *httptest.Server) {
	t.Helper()
	h := NewHandler(sentiment.NewAnalyzer(), logging.New("error", ""))
	srv := httptest.NewServer(http.HandlerFunc(h.HandleWebSocket))
	t.Cleanup(srv.Close)
	return h, srv
}

func dial(t *testing.T, srv *httptest.Server, query string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/journal" + query
	conn, err := websocket.Dial(url, "", srv.URL)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func TestGenerateSessionID(t *testing.T) {
	s1 := generateSessionID()
	s2 := generateSessionID()
	assert.NotEmpty(t, s1)
	assert.NotEqual(t, s1, s2)
	assert.Len(t, s1, 32) // 16 bytes = 32 hex chars
}

func TestSessionAnnouncedOnConnect(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-1")

	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	assert.Equal(t, "session", msg.Type)
	assert.Equal(t, "sess-1", msg.SessionID)
}

func TestSessionIDGeneratedWhenAbsent(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "")

	var msg OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &msg))
	assert.Equal(t, "session", msg.Type)
	assert.NotEmpty(t, msg.SessionID)
}

func TestPingPong(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-2")

	var session OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &session))

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))
	var pong OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &pong))
	assert.Equal(t, "pong", pong.Type)
}

func TestTextFragmentAnalyzed(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-3")

	var session OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &session))

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{
		Type: "text",
		Text: "I feel happy and grateful today",
	}))

	var analysis OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &analysis))
	assert.Equal(t, "analysis", analysis.Type)
	assert.Equal(t, sentiment.LabelPositive, analysis.Sentiment)
	assert.False(t, analysis.IsCrisis)
	assert.NotEmpty(t, analysis.Timestamp)
}

func TestShortFragmentGetsFlatNeutral(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-4")

	var session OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &session))

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "text", Text: "hi"}))

	var analysis OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &analysis))
	assert.Equal(t, "analysis", analysis.Type)
	assert.Equal(t, sentiment.LabelNeutral, analysis.Sentiment)
	assert.Equal(t, 0.5, analysis.SentimentScore)
}

func TestCrisisFragmentFlagged(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-5")

	var session OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &session))

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{
		Type: "text",
		Text: "I want to die and cannot go on",
	}))

	var analysis OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &analysis))
	assert.True(t, analysis.IsCrisis)
}

func TestUnknownMessageTypeIgnored(t *testing.T) {
	_, srv := newTestServer(t)
	conn := dial(t, srv, "?session=sess-6")

	var session OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &session))

	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "bogus", Text: "ignored"}))
	require.NoError(t, websocket.JSON.Send(conn, InboundMessage{Type: "ping"}))

	// The bogus frame produces no reply; the next frame we see is the pong.
	var reply OutboundMessage
	require.NoError(t, websocket.JSON.Receive(conn, &reply))
	assert.Equal(t, "pong", reply.Type)
}
