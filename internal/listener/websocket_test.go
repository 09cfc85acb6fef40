package listener

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bazoka/roomserver/internal/protocol"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWsReadWriter(t *testing.T) {
	frames := make(chan string, 4)
	done := make(chan struct{})

	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()

		rw := newWsReadWriter(conn)
		assert.NoError(t, protocol.WriteFrame(rw, protocol.Build("CONNECTED", "player-1")))

		scanner := protocol.NewScanner(rw)
		for scanner.Scan() {
			frames <- scanner.Text()
		}
		// A normal closure reads as EOF, ending the scan cleanly.
		assert.NoError(t, scanner.Err())
		close(done)
	}))
	defer srv.Close()

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer conn.Close()

	// Each outbound frame is one websocket text message.
	mt, data, err := conn.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)
	assert.Equal(t, "[CONNECTED;player-1]", string(data))

	// Inbound frames may be split across messages or doubled up in one;
	// the server side reassembles them.
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("[READY][CHA")))
	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("T;hi]")))

	assert.Equal(t, "READY", <-frames)
	assert.Equal(t, "CHAT;hi", <-frames)

	deadline := time.Now().Add(5 * time.Second)
	require.NoError(t, conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline))

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("server scan did not finish after close")
	}
}
