package listener

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// WebsocketListener serves the bracket protocol over websocket text
// messages. A message may carry any number of frames or part of one; the
// session's scanner reassembles them like any other byte stream.
type WebsocketListener struct {
	port     uint16
	cm       *ConnectionManager
	upgrader websocket.Upgrader
}

func NewWebsocketListener(port uint16, cm *ConnectionManager) *WebsocketListener {
	return &WebsocketListener{
		port: port,
		cm:   cm,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (l *WebsocketListener) Start(ctx context.Context) error {
	connCtx, cancelConns := context.WithCancel(context.Background())
	var wg sync.WaitGroup

	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.upgrader.Upgrade(w, r, nil)
		if err != nil {
			slog.WarnContext(r.Context(), "upgrading websocket", "error", err)
			return
		}
		defer conn.Close()

		wg.Add(1)
		defer wg.Done()
		l.cm.AcceptConnection(connCtx, newWsReadWriter(conn))
	})

	svr := &http.Server{
		Addr:    fmt.Sprintf(":%d", l.port),
		Handler: mux,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := svr.Shutdown(shutdownCtx); err != nil {
			slog.WarnContext(ctx, "shutting down websocket server", "error", err)
		}
		cancelConns()
	}()

	slog.InfoContext(ctx, "listening for websocket", "port", l.port)

	err := svr.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serving websocket on port %d: %w", l.port, err)
	}

	wg.Wait()
	return nil
}

// wsReadWriter adapts a websocket connection to the byte-stream interface
// the session layer expects.
type wsReadWriter struct {
	conn *websocket.Conn
	rest []byte
}

func newWsReadWriter(conn *websocket.Conn) *wsReadWriter {
	return &wsReadWriter{conn: conn}
}

func (w *wsReadWriter) Read(p []byte) (int, error) {
	if len(w.rest) == 0 {
		_, data, err := w.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return 0, io.EOF
			}
			return 0, err
		}
		w.rest = data
	}

	n := copy(p, w.rest)
	w.rest = w.rest[n:]
	return n, nil
}

func (w *wsReadWriter) Write(p []byte) (int, error) {
	if err := w.conn.WriteMessage(websocket.TextMessage, p); err != nil {
		return 0, err
	}
	return len(p), nil
}
