package listener

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/google/uuid"
)

// SessionRunner owns an accepted connection until it closes.
type SessionRunner interface {
	Run(ctx context.Context, conn io.ReadWriter) error
}

// ConnectionManager hands accepted connections to the session layer,
// whatever transport they arrived on.
type ConnectionManager struct {
	sessions SessionRunner
}

func NewConnectionManager(sessions SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		sessions: sessions,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	id := uuid.NewString()
	slog.InfoContext(ctx, "accepted connection", "conn", id)

	err := m.sessions.Run(ctx, conn)
	if err != nil && !errors.Is(err, context.Canceled) {
		slog.WarnContext(ctx, "session ended", "conn", id, "error", err)
	}
}
