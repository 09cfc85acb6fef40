package session

import (
	"context"
	"io"

	"github.com/bazoka/roomserver/internal/game"
	"github.com/bazoka/roomserver/internal/protocol"
)

// Session pumps one connection: a reader goroutine feeds complete frames
// into a channel, and the loop below multiplexes them with messages arriving
// on the player's delivery subject. All writes to the connection happen on
// this goroutine, so frames never interleave.
type Session struct {
	conn   io.ReadWriter
	player *game.Player
	disp   *Dispatcher
	msgs   <-chan []byte
}

func (s *Session) Run(ctx context.Context) error {
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		scanner := protocol.NewScanner(s.conn)
		for scanner.Scan() {
			inputChan <- scanner.Text()
		}
		inputErrChan <- scanner.Err()
		close(inputChan)
	}()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case data := <-s.msgs:
			if err := protocol.WriteFrame(s.conn, data); err != nil {
				return err
			}

		case frame, ok := <-inputChan:
			if !ok {
				// Connection lost; the caller runs disconnect cleanup.
				select {
				case err := <-inputErrChan:
					return err
				default:
					return nil
				}
			}

			for _, reply := range s.disp.Dispatch(ctx, s.player, frame) {
				if err := protocol.WriteFrame(s.conn, reply); err != nil {
					return err
				}
			}
		}
	}
}
