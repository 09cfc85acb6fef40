package protocol

import (
	"bufio"
	"bytes"
	"io"
)

// Frames are bracket-delimited: '[' opens a command, ']' closes it, and
// neither delimiter may appear inside a payload. splitFrames assembles
// complete frames regardless of how the transport chunks its reads, so a
// frame split across reads and several frames arriving in one read both
// dispatch correctly. Bytes between frames are discarded.
func splitFrames(data []byte, atEOF bool) (int, []byte, error) {
	start := bytes.IndexByte(data, '[')
	if start < 0 {
		// No opener: everything buffered so far is junk between frames.
		return len(data), nil, nil
	}

	end := bytes.IndexByte(data[start:], ']')
	if end < 0 {
		if atEOF {
			// Truncated frame at end of stream, drop it.
			return len(data), nil, nil
		}
		if start > 0 {
			// Discard the junk before the opener, keep waiting for ']'.
			return start, nil, nil
		}
		return 0, nil, nil
	}

	return start + end + 1, data[start+1 : start+end], nil
}

// NewScanner returns a scanner that yields one complete frame payload
// (without the surrounding brackets) per Scan.
func NewScanner(r io.Reader) *bufio.Scanner {
	s := bufio.NewScanner(r)
	s.Split(splitFrames)
	return s
}

// WriteFrame writes msg as a single bracket-delimited frame in one write.
func WriteFrame(w io.Writer, msg []byte) error {
	buf := make([]byte, 0, len(msg)+2)
	buf = append(buf, '[')
	buf = append(buf, msg...)
	buf = append(buf, ']')
	_, err := w.Write(buf)
	return err
}
