package protocol

import (
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/pixil98/go-testutil"
)

func scanAll(t *testing.T, input string, chunked bool) []string {
	t.Helper()

	var src io.Reader = strings.NewReader(input)
	if chunked {
		src = iotest.OneByteReader(src)
	}

	s := NewScanner(src)
	var frames []string
	for s.Scan() {
		frames = append(frames, s.Text())
	}
	if err := s.Err(); err != nil {
		t.Fatalf("unexpected scan error: %v", err)
	}
	return frames
}

func TestScannerFrames(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   []string
	}{
		"single frame": {
			input: "[READY]",
			exp:   []string{"READY"},
		},
		"multiple frames in one read": {
			input: "[READY][CANCEL][CHAT;hi there]",
			exp:   []string{"READY", "CANCEL", "CHAT;hi there"},
		},
		"junk between frames discarded": {
			input: "\r\n[READY]garbage[CANCEL]\n",
			exp:   []string{"READY", "CANCEL"},
		},
		"payload keeps separators": {
			input: "[CHAT;hello;world]",
			exp:   []string{"CHAT;hello;world"},
		},
		"truncated trailing frame dropped": {
			input: "[READY][CAN",
			exp:   []string{"READY"},
		},
		"empty input": {
			input: "",
			exp:   nil,
		},
		"only junk": {
			input: "no frames here",
			exp:   nil,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			// The framing must not depend on how the transport chunks its
			// reads, so every case runs whole and one byte at a time.
			for mode, chunked := range map[string]bool{"whole": false, "byte-at-a-time": true} {
				frames := scanAll(t, tt.input, chunked)
				testutil.AssertEqual(t, mode+" frame count", len(frames), len(tt.exp))
				for i := range tt.exp {
					testutil.AssertEqual(t, mode+" frame", frames[i], tt.exp[i])
				}
			}
		})
	}
}

func TestWriteFrame(t *testing.T) {
	var sb strings.Builder
	if err := WriteFrame(&sb, Build(MsgJoinedRoom, "arena")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "frame", sb.String(), "[JOINEDROOM;arena]")
}
