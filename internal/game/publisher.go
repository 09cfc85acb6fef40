package game

import "fmt"

// Publisher delivers a message to a single subject. The embedded NATS server
// implements it; tests substitute a recorder.
type Publisher interface {
	Publish(subject string, data []byte) error
}

// PlayerSubject is the per-player delivery subject. Each session subscribes
// to its own subject and every broadcast publishes to the subjects of its
// targets, so a slow connection never blocks the sender.
func PlayerSubject(name string) string {
	return fmt.Sprintf("player.%s", name)
}
