// Package notify delivers watcher notifications to their destination.
package notify

import (
	"fmt"
	"io"
)

// Notifier sends one text message to the configured destination. A send
// failure affects only that message; callers log it and move on.
type Notifier interface {
	Send(text string) error
}

// Writer emits notifications as plain lines, used in mock mode and handy
// in tests.
type Writer struct {
	Out io.Writer
}

func (w *Writer) Send(text string) error {
	_, err := fmt.Fprintln(w.Out, text)
	return err
}
