// Package demo holds the payloads exercised by cmd/soledemo.
package demo

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/rs/xid"
)

// Output receives everything the demo payloads print.
var Output io.Writer = os.Stdout

// MessageLogger prints numbered messages tagged with the logger's own id, so
// the output shows which instance served each call.
type MessageLogger struct {
	mu    sync.Mutex
	id    string
	count int
}

func (l *MessageLogger) Init() error {
	l.id = xid.New().String()
	fmt.Fprintf(Output, "logger %s created\n", l.id)
	return nil
}

// Log prints msg.
func (l *MessageLogger) Log(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.count++
	fmt.Fprintf(Output, "[%s #%d] %s\n", l.id, l.count, msg)
}

// ID returns the logger's instance id.
func (l *MessageLogger) ID() string {
	return l.id
}

// Count returns how many messages were logged.
func (l *MessageLogger) Count() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}

func (l *MessageLogger) Close() error {
	fmt.Fprintf(Output, "logger %s closed after %d messages\n", l.id, l.Count())
	return nil
}
