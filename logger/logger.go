// Package logger writes timestamped, prefixed lines per subsystem.
package logger

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"
)

var (
	mu     sync.Mutex
	stream io.Writer = os.Stderr
)

// SetOutput swaps the destination, returning the previous one.
func SetOutput(w io.Writer) io.Writer {
	mu.Lock()
	defer mu.Unlock()
	prev := stream
	stream = w
	return prev
}

func log(prefix, msg string) {
	if n := len(msg); n > 0 && msg[n-1] == '\n' {
		msg = msg[:n-1]
	}
	timestamp := time.Now().Format("2006-01-02T15:04:05.000")

	mu.Lock()
	defer mu.Unlock()
	for _, line := range strings.Split(msg, "\n") {
		fmt.Fprintln(stream, timestamp+" "+prefix+line)
	}
}

type Context struct {
	Prefix string
}

func (c Context) Println(args ...interface{}) {
	log(c.Prefix, fmt.Sprintln(args...))
}

func (c Context) Printf(format string, args ...interface{}) {
	log(c.Prefix, fmt.Sprintf(format, args...))
}

var (
	HTTP = Context{" HTTP "}
	EDIT = Context{" EDIT "}
	MIDI = Context{" MIDI "}
	CAT  = Context{"  CAT "}
)
