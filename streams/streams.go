// Package streams provides IOStreams adapters for settings.Store notices. A Store
// writes one line per event ("settings: saved to ...") to Out and warnings to ErrOut;
// the adapters here route those lines to writers, memory buffers, log/slog or logrus.
package streams

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

// IOStreams is the contract settings.WithStreams accepts. Types defined in other
// packages satisfy it implicitly.
type IOStreams interface {
	In() io.Reader
	Out() io.Writer
	ErrOut() io.Writer
}

// BasicIOStreams forwards writes to the supplied io.Writer targets.
type BasicIOStreams struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer
}

func (s BasicIOStreams) In() io.Reader     { return s.in }
func (s BasicIOStreams) Out() io.Writer    { return s.out }
func (s BasicIOStreams) ErrOut() io.Writer { return s.errOut }

// DefaultIOStreams returns a BasicIOStreams backed by os.Stdin, os.Stdout and os.Stderr.
func DefaultIOStreams() BasicIOStreams {
	return BasicIOStreams{in: os.Stdin, out: os.Stdout, errOut: os.Stderr}
}

// Writers returns a BasicIOStreams that writes Out to out and ErrOut to err.
func Writers(out, err io.Writer) BasicIOStreams {
	return BasicIOStreams{in: os.Stdin, out: out, errOut: err}
}

// Discard drops all output.
func Discard() BasicIOStreams {
	return Writers(io.Discard, io.Discard)
}

// BuffersStreams captures output into bytes.Buffers. It is not safe for
// concurrent writers; see ThreadSafeBuffers.
type BuffersStreams struct {
	InR    io.Reader
	OutBuf *bytes.Buffer
	ErrBuf *bytes.Buffer
}

// Buffers creates a BuffersStreams with fresh buffers.
func Buffers() *BuffersStreams {
	return &BuffersStreams{InR: os.Stdin, OutBuf: &bytes.Buffer{}, ErrBuf: &bytes.Buffer{}}
}

func (b *BuffersStreams) In() io.Reader     { return b.InR }
func (b *BuffersStreams) Out() io.Writer    { return b.OutBuf }
func (b *BuffersStreams) ErrOut() io.Writer { return b.ErrBuf }

// Strings returns the current contents of the Out and ErrOut buffers.
func (b *BuffersStreams) Strings() (out, err string) {
	return b.OutBuf.String(), b.ErrBuf.String()
}

// Reset clears both buffers.
func (b *BuffersStreams) Reset() {
	b.OutBuf.Reset()
	b.ErrBuf.Reset()
}

type tsBuf struct {
	mu sync.Mutex
	b  bytes.Buffer
}

func (t *tsBuf) Write(p []byte) (int, error) { t.mu.Lock(); defer t.mu.Unlock(); return t.b.Write(p) }
func (t *tsBuf) String() string              { t.mu.Lock(); defer t.mu.Unlock(); return t.b.String() }
func (t *tsBuf) Reset()                      { t.mu.Lock(); defer t.mu.Unlock(); t.b.Reset() }

// ThreadSafeBuffersStreams captures output into mutex-protected buffers.
type ThreadSafeBuffersStreams struct {
	InR    io.Reader
	OutBuf *tsBuf
	ErrBuf *tsBuf
}

// ThreadSafeBuffers creates a ThreadSafeBuffersStreams with fresh buffers.
func ThreadSafeBuffers() *ThreadSafeBuffersStreams {
	return &ThreadSafeBuffersStreams{InR: os.Stdin, OutBuf: &tsBuf{}, ErrBuf: &tsBuf{}}
}

func (b *ThreadSafeBuffersStreams) In() io.Reader     { return b.InR }
func (b *ThreadSafeBuffersStreams) Out() io.Writer    { return b.OutBuf }
func (b *ThreadSafeBuffersStreams) ErrOut() io.Writer { return b.ErrBuf }

// Strings returns the current contents of the Out and ErrOut buffers.
func (b *ThreadSafeBuffersStreams) Strings() (string, string) {
	return b.OutBuf.String(), b.ErrBuf.String()
}

// Reset clears both buffers.
func (b *ThreadSafeBuffersStreams) Reset() { b.OutBuf.Reset(); b.ErrBuf.Reset() }

// trimNewline drops one trailing newline so each Write becomes one log record.
func trimNewline(p []byte) []byte {
	if n := len(p); n > 0 && p[n-1] == '\n' {
		return p[:n-1]
	}
	return p
}

type slogWriter struct {
	l     *slog.Logger
	level slog.Level
}

func (w slogWriter) Write(p []byte) (int, error) {
	w.l.Log(context.Background(), w.level, string(trimNewline(p)))
	return len(p), nil
}

// Slog routes Out to l at the info level and ErrOut to l at the err level.
func Slog(l *slog.Logger, info, err slog.Level) BasicIOStreams {
	return BasicIOStreams{
		in:     os.Stdin,
		out:    slogWriter{l: l, level: info},
		errOut: slogWriter{l: l, level: err},
	}
}

type logrusWriter struct {
	entry *logrus.Entry
	level logrus.Level
}

func (w logrusWriter) Write(p []byte) (int, error) {
	w.entry.Log(w.level, string(trimNewline(p)))
	return len(p), nil
}

// Logrus routes Out to l at the info level and ErrOut at the err level. Every
// record carries the field component=settings.
func Logrus(l *logrus.Logger, info, err logrus.Level) BasicIOStreams {
	entry := l.WithField("component", "settings")
	return BasicIOStreams{
		in:     os.Stdin,
		out:    logrusWriter{entry: entry, level: info},
		errOut: logrusWriter{entry: entry, level: err},
	}
}
