// Package stream models the lazy fragment sequences the translator consumes:
// an ordered pull of text fragments that may block on a live producer and can
// be cancelled from either end.
package stream

import (
	"context"
	"io"
	"sync"
)

const defaultBufferSize = 16

// Fragments is a pull-based sequence of text fragments. Next blocks until a
// fragment is available, the sequence ends (io.EOF), or the context is done.
// Close releases the upstream producer; Next after Close reports io.EOF.
type Fragments interface {
	Next(ctx context.Context) (string, error)
	Close() error
}

type sliceSource struct {
	mu        sync.Mutex
	fragments []string
	pos       int
	closed    bool
}

// FromSlice returns a fragment source that replays the given fragments in
// order. It never blocks.
func FromSlice(fragments []string) Fragments {
	return &sliceSource{fragments: fragments}
}

// FromString returns a fragment source yielding the whole text as one fragment.
func FromString(text string) Fragments {
	return FromSlice([]string{text})
}

func (s *sliceSource) Next(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.pos >= len(s.fragments) {
		return "", io.EOF
	}

	fragment := s.fragments[s.pos]
	s.pos++

	return fragment, nil
}

func (s *sliceSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true

	return nil
}

// Pipe connects a live producer (e.g. a model token callback) to a Fragments
// consumer. Push blocks when the buffer is full; Close on the consumer side
// unblocks and permanently rejects the producer.
type Pipe struct {
	fragments chan string

	sendDone  chan struct{}
	sendOnce  sync.Once
	done      chan struct{}
	closeOnce sync.Once
}

// NewPipe creates a pipe with a small fragment buffer.
func NewPipe() *Pipe {
	return &Pipe{
		fragments: make(chan string, defaultBufferSize),
		sendDone:  make(chan struct{}),
		done:      make(chan struct{}),
	}
}

// Push offers a fragment to the consumer. It reports false when the consumer
// closed the pipe or the context ended, signalling the producer to stop.
func (p *Pipe) Push(ctx context.Context, fragment string) bool {
	if ctx == nil {
		ctx = context.Background()
	}

	select {
	case <-ctx.Done():
		return false
	case <-p.done:
		return false
	case p.fragments <- fragment:
		return true
	}
}

// CloseSend marks the producer side finished; pending fragments remain
// readable and Next reports io.EOF once they are drained.
func (p *Pipe) CloseSend() {
	p.sendOnce.Do(func() { close(p.sendDone) })
}

func (p *Pipe) Next(ctx context.Context) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	// Drain buffered fragments before honoring a finished producer.
	select {
	case fragment := <-p.fragments:
		return fragment, nil
	default:
	}

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-p.done:
		return "", io.EOF
	case fragment := <-p.fragments:
		return fragment, nil
	case <-p.sendDone:
		select {
		case fragment := <-p.fragments:
			return fragment, nil
		default:
			return "", io.EOF
		}
	}
}

func (p *Pipe) Close() error {
	p.closeOnce.Do(func() { close(p.done) })

	return nil
}
