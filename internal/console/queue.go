// Package console provides the line-oriented front end: a non-blocking
// output queue, single-character command input and serial/terminal setup.
package console

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"
)

// DefaultQueueSize is the number of lines buffered before output is dropped.
const DefaultQueueSize = 256

// Queue buffers emitted lines so producers holding the trainer lock never
// wait on a slow sink.
type Queue struct {
	ch      chan string
	dropped atomic.Uint64
}

// NewQueue returns a queue holding up to size lines.
func NewQueue(size int) *Queue {
	if size <= 0 {
		size = DefaultQueueSize
	}
	return &Queue{ch: make(chan string, size)}
}

// Emit enqueues a line, dropping it when the queue is full.
func (q *Queue) Emit(line string) {
	select {
	case q.ch <- line:
	default:
		q.dropped.Add(1)
	}
}

// Lines exposes the queued lines to a single consumer.
func (q *Queue) Lines() <-chan string {
	return q.ch
}

// Dropped returns how many lines were discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	return q.dropped.Load()
}

// Drain writes queued lines to w, each followed by eol, until ctx is done.
// Lines still buffered at cancellation are flushed before returning.
func (q *Queue) Drain(ctx context.Context, w io.Writer, eol string) error {
	for {
		select {
		case line := <-q.ch:
			if err := writeLine(w, line, eol); err != nil {
				return err
			}
		case <-ctx.Done():
			for {
				select {
				case line := <-q.ch:
					if err := writeLine(w, line, eol); err != nil {
						return err
					}
				default:
					return nil
				}
			}
		}
	}
}

func writeLine(w io.Writer, line, eol string) error {
	if _, err := io.WriteString(w, line+eol); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
