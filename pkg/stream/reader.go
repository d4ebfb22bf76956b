package stream

import (
	"context"
	"io"
)

type fragmentReader struct {
	ctx context.Context
	src Fragments
	buf []byte
}

// NewReader adapts a fragment source into an io.Reader so byte-oriented
// consumers (such as an incremental JSON tokenizer) can pull from it. Read
// blocks whenever the source blocks and surfaces context cancellation as a
// read error.
func NewReader(ctx context.Context, src Fragments) io.Reader {
	if ctx == nil {
		ctx = context.Background()
	}

	return &fragmentReader{ctx: ctx, src: src}
}

func (r *fragmentReader) Read(p []byte) (int, error) {
	for len(r.buf) == 0 {
		fragment, err := r.src.Next(r.ctx)
		if err != nil {
			return 0, err
		}
		r.buf = append(r.buf, fragment...)
	}

	n := copy(p, r.buf)
	r.buf = r.buf[n:]

	return n, nil
}
