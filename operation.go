package pdfthumb

import (
	"context"

	"github.com/oklog/ulid/v2"
)

// RenderOperation is a completion token for an in-flight render. It resolves
// exactly once; waiting or selecting on Done after resolution returns the same
// result. Abandoning the token does not cancel the render.
type RenderOperation struct {
	id   ulid.ULID
	done chan struct{}
	buf  []byte
	err  error
}

// Done is closed when the render has completed or failed. It allows callers to
// multiplex completion with select.
func (op *RenderOperation) Done() <-chan struct{} {
	return op.done
}

// Wait blocks until the render completes and returns the encoded image bytes.
// If ctx is done first, Wait returns ctx.Err(); the render itself keeps
// running to completion.
func (op *RenderOperation) Wait(ctx context.Context) ([]byte, error) {
	select {
	case <-op.done:
		return op.buf, op.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (op *RenderOperation) resolve(buf []byte, err error) {
	op.buf = buf
	op.err = err
	close(op.done)
}

// OpenOperation is a completion token for an in-flight document open.
type OpenOperation struct {
	id   ulid.ULID
	done chan struct{}
	doc  *Document
	err  error
}

// Done is closed when the open has completed or failed.
func (op *OpenOperation) Done() <-chan struct{} {
	return op.done
}

// Wait blocks until the open completes and returns the loaded Document. If
// ctx is done first, Wait returns ctx.Err(); the open itself keeps running.
func (op *OpenOperation) Wait(ctx context.Context) (*Document, error) {
	select {
	case <-op.done:
		return op.doc, op.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

func (op *OpenOperation) resolve(doc *Document, err error) {
	op.doc = doc
	op.err = err
	close(op.done)
}

func newOperationID() ulid.ULID {
	return ulid.Make()
}
