//go:build !cgo

package host

import (
	"context"
	"errors"

	"statue-viewer/internal/dom"
)

// RunWindow is unavailable without cgo.
func RunWindow(_ context.Context, _ *dom.Document, _ string, _ func()) error {
	return errors.New("host: window mode requires cgo (build/run with CGO_ENABLED=1)")
}
