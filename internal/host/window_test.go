//go:build cgo

package host

import (
	"context"
	"errors"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"statue-viewer/internal/dom"
)

func TestWindowStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	closes := 0
	g := &windowGame{ctx: ctx, doc: dom.NewDocument(8, 8), onClose: func() { closes++ }}

	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Fatalf("Update err = %v; want ebiten.Termination", err)
	}
	g.close()
	if closes != 1 {
		t.Fatalf("onClose ran %d times; want 1", closes)
	}
}
