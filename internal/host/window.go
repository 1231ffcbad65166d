//go:build cgo

package host

import (
	"context"
	"errors"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"statue-viewer/internal/dom"
)

// RunWindow opens a desktop window showing doc's elements and feeding it
// cursor moves and one animation frame per tick. It blocks until the
// window is closed or ctx is done. onClose runs once, before RunWindow
// returns.
func RunWindow(ctx context.Context, doc *dom.Document, title string, onClose func()) error {
	w, h := doc.Viewport()
	g := &windowGame{ctx: ctx, doc: doc, onClose: onClose}
	ebiten.SetWindowTitle(title)
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetTPS(60)

	err := ebiten.RunGame(g)
	g.close()
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

type windowGame struct {
	ctx     context.Context
	doc     *dom.Document
	onClose func()
	closed  bool
	pointer pointerTracker

	screen  *ebiten.Image
	scratch []byte
}

func (g *windowGame) close() {
	if g.closed {
		return
	}
	g.closed = true
	if g.onClose != nil {
		g.onClose()
	}
}

func (g *windowGame) Update() error {
	if g.ctx.Err() != nil || ebiten.IsWindowBeingClosed() {
		g.close()
		return ebiten.Termination
	}
	w, h := g.doc.Viewport()
	x, y := ebiten.CursorPosition()
	if g.pointer.moved(x, y, w, h) {
		g.doc.DispatchPointerMove(float64(x), float64(y))
	}
	g.doc.RunFrame(time.Now())
	return nil
}

func (g *windowGame) Draw(screen *ebiten.Image) {
	for _, e := range g.doc.Elements() {
		img := e.Present()
		b := img.Bounds()
		if g.screen == nil || g.screen.Bounds().Dx() != b.Dx() || g.screen.Bounds().Dy() != b.Dy() {
			if g.screen != nil {
				g.screen.Deallocate()
			}
			g.screen = ebiten.NewImage(b.Dx(), b.Dy())
		}
		g.scratch = premultiply(g.scratch, img)
		g.screen.WritePixels(g.scratch)
		screen.DrawImage(g.screen, nil)
	}
}

func (g *windowGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.doc.Viewport()
}
