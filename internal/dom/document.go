// Package dom models the host document a scene session lives in: the
// viewport, the elements shown in it, pointer listeners and the
// animation frame queue. A Document is not safe for concurrent use;
// only the host loop touches it.
package dom

import (
	"image"
	"slices"
	"time"
)

// Element is something the document displays.
type Element interface {
	// Present returns the element's current image at viewport size.
	Present() *image.NRGBA
}

// PointerEvent is a pointer position in viewport pixels.
type PointerEvent struct {
	X, Y float64
}

// ListenerID identifies a registered pointer listener.
type ListenerID int

// FrameID identifies a pending animation frame request.
type FrameID int

// FrameCallback runs once on an animation frame.
type FrameCallback func(now time.Time)

type listener struct {
	id ListenerID
	fn func(PointerEvent)
}

type frameRequest struct {
	id FrameID
	fn FrameCallback
}

// Document is the viewport plus its elements and callbacks.
type Document struct {
	width, height int

	elements  []Element
	listeners []listener
	frames    []frameRequest
	running   []frameRequest

	nextListener ListenerID
	nextFrame    FrameID
}

// NewDocument returns an empty document with a w×h viewport.
func NewDocument(w, h int) *Document {
	return &Document{width: w, height: h}
}

// Viewport returns the viewport size in pixels.
func (d *Document) Viewport() (w, h int) { return d.width, d.height }

// Attach appends e to the document. Attaching an element twice is a no-op.
func (d *Document) Attach(e Element) {
	if !slices.Contains(d.elements, e) {
		d.elements = append(d.elements, e)
	}
}

// Detach removes e and reports whether it was attached.
func (d *Document) Detach(e Element) bool {
	i := slices.Index(d.elements, e)
	if i < 0 {
		return false
	}
	d.elements = slices.Delete(d.elements, i, i+1)
	return true
}

// Elements returns the attached elements in attach order.
func (d *Document) Elements() []Element { return slices.Clone(d.elements) }

// AddPointerListener registers fn for pointer-move events.
func (d *Document) AddPointerListener(fn func(PointerEvent)) ListenerID {
	d.nextListener++
	d.listeners = append(d.listeners, listener{id: d.nextListener, fn: fn})
	return d.nextListener
}

// RemovePointerListener unregisters id and reports whether it was registered.
func (d *Document) RemovePointerListener(id ListenerID) bool {
	i := slices.IndexFunc(d.listeners, func(l listener) bool { return l.id == id })
	if i < 0 {
		return false
	}
	d.listeners = slices.Delete(d.listeners, i, i+1)
	return true
}

// PointerListeners returns the number of registered pointer listeners.
func (d *Document) PointerListeners() int { return len(d.listeners) }

// DispatchPointerMove delivers a pointer-move event to every listener
// registered at the time of the call.
func (d *Document) DispatchPointerMove(x, y float64) {
	ev := PointerEvent{X: x, Y: y}
	for _, l := range slices.Clone(d.listeners) {
		l.fn(ev)
	}
}

// RequestAnimationFrame queues fn for the next RunFrame.
func (d *Document) RequestAnimationFrame(fn FrameCallback) FrameID {
	d.nextFrame++
	d.frames = append(d.frames, frameRequest{id: d.nextFrame, fn: fn})
	return d.nextFrame
}

// CancelAnimationFrame drops a pending request, including one queued
// for the frame currently running. Unknown ids are ignored.
func (d *Document) CancelAnimationFrame(id FrameID) {
	d.frames = slices.DeleteFunc(d.frames, func(r frameRequest) bool { return r.id == id })
	for i := range d.running {
		if d.running[i].id == id {
			d.running[i].fn = nil
		}
	}
}

// PendingFrames returns the number of queued frame requests.
func (d *Document) PendingFrames() int { return len(d.frames) }

// RunFrame runs the callbacks queued before this call and returns how
// many ran. Callbacks queued while it runs wait for the next frame.
func (d *Document) RunFrame(now time.Time) int {
	d.running, d.frames = d.frames, nil
	defer func() { d.running = nil }()

	ran := 0
	for i := range d.running {
		if fn := d.running[i].fn; fn != nil {
			fn(now)
			ran++
		}
	}
	return ran
}
