package dom

import (
	"image"
	"testing"
	"time"
)

type fakeElement struct{ name string }

func (e *fakeElement) Present() *image.NRGBA { return image.NewNRGBA(image.Rect(0, 0, 1, 1)) }

func TestAttachDetach(t *testing.T) {
	d := NewDocument(640, 480)
	a, b := &fakeElement{"a"}, &fakeElement{"b"}

	d.Attach(a)
	d.Attach(b)
	d.Attach(a)
	if got := d.Elements(); len(got) != 2 || got[0] != a || got[1] != b {
		t.Fatalf("Elements = %v; want [a b]", got)
	}
	if !d.Detach(a) {
		t.Fatal("Detach(a) = false")
	}
	if d.Detach(a) {
		t.Fatal("second Detach(a) = true")
	}
	if got := d.Elements(); len(got) != 1 || got[0] != b {
		t.Fatalf("Elements = %v; want [b]", got)
	}
}

func TestPointerListeners(t *testing.T) {
	d := NewDocument(640, 480)
	var got []PointerEvent
	var other int
	id := d.AddPointerListener(func(ev PointerEvent) { got = append(got, ev) })
	d.AddPointerListener(func(PointerEvent) { other++ })

	d.DispatchPointerMove(10, 20)
	if len(got) != 1 || got[0] != (PointerEvent{X: 10, Y: 20}) || other != 1 {
		t.Fatalf("after dispatch: got %v other %d", got, other)
	}

	if !d.RemovePointerListener(id) {
		t.Fatal("RemovePointerListener = false")
	}
	if d.RemovePointerListener(id) {
		t.Fatal("second RemovePointerListener = true")
	}
	d.DispatchPointerMove(30, 40)
	if len(got) != 1 {
		t.Fatalf("removed listener still called: %v", got)
	}
	if other != 2 || d.PointerListeners() != 1 {
		t.Fatalf("other = %d, listeners = %d", other, d.PointerListeners())
	}
}

func TestRunFrameDefersRequestsMadeDuringFrame(t *testing.T) {
	d := NewDocument(1, 1)
	runs := 0
	var tick FrameCallback
	tick = func(time.Time) {
		runs++
		d.RequestAnimationFrame(tick)
	}
	d.RequestAnimationFrame(tick)

	for i := 1; i <= 3; i++ {
		if n := d.RunFrame(time.Now()); n != 1 {
			t.Fatalf("frame %d ran %d callbacks; want 1", i, n)
		}
		if runs != i {
			t.Fatalf("runs = %d after frame %d", runs, i)
		}
	}
	if d.PendingFrames() != 1 {
		t.Fatalf("PendingFrames = %d; want 1", d.PendingFrames())
	}
}

func TestCancelAnimationFrame(t *testing.T) {
	d := NewDocument(1, 1)
	ran := map[string]bool{}
	var second FrameID
	d.RequestAnimationFrame(func(time.Time) {
		ran["first"] = true
		d.CancelAnimationFrame(second)
	})
	second = d.RequestAnimationFrame(func(time.Time) { ran["second"] = true })
	dropped := d.RequestAnimationFrame(func(time.Time) { ran["dropped"] = true })
	d.CancelAnimationFrame(dropped)
	d.CancelAnimationFrame(999)

	if n := d.RunFrame(time.Now()); n != 1 {
		t.Fatalf("RunFrame ran %d; want 1", n)
	}
	if !ran["first"] || ran["second"] || ran["dropped"] {
		t.Fatalf("ran = %v", ran)
	}
	if d.PendingFrames() != 0 {
		t.Fatalf("PendingFrames = %d", d.PendingFrames())
	}
}
