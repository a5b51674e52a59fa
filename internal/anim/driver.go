// Package anim runs a physics model once per display frame until it settles.
//
// The driver never touches a clock or a platform frame API directly: frames
// come from an injected Scheduler, so the same loop runs under a terminal
// tick in the UI and under a manual queue in tests. Everything here is
// expected to run on a single goroutine.
package anim

// Model is anything that can be sampled once per frame.
type Model interface {
	X() float64
	DX() float64
	Done() bool
}

// Token identifies a scheduled frame callback.
type Token uint64

// Scheduler is a requestAnimationFrame-style frame source.
type Scheduler interface {
	Schedule(fn func(now float64)) Token
	Unschedule(tok Token)
}

// Handle controls one running animation.
type Handle struct {
	sched     Scheduler
	token     Token
	pending   bool
	running   bool
	cancelled bool
}

// Run samples m on every frame, calling onFrame each time. When m reports
// done after a frame, onFinish (if non-nil) is called once and the loop
// stops. Panics raised by the callbacks are not recovered.
//
// Only one handle should be live per model; callers cancel the previous
// handle before starting a new one.
func Run(s Scheduler, m Model, onFrame func(Model), onFinish func()) *Handle {
	h := &Handle{sched: s, running: true}

	var frame func(now float64)
	frame = func(float64) {
		h.pending = false
		if h.cancelled {
			return
		}
		if onFrame != nil {
			onFrame(m)
		}
		if h.cancelled {
			return
		}
		if !m.Done() {
			h.schedule(frame)
			return
		}
		h.running = false
		if onFinish != nil {
			onFinish()
		}
	}

	h.schedule(frame)
	return h
}

func (h *Handle) schedule(fn func(now float64)) {
	h.token = h.sched.Schedule(fn)
	h.pending = true
}

// Cancel stops the animation. It is safe to call more than once and on a
// handle that already finished.
func (h *Handle) Cancel() {
	if h == nil || h.cancelled {
		return
	}
	h.cancelled = true
	h.running = false
	if h.pending {
		h.sched.Unschedule(h.token)
		h.pending = false
	}
}

// Running reports whether frames are still being delivered.
func (h *Handle) Running() bool {
	return h != nil && h.running
}

// Cancelled reports whether Cancel was called.
func (h *Handle) Cancelled() bool {
	return h != nil && h.cancelled
}
