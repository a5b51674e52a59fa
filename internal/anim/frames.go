package anim

// FrameQueue is a Scheduler whose frames are delivered by the host calling
// Flush, once per rendered frame. Callbacks scheduled while a flush is
// running are held for the next flush, matching requestAnimationFrame.
type FrameQueue struct {
	next    Token
	pending []queuedFrame
	// batch holds the tokens of the flush in progress that may still run.
	batch map[Token]struct{}
}

type queuedFrame struct {
	token Token
	fn    func(now float64)
}

// NewFrameQueue returns an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule queues fn for the next flush.
func (q *FrameQueue) Schedule(fn func(now float64)) Token {
	q.next++
	q.pending = append(q.pending, queuedFrame{token: q.next, fn: fn})
	return q.next
}

// Unschedule withdraws a queued callback, including one waiting later in the
// flush that is currently running. Unknown tokens are ignored.
func (q *FrameQueue) Unschedule(tok Token) {
	delete(q.batch, tok)
	for i, f := range q.pending {
		if f.token == tok {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
}

// Pending reports whether another frame is needed.
func (q *FrameQueue) Pending() bool {
	return len(q.pending) > 0
}

// Len returns the number of queued callbacks.
func (q *FrameQueue) Len() int {
	return len(q.pending)
}

// Flush runs every callback that was queued before the call, in order, and
// returns how many ran.
func (q *FrameQueue) Flush(now float64) int {
	frames := q.pending
	q.pending = nil
	q.batch = make(map[Token]struct{}, len(frames))
	for _, f := range frames {
		q.batch[f.token] = struct{}{}
	}
	defer func() { q.batch = nil }()

	ran := 0
	for _, f := range frames {
		if _, ok := q.batch[f.token]; !ok {
			continue
		}
		delete(q.batch, f.token)
		f.fn(now)
		ran++
	}
	return ran
}
