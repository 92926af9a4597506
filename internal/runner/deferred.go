package runner

import "container/heap"

// deferredCall is a callback waiting for game time to reach due.
type deferredCall struct {
	due float64
	seq uint64
	fn  func()
}

type deferredHeap []deferredCall

func (h deferredHeap) Len() int { return len(h) }

func (h deferredHeap) Less(i, j int) bool {
	if h[i].due != h[j].due {
		return h[i].due < h[j].due
	}
	return h[i].seq < h[j].seq
}

func (h deferredHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }

func (h *deferredHeap) Push(x any) { *h = append(*h, x.(deferredCall)) }

func (h *deferredHeap) Pop() any {
	old := *h
	n := len(old)
	c := old[n-1]
	old[n-1] = deferredCall{}
	*h = old[:n-1]
	return c
}

// DeferredQueue holds cooperative timers. Callbacks never preempt a frame:
// they run from Drain, in due order, with ties broken by scheduling order.
type DeferredQueue struct {
	calls deferredHeap
	seq   uint64
}

// Schedule registers fn to run once game time reaches due.
func (q *DeferredQueue) Schedule(due float64, fn func()) {
	q.seq++
	heap.Push(&q.calls, deferredCall{due: due, seq: q.seq, fn: fn})
}

// Drain runs every callback due at or before now and returns how many ran.
func (q *DeferredQueue) Drain(now float64) int {
	n := 0
	for len(q.calls) > 0 && q.calls[0].due <= now {
		c := heap.Pop(&q.calls).(deferredCall)
		c.fn()
		n++
	}
	return n
}

// Len returns the number of pending callbacks.
func (q *DeferredQueue) Len() int {
	return len(q.calls)
}

// Reset drops all pending callbacks.
func (q *DeferredQueue) Reset() {
	clear(q.calls)
	q.calls = q.calls[:0]
}
