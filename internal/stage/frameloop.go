package stage

// FrameFunc runs once per rendered frame with the capped delta.
type FrameFunc func(dt float64)

// FrameLoop is the per-frame callback registry driven by the host loop.
type FrameLoop struct {
	next  int
	order []int
	subs  map[int]FrameFunc
}

func NewFrameLoop() *FrameLoop {
	return &FrameLoop{subs: make(map[int]FrameFunc)}
}

// Register adds fn and returns its cancel func. Cancel is safe to call
// more than once.
func (fl *FrameLoop) Register(fn FrameFunc) (cancel func()) {
	id := fl.next
	fl.next++
	fl.subs[id] = fn
	fl.order = append(fl.order, id)
	return func() {
		if _, ok := fl.subs[id]; !ok {
			return
		}
		delete(fl.subs, id)
		for i, o := range fl.order {
			if o == id {
				fl.order = append(fl.order[:i], fl.order[i+1:]...)
				break
			}
		}
	}
}

// Run calls every registered callback in registration order.
func (fl *FrameLoop) Run(dt float64) {
	for _, id := range append([]int(nil), fl.order...) {
		if fn, ok := fl.subs[id]; ok {
			fn(dt)
		}
	}
}

// Len returns the number of live registrations.
func (fl *FrameLoop) Len() int { return len(fl.subs) }
