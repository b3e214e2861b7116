package overlay

// Ring is a fixed-capacity circular buffer that overwrites its oldest
// entry when full.
type Ring[T any] struct {
	buf   []T
	pos   int
	count int
}

// NewRing creates a ring with the given capacity (minimum 1).
func NewRing[T any](capacity int) *Ring[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Ring[T]{
		buf: make([]T, capacity),
	}
}

// Push adds a value, reporting whether an old one was overwritten.
func (r *Ring[T]) Push(val T) (dropped bool) {
	dropped = r.count == len(r.buf)
	r.buf[r.pos] = val
	r.pos = (r.pos + 1) % len(r.buf)
	if r.count < len(r.buf) {
		r.count++
	}
	return dropped
}

// Pop removes and returns the oldest value.
func (r *Ring[T]) Pop() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	start := (r.pos - r.count + len(r.buf)) % len(r.buf)
	val := r.buf[start]
	r.buf[start] = zero
	r.count--
	return val, true
}

// Values returns all stored values in chronological order.
func (r *Ring[T]) Values() []T {
	if r.count == 0 {
		return nil
	}
	result := make([]T, r.count)
	if r.count < len(r.buf) {
		start := (r.pos - r.count + len(r.buf)) % len(r.buf)
		for i := range result {
			result[i] = r.buf[(start+i)%len(r.buf)]
		}
	} else {
		n := copy(result, r.buf[r.pos:])
		copy(result[n:], r.buf[:r.pos])
	}
	return result
}

// Last returns the most recent value.
func (r *Ring[T]) Last() (T, bool) {
	var zero T
	if r.count == 0 {
		return zero, false
	}
	idx := (r.pos - 1 + len(r.buf)) % len(r.buf)
	return r.buf[idx], true
}

func (r *Ring[T]) Len() int {
	return r.count
}

func (r *Ring[T]) Cap() int {
	return len(r.buf)
}
