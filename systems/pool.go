package systems

import "github.com/pthm-cable/rainy/components"

// DropPool is a bounded LIFO free list of retired drops.
//
// Release evicts from the top of the stack while the pool is full, so the
// most recently pooled drop is the one discarded, not the oldest.
type DropPool struct {
	free      []*components.Drop
	capacity  int
	allocated int
}

// NewDropPool creates a pool holding at most capacity retired drops.
func NewDropPool(capacity int) *DropPool {
	if capacity < 0 {
		capacity = 0
	}
	return &DropPool{
		free:     make([]*components.Drop, 0, capacity),
		capacity: capacity,
	}
}

// Obtain returns a pooled drop, or a fresh zeroed one if the pool is empty.
// The caller overwrites every field.
func (p *DropPool) Obtain() *components.Drop {
	n := len(p.free)
	if n == 0 {
		p.allocated++
		return &components.Drop{}
	}
	d := p.free[n-1]
	p.free[n-1] = nil
	p.free = p.free[:n-1]
	return d
}

// Release returns d to the pool.
func (p *DropPool) Release(d *components.Drop) {
	if d == nil {
		return
	}
	if p.capacity <= 0 {
		return
	}
	for len(p.free) >= p.capacity {
		n := len(p.free)
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	}
	p.free = append(p.free, d)
}

// SetCapacity changes the pool bound, evicting from the top if the pool is
// now over it.
func (p *DropPool) SetCapacity(capacity int) {
	if capacity < 0 {
		capacity = 0
	}
	p.capacity = capacity
	for len(p.free) > capacity {
		n := len(p.free)
		p.free[n-1] = nil
		p.free = p.free[:n-1]
	}
}

// Clear drops every pooled instance.
func (p *DropPool) Clear() {
	clear(p.free)
	p.free = p.free[:0]
}

// Len returns the number of pooled drops.
func (p *DropPool) Len() int {
	return len(p.free)
}

// Capacity returns the pool bound.
func (p *DropPool) Capacity() int {
	return p.capacity
}

// Allocated returns how many drops Obtain has had to allocate.
func (p *DropPool) Allocated() int {
	return p.allocated
}
