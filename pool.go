package nlcmp

import (
	"sync"

	"git.fractalqb.de/fractalqb/icontainer/islist"
)

// Buffer is scratch capacity handed out by a Pool.
type Buffer struct {
	B []byte

	islsNext *Buffer
}

// Set replaces the buffer's content with a copy of p.
func (b *Buffer) Set(p []byte) []byte {
	b.B = append(b.B[:0], p...)
	return b.B
}

// ListNext to implement intrusive singly linked list
func (b *Buffer) ListNext() islist.Node {
	if b.islsNext == nil {
		return nil
	}
	return b.islsNext
}

// SetListNext to implement intrusive singly linked list
func (b *Buffer) SetListNext(n islist.Node) {
	if n == nil {
		b.islsNext = nil
	} else {
		b.islsNext = n.(*Buffer)
	}
}

// Pool is a free list of Buffers. It only keeps capacity, buffers always come
// out of the pool empty. The zero value is ready to use and a Pool is safe for
// concurrent use.
type Pool struct {
	mu   sync.Mutex
	free *islist.List
	// buffers created by Get
	made int
}

func (p *Pool) Get() *Buffer {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.free == nil || p.free.Len() == 0 {
		p.made++
		return new(Buffer)
	}
	b := p.free.Front().(*Buffer)
	p.free.Drop(1)
	b.islsNext = nil
	return b
}

func (p *Pool) Put(b *Buffer) {
	if b == nil {
		return
	}
	b.B = b.B[:0]
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.free == nil {
		p.free = islist.New(b)
	} else {
		p.free.PushBack(b)
	}
}

// Len returns the number of buffers waiting in the pool.
func (p *Pool) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.free == nil {
		return 0
	}
	return p.free.Len()
}
