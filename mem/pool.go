package mem

import (
	"sync"
)

// MaxPooledSize is the capacity above which a buffer is not returned to the pool.
const MaxPooledSize = 64 * 1024

type BufferPool struct {
	pool sync.Pool
}

func NewBufferPool() *BufferPool {
	p := &BufferPool{
		pool: sync.Pool{
			New: func() any {
				return &Buffer{
					data: make([]byte, 0, 64),
				}
			},
		},
	}

	return p
}

func (p *BufferPool) Get() *Buffer {
	buf := p.pool.Get().(*Buffer)
	buf.Reset()

	return buf
}

// Put returns the buffer to the pool. The buffer must not be used afterwards.
func (p *BufferPool) Put(buf *Buffer) {
	if buf.Cap() > MaxPooledSize {
		return
	}

	p.pool.Put(buf)
}

var DefaultBufferPool *BufferPool

func init() {
	DefaultBufferPool = NewBufferPool()
}

func Get() *Buffer {
	return DefaultBufferPool.Get()
}

func Put(buf *Buffer) {
	DefaultBufferPool.Put(buf)
}
