package synth

// pendingRelease 已排期的释放
type pendingRelease struct {
	id int
	at float64
}

// Pool 触摸点编号池
//
// 空闲编号按先进先出分配；释放只在 Sweep 时生效，保证一个手指真正抬起
// 之前它的编号不会被复用。pending 按排期顺序保存。
type Pool struct {
	free    []int
	pending []pendingRelease
}

// NewPool 创建装满 0..PoolSize-1 的编号池
func NewPool() *Pool {
	p := &Pool{free: make([]int, 0, PoolSize)}
	for id := 0; id < PoolSize; id++ {
		p.free = append(p.free, id)
	}
	return p
}

// Allocate 取出最早空闲的编号
func (p *Pool) Allocate() (int, error) {
	if len(p.free) == 0 {
		return 0, &PoolExhaustedError{Tick: -1, Size: PoolSize}
	}
	id := p.free[0]
	p.free = p.free[1:]
	return id, nil
}

// Release 把编号放回队尾，已空闲或越界的编号忽略
func (p *Pool) Release(id int) {
	if id < 0 || id >= PoolSize {
		return
	}
	for _, f := range p.free {
		if f == id {
			return
		}
	}
	p.free = append(p.free, id)
}

// Schedule 记录一个将来的释放
func (p *Pool) Schedule(id int, at float64) {
	p.pending = append(p.pending, pendingRelease{id: id, at: at})
}

// Sweep 释放所有时间早于 now 的排期，按排期顺序归还
func (p *Pool) Sweep(now float64) {
	kept := p.pending[:0]
	for _, r := range p.pending {
		if r.at < now {
			p.Release(r.id)
			continue
		}
		kept = append(kept, r)
	}
	p.pending = kept
}

// Available 当前空闲的编号数
func (p *Pool) Available() int {
	return len(p.free)
}

// Pending 尚未生效的释放数
func (p *Pool) Pending() int {
	return len(p.pending)
}
