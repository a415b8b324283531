package utils

import (
	"context"
	"runtime"
	"sync"
	"sync/atomic"
)

// WorkerPool 表示一个工作池
// 用于道路离散化等一次性批量任务的并行执行
type WorkerPool struct {
	jobs    chan func()
	wg      sync.WaitGroup
	pending sync.WaitGroup
	workers int
	closed  atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewWorkerPool 创建并启动一个新的工作池
func NewWorkerPool(workers int) *WorkerPool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	ctx, cancel := context.WithCancel(context.Background())
	pool := &WorkerPool{
		jobs:    make(chan func(), workers*2), // 缓冲区大小为工作者数量的2倍
		workers: workers,
		ctx:     ctx,
		cancel:  cancel,
	}
	pool.start()
	return pool
}

// start 启动所有工作协程
func (p *WorkerPool) start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go func() {
			defer p.wg.Done()
			for {
				select {
				case <-p.ctx.Done():
					return
				case job, ok := <-p.jobs:
					if !ok {
						return
					}
					job()
					p.pending.Done()
				}
			}
		}()
	}
}

// Submit 提交一个任务到工作池
// 如果工作池已关闭，返回false，否则返回true
func (p *WorkerPool) Submit(job func()) bool {
	if p.closed.Load() {
		return false
	}

	p.pending.Add(1)
	select {
	case p.jobs <- job:
		return true
	case <-p.ctx.Done():
		p.pending.Done()
		return false
	}
}

// Wait 阻塞直到所有已提交任务执行完毕
func (p *WorkerPool) Wait() {
	p.pending.Wait()
}

// Stop 停止工作池
// 安全地停止所有工作协程并等待它们完成
func (p *WorkerPool) Stop() {
	if p.closed.Swap(true) {
		return
	}

	p.cancel()
	close(p.jobs)
	p.wg.Wait()
}
