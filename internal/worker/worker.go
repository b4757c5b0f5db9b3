// Package worker 以固定數量的 goroutine 執行一批工作（seed 時平行做 bcrypt）
package worker

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Task 為一個工作單位；ctx 會在其他工作失敗後被取消
type Task func(ctx context.Context) error

type Pool struct {
	g   *errgroup.Group
	ctx context.Context
}

// NewPool 建立最多 n 個同時執行的 pool；n<=0 視為 1
func NewPool(ctx context.Context, n int) *Pool {
	if n <= 0 {
		n = 1
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	return &Pool{g: g, ctx: gctx}
}

// Submit 在沒有空閒 worker 時會阻塞
func (p *Pool) Submit(t Task) {
	if t == nil {
		return
	}
	p.g.Go(func() error {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		return t(p.ctx)
	})
}

// Wait 等待所有已送出的工作，回傳第一個錯誤
func (p *Pool) Wait() error {
	return p.g.Wait()
}
