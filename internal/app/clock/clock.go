package clock

import (
	"context"
	"sync"
	"time"
)

// Clock абстрагирует время, чтобы планировщик можно было проверять без реального ожидания.
type Clock interface {
	Now() time.Time
	// WaitUntil блокирует до наступления момента t или отмены ctx.
	WaitUntil(ctx context.Context, t time.Time) error
}

// System — реальные часы.
type System struct{}

func (System) Now() time.Time { return time.Now() }

func (System) WaitUntil(ctx context.Context, t time.Time) error {
	d := time.Until(t)
	if d <= 0 {
		return context.Cause(ctx)
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return context.Cause(ctx)
	case <-timer.C:
		return nil
	}
}

// Fake — виртуальные часы: WaitUntil мгновенно переводит время вперёд.
type Fake struct {
	mu  sync.Mutex
	now time.Time
}

func NewFake(start time.Time) *Fake { return &Fake{now: start} }

func (f *Fake) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *Fake) WaitUntil(ctx context.Context, t time.Time) error {
	if err := context.Cause(ctx); err != nil {
		return err
	}
	f.mu.Lock()
	if t.After(f.now) {
		f.now = t
	}
	f.mu.Unlock()
	return nil
}

// Advance сдвигает виртуальное время на d.
func (f *Fake) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}
