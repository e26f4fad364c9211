package xbatch

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"
)

var (
	// ErrRowFailed 表示某行处理失败（抑制模式下的通用失败标记，无负载）。
	ErrRowFailed = errors.New("xbatch: row failed")

	// ErrRowPanic 表示某行处理时发生 panic，已被恢复并隔离。
	ErrRowPanic = errors.New("xbatch: row panicked")
)

// Outcome 是单行的类型化结果：值或错误，二者必居其一。
type Outcome[T any] struct {
	// Value 是行处理成功时的结果值。
	Value T

	// Err 是行处理失败的分类错误；nil 表示成功。
	Err error
}

// OK 报告该行是否处理成功。
func (o Outcome[T]) OK() bool {
	return o.Err == nil
}

// Func 是应用于单行的纯函数。
type Func[I, O any] func(I) (O, error)

// options 是 Map 的内部配置。
type options struct {
	workers   int
	suppress  bool
	observer  Observer
	component string
}

// Option 定义批量求值的配置选项。
type Option func(*options)

// WithWorkers 设置并行 worker 数量。
// 默认为 GOMAXPROCS；n <= 0 时保持默认。
func WithWorkers(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.workers = n
		}
	}
}

// WithSuppressedErrors 启用抑制模式：行错误被剥离为无负载的分类。
// 实现了 Redact() error 的错误降级为其裸分类，其余替换为 [ErrRowFailed]。
func WithSuppressedErrors() Option {
	return func(o *options) {
		o.suppress = true
	}
}

// WithObserver 设置批量指标观测器。nil 时不观测。
func WithObserver(obs Observer) Option {
	return func(o *options) {
		if obs != nil {
			o.observer = obs
		}
	}
}

// WithComponent 设置观测指标中的组件名。默认为 "xbatch"。
func WithComponent(name string) Option {
	return func(o *options) {
		if name != "" {
			o.component = name
		}
	}
}

// redactor 由携带可剥离负载的错误实现（如 xprefix.ParseError）。
type redactor interface {
	Redact() error
}

// redact 将 err 降级为无负载形式。
func redact(err error) error {
	var r redactor
	if errors.As(err, &r) {
		if bare := r.Redact(); bare != nil {
			return bare
		}
	}
	return ErrRowFailed
}

// Map 将 fn 并行应用到 in 的每一行，返回与 in 等长的结果切片，
// 下标一一对应。单行失败不影响其余行；行内 panic 被恢复为
// [ErrRowPanic] 分类的错误。ctx 取消后尚未领取的行标记为 ctx.Err()。
// 空输入返回 nil。
func Map[I, O any](ctx context.Context, in []I, fn Func[I, O], opts ...Option) []Outcome[O] {
	if len(in) == 0 {
		return nil
	}
	if ctx == nil {
		ctx = context.Background()
	}

	o := &options{
		workers:   runtime.GOMAXPROCS(0),
		observer:  NoopObserver{},
		component: "xbatch",
	}
	for _, opt := range opts {
		opt(o)
	}

	start := time.Now()
	outs := make([]Outcome[O], len(in))

	workers := min(o.workers, len(in))
	var cursor atomic.Int64
	var wg sync.WaitGroup
	wg.Add(workers)
	for range workers {
		go func() {
			defer wg.Done()
			for {
				i := int(cursor.Add(1)) - 1
				if i >= len(in) {
					return
				}
				if err := ctx.Err(); err != nil {
					outs[i] = Outcome[O]{Err: err}
					continue
				}
				outs[i] = runRow(in[i], fn)
			}
		}()
	}
	wg.Wait()

	if o.suppress {
		for i := range outs {
			if outs[i].Err != nil {
				outs[i] = Outcome[O]{Err: redact(outs[i].Err)}
			}
		}
	}

	failed := 0
	for i := range outs {
		if outs[i].Err != nil {
			failed++
		}
	}
	o.observer.ObserveBatch(ctx, o.component, Stats{
		Rows:     len(in),
		Failed:   failed,
		Duration: time.Since(start),
	})

	return outs
}

// runRow 对单行应用 fn，并把 panic 恢复为错误，隔离到该行。
func runRow[I, O any](in I, fn Func[I, O]) (out Outcome[O]) {
	defer func() {
		if r := recover(); r != nil {
			out = Outcome[O]{Err: fmt.Errorf("%w: %v", ErrRowPanic, r)}
		}
	}()
	v, err := fn(in)
	if err != nil {
		return Outcome[O]{Err: err}
	}
	return Outcome[O]{Value: v}
}
