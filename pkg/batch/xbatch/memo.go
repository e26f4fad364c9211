package xbatch

import (
	"errors"

	lru "github.com/hashicorp/golang-lru/v2"
)

// ErrInvalidCacheSize 表示缓存容量不是正数。
var ErrInvalidCacheSize = errors.New("xbatch: cache size must be positive")

// memoEntry 是缓存的一行结果：值和错误都缓存。
type memoEntry[O any] struct {
	value O
	err   error
}

// Memoized 用容量为 size 的 LRU 缓存包装 fn。
// 列式批次中重复输入很常见（低基数列），去重可以省掉重复解析。
// 成功和失败都会被缓存——fn 必须是确定性的纯函数。
// 返回的函数可被多个 worker 并发调用。
func Memoized[I comparable, O any](size int, fn Func[I, O]) (Func[I, O], error) {
	if size <= 0 {
		return nil, ErrInvalidCacheSize
	}
	cache, err := lru.New[I, memoEntry[O]](size)
	if err != nil {
		return nil, err
	}
	return func(in I) (O, error) {
		if e, ok := cache.Get(in); ok {
			return e.value, e.err
		}
		v, err := fn(in)
		// 并发未命中时可能重复计算同一输入，结果相同，仅多一次 Add
		cache.Add(in, memoEntry[O]{value: v, err: err})
		return v, err
	}, nil
}
