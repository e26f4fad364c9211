package xbatch

import (
	"context"
	"strconv"
	"testing"

	"github.com/omeyang/ipkit/pkg/util/xprefix"
)

// =============================================================================
// 批量求值基准测试
// =============================================================================

func benchRows(n, cardinality int) []string {
	rows := make([]string, n)
	for i := range rows {
		rows[i] = "10.0." + strconv.Itoa(i%cardinality) + ".0/24"
	}
	return rows
}

func BenchmarkMap_Parse(b *testing.B) {
	rows := benchRows(1024, 256)
	ctx := context.Background()

	b.Run("serial", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = Map(ctx, rows, xprefix.Parse, WithWorkers(1))
		}
	})
	b.Run("parallel", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = Map(ctx, rows, xprefix.Parse)
		}
	})
}

func BenchmarkMap_Memoized(b *testing.B) {
	// 低基数列：大量重复输入
	rows := benchRows(1024, 8)
	ctx := context.Background()

	b.Run("plain", func(b *testing.B) {
		b.ReportAllocs()
		for b.Loop() {
			_ = Map(ctx, rows, xprefix.Parse)
		}
	})
	b.Run("memoized", func(b *testing.B) {
		fn, err := Memoized(64, xprefix.Parse)
		if err != nil {
			b.Fatal(err)
		}
		b.ReportAllocs()
		for b.Loop() {
			_ = Map(ctx, rows, fn)
		}
	})
}
