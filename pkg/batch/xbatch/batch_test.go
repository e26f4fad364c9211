package xbatch

import (
	"context"
	"errors"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omeyang/ipkit/pkg/util/xprefix"
)

func TestMap_Basic(t *testing.T) {
	in := []int{1, 2, 3, 4, 5}
	outs := Map(context.Background(), in, func(v int) (int, error) {
		return v * 2, nil
	})

	require.Len(t, outs, len(in))
	for i, out := range outs {
		assert.True(t, out.OK())
		assert.Equal(t, in[i]*2, out.Value)
	}
}

func TestMap_Empty(t *testing.T) {
	outs := Map(context.Background(), nil, func(int) (int, error) { return 0, nil })
	assert.Nil(t, outs)
}

// 单行失败不得中断同批其余行，结果下标与输入一一对应。
func TestMap_PerRowIsolation(t *testing.T) {
	rows := []string{
		"192.168.1.5/24",
		"10.0.0.0",      // missing slash
		"10.0.0.0/33",   // mask exceeds width
		"2001:db8::/32",
		"banana/24",     // invalid address
	}
	outs := Map(context.Background(), rows, xprefix.Parse)
	require.Len(t, outs, len(rows))

	assert.True(t, outs[0].OK())
	assert.Equal(t, "192.168.1.0/24", outs[0].Value.String())
	assert.ErrorIs(t, outs[1].Err, xprefix.ErrMissingSlash)
	assert.ErrorIs(t, outs[2].Err, xprefix.ErrMaskExceedsWidth)
	assert.True(t, outs[3].OK())
	assert.Equal(t, "2001:db8::/32", outs[3].Value.String())
	assert.ErrorIs(t, outs[4].Err, xprefix.ErrInvalidAddress)
}

func TestMap_PanicIsolation(t *testing.T) {
	rows := []int{1, 2, 3}
	outs := Map(context.Background(), rows, func(v int) (int, error) {
		if v == 2 {
			panic("boom")
		}
		return v, nil
	})

	assert.True(t, outs[0].OK())
	assert.ErrorIs(t, outs[1].Err, ErrRowPanic)
	assert.Contains(t, outs[1].Err.Error(), "boom")
	assert.True(t, outs[2].OK())
}

// 抑制模式：行错误被剥离为无负载的分类。
func TestMap_SuppressedErrors(t *testing.T) {
	rows := []string{"192.168.1.0/24", "10.0.0.0/33", "banana/24"}
	outs := Map(context.Background(), rows, xprefix.Parse, WithSuppressedErrors())

	assert.True(t, outs[0].OK())

	// ParseError 实现 Redact：降级为裸分类，负载消失
	assert.ErrorIs(t, outs[1].Err, xprefix.ErrMaskExceedsWidth)
	assert.Equal(t, xprefix.ErrMaskExceedsWidth.Error(), outs[1].Err.Error())
	assert.NotContains(t, outs[1].Err.Error(), "33")

	assert.ErrorIs(t, outs[2].Err, xprefix.ErrInvalidAddress)
	assert.NotContains(t, outs[2].Err.Error(), "banana")
}

// 未实现 Redact 的错误在抑制模式下替换为通用失败标记。
func TestMap_SuppressedErrors_Opaque(t *testing.T) {
	sentinel := errors.New("secret detail")
	outs := Map(context.Background(), []int{1}, func(int) (int, error) {
		return 0, sentinel
	}, WithSuppressedErrors())

	assert.ErrorIs(t, outs[0].Err, ErrRowFailed)
	assert.NotContains(t, outs[0].Err.Error(), "secret")
}

func TestMap_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outs := Map(ctx, []int{1, 2, 3}, func(v int) (int, error) { return v, nil })
	require.Len(t, outs, 3)
	for _, out := range outs {
		assert.ErrorIs(t, out.Err, context.Canceled)
	}
}

func TestMap_Parallel(t *testing.T) {
	const n = 1000
	in := make([]string, n)
	for i := range in {
		in[i] = "10.0." + strconv.Itoa(i%256) + ".0/24"
	}

	outs := Map(context.Background(), in, xprefix.Parse, WithWorkers(8))
	require.Len(t, outs, n)
	for i, out := range outs {
		require.True(t, out.OK(), "row %d", i)
		assert.Equal(t, in[i], out.Value.String(), "row %d", i)
	}
}

func TestOutcome_OK(t *testing.T) {
	assert.True(t, Outcome[int]{Value: 1}.OK())
	assert.False(t, Outcome[int]{Err: ErrRowFailed}.OK())
}
