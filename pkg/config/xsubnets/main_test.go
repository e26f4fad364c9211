package xsubnets

import (
	"testing"

	"go.uber.org/goleak"
)

// TestMain 验证测试结束后没有泄漏的 goroutine（监视循环必须随 Stop 退出）。
func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
