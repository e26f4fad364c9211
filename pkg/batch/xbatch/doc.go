// Package xbatch 提供按行独立的批量求值层。
//
// xbatch 面向列式/批式宿主（如 SQL 引擎的向量化执行）：一批相互独立的
// 行由并行 worker 处理，每行收集一个类型化结果 [Outcome]——值或分类
// 错误。单行的解析或算术失败（包括 panic）绝不会中断同批其余行。
//
// # 核心功能
//
//   - batch.go: [Map] 并行逐元素应用，[Outcome] 每行结果，行级故障隔离
//   - memo.go: [Memoized] 基于 LRU 的输入去重缓存（列式批次中重复值常见）
//   - observer.go: [Observer] 批量指标钩子与 Noop 实现
//   - otel.go: 基于 OpenTelemetry 的 [Observer] 实现
//
// # 快速示例
//
// 并行解析一批 CIDR 文本：
//
//	outs := xbatch.Map(ctx, rows, xprefix.Parse,
//	    xbatch.WithWorkers(8))
//	for i, out := range outs {
//	    if out.Err != nil {
//	        log.Printf("row %d: %v", i, out.Err)
//	        continue
//	    }
//	    use(out.Value)
//	}
//
// # 错误报告模式
//
// 支持两种模式：
//
//   - 详细模式（默认）：行错误原样保留，含触发错误的子串等结构化负载；
//   - 抑制模式（[WithSuppressedErrors]）：行错误被替换为无负载的分类——
//     实现了 Redact() error 的错误（如 xprefix.ParseError）降级为裸分类，
//     其余替换为 [ErrRowFailed]。用于剥离诊断细节的宿主（性能或安全考虑）。
//
// # 设计决策
//
//   - 所有行操作纯函数、无共享可变状态，并行无需协调；worker 仅通过
//     原子游标领取行号，结果写入各自下标，无锁
//   - 行内 panic 被恢复为 [ErrRowPanic] 分类的错误而不是让整批崩溃，
//     与"每行一个类型化结果"的边界契约一致
//   - context 取消后未处理的行标记为 ctx.Err()，已完成的行保留结果
//   - [Memoized] 同时缓存成功值和错误：解析是确定性的，负缓存同样有效
package xbatch
