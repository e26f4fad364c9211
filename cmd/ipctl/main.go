// ipctl 是 CIDR 前缀运算命令行工具。
//
// 用法:
//
//	ipctl <命令> [命令参数]
//
// 命令:
//
//	parse <prefix>                    解析并输出规范化 CIDR
//	min <prefix>                      输出子网最小地址
//	max <prefix>                      输出子网最大地址
//	range <prefix>                    输出 "最小地址 最大地址"
//	contains <prefix> <addr|prefix>   判断地址或子网是否被包含
//	match <addr>                      在子网组配置中匹配地址 (--config)
//	batch [文件]                      批量解析 CIDR 列表（默认读取 stdin）
//	help                              显示帮助信息
//
// 地址模型:
//
//	所有前缀统一存储为 128 位地址，IPv4 以 IPv4-mapped 形式嵌入。
//	输出时 IPv4-mapped 地址还原为点分十进制形式。
//
// 退出码:
//
//	0: 命令执行成功（contains/match 命令: 命中）
//	1: 命令执行失败（contains/match 命令: 未命中；batch 命令: 存在失败行）
//	2: 参数错误（缺少必需参数、未知命令、未知 flag 等）
//
// 示例:
//
//	ipctl parse 192.168.1.19/24                # 输出 192.168.1.0/24
//	ipctl range 10.0.0.0/8                     # 输出 10.0.0.0 10.255.255.255
//	ipctl contains 10.0.0.0/8 10.1.2.3         # 命中，退出码 0
//	ipctl match --config subnets.yaml 10.1.2.3 # 输出命中的组名
//	cat cidrs.txt | ipctl batch --workers 8    # 批量解析
package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"
)

// 版本信息（可通过 -ldflags 注入，例如:
//
//	go build -ldflags "-X main.Version=1.0.0 -X main.GitCommit=$(git rev-parse --short HEAD) -X main.BuildTime=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// ）。
var (
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
)

func main() {
	os.Exit(run())
}

// createApp 创建 CLI 应用。
func createApp() *cli.Command {
	return &cli.Command{
		Name:           "ipctl",
		Usage:          "CIDR 前缀运算命令行工具",
		Version:        fmt.Sprintf("%s (commit: %s, built: %s)", Version, GitCommit, BuildTime),
		Commands:       createCommands(),
		DefaultCommand: "help",
		Authors: []any{
			"ipkit Team",
		},
		// 设计决策: 禁止 urfave/cli 直接调用 os.Exit，
		// 由 run() 统一处理退出码映射，确保与文档退出码契约一致。
		ExitErrHandler: func(_ context.Context, _ *cli.Command, err error) {
			// ExitCoder 错误（如未知命令）的消息需在此输出，
			// 替代 HandleExitCoder 的默认 os.Exit 行为。
			if _, ok := err.(cli.ExitCoder); ok {
				fmt.Fprintln(os.Stderr, err)
			}
		},
		Description: `ipctl 基于统一的 128 位地址模型对 CIDR 前缀做规范化、
子网边界计算与包含判定，适用于脚本和网络排障场景。

主要命令:
  parse <prefix>                    规范化（掩掉主机位）后输出
  min / max / range <prefix>        子网边界地址
  contains <prefix> <addr|prefix>   包含判定，结果经退出码反映
  match <addr>                      在 --config 指定的子网组中匹配
    --config, -c                    子网组配置文件 (YAML/JSON)
    --group, -g                     只检查指定组（默认检查全部组）
  batch [文件]                      逐行解析 CIDR 列表
    --workers, -w                   并发 worker 数（默认 GOMAXPROCS）
    --cache                         解析结果 LRU 缓存容量（0 表示不缓存）
    --suppress-errors               失败行只输出错误类别，隐藏输入细节`,
	}
}

func run() int {
	app := createApp()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 设置信号处理
	setupSignalHandler(cancel)

	if err := app.Run(ctx, os.Args); err != nil {
		var exitErr *exitError
		if errors.As(err, &exitErr) {
			return exitErr.code
		}
		var usageErr *usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "参数错误: %v\n", usageErr)
			return 2
		}
		// CLI 框架产生的参数错误（如未知 flag、未知命令）也返回退出码 2，
		// 与文档契约"参数错误 → 退出码 2"保持一致。
		if isCLIUsageError(err) {
			// ExitErrHandler 或 flag 解析器已向 stderr 输出错误详情，此处仅设置退出码
			return 2
		}
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		return 1
	}

	return 0
}
