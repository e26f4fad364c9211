package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/netip"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/omeyang/ipkit/pkg/batch/xbatch"
	"github.com/omeyang/ipkit/pkg/config/xsubnets"
	"github.com/omeyang/ipkit/pkg/util/xprefix"
)

// exitError 表示需要非零退出码但已完成输出的场景。
// 命令内部已完成所有输出，main 只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// usageError 表示用户参数错误，映射到退出码 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// isCLIUsageError 识别 urfave/cli 框架自身产生的参数错误
// （未知命令、未知 flag、flag 解析失败等）。
func isCLIUsageError(err error) bool {
	if _, ok := err.(cli.ExitCoder); ok {
		return true
	}
	msg := err.Error()
	return strings.Contains(msg, "flag provided but not defined") ||
		strings.Contains(msg, "No help topic for")
}

// 创建所有子命令。
func createCommands() []*cli.Command {
	return []*cli.Command{
		createPrefixCommand("parse", "解析并输出规范化 CIDR", cmdParse),
		createPrefixCommand("min", "输出子网最小地址", cmdMin),
		createPrefixCommand("max", "输出子网最大地址", cmdMax),
		createPrefixCommand("range", "输出子网最小和最大地址", cmdRange),
		createContainsCommand(),
		createMatchCommand(),
		createBatchCommand(),
	}
}

// createPrefixCommand 创建单前缀参数命令（parse/min/max/range 共用骨架）。
func createPrefixCommand(name, usage string, eval func(string) (string, error)) *cli.Command {
	return &cli.Command{
		Name:      name,
		Usage:     usage,
		ArgsUsage: "<prefix>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			arg := cmd.Args().First()
			if arg == "" {
				return &usageError{msg: fmt.Sprintf("%s 命令需要指定 CIDR 前缀", name)}
			}
			out, err := eval(arg)
			if err != nil {
				return err
			}
			fmt.Println(out)
			return nil
		},
	}
}

// createContainsCommand 创建 contains 子命令。
func createContainsCommand() *cli.Command {
	return &cli.Command{
		Name:      "contains",
		Aliases:   []string{"c"},
		Usage:     "判断地址或子网是否被前缀包含",
		ArgsUsage: "<prefix> <addr|prefix>",
		Action: func(_ context.Context, cmd *cli.Command) error {
			args := cmd.Args().Slice()
			if len(args) != 2 {
				return &usageError{msg: "contains 命令需要两个参数: <prefix> <addr|prefix>"}
			}
			ok, err := cmdContains(args[0], args[1])
			if err != nil {
				return err
			}
			fmt.Println(ok)
			if !ok {
				// 未命中通过退出码反映，便于脚本直接判断
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// createMatchCommand 创建 match 子命令。
func createMatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "match",
		Aliases:   []string{"m"},
		Usage:     "在子网组配置中匹配地址",
		ArgsUsage: "<addr>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "子网组配置文件路径 (YAML/JSON)",
			},
			&cli.StringFlag{
				Name:    "group",
				Aliases: []string{"g"},
				Usage:   "只检查指定组（默认检查全部组）",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			addrArg := cmd.Args().First()
			if addrArg == "" {
				return &usageError{msg: "match 命令需要指定待匹配地址"}
			}
			cfgPath := cmd.String("config")
			if cfgPath == "" {
				return &usageError{msg: "match 命令需要通过 --config 指定子网组配置文件"}
			}
			names, err := cmdMatch(cfgPath, cmd.String("group"), addrArg)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Println(name)
			}
			if len(names) == 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// createBatchCommand 创建 batch 子命令。
func createBatchCommand() *cli.Command {
	return &cli.Command{
		Name:      "batch",
		Aliases:   []string{"b"},
		Usage:     "批量解析 CIDR 列表（默认读取 stdin）",
		ArgsUsage: "[文件]",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "workers",
				Aliases: []string{"w"},
				Usage:   "并发 worker 数（默认 GOMAXPROCS）",
			},
			&cli.IntFlag{
				Name:  "cache",
				Usage: "解析结果 LRU 缓存容量（0 表示不缓存）",
			},
			&cli.BoolFlag{
				Name:  "suppress-errors",
				Usage: "失败行只输出错误类别，隐藏输入细节",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			in := os.Stdin
			if path := cmd.Args().First(); path != "" {
				f, err := os.Open(path)
				if err != nil {
					return fmt.Errorf("打开输入文件失败: %w", err)
				}
				defer func() { _ = f.Close() }()
				in = f
			}
			failed, err := cmdBatch(ctx, in, os.Stdout, os.Stderr,
				cmd.Int("workers"), cmd.Int("cache"), cmd.Bool("suppress-errors"))
			if err != nil {
				return err
			}
			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

// cmdParse 解析前缀并返回规范化文本。
func cmdParse(arg string) (string, error) {
	p, err := xprefix.Parse(arg)
	if err != nil {
		return "", err
	}
	return p.String(), nil
}

// cmdMin 返回子网最小地址。
func cmdMin(arg string) (string, error) {
	p, err := xprefix.Parse(arg)
	if err != nil {
		return "", err
	}
	return formatAddr(p.Min()), nil
}

// cmdMax 返回子网最大地址。
func cmdMax(arg string) (string, error) {
	p, err := xprefix.Parse(arg)
	if err != nil {
		return "", err
	}
	return formatAddr(p.Max()), nil
}

// cmdRange 返回 "最小地址 最大地址"。
func cmdRange(arg string) (string, error) {
	p, err := xprefix.Parse(arg)
	if err != nil {
		return "", err
	}
	lo, hi := p.Range()
	return formatAddr(lo) + " " + formatAddr(hi), nil
}

// cmdContains 判断 candArg（地址或前缀，按是否含 '/' 区分）是否被 outerArg 包含。
func cmdContains(outerArg, candArg string) (bool, error) {
	outer, err := xprefix.Parse(outerArg)
	if err != nil {
		return false, err
	}
	if strings.Contains(candArg, "/") {
		cand, err := xprefix.Parse(candArg)
		if err != nil {
			return false, err
		}
		return outer.ContainsPrefix(cand), nil
	}
	addr, err := netip.ParseAddr(candArg)
	if err != nil {
		return false, fmt.Errorf("%w: %s", xprefix.ErrInvalidAddress, candArg)
	}
	return outer.Contains(addr), nil
}

// cmdMatch 返回 addr 命中的组名列表（按字典序）。
// groupFlag 非空时只检查该组；组不存在视为参数错误。
func cmdMatch(cfgPath, groupFlag, addrArg string) ([]string, error) {
	addr, err := netip.ParseAddr(addrArg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", xprefix.ErrInvalidAddress, addrArg)
	}
	groups, err := xsubnets.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	if groupFlag != "" {
		if _, ok := groups.Group(groupFlag); !ok {
			return nil, &usageError{msg: fmt.Sprintf("组 %q 不存在", groupFlag)}
		}
		if groups.Contains(groupFlag, addr) {
			return []string{groupFlag}, nil
		}
		return nil, nil
	}

	var matched []string
	for _, name := range groups.Names() {
		if groups.Contains(name, addr) {
			matched = append(matched, name)
		}
	}
	return matched, nil
}

// cmdBatch 逐行解析 r 中的 CIDR，成功行的规范化结果写入 out，
// 失败行的错误写入 errOut。返回失败行数。
func cmdBatch(ctx context.Context, r io.Reader, out, errOut io.Writer, workers, cacheSize int, suppress bool) (int, error) {
	entries, nums, err := readEntries(r)
	if err != nil {
		return 0, fmt.Errorf("读取输入失败: %w", err)
	}

	fn := xbatch.Func[string, xprefix.Prefix](xprefix.Parse)
	if cacheSize > 0 {
		fn, err = xbatch.Memoized(cacheSize, fn)
		if err != nil {
			return 0, err
		}
	}

	var opts []xbatch.Option
	if workers > 0 {
		opts = append(opts, xbatch.WithWorkers(workers))
	}
	if suppress {
		opts = append(opts, xbatch.WithSuppressedErrors())
	}
	opts = append(opts, xbatch.WithComponent("ipctl"))

	failed := 0
	for i, o := range xbatch.Map(ctx, entries, fn, opts...) {
		if o.OK() {
			fmt.Fprintln(out, o.Value.String())
			continue
		}
		failed++
		fmt.Fprintf(errOut, "第 %d 行: %v\n", nums[i], o.Err)
	}
	return failed, nil
}

// readEntries 逐行读取输入，跳过空行和 '#' 注释行，
// 返回条目及其原始行号（从 1 开始）。
func readEntries(r io.Reader) ([]string, []int, error) {
	var entries []string
	var nums []int

	scanner := bufio.NewScanner(r)
	for n := 1; scanner.Scan(); n++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		entries = append(entries, line)
		nums = append(nums, n)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}
	return entries, nums, nil
}

// formatAddr 格式化地址，IPv4-mapped 形式还原为点分十进制。
func formatAddr(a netip.Addr) string {
	return a.Unmap().String()
}

// setupSignalHandler 设置信号处理。
// 设计决策: 第一次信号优雅取消，第二次信号强制退出（退出码 130 = 128 + SIGINT）。
// 当命令阻塞时，用户可通过再次 Ctrl+C 强制退出。
func setupSignalHandler(cancel context.CancelFunc) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel() // 第一次信号: 优雅取消

		<-sigCh
		signal.Stop(sigCh) // 回收订阅
		os.Exit(130)       // 第二次信号: 强制退出
	}()
}
