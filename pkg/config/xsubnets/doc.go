// Package xsubnets 提供命名子网组配置。
//
// xsubnets 从 YAML/JSON 配置加载 "组名 → CIDR 列表" 映射，每个条目经
// xprefix 严格解析并规范化，整组合并为 [*netipx.IPSet] 提供 O(log n)
// 的包含查询。配合 [Watch] 可在配置文件变更时自动热重载，重载失败时
// 保留最后一次成功加载的组。
//
// # 配置格式
//
//	groups:
//	  internal:
//	    - 10.0.0.0/8
//	    - 192.168.0.0/16
//	  lab:
//	    - 2001:db8::/32
//
// # 快速示例
//
//	g, err := xsubnets.Load("/etc/app/subnets.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	addr := netip.MustParseAddr("10.1.2.3")
//	fmt.Println(g.Contains("internal", addr))  // true
//
// 热重载：
//
//	w, err := xsubnets.Watch("/etc/app/subnets.yaml", func(g *xsubnets.Groups, err error) {
//	    if err != nil {
//	        log.Printf("reload failed: %v", err)  // 旧配置继续生效
//	        return
//	    }
//	    log.Printf("reloaded %d groups", g.Len())
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer w.Stop()
//	w.StartAsync()
//
// # 设计决策
//
//   - 条目解析失败时报告组名和条目下标，整个加载失败——部分生效的
//     规则集比加载失败更危险
//   - [Groups] 构建后只读，可跨 goroutine 共享；热重载通过原子替换
//     整个 Groups 值实现，读路径无锁
//   - 监视配置文件所在目录而非文件本身，兼容编辑器的原子写入
//     （写临时文件后 rename）
package xsubnets
