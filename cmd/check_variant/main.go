// check_variant 校验 data/variants 下的所有变体数据表
//
// 用法：
//
//	go run ./cmd/check_variant [-verbose] [name...]
//
// 不带参数时校验全部变体；任一变体无效时以状态码 1 退出。
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/embedded"
)

var verbose = flag.Bool("verbose", false, "显示每个变体的详细统计")

func main() {
	flag.Parse()
	if !*verbose {
		log.SetFlags(0)
	}

	embedded.Init(nil, os.DirFS("."))

	names := flag.Args()
	if len(names) == 0 {
		var err error
		names, err = config.ListVariants()
		if err != nil {
			log.Fatalf("列出变体失败: %v", err)
		}
	}

	failed := 0
	for _, name := range names {
		cfg, err := config.LoadVariant(name)
		if err != nil {
			fmt.Printf("✗ %s: %v\n", name, err)
			failed++
			continue
		}
		fmt.Printf("✓ %s\n", name)
		if *verbose {
			required := 0
			for _, c := range cfg.Components {
				if !c.Optional {
					required++
				}
			}
			fmt.Printf("    %d layers, %d components (%d required), %d pieces, %d backgrounds, secret=%v\n",
				len(cfg.Layers), len(cfg.Components), required, len(cfg.Pieces), len(cfg.Backgrounds), cfg.Secret != nil)
		}
	}

	if failed > 0 {
		fmt.Printf("%d/%d variants invalid\n", failed, len(names))
		os.Exit(1)
	}
}
