package main

import (
	"context"
	"flag"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/dressup/internal/debugserver"
	"github.com/decker502/dressup/internal/medals"
	"github.com/decker502/dressup/pkg/app"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/embedded"
	"github.com/decker502/dressup/pkg/systems"
)

var (
	variant      = flag.String("variant", config.DefaultVariant, "变体名（data/variants/<name>.yaml）")
	assetsDir    = flag.String("assets", "", "美术资源目录（图片与音乐），为空时使用占位图")
	censored     = flag.Bool("censored", false, "启动时开启审查模式")
	debug        = flag.Bool("debug", false, "绘制点击区域等调试信息")
	debugAddr    = flag.String("debug-addr", "", "调试 HTTP 地址，例如 127.0.0.1:6061")
	medalGateway = flag.String("medal-gateway", "", "成就上报网关 URL，为空时只记录日志")
	verbose      = flag.Bool("verbose", false, "显示详细日志")
)

func main() {
	flag.Parse()

	var assets fs.FS
	if *assetsDir != "" {
		assets = os.DirFS(*assetsDir)
	}
	embedded.Init(assets, dataFS)

	var unlocker systems.MedalUnlocker = medals.Noop{}
	var client *medals.Client
	if *medalGateway != "" {
		client = medals.New(*medalGateway, medals.DefaultQueueSize, nil)
		unlocker = client
	}

	gameApp, err := app.NewApp(app.Config{
		Verbose:     *verbose,
		Variant:     *variant,
		Censored:    *censored,
		Debug:       *debug,
		Medals:      unlocker,
		StorageName: "dressup",
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	ebiten.SetWindowSize(app.WindowSize(gameApp.Variant()))
	ebiten.SetWindowTitle(gameApp.Variant().Name)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if *debugAddr != "" {
		srv := debugserver.New(*debugAddr, gameApp.Session().Snapshot)
		go func() {
			if err := srv.Run(ctx); err != nil {
				log.Printf("[DebugServer] %v", err)
			}
		}()
	}

	runErr := ebiten.RunGame(gameApp)

	if client != nil {
		closeCtx, closeCancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := client.Close(closeCtx); err != nil {
			log.Printf("[Medals] pending unlocks not sent: %v", err)
		}
		closeCancel()
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
