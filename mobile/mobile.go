//go:build mobile

// Package mobile 提供 ebitenmobile 绑定入口
//
// 此包用于构建 Android (.aar) 和 iOS (.xcframework) 包。
// 此文件仅在使用 -tags mobile 构建时编译：
//
//	ebitenmobile bind -target android -tags mobile -androidapi 23 -javapkg com.decker.dressup -o build/android/dressup.aar ./mobile
//	ebitenmobile bind -target ios -tags mobile -o build/ios/Dressup.xcframework ./mobile
package mobile

import (
	"io/fs"
	"log"

	"github.com/hajimehoshi/ebiten/v2/mobile"

	"github.com/decker502/dressup/internal/medals"
	"github.com/decker502/dressup/pkg/app"
	"github.com/decker502/dressup/pkg/config"
	"github.com/decker502/dressup/pkg/embedded"
)

func init() {
	assets, err := fs.Sub(assetsFS, "assets")
	if err != nil {
		log.Fatalf("资源目录无效: %v", err)
	}
	embedded.Init(assets, dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:     true,
		Variant:     config.DefaultVariant,
		Medals:      medals.Noop{},
		StorageName: "dressup",
	})
	if err != nil {
		log.Fatalf("游戏初始化失败: %v", err)
	}

	mobile.SetGame(gameApp)
}

// Dummy 是一个空导出函数，确保包被 ebitenmobile 正确识别
func Dummy() {}
