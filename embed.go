// embed.go - 数据表嵌入声明
// 必须放在项目根目录（与 data/ 同级），//go:embed 只能嵌入当前包目录及其子目录
// 图片和音乐不嵌入，通过 --assets 指定目录，缺失时使用占位图
package main

import "embed"

//go:embed data/variants
var dataFS embed.FS
