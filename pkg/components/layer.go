package components

// LayerComponent 服饰分类标签（头发、内衣、衣服……）
// 同一时刻只有一个图层处于选中状态
type LayerComponent struct {
	ID       string
	Index    int
	Selected bool
}
