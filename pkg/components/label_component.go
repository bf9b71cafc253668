package components

// LabelComponent 文本标签（设置页标题、音量、审查模式等说明文字）
type LabelComponent struct {
	Text string
}
