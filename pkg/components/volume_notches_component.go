package components

// VolumeNotchesComponent 分段音量条
// Current 为当前刻度（0 表示静音），Steps 为总刻度数
type VolumeNotchesComponent struct {
	Steps   int
	Current int

	OnChange func(step int)
}
