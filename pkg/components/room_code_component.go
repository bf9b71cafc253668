package components

// RoomCodeComponent 标题页上隐藏的房间号点击区域
// 第一次点击时上报成就，之后不再重复
type RoomCodeComponent struct {
	MedalID  int
	Revealed bool
}
