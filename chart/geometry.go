package chart

import "math"

// 屏幕坐标被归一化为 10000x10000
const (
	ScreenMinX = 1500
	ScreenMaxX = 8500
	ScreenYPos = 8000

	ScreenCenter = 5000
	laneCount    = 12
)

// LaneToX 根据lane和width计算音符的x坐标
func LaneToX(lane, width int) int {
	x := (float64(lane-MinLane)+float64(width)/2)/laneCount*(ScreenMaxX-ScreenMinX) + ScreenMinX
	return int(math.Round(x))
}

// ScreenY 所有音符的y坐标
func ScreenY() int {
	return ScreenYPos
}

// IsPlayableLane 是否在可演奏轨道内
func IsPlayableLane(lane int) bool {
	return lane >= MinLane && lane <= MaxLane
}
