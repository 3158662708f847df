package components

import "github.com/gonewx/deadlands/pkg/ecs"

// CameraComponent 跟随目标的镜头
//
// X/Y 为视口左上角的世界坐标，始终被限制在世界矩形之内；
// 世界比视口小时该轴居中。
type CameraComponent struct {
	X, Y float64

	ViewportWidth  float64
	ViewportHeight float64

	// Target 跟随的实体，0 表示不跟随
	Target ecs.EntityID

	// FollowSpeed 跟随插值速度（1/秒），<= 0 表示立即对准目标
	FollowSpeed float64
}
