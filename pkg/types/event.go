// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// EventKind 输入事件类型
type EventKind int

const (
	// EventEnter 指针进入画布
	EventEnter EventKind = iota
	// EventLeave 指针离开画布
	EventLeave
	// EventMotion 指针移动
	EventMotion
	// EventButtonPress 主按键按下
	EventButtonPress
	// EventButtonRelease 主按键释放
	EventButtonRelease
	// EventWheel 滚轮滚动
	EventWheel
	// EventDestroy 画布被销毁
	EventDestroy
)

// String 返回事件类型的字符串表示
func (k EventKind) String() string {
	switch k {
	case EventEnter:
		return "Enter"
	case EventLeave:
		return "Leave"
	case EventMotion:
		return "Motion"
	case EventButtonPress:
		return "ButtonPress"
	case EventButtonRelease:
		return "ButtonRelease"
	case EventWheel:
		return "Wheel"
	case EventDestroy:
		return "Destroy"
	default:
		return "Unknown"
	}
}

// Event 分发给画布的输入事件
// X/Y 为相对于接收画布左上角的坐标
type Event struct {
	Kind EventKind
	X, Y float64
	// Delta 滚轮增量，正值向上（仅 EventWheel）
	Delta float64
}

// Handler 事件处理函数
type Handler func(Event)

// ListenerID 标识一次事件绑定，用于解绑
type ListenerID uint64
