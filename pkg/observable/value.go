// Package observable 提供带写入通知的共享值单元
//
// Value 相当于绑定变量：持有者与多个观察者都可以读写，
// 每次 Set 都会按订阅顺序通知所有观察者。
package observable

import (
	"github.com/emirpasic/gods/maps/linkedhashmap"
)

// Subscription 标识一次订阅，用于取消订阅
type Subscription uint64

// Value 可观察的值单元
// 仅在单一 goroutine（游戏主循环）中使用，不做加锁
type Value[T comparable] struct {
	value T
	// 订阅者: Subscription -> func(T)，保持订阅顺序
	listeners *linkedhashmap.Map
	nextID    Subscription
}

// Float 是滑块绑定的数值类型
type Float = Value[float64]

// New 创建值单元
func New[T comparable](initial T) *Value[T] {
	return &Value[T]{
		value:     initial,
		listeners: linkedhashmap.New(),
		nextID:    1,
	}
}

// NewFloat 创建浮点值单元
func NewFloat(initial float64) *Float {
	return New(initial)
}

// Get 返回当前值
func (v *Value[T]) Get() T {
	return v.value
}

// Set 写入新值并通知所有订阅者
//
// 与写入跟踪的语义一致：即使新值与旧值相同也会通知。
// 通知基于订阅者快照，订阅者可以在回调中取消订阅或再次 Set。
func (v *Value[T]) Set(value T) {
	v.value = value

	for _, l := range v.listeners.Values() {
		l.(func(T))(v.value)
	}
}

// Subscribe 注册写入通知
func (v *Value[T]) Subscribe(listener func(T)) Subscription {
	id := v.nextID
	v.nextID++
	v.listeners.Put(id, listener)
	return id
}

// Unsubscribe 取消订阅，重复调用无副作用
func (v *Value[T]) Unsubscribe(id Subscription) {
	v.listeners.Remove(id)
}

// Len 返回当前订阅者数量
func (v *Value[T]) Len() int {
	return v.listeners.Size()
}
