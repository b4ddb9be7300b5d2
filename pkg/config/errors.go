package config

import (
	"errors"
	"fmt"
)

// ErrInvalidConfig 所有配置校验错误的哨兵错误，可用 errors.Is 判断
var ErrInvalidConfig = errors.New("invalid config")

// ConfigError 描述单个配置项的校验失败
// 配置错误是致命错误：控件不会被创建
type ConfigError struct {
	// Field 出错的配置项（YAML 键名）
	Field string
	// Value 出错的取值
	Value interface{}
	// Reason 人类可读的原因
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid config: %s=%v: %s", e.Field, e.Value, e.Reason)
}

// Is 使 errors.Is(err, ErrInvalidConfig) 成立
func (e *ConfigError) Is(target error) bool {
	return target == ErrInvalidConfig
}

func newConfigError(field string, value interface{}, format string, args ...interface{}) *ConfigError {
	return &ConfigError{
		Field:  field,
		Value:  value,
		Reason: fmt.Sprintf(format, args...),
	}
}
