package utils

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"
)

// fontData 内置字体名到 TTF 数据的映射
var fontData = map[string][]byte{
	"goregular": goregular.TTF,
	"gomono":    gomono.TTF,
	"gobold":    gobold.TTF,
}

// 已解析的字体源缓存（解析 TTF 开销较大，同一字体只解析一次）
var fontSources = map[string]*text.GoTextFaceSource{}

// LoadFace 加载内置字体并返回指定字号的字体 face
//
// 参数：
//   - family: 字体名（goregular / gomono / gobold）
//   - size: 字号（像素）
func LoadFace(family string, size float64) (*text.GoTextFace, error) {
	source, ok := fontSources[family]
	if !ok {
		data, known := fontData[family]
		if !known {
			return nil, fmt.Errorf("unknown font family %q", family)
		}

		var err error
		source, err = text.NewGoTextFaceSource(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("failed to create font source %s: %w", family, err)
		}
		fontSources[family] = source
	}

	return &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}, nil
}
