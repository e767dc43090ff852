// Package renderer declares the two directions between sfboot text and documents.
package renderer

import (
	"context"

	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

// Renderer 把写入方向的文档（sfboot 的 Command）渲染成命令行参数 Bundle。
// 目前唯一实现是 pkg/renderer/sfboot.ArgsRenderer。
type Renderer[T any] interface {
	Render(ctx context.Context, doc T, opts sfbootconfig.RenderOptions) (*sfbootconfig.Bundle, error)
}

// Parser 将 sfboot 输出文本解析成领域文档，是读取方向。
// Bundle 携带捕获的报告文本；ParseOptions 控制段过滤和未识别标签。
type Parser[T any] interface {
	Parse(ctx context.Context, bundle *sfbootconfig.Bundle, opts sfbootconfig.ParseOptions) (T, error)
}
