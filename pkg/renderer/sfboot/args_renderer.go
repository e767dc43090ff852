package sfboot

import (
	"context"
	"fmt"
	"strings"

	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

// ArgsRenderer 将 Command AST 渲染为 sfboot 参数列表。
type ArgsRenderer struct{}

func NewArgsRenderer() *ArgsRenderer {
	return &ArgsRenderer{}
}

// Render 实现 renderer.Renderer。
func (r *ArgsRenderer) Render(ctx context.Context, cmd *ast.Command, opts sfbootconfig.RenderOptions) (*sfbootconfig.Bundle, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if cmd == nil {
		return nil, nxerrors.New(nxerrors.KindRender, fmt.Errorf("command is nil"))
	}

	bundle := sfbootconfig.NewBundle("sfboot")
	bundle.Metadata.Target = cmd.Target
	if cmd.Target != "" {
		flag := opts.SelectFlag
		if flag == "" {
			flag = sfbootconfig.DefaultSelectFlag
		}
		bundle.Args = append(bundle.Args, flag, cmd.Target)
	}
	for _, opt := range cmd.Options {
		if opt.Flag == "" {
			return nil, nxerrors.New(nxerrors.KindRender, fmt.Errorf("option with empty flag (value %q)", opt.Value))
		}
		token := opt.Flag + "=" + opt.Value
		if !opts.Unquoted {
			token = Quote(token)
		}
		bundle.Args = append(bundle.Args, token)
	}
	return bundle, nil
}

// Quote wraps s in single quotes so a POSIX shell passes it as one word.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
