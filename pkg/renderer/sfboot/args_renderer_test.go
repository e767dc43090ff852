package sfboot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

func TestRenderWithoutTarget(t *testing.T) {
	cmd := &ast.Command{Options: []ast.Option{
		{Flag: "boot-image", Value: "uefi"},
		{Flag: "port-mode", Value: "[1x10/25g][1x10/25g]"},
		{Flag: "firmware-variant", Value: "ultra-low-latency"},
	}}
	bundle, err := NewArgsRenderer().Render(context.Background(), cmd, sfbootconfig.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{
		"'boot-image=uefi'",
		"'port-mode=[1x10/25g][1x10/25g]'",
		"'firmware-variant=ultra-low-latency'",
	}, bundle.Args)
	assert.Empty(t, bundle.Metadata.Target)
}

func TestRenderWithTarget(t *testing.T) {
	cmd := &ast.Command{Target: "enp196s0f1np1", Options: []ast.Option{
		{Flag: "link-speed", Value: "10g"},
		{Flag: "boot-type", Value: "PXE"},
		{Flag: "switch-mode", Value: "pfiov"},
	}}
	bundle, err := NewArgsRenderer().Render(context.Background(), cmd, sfbootconfig.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"-i", "enp196s0f1np1", "'link-speed=10g'", "'boot-type=PXE'", "'switch-mode=pfiov'"}, bundle.Args)
	assert.Equal(t, "enp196s0f1np1", bundle.Metadata.Target)
}

func TestRenderOptions(t *testing.T) {
	cmd := &ast.Command{Target: "enp0", Options: []ast.Option{{Flag: "pf-vlans", Value: "0,100"}}}
	bundle, err := NewArgsRenderer().Render(context.Background(), cmd, sfbootconfig.RenderOptions{SelectFlag: "--adapter", Unquoted: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"--adapter", "enp0", "pf-vlans=0,100"}, bundle.Args)
}

func TestRenderOnlyTarget(t *testing.T) {
	bundle, err := NewArgsRenderer().Render(context.Background(), &ast.Command{Target: "enp0"}, sfbootconfig.RenderOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{"-i", "enp0"}, bundle.Args)
}

func TestRenderErrors(t *testing.T) {
	_, err := NewArgsRenderer().Render(context.Background(), nil, sfbootconfig.RenderOptions{})
	assert.Equal(t, nxerrors.KindRender, nxerrors.KindOf(err))

	_, err = NewArgsRenderer().Render(context.Background(), &ast.Command{Options: []ast.Option{{Value: "x"}}}, sfbootconfig.RenderOptions{})
	assert.Equal(t, nxerrors.KindRender, nxerrors.KindOf(err))
}

func TestQuote(t *testing.T) {
	assert.Equal(t, "'port-mode=[4x10/25g]'", Quote("port-mode=[4x10/25g]"))
	assert.Equal(t, `'a=it'\''s'`, Quote("a=it's"))
}
