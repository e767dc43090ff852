package sfboot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

// stubBackend records the Apply request and answers with a fixed config.
type stubBackend struct {
	attrs  domain.Attributes
	target string
	result *domain.Config
}

func (s *stubBackend) Name() string { return "stub" }

func (s *stubBackend) Read(context.Context) (*domain.Config, error) { return s.result, nil }

func (s *stubBackend) Apply(_ context.Context, attrs domain.Attributes, target string) (*domain.Config, error) {
	s.attrs, s.target = attrs, target
	return s.result, nil
}

func TestRunTask(t *testing.T) {
	result := domain.NewConfig()
	section := domain.NewSection("enp196s0f1np1")
	section.Values["link_speed"] = domain.String("10g")
	result.Sections[section.Name] = section
	result.Order = []string{section.Name}

	stub := &stubBackend{result: result}
	out, err := RunTask(context.Background(), stub, map[string]any{
		"adapter":          "enp196s0f1np1",
		"firmware_variant": "full-feature",
		"boot_image":       "optionrom",
		"link_speed":       "10g",
	})
	require.NoError(t, err)

	assert.Equal(t, "enp196s0f1np1", stub.target)
	assert.Equal(t, domain.Attributes{
		"firmware_variant": domain.String("full-feature"),
		"boot_image":       domain.String("optionrom"),
		"link_speed":       domain.String("10g"),
	}, stub.attrs)
	assert.Equal(t, map[string]any{
		"sfboot": map[string]any{"enp196s0f1np1": map[string]any{"link_speed": "10g"}},
	}, out)
}

func TestRunTaskWithoutAdapter(t *testing.T) {
	stub := &stubBackend{result: domain.NewConfig()}
	_, err := RunTask(context.Background(), stub, map[string]any{"vi_count": float64(1024), "adapter": nil})
	require.NoError(t, err)
	assert.Empty(t, stub.target)
	assert.Equal(t, domain.Attributes{"vi_count": domain.Int(1024)}, stub.attrs)
}

func TestRunTaskValidation(t *testing.T) {
	stub := &stubBackend{result: domain.NewConfig()}

	_, err := RunTask(context.Background(), stub, map[string]any{"adapter": 7})
	assert.Equal(t, nxerrors.KindValidation, nxerrors.KindOf(err))

	_, err = RunTask(context.Background(), stub, map[string]any{"vf_count": 2.5})
	assert.Equal(t, nxerrors.KindValidation, nxerrors.KindOf(err))

	_, err = RunTask(context.Background(), stub, map[string]any{"pf_vlans": []any{"a"}})
	assert.Equal(t, nxerrors.KindValidation, nxerrors.KindOf(err))
}

func TestRunTaskAgainstBackend(t *testing.T) {
	fake := &recorder{output: fixture(t)}
	out, err := RunTask(context.Background(), New(fake), map[string]any{
		"adapter":  "enp196s0f1np1",
		"pf_vlans": []any{0, 100},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"-i", "enp196s0f1np1", "'pf-vlans=0,100'"}, fake.calls[0])

	report := out["sfboot"].(map[string]any)
	assert.Len(t, report, 2)
}

func TestRunTaskTypesValuesByRule(t *testing.T) {
	stub := &stubBackend{result: domain.NewConfig()}
	_, err := RunTask(context.Background(), stub, map[string]any{
		"adapter":             "enp0",
		"pf_vlans":            "none",
		"event_merge_timeout": "default",
		"vf_msix_limit":       "8",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.Attributes{
		"pf_vlans":            domain.Sentinel(domain.VLANNone),
		"event_merge_timeout": domain.Sentinel("default"),
		"vf_msix_limit":       domain.Int(8),
	}, stub.attrs)
}
