package sfboot

import (
	"context"
	"fmt"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

// TaskAdapterKey is the task parameter naming the target adapter.
const TaskAdapterKey = "adapter"

// RunTask applies a flat parameter set. The adapter key selects the target and
// every other key is an attribute. The result is {"sfboot": <reported config>}.
func RunTask(ctx context.Context, b sfbootconfig.Backend, params map[string]any) (map[string]any, error) {
	rest := make(map[string]any, len(params))
	var target string
	for key, value := range params {
		if key != TaskAdapterKey {
			rest[key] = value
			continue
		}
		if value == nil {
			continue
		}
		name, ok := value.(string)
		if !ok {
			return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("%s must be a string, got %T", TaskAdapterKey, value))
		}
		target = name
	}

	attrs, err := domain.AttributesOf(rest)
	if err != nil {
		return nil, err
	}
	attrs = attrs.Coerce(taskDictionary(b))
	cfg, err := b.Apply(ctx, attrs, target)
	if err != nil {
		return nil, err
	}
	return map[string]any{Name: sfbootconfig.ConfigMap(cfg)}, nil
}

// taskDictionary returns b's dictionary, or the default one for backends
// that do not expose theirs.
func taskDictionary(b sfbootconfig.Backend) *domain.Dictionary {
	if d, ok := b.(interface{ Dictionary() *domain.Dictionary }); ok && d.Dictionary() != nil {
		return d.Dictionary()
	}
	return domain.DefaultDictionary()
}
