package sfbootconfig

import (
	"context"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
)

// Backend defines the read-modify-verify cycle against the sfboot tool.
type Backend interface {
	// Name returns the backend identifier.
	Name() string

	// Read runs sfboot without attribute arguments and decodes every section it reports.
	Read(ctx context.Context) (*domain.Config, error)

	// Apply pushes attrs (optionally to a single adapter) and returns what sfboot
	// reports afterwards. The result is the tool's view, not an echo of attrs.
	Apply(ctx context.Context, attrs domain.Attributes, target string) (*domain.Config, error)
}
