package sfboot

import (
	"context"
	"fmt"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

// GlobalName is the only name the global resource answers to.
const GlobalName = "global"

// GlobalResource manages the NIC-wide attributes. sfboot repeats them under
// every adapter, so the first reported section is taken as their source.
type GlobalResource struct {
	backend sfbootconfig.Backend
	dict    *domain.Dictionary
}

func NewGlobalResource(b sfbootconfig.Backend, dict *domain.Dictionary) *GlobalResource {
	if dict == nil {
		dict = domain.DefaultDictionary()
	}
	return &GlobalResource{backend: b, dict: dict}
}

// Get returns the global attributes as a section named "global".
func (r *GlobalResource) Get(ctx context.Context) (*domain.Section, error) {
	cfg, err := r.backend.Read(ctx)
	if err != nil {
		return nil, err
	}
	return r.view(cfg)
}

// Set applies the global-scope subset of attrs. name must be "global".
func (r *GlobalResource) Set(ctx context.Context, name string, attrs domain.Attributes) (*domain.Section, error) {
	if name != GlobalName {
		return nil, &nxerrors.InvalidTargetError{Want: GlobalName, Got: name}
	}
	cfg, err := r.backend.Apply(ctx, scoped(r.dict, domain.ScopeGlobal, attrs), "")
	if err != nil {
		return nil, err
	}
	return r.view(cfg)
}

func (r *GlobalResource) view(cfg *domain.Config) (*domain.Section, error) {
	first := cfg.First()
	if first == nil {
		return nil, nxerrors.New(nxerrors.KindParse, nxerrors.ErrNoSections)
	}
	return first.Scoped(r.dict, domain.ScopeGlobal, GlobalName), nil
}

// AdapterResource manages per-port attributes, one section per adapter.
type AdapterResource struct {
	backend sfbootconfig.Backend
	dict    *domain.Dictionary
}

func NewAdapterResource(b sfbootconfig.Backend, dict *domain.Dictionary) *AdapterResource {
	if dict == nil {
		dict = domain.DefaultDictionary()
	}
	return &AdapterResource{backend: b, dict: dict}
}

// Get returns the adapter-scope attributes of every reported adapter in report order.
func (r *AdapterResource) Get(ctx context.Context) ([]*domain.Section, error) {
	cfg, err := r.backend.Read(ctx)
	if err != nil {
		return nil, err
	}
	sections := make([]*domain.Section, 0, cfg.Len())
	for _, name := range cfg.Order {
		sections = append(sections, cfg.Sections[name].Scoped(r.dict, domain.ScopeAdapter, ""))
	}
	return sections, nil
}

// Set applies the adapter-scope subset of attrs to adapter and returns the
// section sfboot reports for it afterwards.
func (r *AdapterResource) Set(ctx context.Context, adapter string, attrs domain.Attributes) (*domain.Section, error) {
	if adapter == "" {
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("adapter name is required"))
	}
	cfg, err := r.backend.Apply(ctx, scoped(r.dict, domain.ScopeAdapter, attrs), adapter)
	if err != nil {
		return nil, err
	}
	section := cfg.Section(adapter)
	if section == nil {
		return nil, nxerrors.New(nxerrors.KindParse, fmt.Errorf("sfboot did not report adapter %q", adapter))
	}
	return section.Scoped(r.dict, domain.ScopeAdapter, ""), nil
}

// scoped keeps the attributes dict knows under scope.
func scoped(dict *domain.Dictionary, scope domain.Scope, attrs domain.Attributes) domain.Attributes {
	out := make(domain.Attributes, len(attrs))
	for name, v := range attrs {
		if spec, ok := dict.Lookup(name); ok && spec.Scope == scope {
			out[name] = v
		}
	}
	return out
}
