package sfboot

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	domain "github.com/honeybbq/sfbootconfig/domain/sfboot"
	ast "github.com/honeybbq/sfbootconfig/pkg/ast/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
	"github.com/honeybbq/sfbootconfig/pkg/renderer"
	sfrenderer "github.com/honeybbq/sfbootconfig/pkg/renderer/sfboot"
	"github.com/honeybbq/sfbootconfig/pkg/runner"
	"github.com/honeybbq/sfbootconfig/pkg/sfbootconfig"
)

// Name is the backend identifier.
const Name = "sfboot"

// targetPattern 与报告中的 section 头一致。
var targetPattern = regexp.MustCompile(`^[a-z][a-z0-9_-]{1,14}$`)

// Backend runs sfboot and translates between its report and typed attributes.
// It keeps no state between calls apart from its collaborators.
type Backend struct {
	dict     *domain.Dictionary
	runner   runner.Runner
	renderer renderer.Renderer[*ast.Command]
	parser   renderer.Parser[*ast.Document]
	render   sfbootconfig.RenderOptions
	parse    sfbootconfig.ParseOptions
	logger   *zap.Logger
}

var _ sfbootconfig.Backend = (*Backend)(nil)

// Option configures a Backend.
type Option func(*Backend)

func WithDictionary(d *domain.Dictionary) Option {
	return func(b *Backend) { b.dict = d }
}

func WithRenderer(r renderer.Renderer[*ast.Command]) Option {
	return func(b *Backend) { b.renderer = r }
}

func WithParser(p renderer.Parser[*ast.Document]) Option {
	return func(b *Backend) { b.parser = p }
}

func WithRenderOptions(opts sfbootconfig.RenderOptions) Option {
	return func(b *Backend) { b.render = opts }
}

func WithParseOptions(opts sfbootconfig.ParseOptions) Option {
	return func(b *Backend) { b.parse = opts }
}

func WithLogger(l *zap.Logger) Option {
	return func(b *Backend) { b.logger = l }
}

// New creates a Backend around r. Collaborators not given as options default
// to the built-in dictionary, the section scanner and the argument renderer.
func New(r runner.Runner, opts ...Option) *Backend {
	b := &Backend{runner: r}
	for _, opt := range opts {
		opt(b)
	}
	if b.dict == nil {
		b.dict = domain.DefaultDictionary()
	}
	if b.renderer == nil {
		b.renderer = sfrenderer.NewArgsRenderer()
	}
	if b.parser == nil {
		b.parser = sfrenderer.NewScanner()
	}
	if b.logger == nil {
		b.logger = zap.NewNop()
	}
	return b
}

func (b *Backend) Name() string {
	return Name
}

// Dictionary returns the attribute table the backend translates with.
func (b *Backend) Dictionary() *domain.Dictionary {
	return b.dict
}

// Read runs sfboot without arguments and decodes every reported section.
func (b *Backend) Read(ctx context.Context) (*domain.Config, error) {
	output, err := b.run(ctx, nil)
	if err != nil {
		return nil, err
	}
	return b.Decode(ctx, output)
}

// Apply pushes attrs, optionally to one adapter, and returns what sfboot reports
// afterwards. Attribute names unknown to the dictionary are dropped.
func (b *Backend) Apply(ctx context.Context, attrs domain.Attributes, target string) (*domain.Config, error) {
	if target != "" && !targetPattern.MatchString(target) {
		return nil, nxerrors.New(nxerrors.KindValidation, fmt.Errorf("invalid adapter name %q", target))
	}
	cmd, err := attrs.ToAST(b.dict, target, domain.EncodeOptions{Logger: b.logger})
	if err != nil {
		return nil, err
	}
	bundle, err := b.renderer.Render(ctx, cmd, b.render)
	if err != nil {
		return nil, err
	}
	b.logger.Info("applying sfboot attributes",
		zap.String("target", target),
		zap.Strings("args", bundle.Args))

	output, err := b.run(ctx, bundle.Args)
	if err != nil {
		return nil, err
	}
	return b.Decode(ctx, output)
}

// Decode scans and decodes a captured report without running sfboot.
func (b *Backend) Decode(ctx context.Context, output []byte) (*domain.Config, error) {
	doc, err := b.parser.Parse(ctx, sfbootconfig.OutputBundle(Name, output), b.parse)
	if err != nil {
		return nil, err
	}
	return domain.FromAST(b.dict, doc, domain.DecodeOptions{
		KeepUnrecognized: b.parse.KeepUnrecognized,
		Logger:           b.logger,
	})
}

func (b *Backend) run(ctx context.Context, args []string) ([]byte, error) {
	if b.runner == nil {
		return nil, nxerrors.New(nxerrors.KindInternal, fmt.Errorf("no runner configured"))
	}
	return b.runner.Run(ctx, args)
}
