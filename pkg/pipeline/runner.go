package pipeline

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/renderfig/renderfig/pkg/cache"
	"github.com/renderfig/renderfig/pkg/config"
	"github.com/renderfig/renderfig/pkg/diagram"
	"github.com/renderfig/renderfig/pkg/engine"
	"github.com/renderfig/renderfig/pkg/errors"
	"github.com/renderfig/renderfig/pkg/format"
	"github.com/renderfig/renderfig/pkg/observability"
	"github.com/renderfig/renderfig/pkg/options"
)

// Runner executes the conversion pipeline per block. A Runner is stateless
// apart from its registry, cache, and logger; the HTTP service shares one
// across requests.
type Runner struct {
	Registry *engine.Registry
	Cache    cache.Cache
	Convert  format.ConvertFunc
	Logger   *log.Logger
	Config   config.Config
}

// NewRunner creates a runner. A nil registry gets the built-in engines with
// dynamic loading per the config's package overrides; a nil cache is resolved
// from the config (which may mean caching disabled); a nil logger falls back
// to the default.
func NewRunner(reg *engine.Registry, c cache.Cache, logger *log.Logger, cfg config.Config) *Runner {
	if reg == nil {
		reg = engine.NewRegistry(&engine.ExecLoader{Packages: cfg.PackageOverrides()})
	}
	if c == nil {
		c = cache.Open(cfg.Cache, cfg.CacheDir)
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Registry: reg,
		Cache:    c,
		Convert:  format.PDFToSVG,
		Logger:   logger,
		Config:   cfg,
	}
}

// ProcessBlock converts one diagram block for the given host document format.
//
// Returns (nil, nil) when the block is not a diagram (no engine matches its
// first class) or when rendering failed under the warn policy; in both cases
// the caller keeps the original code block. Returns an error only under the
// fail policy. On success, the image bytes are registered with assets and the
// returned Figure replaces the block.
func (r *Runner) ProcessBlock(ctx context.Context, block *diagram.Block, hostFormat string, assets AssetStore) (*diagram.Figure, error) {
	name := block.EngineName()
	if name == "" {
		return nil, nil
	}
	spec, ok := r.Registry.Resolve(name)
	if !ok {
		// Not every code block is a diagram.
		r.Logger.Debug("no engine for code block", "tag", name)
		return nil, nil
	}

	opts, err := options.Parse(block, spec.LineComment)
	if err != nil {
		return r.blockFailed(name, err)
	}

	ecfg := r.Config.Engine(name)
	supported := spec.SupportedTypes(ecfg)
	if len(supported) == 0 {
		supported = spec.MIMETypes
	}
	mimeType, ok := format.Choose(supported, format.Preferred(hostFormat))
	if !ok {
		// No overlap with the preference order; ask for the engine's
		// first choice and rely on conversion downstream.
		mimeType = supported[0]
	}

	key := cache.Hash([]byte(block.Source))
	data, actualType, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Debug("cache read failed", "key", key, "err", err)
		hit = false
	}

	if hit {
		observability.Cache().OnCacheHit(ctx, key)
	} else {
		observability.Cache().OnCacheMiss(ctx, key)

		req := engine.Request{
			Source:   block.Source,
			MIMEType: mimeType,
			Options:  mergeOptions(ecfg.Options, opts.Engine),
			Config:   ecfg,
		}
		start := time.Now()
		observability.Engine().OnCompileStart(ctx, name)
		res, err := spec.Compile(ctx, req)
		observability.Engine().OnCompileComplete(ctx, name, res.MIMEType, time.Since(start), err)
		if err != nil {
			return r.blockFailed(name, err)
		}
		if _, known := diagram.Extension(res.MIMEType); !known {
			return r.blockFailed(name, errors.New(errors.ErrCodeUnknownFormat,
				"%s returned unrecognized MIME type %q", name, res.MIMEType))
		}
		data, actualType = res.Data, res.MIMEType

		if err := r.Cache.Set(ctx, key, data, actualType); err != nil {
			r.Logger.Debug("cache write failed", "key", key, "err", err)
		} else {
			observability.Cache().OnCacheSet(ctx, key, len(data))
		}
	}

	// PDF into a host that can't embed it: convert, never pass raw PDF
	// through. A conversion failure is a render failure for this block.
	if actualType == diagram.MIMEPDF && !format.CanEmbedPDF(hostFormat) {
		converted, err := r.Convert(ctx, data)
		if err != nil {
			return r.blockFailed(name, err)
		}
		data, actualType = converted, diagram.MIMESVG
	}

	filename := opts.Filename
	if filename == "" {
		ext, _ := diagram.Extension(actualType)
		filename = cache.Hash(data) + "." + ext
	}
	if err := assets.Register(filename, actualType, data); err != nil {
		return r.blockFailed(name, errors.Wrap(errors.ErrCodeInternal, err, "register asset"))
	}

	fig := &diagram.Figure{
		ID:         options.FigureID(block, opts),
		Name:       opts.Name,
		Target:     filename,
		MIMEType:   actualType,
		Attributes: opts.Figure,
		Image:      opts.Image,
	}
	if opts.Caption != nil {
		fig.AltText = opts.Caption.Plain
		fig.Caption = opts.Caption.HTML
	}
	return fig, nil
}

// ProcessAll runs ProcessBlock over blocks in document order. The result
// slice is positionally aligned with blocks; a nil entry means the block was
// passed through unchanged. Under the fail policy the first failure aborts.
func (r *Runner) ProcessAll(ctx context.Context, blocks []diagram.Block, hostFormat string, assets AssetStore) ([]*diagram.Figure, error) {
	figures := make([]*diagram.Figure, len(blocks))
	for i := range blocks {
		fig, err := r.ProcessBlock(ctx, &blocks[i], hostFormat, assets)
		if err != nil {
			return nil, err
		}
		figures[i] = fig
	}
	return figures, nil
}

// blockFailed applies the failure policy: warn and keep the block, or abort
// the run.
func (r *Runner) blockFailed(engineName string, err error) (*diagram.Figure, error) {
	if r.Config.FailFast() {
		code := errors.GetCode(err)
		if code == "" {
			code = errors.ErrCodeEngineFailed
		}
		return nil, errors.Wrap(code, err, "render %s diagram", engineName)
	}
	r.Logger.Warn("diagram not converted, keeping code block",
		"engine", engineName, "err", errors.UserMessage(err))
	return nil, nil
}

// mergeOptions overlays per-block engine options on the configured defaults.
func mergeOptions(defaults, block map[string]string) map[string]string {
	if len(defaults) == 0 {
		return block
	}
	merged := make(map[string]string, len(defaults)+len(block))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range block {
		merged[k] = v
	}
	return merged
}
