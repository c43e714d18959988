// Package magiclens is the Magic Analyzer: a heuristic search over
// decode/transform pipelines that surfaces interesting-looking content
// buried inside an arbitrary byte buffer. It composes four pieces a host
// program supplies or this package ships defaults for: a ScoreKit, a
// SignatureCatalogue, an OperationRegistry, and a Crib.
package magiclens

import (
	"context"

	"github.com/shirou/magiclens/buffer"
	"github.com/shirou/magiclens/engine"
	"github.com/shirou/magiclens/registry"
	"github.com/shirou/magiclens/report"
	"github.com/shirou/magiclens/signature"
)

// Analyzer bundles a built Engine with the SignatureCatalogue used for the
// final report's detected-type and encoding fields. It is the package's
// top-level entry point, analogous to how shirou/gofile's Detector bundles
// a magic.Database with detection options.
type Analyzer struct {
	engine    *engine.Engine
	catalogue *signature.Catalogue
}

// New builds an Analyzer over reg, the host-supplied operation registry.
// It always builds its own default SignatureCatalogue; callers needing a
// catalogue overlay should build one with signature.New().WithFileSignatures
// and pass it via WithCatalogue.
func New(reg registry.Registry, opts ...Option) (*Analyzer, error) {
	catalogue, err := signature.New()
	if err != nil {
		return nil, err
	}
	a := &Analyzer{catalogue: catalogue}
	var engineOpts []engine.Option
	for _, opt := range opts {
		opt(a, &engineOpts)
	}
	a.engine = engine.New(reg, engineOpts...)
	return a, nil
}

// Option configures an Analyzer at construction time.
type Option func(*Analyzer, *[]engine.Option)

// WithCatalogue overrides the default SignatureCatalogue, e.g. with one
// carrying a YAML-supplied overlay of extra file signatures.
func WithCatalogue(c *signature.Catalogue) Option {
	return func(a *Analyzer, _ *[]engine.Option) { a.catalogue = c }
}

// WithEngineOptions forwards functional options (WithWeights, WithThresholds,
// WithLogger) to the underlying Engine.
func WithEngineOptions(opts ...engine.Option) Option {
	return func(_ *Analyzer, out *[]engine.Option) { *out = append(*out, opts...) }
}

// Analyze runs one bounded search over input and renders the result as the
// caller-facing AnalysisReport.
func (a *Analyzer) Analyze(ctx context.Context, input []byte, cfg engine.Config) (report.AnalysisReport, error) {
	er, err := a.engine.Analyze(ctx, input, cfg)
	if err != nil {
		return report.AnalysisReport{}, err
	}
	return report.Format(er, buffer.New(input), a.catalogue, cfg.ExtensiveLanguageSupport), nil
}

// AnalyzeBatch runs independent Analyze calls concurrently and renders each
// resulting Report, preserving input order.
func (a *Analyzer) AnalyzeBatch(ctx context.Context, inputs []engine.BatchInput, concurrency int) ([]report.AnalysisReport, []error) {
	ers, errs := a.engine.AnalyzeBatch(ctx, inputs, concurrency)
	out := make([]report.AnalysisReport, len(ers))
	for i, er := range ers {
		if errs[i] != nil {
			continue
		}
		out[i] = report.Format(er, buffer.New(inputs[i].Bytes), a.catalogue, inputs[i].Config.ExtensiveLanguageSupport)
	}
	return out, errs
}

// Catalogue exposes the Analyzer's SignatureCatalogue, e.g. for a host that
// wants to run its own Identify/DetectEncodings calls outside of Analyze.
func (a *Analyzer) Catalogue() *signature.Catalogue {
	return a.catalogue
}
