package classify

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/inventa-app/inventa/internal/domain"
	"github.com/inventa-app/inventa/internal/metrics"
)

// Pipeline runs the ordered classification fallback chain: each configured
// generative tier in turn, then the deterministic synthesizer. Tiers run
// strictly sequentially; a later tier is attempted only after the previous
// one errored or produced an invalid record. The terminal tier is total, so
// the chain always ends with a valid ItemRecord.
type Pipeline struct {
	generators []Generator
	logger     *zap.Logger
}

// NewPipeline creates a classification pipeline. Generators are attempted in
// the given order; an empty list degrades straight to the deterministic tier.
func NewPipeline(logger *zap.Logger, generators ...Generator) *Pipeline {
	return &Pipeline{generators: generators, logger: logger}
}

// Classify produces a validated ItemRecord for the vision summary.
// The only possible error is context cancellation; tier failures are logged,
// counted, and absorbed by falling through to the next tier.
func (p *Pipeline) Classify(
	ctx context.Context, vision domain.VisionSummary, hint string,
) (domain.ItemRecord, error) {
	prompt := BuildPrompt(vision, hint)

	for _, gen := range p.generators {
		if err := ctx.Err(); err != nil {
			return domain.ItemRecord{}, err
		}

		record, err := p.tryTier(ctx, gen, prompt)
		if err != nil {
			metrics.ClassifyFallbacksTotal.WithLabelValues(gen.Name()).Inc()
			p.logger.Warn("classification tier failed, falling back",
				zap.String("tier", gen.Name()),
				zap.Error(err),
			)
			continue
		}
		return record, nil
	}

	if err := ctx.Err(); err != nil {
		return domain.ItemRecord{}, err
	}

	start := time.Now()
	record := Synthesize(vision)
	metrics.ClassifyRequestsTotal.WithLabelValues("deterministic", "success").Inc()
	metrics.ClassifyDuration.WithLabelValues("deterministic").Observe(time.Since(start).Seconds())
	return record, nil
}

func (p *Pipeline) tryTier(ctx context.Context, gen Generator, prompt string) (domain.ItemRecord, error) {
	start := time.Now()

	text, err := gen.Generate(ctx, prompt)
	if err != nil {
		metrics.ClassifyRequestsTotal.WithLabelValues(gen.Name(), "error").Inc()
		return domain.ItemRecord{}, err
	}

	record, err := ParseResponse(text)
	if err != nil {
		metrics.ClassifyRequestsTotal.WithLabelValues(gen.Name(), "invalid").Inc()
		return domain.ItemRecord{}, err
	}

	metrics.ClassifyRequestsTotal.WithLabelValues(gen.Name(), "success").Inc()
	metrics.ClassifyDuration.WithLabelValues(gen.Name()).Observe(time.Since(start).Seconds())
	return record, nil
}
