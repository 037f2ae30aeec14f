package classify

import "context"

// Generator is one generative tier of the classification chain: it produces
// structured text for a prompt. Implementations must honor ctx cancellation
// and carry their own tier-appropriate timeout.
type Generator interface {
	// Name identifies the tier in logs and metrics (e.g. "ondevice", "remote").
	Name() string
	// Generate returns raw response text expected to be parseable as an
	// ItemRecord JSON object. Any error advances the fallback chain.
	Generate(ctx context.Context, prompt string) (string, error)
}
