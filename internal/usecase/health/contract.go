package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// TierChecker checks availability of a single classification tier.
type TierChecker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}
