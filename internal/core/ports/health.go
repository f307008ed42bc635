package ports

import "context"

// HealthChecker probes one backing dependency for the health endpoint.
type HealthChecker interface {
	// Name identifies the dependency in the health report.
	Name() string
	// Check returns nil when the dependency can currently serve requests.
	Check(ctx context.Context) error
}
