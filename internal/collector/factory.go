package collector

import (
	"fmt"

	"github.com/hudsonmp/project-finder/internal/config"
	"github.com/hudsonmp/project-finder/internal/domain"
)

// New selects the collector implementation from cfg.CollectorMode. The
// config is injected by the caller; construction failure is returned as a
// typed error rather than degrading to a nil client.
func New(cfg *config.Config) (domain.Collector, error) {
	switch cfg.CollectorMode {
	case "api":
		return NewAPIClient(cfg)
	case "public":
		return NewPublicClient(cfg.RedditUserAgent)
	case "mock":
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("unknown COLLECTOR_MODE: %s (use 'api', 'public', or 'mock')", cfg.CollectorMode)
	}
}
