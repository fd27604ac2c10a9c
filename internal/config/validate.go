package config

import (
	"fmt"
	"strings"
)

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	c.Storage.Driver = strings.ToLower(strings.TrimSpace(c.Storage.Driver))
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.DSN == "" {
			return fmt.Errorf("database.dsn is required for the postgres driver")
		}
	default:
		return fmt.Errorf("storage.driver must be %q or %q (got %q)", DriverMemory, DriverPostgres, c.Storage.Driver)
	}

	if err := c.Community.validate(); err != nil {
		return fmt.Errorf("community: %w", err)
	}

	if err := c.Insight.validate(); err != nil {
		return fmt.Errorf("insight: %w", err)
	}

	if c.RateLimit.PerMinute < 0 {
		return fmt.Errorf("rate_limit.per_minute must be >= 0 (got %d)", c.RateLimit.PerMinute)
	}

	return nil
}

func (c *CommunityConfig) validate() error {
	if c.ProThreshold <= 0 {
		return fmt.Errorf("pro_threshold must be > 0 (got %d)", c.ProThreshold)
	}
	if c.ExpertThreshold <= c.ProThreshold {
		return fmt.Errorf("expert_threshold must be > pro_threshold (got %d <= %d)", c.ExpertThreshold, c.ProThreshold)
	}
	if c.ProgressCeiling < c.ExpertThreshold {
		return fmt.Errorf("progress_ceiling must be >= expert_threshold (got %d < %d)", c.ProgressCeiling, c.ExpertThreshold)
	}
	if c.NotificationLimit <= 0 {
		return fmt.Errorf("notification_limit must be > 0 (got %d)", c.NotificationLimit)
	}
	return nil
}

func (c *InsightConfig) validate() error {
	if c.TopN <= 0 {
		return fmt.Errorf("top_n must be > 0 (got %d)", c.TopN)
	}
	if c.ExampleLimit <= 0 {
		return fmt.Errorf("example_limit must be > 0 (got %d)", c.ExampleLimit)
	}
	if c.NotifyThreshold <= 0 {
		return fmt.Errorf("notify_threshold must be > 0 (got %d)", c.NotifyThreshold)
	}
	return nil
}
