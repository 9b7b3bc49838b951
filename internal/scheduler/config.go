package scheduler

import (
	"time"
)

// Config controls scheduler intervals and retention windows.
type Config struct {
	RunInterval       time.Duration
	JobTimeout        time.Duration
	RetentionDays     int
	PushRetentionDays int
	EnabledJobs       []string
}

func DefaultConfig() Config {
	return Config{
		RunInterval:       time.Minute,
		JobTimeout:        30 * time.Second,
		RetentionDays:     30,
		PushRetentionDays: 180,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.RunInterval <= 0 {
		c.RunInterval = defaults.RunInterval
	}
	if c.JobTimeout <= 0 {
		c.JobTimeout = defaults.JobTimeout
	}
	if c.RetentionDays <= 0 {
		c.RetentionDays = defaults.RetentionDays
	}
	if c.PushRetentionDays <= 0 {
		c.PushRetentionDays = defaults.PushRetentionDays
	}
	return c
}
