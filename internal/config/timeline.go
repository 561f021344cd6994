package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	EnvTimelineBufferSize   = "VERIFLOW_TIMELINE_BUFFER_SIZE"
	EnvTimelineDrainTimeout = "VERIFLOW_TIMELINE_DRAIN_TIMEOUT"
)

// TimelineConfig holds settings for the asynchronous timeline event emitter.
type TimelineConfig struct {
	BufferSize   int    `toml:"buffer_size"`
	DrainTimeout string `toml:"drain_timeout"`
}

// DrainTimeoutDuration returns DrainTimeout as a time.Duration.
func (c *TimelineConfig) DrainTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(c.DrainTimeout)
	return d
}

// Finalize applies defaults, environment variable overrides, and validation.
func (c *TimelineConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *TimelineConfig) Merge(overlay *TimelineConfig) {
	if overlay.BufferSize != 0 {
		c.BufferSize = overlay.BufferSize
	}
	if overlay.DrainTimeout != "" {
		c.DrainTimeout = overlay.DrainTimeout
	}
}

func (c *TimelineConfig) loadDefaults() {
	if c.BufferSize == 0 {
		c.BufferSize = 256
	}
	if c.DrainTimeout == "" {
		c.DrainTimeout = "10s"
	}
}

func (c *TimelineConfig) loadEnv() {
	if v := os.Getenv(EnvTimelineBufferSize); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			c.BufferSize = n
		}
	}
	if v := os.Getenv(EnvTimelineDrainTimeout); v != "" {
		c.DrainTimeout = v
	}
}

func (c *TimelineConfig) validate() error {
	if c.BufferSize < 1 {
		return fmt.Errorf("invalid buffer_size: %d", c.BufferSize)
	}
	if _, err := time.ParseDuration(c.DrainTimeout); err != nil {
		return fmt.Errorf("invalid drain_timeout: %w", err)
	}
	return nil
}
