package config

import (
	"fmt"
	"strings"
	"time"
)

// TelemetryConfig controls trace export. Metrics are exported through /metrics, see MetricsConfig.
type TelemetryConfig struct {
	Enabled bool         `koanf:"enabled"`
	Traces  TracesConfig `koanf:"traces"`
}

type TracesConfig struct {
	// SampleRatio is the fraction of new traces recorded; sampled parents are always followed.
	SampleRatio float64        `koanf:"sampleratio"`
	OtlpHttp    OtlpHttpConfig `koanf:"otlphttp"`
}

type OtlpHttpConfig struct {
	Endpoint string        `koanf:"endpoint"`
	Insecure bool          `koanf:"insecure"`
	Timeout  time.Duration `koanf:"timeout"`
}

func (c *TelemetryConfig) String() string {
	if !c.Enabled {
		return "\n--- Telemetry ---\n  enabled: false\n"
	}
	var b strings.Builder
	b.WriteString("\n--- Telemetry ---\n")
	b.WriteString("  enabled: true\n")
	b.WriteString(fmt.Sprintf("  traces.sampleratio: %g\n", c.Traces.SampleRatio))
	b.WriteString(fmt.Sprintf("  traces.otlphttp: %s (insecure: %t, timeout: %v)\n",
		c.Traces.OtlpHttp.Endpoint, c.Traces.OtlpHttp.Insecure, c.Traces.OtlpHttp.Timeout))
	return b.String()
}

// Validate checks the exporter settings when tracing is on. A zero sample ratio means 1.
func (c *TelemetryConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	switch r := c.Traces.SampleRatio; {
	case r == 0:
		c.Traces.SampleRatio = 1
	case r < 0 || r > 1:
		return fmt.Errorf("telemetry sample ratio must be within (0, 1], got %g", r)
	}
	if c.Traces.OtlpHttp.Endpoint == "" {
		return fmt.Errorf("OTel endpoint is not configured")
	}
	if c.Traces.OtlpHttp.Timeout <= 0 {
		return fmt.Errorf("telemetry timeout must be greater than 0")
	}
	return nil
}
