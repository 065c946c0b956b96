package config

import (
	"fmt"
	"log"
	"strings"
)

const defaultMetricsNamespace = "product"

type MetricsConfig struct {
	Enabled   bool   `koanf:"enabled"`
	Namespace string `koanf:"namespace"`
}

// String returns a string representation of the metrics configuration.
func (c *MetricsConfig) String() string {
	var b strings.Builder
	b.WriteString("\n--- Metrics ---\n")
	b.WriteString(fmt.Sprintf("  enabled: %t\n", c.Enabled))
	b.WriteString(fmt.Sprintf("  namespace: %s\n", c.Namespace))
	return b.String()
}

func (c *MetricsConfig) Validate() error {
	if c.Enabled && c.Namespace == "" {
		log.Println("Using default value for metrics namespace")
		c.Namespace = defaultMetricsNamespace
	}
	return nil
}
