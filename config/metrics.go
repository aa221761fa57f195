package config

// MetricsConfig configures the StatsD metrics sink. Metrics are off by
// default; set STATSD_ENABLED=true and point STATSD_ADDRESS at a
// StatsD-compatible UDP endpoint to turn them on.
type MetricsConfig struct {
	Enabled bool   `env:"ENABLED" envDefault:"false"`
	Address string `env:"ADDRESS" envDefault:""`
	Prefix  string `env:"PREFIX"  envDefault:"doconnect.web"`
}
