// Package config supplies environment-sourced fallback values for the
// server's command-line flags. Flags passed on the command line always win;
// this package only fills in values the operator did not specify.
package config

import "github.com/kelseyhightower/envconfig"

// Defaults holds the KIERKI_-prefixed environment overrides for the CLI flags
// documented in cmd/kierki-serwer.
type Defaults struct {
	// Port is used when -p is absent. Zero means let the OS choose.
	Port int `envconfig:"port"`
	// DealsFile is used when -f is absent.
	DealsFile string `envconfig:"deals_file"`
	// TimeoutSeconds is used when -t is absent.
	TimeoutSeconds int `envconfig:"timeout_seconds" default:"5"`
}

// Load reads KIERKI_PORT, KIERKI_DEALS_FILE and KIERKI_TIMEOUT_SECONDS.
func Load() (Defaults, error) {
	var d Defaults
	if err := envconfig.Process("kierki", &d); err != nil {
		return Defaults{}, err
	}

	return d, nil
}
