// Package config loads the sampler's runtime parameters from the
// environment, following the HDPLDA_* convention.
package config

import (
	"github.com/kelseyhightower/envconfig"

	"github.com/bobonovski/hdplda/hdperrors"
)

// Config holds every hyperparameter and control knob the sampler needs
// at construction time.
type Config struct {
	Seed uint64 `envconfig:"SEED" default:"1"`

	Beta   float64 `envconfig:"BETA" default:"0.1"`
	Gamma  float64 `envconfig:"GAMMA" default:"1.0"`
	Alpha0 float64 `envconfig:"ALPHA0" default:"1.0"`

	GammaA  float64 `envconfig:"GAMMA_A" default:"1.0"`
	GammaB  float64 `envconfig:"GAMMA_B" default:"1.0"`
	Alpha0A float64 `envconfig:"ALPHA0_A" default:"1.0"`
	Alpha0B float64 `envconfig:"ALPHA0_B" default:"1.0"`

	Alpha0Iters int `envconfig:"ALPHA0_ITERS" default:"20"`

	FanoutWorkers int `envconfig:"FANOUT_WORKERS" default:"0"`
}

// Load reads a Config from environment variables prefixed HDPLDA_, then
// validates it.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("HDPLDA", &cfg); err != nil {
		return Config{}, hdperrors.NewInvalidConfig("env", err.Error())
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that every hyperparameter satisfies the positivity
// preconditions crf.Init enforces, plus the control knobs this package
// owns, so a misconfiguration is caught before any CRF state is built.
func (c Config) Validate() error {
	for _, hp := range []struct {
		name string
		val  float64
	}{
		{"beta", c.Beta}, {"gamma", c.Gamma}, {"alpha0", c.Alpha0},
		{"gamma_a", c.GammaA}, {"gamma_b", c.GammaB},
		{"alpha0_a", c.Alpha0A}, {"alpha0_b", c.Alpha0B},
	} {
		if hp.val <= 0 {
			return hdperrors.NewInvalidConfig(hp.name, "must be > 0")
		}
	}
	if c.Alpha0Iters <= 0 {
		return hdperrors.NewInvalidConfig("alpha0_iters", "must be > 0")
	}
	if c.FanoutWorkers < 0 {
		return hdperrors.NewInvalidConfig("fanout_workers", "must be >= 0")
	}
	return nil
}
