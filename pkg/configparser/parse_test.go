package configparser

import (
	"testing"
	"time"
)

type sampleConfig struct {
	Nested struct {
		Name    string        `env:"CFGTEST_NAME" default:"fallback"`
		Port    int           `env:"CFGTEST_PORT" default:"5432"`
		Ratio   float64       `env:"CFGTEST_RATIO" default:"10.5"`
		Timeout time.Duration `env:"CFGTEST_TIMEOUT" default:"15m"`
	}
	Untagged string
}

func TestParseEnv_Defaults(t *testing.T) {
	var cfg sampleConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Nested.Name != "fallback" {
		t.Fatalf("Name = %q, want fallback", cfg.Nested.Name)
	}
	if cfg.Nested.Port != 5432 {
		t.Fatalf("Port = %d, want 5432", cfg.Nested.Port)
	}
	if cfg.Nested.Ratio != 10.5 {
		t.Fatalf("Ratio = %v, want 10.5", cfg.Nested.Ratio)
	}
	if cfg.Nested.Timeout != 15*time.Minute {
		t.Fatalf("Timeout = %v, want 15m", cfg.Nested.Timeout)
	}
}

func TestParseEnv_EnvOverridesDefault(t *testing.T) {
	t.Setenv("CFGTEST_NAME", "from-env")
	t.Setenv("CFGTEST_PORT", "9000")

	var cfg sampleConfig
	if err := ParseEnv(&cfg); err != nil {
		t.Fatalf("ParseEnv: %v", err)
	}
	if cfg.Nested.Name != "from-env" {
		t.Fatalf("Name = %q, want from-env", cfg.Nested.Name)
	}
	if cfg.Nested.Port != 9000 {
		t.Fatalf("Port = %d, want 9000", cfg.Nested.Port)
	}
}

func TestParseEnv_RejectsNonPointer(t *testing.T) {
	var cfg sampleConfig
	if err := ParseEnv(cfg); err == nil {
		t.Fatalf("ParseEnv should reject a non-pointer destination")
	}
}
