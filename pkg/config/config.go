// Package config loads and validates the YAML configuration that drives a
// solving session: which problem to attack, which solver families to run,
// and the budgets each is given.
package config

import (
	"crypto/sha256"
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config specifies all parameters for one Ædificium reconstruction run.
type Config struct {
	// Seed is the master seed for deterministic solving. Use 0 to
	// auto-generate from the current time.
	Seed uint64 `yaml:"seed" json:"seed"`

	// Problem names the target room graph, e.g.
	// "random_full_12_2_7" or a registered name like "probatio".
	Problem string `yaml:"problem" json:"problem"`

	// Judge configures the HTTP client used to talk to the judge service.
	Judge JudgeCfg `yaml:"judge" json:"judge"`

	// Solvers lists which solver families to run and their budgets.
	Solvers []SolverCfg `yaml:"solvers" json:"solvers"`

	// Orchestrator controls the worker pool that runs solver attempts.
	Orchestrator OrchestratorCfg `yaml:"orchestrator" json:"orchestrator"`

	// MaxQueries caps the number of explore-route strings sent to the
	// judge across all expeditions, mirroring the judge's own quota.
	MaxQueries int `yaml:"maxQueries" json:"maxQueries"`
}

// JudgeCfg configures the judge HTTP client.
type JudgeCfg struct {
	// BaseURL is the judge service root, e.g. "https://31pwr2gsx4.execute-api.eu-west-2.amazonaws.com".
	BaseURL string `yaml:"baseUrl" json:"baseUrl"`

	// ID is the team's registered identifier, sent with every request.
	ID string `yaml:"id" json:"id"`

	// RequestTimeout bounds a single HTTP round trip.
	RequestTimeout time.Duration `yaml:"requestTimeout" json:"requestTimeout"`
}

// SolverKind names one of the solver families.
type SolverKind string

const (
	SolverSAT         SolverKind = "sat"
	SolverAnneal      SolverKind = "anneal"
	SolverFingerprint SolverKind = "fingerprint"
)

// ValidSolverKinds lists all valid solver family names.
var ValidSolverKinds = []SolverKind{SolverSAT, SolverAnneal, SolverFingerprint}

// SolverCfg configures one solver family entry in the worker pool.
type SolverCfg struct {
	// Kind selects the solver family.
	Kind SolverKind `yaml:"kind" json:"kind"`

	// Workers is how many concurrent attempts of this kind to run.
	Workers int `yaml:"workers" json:"workers"`

	// WallClock bounds a single attempt of this kind.
	WallClock time.Duration `yaml:"wallClock" json:"wallClock"`

	// SATBinary is the external solver executable (only used when
	// Kind == SolverSAT).
	SATBinary string `yaml:"satBinary,omitempty" json:"satBinary,omitempty"`
}

// OrchestratorCfg controls the worker pool dispatching solver attempts.
type OrchestratorCfg struct {
	// MaxConcurrency caps the total number of in-flight solver attempts
	// across all families.
	MaxConcurrency int `yaml:"maxConcurrency" json:"maxConcurrency"`

	// Budget bounds the whole solving session.
	Budget time.Duration `yaml:"budget" json:"budget"`
}

// LoadConfig reads and validates a YAML configuration file.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}
	return LoadConfigFromBytes(data)
}

// LoadConfigFromBytes parses YAML configuration from a byte slice.
func LoadConfigFromBytes(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if cfg.Seed == 0 {
		cfg.Seed = generateSeed()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}
	return &cfg, nil
}

// Validate checks all configuration constraints.
func (c *Config) Validate() error {
	if c.Problem == "" {
		return errors.New("problem must not be empty")
	}
	if err := c.Judge.Validate(); err != nil {
		return fmt.Errorf("judge: %w", err)
	}
	if len(c.Solvers) == 0 {
		return errors.New("at least one solver must be configured")
	}
	for i, s := range c.Solvers {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("solvers[%d]: %w", i, err)
		}
	}
	if err := c.Orchestrator.Validate(); err != nil {
		return fmt.Errorf("orchestrator: %w", err)
	}
	if c.MaxQueries < 0 {
		return fmt.Errorf("maxQueries must be non-negative, got %d", c.MaxQueries)
	}
	return nil
}

// Validate checks JudgeCfg constraints.
func (j *JudgeCfg) Validate() error {
	if j.BaseURL == "" {
		return errors.New("baseUrl must not be empty")
	}
	if j.ID == "" {
		return errors.New("id must not be empty")
	}
	if j.RequestTimeout <= 0 {
		return fmt.Errorf("requestTimeout must be positive, got %v", j.RequestTimeout)
	}
	return nil
}

// Validate checks SolverCfg constraints.
func (s *SolverCfg) Validate() error {
	valid := false
	for _, k := range ValidSolverKinds {
		if s.Kind == k {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("invalid solver kind %q, must be one of sat, anneal, fingerprint", s.Kind)
	}
	if s.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", s.Workers)
	}
	if s.WallClock <= 0 {
		return fmt.Errorf("wallClock must be positive, got %v", s.WallClock)
	}
	if s.Kind == SolverSAT && s.SATBinary == "" {
		return errors.New("satBinary must be set for a sat solver entry")
	}
	return nil
}

// Validate checks OrchestratorCfg constraints.
func (o *OrchestratorCfg) Validate() error {
	if o.MaxConcurrency < 1 {
		return fmt.Errorf("maxConcurrency must be at least 1, got %d", o.MaxConcurrency)
	}
	if o.Budget <= 0 {
		return fmt.Errorf("budget must be positive, got %v", o.Budget)
	}
	return nil
}

// ToYAML serializes the config to YAML bytes.
func (c *Config) ToYAML() ([]byte, error) {
	return yaml.Marshal(c)
}

// Hash computes a deterministic hash of the configuration, used for
// deriving per-worker RNG seeds.
func (c *Config) Hash() []byte {
	data, err := c.ToYAML()
	if err != nil {
		h := sha256.New()
		var buf [8]byte
		binary.LittleEndian.PutUint64(buf[:], c.Seed)
		h.Write(buf[:])
		return h.Sum(nil)
	}
	h := sha256.New()
	h.Write(data)
	return h.Sum(nil)
}

// generateSeed creates a seed from the current time.
func generateSeed() uint64 {
	now := time.Now().UnixNano()
	if now < 0 {
		now = -now
	}
	seed := uint64(now)
	if seed == 0 {
		seed = 1
	}
	return seed
}
