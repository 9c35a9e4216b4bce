package bridge

import (
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	geoengine "github.com/sciagent/geo-engine"
	"github.com/sciagent/geo-engine/errors"
)

// Acquisition selects when the foreign geometry module is instantiated.
type Acquisition string

const (
	// AcquireEager instantiates the module during New. Acquisition failure
	// is fatal to construction.
	AcquireEager Acquisition = "eager"

	// AcquireLazy defers instantiation to the first operation that needs
	// the runtime. The first failure is sticky: subsequent operations
	// return the same error without retrying.
	AcquireLazy Acquisition = "lazy"
)

// Config holds engine configuration. ModulePath and Acquisition are
// settable from a YAML file; the remaining fields are wired in code.
type Config struct {
	// ModulePath is the path to the geometry module binary on disk.
	ModulePath string `yaml:"module"`

	// Module is the geometry module binary. Takes precedence over
	// ModulePath when set.
	Module []byte `yaml:"-"`

	// Acquisition controls eager vs lazy module instantiation.
	// Defaults to eager.
	Acquisition Acquisition `yaml:"acquisition"`

	// MemoryLimitPages caps guest memory in 64KB pages. 0 means the
	// runtime default.
	MemoryLimitPages uint32 `yaml:"memory_limit_pages"`

	// Logger for engine diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger `yaml:"-"`

	// Runtime injects an already-acquired geometry runtime. When set,
	// ModulePath, Module and Acquisition are ignored and the engine takes
	// ownership of the runtime.
	Runtime geoengine.Runtime `yaml:"-"`
}

func (c Config) validate() error {
	switch c.Acquisition {
	case "", AcquireEager, AcquireLazy:
		return nil
	default:
		return errors.InvalidInput(errors.PhaseConfig,
			"acquisition must be \"eager\" or \"lazy\"")
	}
}

// LoadConfig reads engine configuration from a YAML file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "read config file")
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrap(errors.PhaseConfig, errors.KindInvalidData, err, "parse config file")
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
