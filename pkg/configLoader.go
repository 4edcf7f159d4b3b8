package reco

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed config.schema.json
var configSchemaJSON string

var configSchema = jsonschema.MustCompileString("config.schema.json", configSchemaJSON)

// DefaultConfiguration reproduces the segmented-layout analysis.
func DefaultConfiguration() Configuration {
	var config Configuration

	config.MaxEvents = 0
	config.Verbosity = 0
	config.OutputMode = OutputAcceptance
	config.Signature = ThreePionSignature
	config.WatchSettleMs = 2000
	config.Layout = "segmented"
	config.DBDriver = "mysql"
	config.Host = "localhost"
	config.User = "reader"
	config.DBName = "VIKING"
	config.PositionSmear = 5     // cm
	config.TimeSmear = 0.0015    // ns
	config.ParentMass = KaonMass // GeV/c^2
	config.SpeedOfLight = SpeedOfLight
	config.MomentumCeiling = 11 // GeV/c
	config.Seed = 1
	config.NumWorkers = 1
	config.Parallel = false
	config.CompressionLevel = 4
	config.Trees = DefaultTreeNames()
	config.Branches = DefaultBranchNames()
	config.MomentumMin = 0
	config.MomentumMax = 10
	config.BinWidth = 0.5
	config.AnomalyThreshold = 1
	return config
}

// LoadConfiguration reads a JSON, YAML or TOML file on top of the defaults and
// validates the result.
func LoadConfiguration(filename string) (Configuration, error) {
	config := DefaultConfiguration()

	data, err := os.ReadFile(filename)
	if err != nil {
		return config, err
	}

	switch filepath.Ext(filename) {
	case ".toml":
		if _, err := toml.Decode(string(data), &config); err != nil {
			return config, fmt.Errorf("decode TOML: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("decode YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &config); err != nil {
			return config, fmt.Errorf("decode JSON: %w", err)
		}
	}

	if err := ValidateConfiguration(config); err != nil {
		return config, err
	}
	return config, nil
}

// ValidateConfiguration checks a configuration against the embedded schema.
func ValidateConfiguration(config Configuration) error {
	data, err := json.Marshal(config)
	if err != nil {
		return fmt.Errorf("encode configuration: %w", err)
	}
	var instance any
	if err := json.Unmarshal(data, &instance); err != nil {
		return fmt.Errorf("decode configuration: %w", err)
	}
	if err := configSchema.Validate(instance); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
