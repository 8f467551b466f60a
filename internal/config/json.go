package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dmitrijs2005/guardbox/internal/flagx"
	"github.com/dmitrijs2005/guardbox/internal/timex"
)

// JsonConfig is an intermediate DTO used only for reading JSON
// configuration files. It uses timex.Duration for interval fields, which
// allows parsing both string values such as "30s" and integer nanoseconds.
// After unmarshalling, its fields are copied into the runtime Config.
type JsonConfig struct {
	DataDir                 string         `json:"data_dir"`
	FreezeThreshold         int            `json:"freeze_threshold"`
	FreezeDuration          timex.Duration `json:"freeze_duration"`
	CodeValidityDuration    timex.Duration `json:"code_validity_duration"`
	SecretKey               string         `json:"secret_key"`
	SessionValidityDuration timex.Duration `json:"session_validity_duration"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path is taken from the -c or -config command-line flags; if
// neither is set, no JSON file is loaded. Only fields present in the file
// override the existing values. If the file cannot be read or contains
// invalid JSON, the function panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	if c.DataDir != "" {
		config.DataDir = c.DataDir
	}
	if c.FreezeThreshold > 0 {
		config.FreezeThreshold = c.FreezeThreshold
	}
	if c.FreezeDuration.Duration > 0 {
		config.FreezeDuration = time.Duration(c.FreezeDuration.Duration)
	}
	if c.CodeValidityDuration.Duration > 0 {
		config.CodeValidityDuration = time.Duration(c.CodeValidityDuration.Duration)
	}
	if c.SecretKey != "" {
		config.SecretKey = c.SecretKey
	}
	if c.SessionValidityDuration.Duration > 0 {
		config.SessionValidityDuration = time.Duration(c.SessionValidityDuration.Duration)
	}
}
