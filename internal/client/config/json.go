package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/dkaledin/teamtrack/internal/flagx"
	"github.com/dkaledin/teamtrack/internal/timex"
)

// JsonConfig is the DTO for reading JSON configuration files. It uses
// timex.Duration so intervals parse from both "10s" strings and integer
// nanoseconds.
type JsonConfig struct {
	ServerBaseURL  string         `json:"server_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
}

// parseJson loads configuration values from the JSON file named by the
// -c or -config command-line flags. Without the flag nothing is loaded.
// Unreadable files or invalid JSON panic.
func parseJson(config *Config) {

	jsonConfigFile := flagx.JsonConfigFlags()

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

	config.ServerBaseURL = c.ServerBaseURL
	config.RequestTimeout = time.Duration(c.RequestTimeout.Duration)
}
