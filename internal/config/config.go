package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// InputsConfig holds the paths of the three input files.
type InputsConfig struct {
	// ProtocolFile may be left empty to use the built-in protocol registry.
	ProtocolFile    string `yaml:"protocol_file"`
	FlowLogFile     string `yaml:"flow_log_file"`
	LookupTableFile string `yaml:"lookup_table_file"`
}

// FieldsConfig describes the layout of a flow log record.
type FieldsConfig struct {
	DstPortIndex  int `yaml:"dst_port_index"`
	ProtocolIndex int `yaml:"protocol_index"`
	MinFields     int `yaml:"min_fields"`
}

// OutputConfig holds the location of the text report.
type OutputConfig struct {
	Path string `yaml:"path"`
}

// ClickHouseConfig holds the connection details for the ClickHouse writer.
type ClickHouseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Table    string `yaml:"table"`
}

// NATSConfig holds the connection details for the NATS writer.
type NATSConfig struct {
	URL     string `yaml:"url"`
	Subject string `yaml:"subject"`
}

// WriterDef defines an additional report writer from the config file.
type WriterDef struct {
	Type       string           `yaml:"type"`
	Enabled    bool             `yaml:"enabled"`
	ClickHouse ClickHouseConfig `yaml:"clickhouse"`
	NATS       NATSConfig       `yaml:"nats"`
}

// Config is the top-level configuration struct for the entire application.
type Config struct {
	Inputs  InputsConfig `yaml:"inputs"`
	Fields  FieldsConfig `yaml:"fields"`
	Output  OutputConfig `yaml:"output"`
	Writers []WriterDef  `yaml:"writers"`
}

// Default returns the configuration used when no config file is given. The
// file names are resolved against the working directory.
func Default() *Config {
	return &Config{
		Inputs: InputsConfig{
			ProtocolFile:    "protocol-numbers-1.csv",
			FlowLogFile:     "flowlog.txt",
			LookupTableFile: "lookuptable.csv",
		},
		Fields: FieldsConfig{
			DstPortIndex:  6,
			ProtocolIndex: 7,
			MinFields:     14,
		},
		Output: OutputConfig{Path: "output.txt"},
	}
}

// LoadConfig reads the configuration from a YAML file and returns a Config struct.
// Keys missing from the file keep their default values.
func LoadConfig(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	err = yaml.Unmarshal(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to unmarshal config YAML: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that the configuration describes a runnable job.
func (c *Config) Validate() error {
	if c.Inputs.FlowLogFile == "" {
		return fmt.Errorf("inputs.flow_log_file must be set")
	}
	if c.Inputs.LookupTableFile == "" {
		return fmt.Errorf("inputs.lookup_table_file must be set")
	}
	if c.Output.Path == "" {
		return fmt.Errorf("output.path must be set")
	}

	f := c.Fields
	if f.DstPortIndex < 0 || f.ProtocolIndex < 0 {
		return fmt.Errorf("field indices must not be negative")
	}
	if f.DstPortIndex == f.ProtocolIndex {
		return fmt.Errorf("fields.dst_port_index and fields.protocol_index must differ")
	}
	if f.DstPortIndex >= f.MinFields || f.ProtocolIndex >= f.MinFields {
		return fmt.Errorf("fields.min_fields (%d) must be greater than both field indices", f.MinFields)
	}

	for i, w := range c.Writers {
		if !w.Enabled {
			continue
		}
		switch w.Type {
		case "clickhouse":
			if w.ClickHouse.Host == "" || w.ClickHouse.Port == 0 {
				return fmt.Errorf("writers[%d]: clickhouse host and port must be set", i)
			}
		case "nats":
			if w.NATS.URL == "" || w.NATS.Subject == "" {
				return fmt.Errorf("writers[%d]: nats url and subject must be set", i)
			}
		case "":
			return fmt.Errorf("writers[%d]: type must be set", i)
		}
	}

	return nil
}
