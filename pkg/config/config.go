// Package config loads and validates the pipeline configuration file.
package config

import (
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/fleximart-data/fleximart/pkg/mysql"
)

const (
	DefaultConfigFile = "fleximart.yml"
	DefaultReportPath = "data_quality_report.txt"

	passwordEnvVar = "FLEXIMART_MYSQL_PASSWORD"
)

// Inputs holds the paths of the three raw extracts.
type Inputs struct {
	Customers string `yaml:"customers" validate:"required"`
	Products  string `yaml:"products" validate:"required"`
	Sales     string `yaml:"sales" validate:"required"`
}

type Config struct {
	Inputs     Inputs       `yaml:"inputs" validate:"required"`
	MySQL      mysql.Config `yaml:"mysql" validate:"required"`
	ReportPath string       `yaml:"report"`
}

// LoadFromFile reads the YAML configuration, applies defaults and validates
// it. A FLEXIMART_MYSQL_PASSWORD environment variable overrides the password
// from the file, so credentials can stay out of the config entirely.
func LoadFromFile(fs afero.Fs, path string) (*Config, error) {
	buf, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read config file %s", path)
	}

	var config Config
	if err := yaml.Unmarshal(buf, &config); err != nil {
		return nil, errors.Wrapf(err, "failed to parse config file %s", path)
	}

	if password := os.Getenv(passwordEnvVar); password != "" {
		config.MySQL.Password = password
	}

	if config.ReportPath == "" {
		config.ReportPath = DefaultReportPath
	}

	validate := validator.New()
	if err := validate.Struct(config); err != nil {
		return nil, errors.Wrapf(err, "invalid config file %s", path)
	}

	return &config, nil
}
