/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/suparena/tablestore/datastore/ddb"
	"github.com/suparena/tablestore/errors"
	"github.com/suparena/tablestore/pagination"
)

// EnvPrefix prefixes every environment override, e.g. TABLESTORE_AWS_REGION.
const EnvPrefix = "TABLESTORE"

// Config is the full tablestore configuration.
type Config struct {
	AWS    AWSConfig    `mapstructure:"aws" yaml:"aws"`
	Tables TablesConfig `mapstructure:"tables" yaml:"tables"`
	Query  QueryConfig  `mapstructure:"query" yaml:"query"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
}

type AWSConfig struct {
	Region    string `mapstructure:"region" yaml:"region"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`
	// Endpoint points the client at dynamodb-local or localstack
	Endpoint string `mapstructure:"endpoint" yaml:"endpoint"`
}

type TablesConfig struct {
	ActivityLog string `mapstructure:"activity_log" yaml:"activity_log"`
}

type QueryConfig struct {
	// PageSize is used when a request does not set top
	PageSize int `mapstructure:"page_size" yaml:"page_size"`
	// Parallelism bounds ForEachParallel visits
	Parallelism int `mapstructure:"parallelism" yaml:"parallelism"`
}

type LogConfig struct {
	// debug, info, warn, error
	Level string `mapstructure:"level" yaml:"level"`
}

// Load reads the configuration.
//
// A .env file in the working directory is loaded into the environment first
// when present. path names a YAML file; when empty, tablestore.yaml is looked
// up in the working directory and is optional. TABLESTORE_* environment
// variables override both, and the plain AWS_* variables are accepted for
// the AWS settings.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !stderrors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("tablestore")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	if err := bindAWSEnv(v); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !stderrors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("aws.region", "us-east-1")
	v.SetDefault("aws.access_key", "")
	v.SetDefault("aws.secret_key", "")
	v.SetDefault("aws.endpoint", "")

	v.SetDefault("tables.activity_log", "ActivityLog")

	v.SetDefault("query.page_size", pagination.DefaultTop)
	v.SetDefault("query.parallelism", 8)

	v.SetDefault("log.level", "info")
}

// bindAWSEnv lets the settings shared with other AWS tooling come from
// their usual variables.
func bindAWSEnv(v *viper.Viper) error {
	bindings := map[string][]string{
		"aws.region":     {"AWS_REGION", "AWS_DEFAULT_REGION"},
		"aws.access_key": {"AWS_ACCESS_KEY", "AWS_ACCESS_KEY_ID"},
		"aws.secret_key": {"AWS_SECRET_KEY", "AWS_SECRET_ACCESS_KEY"},
		"aws.endpoint":   {"AWS_DDB_ENDPOINT"},
	}
	for key, names := range bindings {
		envPrefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, envPrefixed}, names...)...); err != nil {
			return fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	switch {
	case c.AWS.Region == "":
		return errors.NewValidationError("aws.region", "is required")
	case c.Tables.ActivityLog == "":
		return errors.NewValidationError("tables.activity_log", "is required")
	case c.Query.PageSize < 1 || c.Query.PageSize > pagination.MaxTop:
		return errors.NewValidationError("query.page_size", fmt.Sprintf("must be between 1 and %d", pagination.MaxTop))
	case c.Query.Parallelism < 1:
		return errors.NewValidationError("query.parallelism", "must be at least 1")
	}
	return nil
}

// ClientOptions returns the DynamoDB client settings.
func (c *Config) ClientOptions() ddb.ClientOptions {
	return ddb.ClientOptions{
		Region:    c.AWS.Region,
		AccessKey: c.AWS.AccessKey,
		SecretKey: c.AWS.SecretKey,
		Endpoint:  c.AWS.Endpoint,
	}
}
