// Package config defines the necessary types to configure the application.
// An example config file config.yaml is provided in the repository.
package config

import (
	"time"

	"github.com/openkcm/common-sdk/pkg/commoncfg"
)

type Config struct {
	commoncfg.BaseConfig `mapstructure:",squash" yaml:",inline"`

	HTTP HTTPServer `yaml:"http"`
	GRPC GRPCServer `yaml:"grpc"`

	Database   Database   `yaml:"database"`
	ValKey     ValKey     `yaml:"valkey"`
	Migrate    Migrate    `yaml:"migrate"`
	Remote     Remote     `yaml:"remote"`
	Cache      Cache      `yaml:"cache"`
	ChargeSync ChargeSync `yaml:"chargeSync"`
}

type HTTPServer struct {
	Address         string        `yaml:"address" default:":8080"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

type GRPCServer struct {
	commoncfg.GRPCServer `mapstructure:",squash" yaml:",inline"`

	ShutdownTimeout time.Duration `yaml:"shutdownTimeout" default:"5s"`
}

type Database struct {
	Name     string              `yaml:"name"`
	Port     string              `yaml:"port"`
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	// SSLMode is passed as the libpq sslmode parameter when set.
	SSLMode string `yaml:"sslMode"`
}

type ValKey struct {
	Host     commoncfg.SourceRef `yaml:"host"`
	User     commoncfg.SourceRef `yaml:"user"`
	Password commoncfg.SourceRef `yaml:"password"`
	Prefix   string              `yaml:"prefix" default:"datamanager"`
	// MTLS enables client certificate authentication towards Valkey.
	MTLS *commoncfg.MTLS `yaml:"mtls"`
}

// Migrate selects where the migrations are read from: "embedded" for the
// ones compiled into the binary, or a file:// directory.
type Migrate struct {
	Source string `yaml:"source" default:"embedded"`
}

// Remote configures the connection to the remote banking API.
type Remote struct {
	// BaseURL is the API root, e.g. https://bank.example/fineract-provider/api/v1
	BaseURL  string        `yaml:"baseURL"`
	TenantID string        `yaml:"tenantID" default:"default"`
	Timeout  time.Duration `yaml:"timeout" default:"30s"`

	ClientAuth ClientAuth `yaml:"clientAuth"`
}

type ClientAuthType string

const (
	ClientAuthMTLS     ClientAuthType = "mtls"
	ClientAuthInsecure ClientAuthType = "insecure"
)

type ClientAuth struct {
	Type ClientAuthType  `yaml:"type" default:"insecure"`
	MTLS *commoncfg.MTLS `yaml:"mtls"`
}

type CacheBackend string

const (
	CacheBackendValKey   CacheBackend = "valkey"
	CacheBackendPostgres CacheBackend = "postgres"
	CacheBackendMemory   CacheBackend = "memory"
)

// Cache selects where synced entities and the session record are stored.
type Cache struct {
	Backend CacheBackend `yaml:"backend" default:"valkey"`
}

type ChargeSync struct {
	Interval time.Duration `yaml:"interval" default:"15m"`
}
