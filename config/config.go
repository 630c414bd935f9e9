// Copyright (C) 2019-2025, Lux Industries, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/luxfi/database/badgerdb"
	"github.com/luxfi/database/memdb"
	"github.com/luxfi/geth/common"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/luxfi/ethbridge/api/server"
)

// EnvPrefix prefixes the environment variables that override a parsed
// config.
const EnvPrefix = "ETHBRIDGE_"

var (
	ErrInvalidThreshold   = errors.New("invalid threshold configuration")
	ErrInvalidAuthorities = errors.New("invalid authorities configuration")
	ErrInvalidPort        = errors.New("invalid port configuration")
	ErrInvalidCacheSize   = errors.New("invalid cache size configuration")
	ErrInvalidDatabase    = errors.New("invalid database configuration")
)

// Config holds configuration for a bridge coordinator node.
type Config struct {
	// Ledger settings
	Threshold   int              `json:"threshold"   env:"THRESHOLD"`
	Authorities []common.Address `json:"authorities" env:"AUTHORITIES" envSeparator:","`
	Namespace   string           `json:"namespace"   env:"NAMESPACE"`

	// Storage settings. The ledger is the only record of executed
	// withdrawals; memdb forgets it on exit.
	DBType       string `json:"dbType"       env:"DB_TYPE"`
	DBPath       string `json:"dbPath"       env:"DB_PATH"`
	DBSyncWrites bool   `json:"dbSyncWrites" env:"DB_SYNC_WRITES"`

	// SignatureCacheSize bounds the cache of recovered signers.
	SignatureCacheSize int `json:"signatureCacheSize" env:"SIGNATURE_CACHE_SIZE"`

	// API settings
	HTTPHost          string        `json:"httpHost"          env:"HTTP_HOST"`
	HTTPPort          uint16        `json:"httpPort"          env:"HTTP_PORT"`
	AllowedOrigins    []string      `json:"allowedOrigins"    env:"ALLOWED_ORIGINS" envSeparator:","`
	AllowedHosts      []string      `json:"allowedHosts"      env:"ALLOWED_HOSTS" envSeparator:","`
	ShutdownTimeout   time.Duration `json:"shutdownTimeout"   env:"SHUTDOWN_TIMEOUT"`
	ReadTimeout       time.Duration `json:"readTimeout"       env:"READ_TIMEOUT"`
	ReadHeaderTimeout time.Duration `json:"readHeaderTimeout" env:"READ_HEADER_TIMEOUT"`
	WriteTimeout      time.Duration `json:"writeTimeout"      env:"WRITE_TIMEOUT"`
	IdleTimeout       time.Duration `json:"idleTimeout"       env:"IDLE_TIMEOUT"`
}

// DefaultConfig returns a config with default values. Authorities have no
// default.
func DefaultConfig() Config {
	return Config{
		Threshold:          1,
		Namespace:          "ethbridge",
		DBType:             badgerdb.Name,
		DBPath:             "ethbridge-db",
		DBSyncWrites:       true,
		SignatureCacheSize: 1024,
		HTTPHost:           "127.0.0.1",
		HTTPPort:           9650,
		AllowedOrigins:     []string{"*"},
		AllowedHosts:       []string{"localhost"},
		ShutdownTimeout:    10 * time.Second,
		ReadTimeout:        30 * time.Second,
		ReadHeaderTimeout:  30 * time.Second,
		WriteTimeout:       30 * time.Second,
		IdleTimeout:        120 * time.Second,
	}
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if len(c.Authorities) == 0 {
		return fmt.Errorf("%w: no authorities", ErrInvalidAuthorities)
	}
	if c.Threshold < 1 || c.Threshold > len(c.Authorities) {
		return fmt.Errorf("%w: %d of %d", ErrInvalidThreshold, c.Threshold, len(c.Authorities))
	}
	if c.HTTPPort == 0 {
		return ErrInvalidPort
	}
	if c.SignatureCacheSize <= 0 {
		return ErrInvalidCacheSize
	}
	switch c.DBType {
	case memdb.Name:
	case badgerdb.Name:
		if c.DBPath == "" {
			return fmt.Errorf("%w: %s requires a path", ErrInvalidDatabase, c.DBType)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDatabase, c.DBType)
	}
	return nil
}

// HTTPAddress returns the address the API listens on.
func (c *Config) HTTPAddress() string {
	return net.JoinHostPort(c.HTTPHost, strconv.Itoa(int(c.HTTPPort)))
}

// ServerConfig returns the API server settings, reporting request metrics
// to [registerer].
func (c *Config) ServerConfig(registerer prometheus.Registerer) server.Config {
	return server.Config{
		AllowedOrigins:  c.AllowedOrigins,
		AllowedHosts:    c.AllowedHosts,
		ShutdownTimeout: c.ShutdownTimeout,
		Registerer:      registerer,
		HTTP: server.HTTPConfig{
			ReadTimeout:       c.ReadTimeout,
			ReadHeaderTimeout: c.ReadHeaderTimeout,
			WriteTimeout:      c.WriteTimeout,
			IdleTimeout:       c.IdleTimeout,
		},
	}
}

// ParseConfig parses configuration from JSON bytes on top of the defaults and
// applies the ETHBRIDGE_* environment overrides.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if len(data) != 0 {
		if err := json.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	if err := env.Parse(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return cfg, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, cfg.Validate()
}
