// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/rovshanmuradov/launchpad/internal/docstore"
	"github.com/rovshanmuradov/launchpad/internal/wallet"
)

const EnvPrefix = "LAUNCHPAD"

type Config struct {
	DebugLogging          bool            `mapstructure:"debug_logging"`
	TimezoneOffsetMinutes int             `mapstructure:"timezone_offset_minutes" validate:"gte=-720,lte=840"`
	DefaultNetwork        string          `mapstructure:"default_network" validate:"required"`
	Networks              []NetworkConfig `mapstructure:"networks" validate:"dive"`
	Store                 StoreConfig     `mapstructure:"store"`
	Contracts             ContractsConfig `mapstructure:"contracts"`
	Tx                    TxConfig        `mapstructure:"tx"`
	PrivateKey            string          `mapstructure:"private_key" validate:"omitempty,hexadecimal"`
	MetricsAddr           string          `mapstructure:"metrics_addr" validate:"omitempty,hostname_port"`
	LogBufferSize         int             `mapstructure:"log_buffer_size" validate:"gte=0"`
	LogSpillFile          string          `mapstructure:"log_spill_file"`
	ExportDir             string          `mapstructure:"export_dir" validate:"required"`
}

// NetworkConfig is one entry of the networks table.
type NetworkConfig struct {
	Name           string   `mapstructure:"name" validate:"required"`
	ChainID        string   `mapstructure:"chain_id" validate:"required,startswith=0x,hexadecimal"`
	ChainName      string   `mapstructure:"chain_name" validate:"required"`
	CurrencyName   string   `mapstructure:"currency_name"`
	CurrencySymbol string   `mapstructure:"currency_symbol" validate:"required"`
	Decimals       uint8    `mapstructure:"decimals"`
	RPCURLs        []string `mapstructure:"rpc_urls" validate:"required,min=1,dive,url"`
	ExplorerURLs   []string `mapstructure:"explorer_urls" validate:"dive,url"`
}

type StoreConfig struct {
	Backend       string `mapstructure:"backend" validate:"oneof=firebase redis memory"`
	FirebaseURL   string `mapstructure:"firebase_url" validate:"required_if=Backend firebase,omitempty,url"`
	FirebaseAuth  string `mapstructure:"firebase_auth"`
	HTTPRetries   int    `mapstructure:"http_retries" validate:"gte=0,lte=10"`
	RedisAddr     string `mapstructure:"redis_addr" validate:"required_if=Backend redis"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db" validate:"gte=0"`
	RedisPrefix   string `mapstructure:"redis_prefix"`
}

type ContractsConfig struct {
	TokenFactory  string `mapstructure:"token_factory" validate:"required,eth_addr"`
	BatchTransfer string `mapstructure:"batch_transfer" validate:"required,eth_addr"`
}

type TxConfig struct {
	WaitTimeout  time.Duration `mapstructure:"wait_timeout" validate:"gt=0"`
	PollInterval time.Duration `mapstructure:"poll_interval" validate:"gt=0"`
}

const (
	DefaultTimezoneOffset = 330
	DefaultNetwork        = "Ethereum Sepolia"
	DefaultTokenFactory   = "0x3f2D1103Ff5c18bf4E153da811D3817F583c516E"
	DefaultBatchTransfer  = "0x1a08E27ff306AaE145FA729EeE6E48f4FA9704fe"
	DefaultWaitTimeout    = 3 * time.Minute
	DefaultPollInterval   = 2 * time.Second
	DefaultLogBufferSize  = 1000
	DefaultLogSpillFile   = "launchpad.log"
	DefaultRedisPrefix    = "launchpad"
	DefaultExportDir      = "exports"
)

// LoadEnvFile loads a .env file into the process environment. A missing
// file is not an error.
func LoadEnvFile(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}

// LoadConfig reads the config file at path (skipped when empty), applies
// LAUNCHPAD_* environment overrides and validates the result.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()

	defaults := map[string]interface{}{
		"debug_logging":            false,
		"timezone_offset_minutes":  DefaultTimezoneOffset,
		"default_network":          DefaultNetwork,
		"store.backend":            docstore.BackendMemory,
		"store.firebase_url":       "",
		"store.firebase_auth":      "",
		"store.http_retries":       0,
		"store.redis_addr":         "",
		"store.redis_password":     "",
		"store.redis_db":           0,
		"store.redis_prefix":       DefaultRedisPrefix,
		"contracts.token_factory":  DefaultTokenFactory,
		"contracts.batch_transfer": DefaultBatchTransfer,
		"tx.wait_timeout":          DefaultWaitTimeout,
		"tx.poll_interval":         DefaultPollInterval,
		"private_key":              "",
		"metrics_addr":             "",
		"log_buffer_size":          DefaultLogBufferSize,
		"log_spill_file":           DefaultLogSpillFile,
		"export_dir":               DefaultExportDir,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if len(cfg.Networks) == 0 {
		cfg.Networks = defaultNetworks()
	}
	cfg.PrivateKey = strings.TrimPrefix(strings.TrimSpace(cfg.PrivateKey), "0x")

	return &cfg, validateConfig(&cfg)
}

var validate = validator.New()

func validateConfig(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, ok := wallet.NetworkByName(cfg.WalletNetworks(), cfg.DefaultNetwork); !ok {
		return fmt.Errorf("default_network %q is not in the networks table", cfg.DefaultNetwork)
	}
	return nil
}

func defaultNetworks() []NetworkConfig {
	out := make([]NetworkConfig, 0, len(wallet.DefaultNetworks))
	for _, n := range wallet.DefaultNetworks {
		out = append(out, NetworkConfig{
			Name:           n.Name,
			ChainID:        n.ChainID,
			ChainName:      n.ChainName,
			CurrencyName:   n.Currency.Name,
			CurrencySymbol: n.Currency.Symbol,
			Decimals:       n.Currency.Decimals,
			RPCURLs:        append([]string(nil), n.RPCURLs...),
			ExplorerURLs:   append([]string(nil), n.ExplorerURLs...),
		})
	}
	return out
}

// WalletNetworks converts the networks table for the wallet package.
func (c *Config) WalletNetworks() []wallet.Network {
	out := make([]wallet.Network, 0, len(c.Networks))
	for _, n := range c.Networks {
		decimals := n.Decimals
		if decimals == 0 {
			decimals = 18
		}
		name := n.CurrencyName
		if name == "" {
			name = n.CurrencySymbol
		}
		out = append(out, wallet.Network{
			Name:         n.Name,
			ChainID:      strings.ToLower(n.ChainID),
			ChainName:    n.ChainName,
			Currency:     wallet.Currency{Name: name, Symbol: n.CurrencySymbol, Decimals: decimals},
			RPCURLs:      n.RPCURLs,
			ExplorerURLs: n.ExplorerURLs,
		})
	}
	return out
}

// ActiveNetwork returns the configured default network.
func (c *Config) ActiveNetwork() wallet.Network {
	n, _ := wallet.NetworkByName(c.WalletNetworks(), c.DefaultNetwork)
	return n
}

// StoreOptions maps the store section onto docstore.Options.
func (c *Config) StoreOptions() docstore.Options {
	return docstore.Options{
		Backend:       c.Store.Backend,
		FirebaseURL:   c.Store.FirebaseURL,
		FirebaseAuth:  c.Store.FirebaseAuth,
		HTTPRetries:   c.Store.HTTPRetries,
		RedisAddr:     c.Store.RedisAddr,
		RedisPassword: c.Store.RedisPassword,
		RedisDB:       c.Store.RedisDB,
		RedisPrefix:   c.Store.RedisPrefix,
	}
}

// Location is the fixed zone presale schedules are entered in.
func (c *Config) Location() *time.Location {
	if c.TimezoneOffsetMinutes == DefaultTimezoneOffset {
		return time.FixedZone("IST", DefaultTimezoneOffset*60)
	}
	return time.FixedZone(fmt.Sprintf("UTC%+d", c.TimezoneOffsetMinutes), c.TimezoneOffsetMinutes*60)
}
