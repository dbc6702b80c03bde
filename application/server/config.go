package server

import (
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/application"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/sdt-sys/sdt-go/utils"
)

// An Address describes a server's connection.
//
// Allowing issuance (Inception and Mutation commands) has to be
// specified explicitly for each connection. The other commands are
// allowed by default, so addresses are "read-only" unless configured
// otherwise.
type Address struct {
	application.ServerAddress `yaml:",inline"`
	AllowIssuance             bool `toml:"allow_issuance,omitempty" yaml:"allow_issuance,omitempty"`
}

// StorageConfig selects the database holding the issued credentials.
type StorageConfig struct {
	// Backend is either "leveldb" or "pebble".
	Backend string `toml:"backend" yaml:"backend"`
	Path    string `toml:"path" yaml:"path"`
	// CacheSize is the number of credentials kept decoded in memory.
	CacheSize int `toml:"cache_size,omitempty" yaml:"cache_size,omitempty"`
}

// BuilderConfig controls how commitment trees are built. It is
// reloaded on SIGUSR2.
type BuilderConfig struct {
	// HashAlg is the multicodec id of the hash function of new
	// credentials.
	HashAlg uint64 `toml:"hash_alg" yaml:"hash_alg"`
	// Workers bounds concurrent subtree hashing, one per CPU if zero.
	Workers int `toml:"workers,omitempty" yaml:"workers,omitempty"`
}

// A Config contains configuration values
// which are read at initialization time from
// a TOML (or YAML) format configuration file.
type Config struct {
	application.CommonConfig `yaml:",inline"`
	// Addresses contains the server's connections configuration.
	Addresses []*Address `toml:"addresses" yaml:"addresses"`
	// Storage contains the database configuration.
	Storage *StorageConfig `toml:"storage" yaml:"storage"`
	// Builder contains the tree building configuration.
	Builder *BuilderConfig `toml:"builder" yaml:"builder"`
	// MetricsAddress is the host:port the Prometheus metrics are
	// served on. Metrics are disabled if empty.
	MetricsAddress string `toml:"metrics_address,omitempty" yaml:"metrics_address,omitempty"`
}

var _ application.AppConfig = (*Config)(nil)

// NewConfig initializes a new server configuration with the given
// file path, encoding, server addresses, logger configuration,
// storage and builder configuration.
func NewConfig(file, encoding string, addrs []*Address,
	logConfig *application.LoggerConfig, storage *StorageConfig,
	builder *BuilderConfig) *Config {
	return &Config{
		CommonConfig: *application.NewCommonConfig(file, encoding, logConfig),
		Addresses:    addrs,
		Storage:      storage,
		Builder:      builder,
	}
}

// Load initializes a server configuration from the corresponding
// config file. It validates the configuration and resolves the paths
// of the database, the TLS certificate files of each Address and the
// log file against the directory of the config file.
func (conf *Config) Load(file, encoding string) error {
	conf.CommonConfig = *application.NewCommonConfig(file, encoding, nil)
	if err := conf.GetLoader().Decode(conf); err != nil {
		return err
	}
	if err := conf.validate(); err != nil {
		return err
	}

	conf.Storage.Path = utils.ResolvePath(conf.Storage.Path, file)
	for _, addr := range conf.Addresses {
		if addr.TLSCertPath != "" {
			addr.TLSCertPath = utils.ResolvePath(addr.TLSCertPath, file)
		}
		if addr.TLSKeyPath != "" {
			addr.TLSKeyPath = utils.ResolvePath(addr.TLSKeyPath, file)
		}
	}
	if conf.Logger.Path != "" {
		conf.Logger.Path = utils.ResolvePath(conf.Logger.Path, file)
	}
	return nil
}

// Save writes the configuration to its path. It never overwrites an
// existing file.
func (conf *Config) Save() error {
	return conf.GetLoader().Encode(conf)
}

func (conf *Config) validate() error {
	if conf.Logger == nil {
		return errors.New("missing [logger] section")
	}
	if len(conf.Addresses) == 0 {
		return errors.New("no addresses configured")
	}
	for _, addr := range conf.Addresses {
		if addr == nil || addr.Address == "" {
			return errors.New("address without url")
		}
	}
	if conf.Storage == nil || conf.Storage.Path == "" {
		return errors.New("missing storage path")
	}
	if _, ok := utils.Backends[conf.Storage.Backend]; !ok {
		return errors.Errorf("unknown storage backend %q", conf.Storage.Backend)
	}
	if conf.Builder == nil {
		conf.Builder = &BuilderConfig{HashAlg: uint64(hasher.Default)}
	}
	if _, err := hasher.Hasher(hasher.HashAlg(conf.Builder.HashAlg)); err != nil {
		return err
	}
	return nil
}
