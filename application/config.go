package application

// AppConfig provides an abstraction of the
// underlying encoding format for the configs.
type AppConfig interface {
	Load(file, encoding string) error
	Save() error
	GetPath() string
}

// CommonConfig is the generic type used to specify the configuration of
// any kind of application-level executable (e.g. the server).
// It contains some common configuration values including the file path,
// logger configuration, and config loader.
type CommonConfig struct {
	Path     string        `toml:"-" yaml:"-"`
	Logger   *LoggerConfig `toml:"logger" yaml:"logger"`
	Encoding string        `toml:"-" yaml:"-"`
	loader   ConfigLoader
}

// NewCommonConfig initializes an application's config file path,
// its loader for the given encoding, and the logger configuration.
// Note: This constructor must be called in each Load() method
// implementation of an AppConfig.
func NewCommonConfig(file, encoding string, logger *LoggerConfig) *CommonConfig {
	return &CommonConfig{
		Path:     file,
		Logger:   logger,
		Encoding: encoding,
		loader:   newConfigLoader(encoding),
	}
}

// GetLoader returns the config's loader.
func (conf *CommonConfig) GetLoader() ConfigLoader {
	if conf.loader == nil {
		conf.loader = newConfigLoader(conf.Encoding)
	}
	return conf.loader
}

// GetPath returns the path of the config file.
func (conf *CommonConfig) GetPath() string {
	return conf.Path
}
