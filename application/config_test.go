package application

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testConfig struct {
	CommonConfig `yaml:",inline"`
	Name         string `toml:"name" yaml:"name"`
}

func (c *testConfig) Load(file, encoding string) error {
	c.CommonConfig = *NewCommonConfig(file, encoding, nil)
	return c.GetLoader().Decode(c)
}

func (c *testConfig) Save() error {
	return c.GetLoader().Encode(c)
}

var _ AppConfig = (*testConfig)(nil)

func TestConfigLoaders(t *testing.T) {
	for _, encoding := range []string{"toml", "yaml"} {
		t.Run(encoding, func(t *testing.T) {
			file := filepath.Join(t.TempDir(), "config."+encoding)
			conf := &testConfig{
				CommonConfig: *NewCommonConfig(file, encoding,
					&LoggerConfig{Environment: "development", Path: "sdt.log"}),
				Name: "sdt",
			}
			require.NoError(t, conf.Save())
			// existing files are never overwritten
			require.Error(t, conf.Save())

			loaded := new(testConfig)
			require.NoError(t, loaded.Load(file, encoding))
			assert.Equal(t, "sdt", loaded.Name)
			require.NotNil(t, loaded.Logger)
			assert.Equal(t, "development", loaded.Logger.Environment)
			assert.Equal(t, "sdt.log", loaded.Logger.Path)
			assert.Equal(t, file, loaded.GetPath())
		})
	}
}

func TestUnknownEncodingFallsBackToToml(t *testing.T) {
	_, ok := newConfigLoader("xml").(*TomlLoader)
	assert.True(t, ok)
	_, ok = newConfigLoader("yaml").(*YamlLoader)
	assert.True(t, ok)
}
