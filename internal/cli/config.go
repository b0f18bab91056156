package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/luxedir/internal/paths"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// Keys of config.yaml.
const (
	cfgKeyBackend      = "backend"
	cfgKeyDataDir      = "data_dir"
	cfgKeySyncStrategy = "sync_strategy"
	cfgKeyListenAddr   = "listen_addr"
	cfgKeyDebug        = "debug"
	cfgKeySeedDemo     = "seed_demo"
)

const defaultListenAddr = "127.0.0.1:8080"

// settings is config.yaml after defaults are applied.
type settings struct {
	Backend      string `yaml:"backend"`
	DataDir      string `yaml:"data_dir,omitempty"`
	SyncStrategy string `yaml:"sync_strategy"`
	ListenAddr   string `yaml:"listen_addr"`
	Debug        bool   `yaml:"debug"`
	SeedDemo     bool   `yaml:"seed_demo"`
}

func defaultSettings() settings {
	return settings{
		Backend:      types.BackendSQLite,
		SyncStrategy: types.SyncImmediate,
		ListenAddr:   defaultListenAddr,
		SeedDemo:     true,
	}
}

// storeConfig returns the backend configuration for dataDir.
func (s settings) storeConfig(dataDir string) types.Config {
	return types.Config{
		Backend:      s.Backend,
		DataDir:      dataDir,
		SyncStrategy: s.SyncStrategy,
		SeedDemo:     s.SeedDemo,
	}
}

// loadConfig reads config.yaml from configDir. A missing file yields the
// defaults. LUXEDIR_LISTEN_ADDR and LUXEDIR_DEBUG override the file.
func loadConfig(configDir string) (settings, error) {
	def := defaultSettings()

	v := viper.New()
	v.SetDefault(cfgKeyBackend, def.Backend)
	v.SetDefault(cfgKeySyncStrategy, def.SyncStrategy)
	v.SetDefault(cfgKeyListenAddr, def.ListenAddr)
	v.SetDefault(cfgKeyDebug, def.Debug)
	v.SetDefault(cfgKeySeedDemo, def.SeedDemo)
	_ = v.BindEnv(cfgKeyListenAddr, "LUXEDIR_LISTEN_ADDR")
	_ = v.BindEnv(cfgKeyDebug, "LUXEDIR_DEBUG")

	v.SetConfigFile(paths.ConfigFile(configDir))
	v.SetConfigType("yaml")
	var notFound viper.ConfigFileNotFoundError
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
		return settings{}, fmt.Errorf("reading config: %w", err)
	}

	return settings{
		Backend:      v.GetString(cfgKeyBackend),
		DataDir:      v.GetString(cfgKeyDataDir),
		SyncStrategy: v.GetString(cfgKeySyncStrategy),
		ListenAddr:   v.GetString(cfgKeyListenAddr),
		Debug:        v.GetBool(cfgKeyDebug),
		SeedDemo:     v.GetBool(cfgKeySeedDemo),
	}, nil
}

// writeConfigIfMissing creates config.yaml in configDir with s. An existing
// file is left alone. It reports whether a file was written.
func writeConfigIfMissing(configDir string, s settings) (bool, error) {
	path := paths.ConfigFile(configDir)
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking %s: %w", path, err)
	}

	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return false, fmt.Errorf("creating config directory: %w", err)
	}
	body, err := yaml.Marshal(&s)
	if err != nil {
		return false, fmt.Errorf("encoding config: %w", err)
	}
	header := []byte("# luxedir configuration\n")
	if err := os.WriteFile(path, append(header, body...), 0o644); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
