package config

import (
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	// AppName is used for config file discovery
	AppName = "dos33disk"

	// EnvPrefix is the prefix for environment variable overrides
	EnvPrefix = "DOS33DISK"
)

// AppConfig holds the tool's configuration. Everything here is a default
// that per-command flags may override.
type AppConfig struct {
	Debug     bool   `mapstructure:"debug"`
	LogFormat string `mapstructure:"log_format"`

	// Disk settings
	Disk struct {
		VolumeNumber int    `mapstructure:"volume_number"`
		BootSector   string `mapstructure:"boot_sector"` // path to a boot blob applied on create
	} `mapstructure:"disk"`

	// Import settings
	Import struct {
		LoadAddress int `mapstructure:"load_address"` // default load address for binary files
	} `mapstructure:"import"`
}

var (
	// Instance is the global configuration
	Instance AppConfig

	// ConfigLoaded reports whether a config file was found and read
	ConfigLoaded bool

	v *viper.Viper

	initOnce sync.Once
)

// Initialize sets up the configuration system. A missing config file is
// not an error; the defaults stand.
func Initialize(cfgFile string) error {
	var err error

	initOnce.Do(func() {
		v = viper.New()
		setDefaults(v)

		if cfgFile != "" {
			v.SetConfigFile(cfgFile)
		} else {
			v.SetConfigName(AppName)
			v.SetConfigType("yaml")
			v.AddConfigPath(".")
			v.AddConfigPath("$HOME/.config/" + AppName)
		}

		v.SetEnvPrefix(EnvPrefix)
		v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		v.AutomaticEnv()

		if readErr := v.ReadInConfig(); readErr == nil {
			ConfigLoaded = true
		} else if cfgFile != "" {
			// Only an explicitly named file is required to exist
			err = readErr
			return
		}

		err = v.Unmarshal(&Instance)
	})

	return err
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("debug", false)
	v.SetDefault("log_format", "human")
	v.SetDefault("disk.volume_number", 254)
	v.SetDefault("disk.boot_sector", "")
	v.SetDefault("import.load_address", 0x2000)
}
