package animated

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

var (
	cfgLoaded = false
	config    = _animatedconfig{}
)

// _animatedconfig is a "hidden" struct, just use `conf`
type _animatedconfig struct {
	OutputDir  string
	TextureDir string
	Tick       time.Duration
	Refresh    time.Duration
}

// conf returns the library configuration from the conf.toml in the directory
// named by the ANIMATED_CONFIG environment variable. The built-in defaults
// apply when the variable is unset; a set but unreadable configuration is a
// panic.
func conf() _animatedconfig {
	if cfgLoaded {
		return config
	}
	config = _animatedconfig{
		OutputDir:  "./out",
		TextureDir: "./textures",
		Tick:       100 * time.Millisecond,
		Refresh:    100 * time.Millisecond,
	}
	confPath := os.Getenv("ANIMATED_CONFIG")
	if confPath == "" {
		cfgLoaded = true
		return config
	}
	viper.SetConfigName("conf")
	viper.AddConfigPath(confPath)
	if err := viper.ReadInConfig(); err != nil {
		panic(fmt.Errorf("%s/conf.toml not found", confPath))
	}
	if dir := viper.GetString("general.output_path"); dir != "" {
		config.OutputDir = dir
	}
	if dir := viper.GetString("general.texture_path"); dir != "" {
		config.TextureDir = dir
	}
	if d := viper.GetDuration("playback.tick"); d > 0 {
		config.Tick = d
	}
	if d := viper.GetDuration("playback.refresh"); d > 0 {
		config.Refresh = d
	}
	cfgLoaded = true
	return config
}
