package config

import (
	"github.com/fsnotify/fsnotify"

	"github.com/spf13/viper"
)

var Conf = new(AppConfig)

// AppConfig fstabkv 配置
type AppConfig struct {
	Fstab       string     `mapstructure:"fstab"`
	Output      string     `mapstructure:"output"`
	ByUUIDDir   string     `mapstructure:"by_uuid_dir"`
	ByLabelDir  string     `mapstructure:"by_label_dir"`
	DictSize    int32      `mapstructure:"dict_size"`
	DictMaxSize int32      `mapstructure:"dict_max_size"`
	LogConfig   *LogConfig `mapstructure:"logger"`
}

// LogConfig ZapLogger配置
type LogConfig struct {
	Mode       string `mapstructure:"mode"`
	Level      string `mapstructure:"level"`
	Filename   string `mapstructure:"filename"`
	MaxSize    int    `mapstructure:"max_size"`
	MaxAge     int    `mapstructure:"max_age"`
	MaxBackups int    `mapstructure:"max_backups"`
}

func Init() error {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("$HOME/.config/fstabkv")
	setDefaults()
	if err := viper.ReadInConfig(); err != nil {
		// 配置文件可选 缺失时全部走默认值
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}
	if err := viper.Unmarshal(Conf); err != nil {
		return err
	}
	viper.WatchConfig()
	viper.OnConfigChange(func(in fsnotify.Event) {
		_ = viper.Unmarshal(Conf)
	})
	return nil
}

func setDefaults() {
	viper.SetDefault("fstab", "/etc/fstab")
	viper.SetDefault("by_uuid_dir", "/dev/disk/by-uuid")
	viper.SetDefault("by_label_dir", "/dev/disk/by-label")
	viper.SetDefault("dict_size", 64)
	viper.SetDefault("dict_max_size", 0)
	viper.SetDefault("logger.mode", "dev")
	viper.SetDefault("logger.level", "warn")
	viper.SetDefault("logger.filename", "fstabkv.log")
	viper.SetDefault("logger.max_size", 10)
	viper.SetDefault("logger.max_age", 30)
	viper.SetDefault("logger.max_backups", 5)
}
