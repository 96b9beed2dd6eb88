package common

import (
	"errors"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/emersion/go-appdir"
	"github.com/jwalton/go-supportscolor"
	"github.com/lmittmann/tint"
	"github.com/spf13/viper"
)

type FileConfig struct {
	Directory struct {
		// Database is the sqlite DSN of the primary employee store.
		Database string
		// Sources are extra sqlite databases merged into the directory on load.
		Sources []string
	}
	Log struct {
		Level string
	}
}

func IsDebug() bool {
	return os.Getenv("DEBUG") != ""
}

func SetupConfigNameAndPaths(v *viper.Viper, Glog *slog.Logger, appName string, configFileName string) {
	v.SetConfigName(configFileName)

	v.AddConfigPath(".")

	dirs := appdir.New(appName)
	v.AddConfigPath(dirs.UserConfig())

	switch runtime.GOOS {
	case "windows":
		Glog.Info("On Windows, system-wide config is not supported.")
	case "darwin", "ios":
		v.AddConfigPath(filepath.Join("/Library", "Application Support", appName))
	default:
		fhsConfig := filepath.Join("/etc", appName)
		if runtime.GOOS != "linux" && runtime.GOOS != "freebsd" && runtime.GOOS != "netbsd" && runtime.GOOS != "openbsd" {
			Glog.Warn(fmt.Sprintf("Unsupported os: %s. Will probe %s.", runtime.GOOS, fhsConfig))
		}
		v.AddConfigPath(fhsConfig)
	}
}

// LoadConfig reads the config file into a FileConfig. A missing config file is
// not an error: the defaults and EMPDIR_* environment variables still apply.
func LoadConfig(v *viper.Viper, appName string) (FileConfig, error) {
	dirs := appdir.New(appName)
	v.SetDefault("directory.database", filepath.Join(dirs.UserData(), "employees.db"))
	v.SetDefault("directory.sources", []string{})
	v.SetDefault("log.level", "info")

	v.SetEnvPrefix(strings.ToUpper(appName))
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config FileConfig
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, WrapError(UCodeConfig, "failed to read config file", err, false)
		}
	}
	if err := v.Unmarshal(&config); err != nil {
		return config, WrapError(UCodeConfig, "failed to decode config", err, false)
	}
	if config.Directory.Database == "" {
		return config, NewError(UCodeConfig, "directory.database must not be empty", false)
	}
	return config, nil
}

// ParseLevel maps a config level name to a slog level, falling back to info.
func ParseLevel(name string) slog.Level {
	var level slog.Level
	if err := level.UnmarshalText([]byte(name)); err != nil {
		return slog.LevelInfo
	}
	return level
}

func SetupLogger(level slog.Level) *slog.Logger {
	if IsDebug() {
		level = slog.LevelDebug
	} else {
		// mute the default logger if not in debug mode
		log.SetOutput(io.Discard)
	}

	var logger *slog.Logger
	if supportscolor.Stderr().SupportsColor {
		logger = slog.New(tint.NewHandler(os.Stderr, &tint.Options{Level: level}))
	} else {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
		logger.Debug("No color support detected. Using plain text to output.")
	}

	return logger
}
