// Package config loads the demo's settings from an optional .env file, an
// optional YAML file and SOLE_* environment variables, in increasing order of
// precedence.
package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

const envPrefix = "SOLE"

var vCfg = newViper()

const (
	keyLogLevel = "log_level"
	keyWorkers  = "workers"
	keyMessages = "messages"
	keySettings = "settings"
)

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(keyLogLevel, "info")
	v.SetDefault(keyWorkers, 4)
	v.SetDefault(keyMessages, 2)
	v.SetDefault(keySettings, map[string]string{
		"greeting": "hello",
		"region":   "local",
	})
	return v
}

// Load reads envFile (if it exists) into the process environment and then
// cfgFile (if not empty). Missing .env files are not an error.
func Load(envFile, cfgFile string) error {
	vCfg = newViper()

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(errors.Cause(err)) {
			return errors.Wrapf(err, "loading %s", envFile)
		}
	}

	if cfgFile == "" {
		return nil
	}

	vCfg.SetConfigFile(cfgFile)
	if err := vCfg.ReadInConfig(); err != nil {
		return errors.Wrapf(err, "reading %s", cfgFile)
	}
	return nil
}

// LogLevel is the zap level name for the demo logger.
func LogLevel() string {
	return vCfg.GetString(keyLogLevel)
}

// Workers is the number of goroutines each demo scenario starts.
func Workers() int {
	if n := vCfg.GetInt(keyWorkers); n > 0 {
		return n
	}
	return 1
}

// Messages is the number of messages each worker logs.
func Messages() int {
	return vCfg.GetInt(keyMessages)
}

// Settings returns the initial contents of the settings store.
func Settings() map[string]string {
	return vCfg.GetStringMapString(keySettings)
}

// Set overrides a key for the rest of the process.
func Set(key string, value any) {
	vCfg.Set(key, value)
}
