package config

import (
	"os"

	"github.com/mitchellh/go-homedir"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// LoadConfigFile merges a config file into v. If cfgFile is empty, $HOME/<defaultName>.(yaml|json|...)
// is used when it exists; a missing default file is not an error, a missing explicit one is.
func LoadConfigFile(v *viper.Viper, cfgFile string, defaultName string) error {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			return errors.Wrap(err, "error getting user home directory")
		}
		v.AddConfigPath(home)
		v.SetConfigName(defaultName)
	}

	err := v.MergeInConfig()
	if err == nil {
		return nil
	}
	switch err.(type) {
	case viper.ConfigFileNotFoundError:
		// Only returned when looking for the default file; users don't have to provide one.
		return nil
	case *os.PathError:
		return errors.Errorf("config file %s not found", cfgFile)
	default:
		return errors.Wrapf(err, "error reading config file %s", v.ConfigFileUsed())
	}
}
