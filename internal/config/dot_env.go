package config

import (
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"github.com/subosito/gotenv"
)

// DotEnvTryLoad passes every variable of the .env file at path to setEnvFn.
// A missing file is not an error.
func DotEnvTryLoad(absolutePathToEnvFile string, setEnvFn func(key string, value string) error) error {
	f, err := os.Open(absolutePathToEnvFile)
	if err != nil {
		if os.IsNotExist(err) {
			log.Debug().Str("envFile", absolutePathToEnvFile).Msg(".env does not exist, skipping")
			return nil
		}

		return errors.Wrap(err, "failed to open .env file")
	}
	defer f.Close()

	env, err := gotenv.StrictParse(f)
	if err != nil {
		return errors.Wrap(err, "failed to parse .env file")
	}

	for key, value := range env {
		if err := setEnvFn(key, value); err != nil {
			return errors.Wrapf(err, "failed to set %s from .env", key)
		}
	}

	log.Debug().Str("envFile", absolutePathToEnvFile).Int("count", len(env)).Msg(".env applied")

	return nil
}
