package shell

import (
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"src.fur.dev/pkg/env"
)

// RCPath returns the default path of rc.yaml, read in interactive mode.
func RCPath() (string, error) {
	return xdgPath(env.XDG_CONFIG_HOME, defaultConfigHome, "rc.yaml")
}

// DBPath returns the default path of the history database.
func DBPath() (string, error) {
	return xdgPath(env.XDG_STATE_HOME, defaultStateHome, "db.bolt")
}

func xdgPath(envName string, defaultHome func() (string, error), name string) (string, error) {
	home := os.Getenv(envName)
	if home == "" {
		var err error
		home, err = defaultHome()
		if err != nil {
			return "", errors.Wrapf(err, "cannot determine %s", envName)
		}
	}
	return filepath.Join(home, "fur", name), nil
}
