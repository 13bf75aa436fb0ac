package shell

import (
	"bytes"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RC keeps the settings read from rc.yaml.
type RC struct {
	// Prompt is shown before each input.
	Prompt string `yaml:"prompt"`
	// History controls whether inputs are saved to the history database.
	History bool `yaml:"history"`
	// HistorySize is the number of saved inputs loaded into the line editor.
	HistorySize int `yaml:"history-size"`
	// DB is the path of the history database. It is overridden by the -db
	// flag.
	DB string `yaml:"db"`
}

// DefaultRC returns the settings used when rc.yaml doesn't exist.
func DefaultRC() RC {
	return RC{Prompt: ">> ", History: true, HistorySize: 1000}
}

var errNegativeHistorySize = errors.New("history-size must not be negative")

// LoadRC reads settings from a YAML file. Settings missing from the file keep
// their default values. A nonexistent file is not an error. When an error is
// returned, the returned RC contains the default settings.
func LoadRC(path string) (RC, error) {
	rc := DefaultRC()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return rc, nil
		}
		return rc, errors.Wrap(err, "cannot read rc file")
	}

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&rc); err != nil && err != io.EOF {
		return DefaultRC(), errors.Wrapf(err, "cannot parse %s", path)
	}
	if rc.HistorySize < 0 {
		return DefaultRC(), errors.Wrapf(errNegativeHistorySize, "cannot parse %s", path)
	}
	logger.Printf("loaded rc file %s: %+v", path, rc)
	return rc, nil
}
