package config

import (
	"io/ioutil"
	"os"

	"github.com/coreos/pkg/capnslog"
	"github.com/ztrue/tracerr"
	"gopkg.in/yaml.v2"

	"github.com/pontaoski/minicc/sema"
)

// FileName is the project file `minicc init` writes and commands read.
const FileName = "minicc.yml"

type Config struct {
	// KnownFunctions is the set of function names analysis accepts.
	KnownFunctions []string `yaml:"KnownFunctions"`
	// Probe names the variable whose interpreted value is logged.
	Probe    string `yaml:"Probe"`
	LogLevel string `yaml:"LogLevel"`
}

func Default() Config {
	return Config{
		KnownFunctions: append([]string(nil), sema.DefaultKnownFunctions...),
		Probe:          "c",
		LogLevel:       "INFO",
	}
}

// Load reads path over the defaults. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, tracerr.Wrap(err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, tracerr.Errorf("reading %s: %v", path, err)
	}

	return cfg, nil
}

// Write stores cfg at path, failing if the file already exists.
func Write(path string, cfg Config) error {
	fi, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return tracerr.Wrap(err)
	}
	defer fi.Close()

	out, err := yaml.Marshal(cfg)
	if err != nil {
		return tracerr.Wrap(err)
	}

	if _, err := fi.Write(out); err != nil {
		return tracerr.Wrap(err)
	}

	return nil
}

// Level parses LogLevel into a capnslog level.
func (c Config) Level() (capnslog.LogLevel, error) {
	l, err := capnslog.ParseLevel(c.LogLevel)
	if err != nil {
		return capnslog.INFO, tracerr.Wrap(err)
	}
	return l, nil
}
