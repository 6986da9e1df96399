// Package config reads the application configuration from a json file in
// the user's config dir. Missing files are created with the defaults.
// Every value can be overridden with a GDRIVEPATH_* environment variable.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/svetlyi/gdrivepath/contracts"
)

const appName = "gdrivepath"

type Cfg struct {
	LogFileMaxSize  int64  `json:"log_file_max_size"`
	LogVerbosity    uint8  `json:"log_verbosity"`
	PageSizeToQuery int64  `json:"page_size_to_query"`
	DBPath          string `json:"db_path"`
	CredentialsFile string `json:"credentials_file"`
	AuthMode        string `json:"auth_mode"`
	CallbackAddr    string `json:"callback_addr"`
}

func GetAppName() string {
	return appName
}

// GetCfgDir returns the directory keeping the config, the token and the journal.
func GetCfgDir() (string, error) {
	if dir := os.Getenv(envName("CONFIG_DIR")); dir != "" {
		return dir, nil
	}
	confDir, err := os.UserConfigDir()
	if nil != err {
		return "", errors.Wrap(err, "could not get current user's config dir")
	}
	return filepath.Join(confDir, appName), nil
}

func getCfgPath() (string, error) {
	dir, err := GetCfgDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

func newDefault() (Cfg, error) {
	dir, err := GetCfgDir()
	if err != nil {
		return Cfg{}, err
	}
	return Cfg{
		LogFileMaxSize:  1e7,
		LogVerbosity:    contracts.LogInfoLevel,
		PageSizeToQuery: 300,
		DBPath:          filepath.Join(dir, "journal.db"),
		CredentialsFile: filepath.Join(dir, "client_secret.json"),
		AuthMode:        "cli",
		CallbackAddr:    "localhost:8090",
	}, nil
}

// ReadCreateIfNotExist reads the config creating the config dir and the
// file with defaults first if needed.
func ReadCreateIfNotExist() (Cfg, error) {
	if err := createDirIfNotExist(); err != nil {
		return Cfg{}, err
	}
	cfgPath, err := getCfgPath()
	if err != nil {
		return Cfg{}, err
	}
	cfg, err := newDefault()
	if err != nil {
		return Cfg{}, errors.Wrap(err, "could not get default config")
	}

	data, err := os.ReadFile(cfgPath)
	if os.IsNotExist(err) {
		if err = Save(cfg); err != nil {
			return Cfg{}, errors.Wrap(err, "could not save config")
		}
	} else if err != nil {
		return Cfg{}, errors.Wrapf(err, "could not read config %s", cfgPath)
	} else if err = json.Unmarshal(data, &cfg); err != nil {
		return Cfg{}, errors.Wrapf(err, "could not parse config %s", cfgPath)
	}

	if err = applyEnv(&cfg); err != nil {
		return Cfg{}, err
	}
	return cfg, nil
}

// Save writes cfg to the config file.
func Save(cfg Cfg) error {
	cfgPath, err := getCfgPath()
	if err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return errors.Wrap(err, "could not encode config")
	}
	return errors.Wrapf(os.WriteFile(cfgPath, data, 0600), "could not write config %s", cfgPath)
}

func createDirIfNotExist() error {
	dir, err := GetCfgDir()
	if err != nil {
		return err
	}
	return errors.Wrapf(os.MkdirAll(dir, 0700), "could not create config dir %s", dir)
}

func envName(name string) string {
	return strings.ToUpper(appName) + "_" + name
}

func applyEnv(cfg *Cfg) error {
	strs := map[string]*string{
		"DB_PATH":          &cfg.DBPath,
		"CREDENTIALS_FILE": &cfg.CredentialsFile,
		"AUTH_MODE":        &cfg.AuthMode,
		"CALLBACK_ADDR":    &cfg.CallbackAddr,
	}
	for name, field := range strs {
		if v := os.Getenv(envName(name)); v != "" {
			*field = v
		}
	}

	ints := map[string]*int64{
		"LOG_FILE_MAX_SIZE":  &cfg.LogFileMaxSize,
		"PAGE_SIZE_TO_QUERY": &cfg.PageSizeToQuery,
	}
	for name, field := range ints {
		v := os.Getenv(envName(name))
		if v == "" {
			continue
		}
		parsed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return errors.Wrapf(err, "%s must be a number", envName(name))
		}
		*field = parsed
	}

	if v := os.Getenv(envName("LOG_VERBOSITY")); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 8)
		if err != nil {
			return errors.Wrapf(err, "%s must be a number", envName("LOG_VERBOSITY"))
		}
		cfg.LogVerbosity = uint8(parsed)
	}
	return nil
}
