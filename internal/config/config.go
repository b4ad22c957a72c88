// Copyright © 2025 Steve Taranto staranto@gmail.com
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"gopkg.in/yaml.v3"
)

const (
	// FileName is looked for in each of the standard locations.
	FileName = "modcli.yaml"
	// EnvOverride names a config file to use instead of the standard search.
	EnvOverride = "MODCLI_CFG"
)

// Type is a loaded config file. With Namespace set, lookups try
// "<Namespace>.<key>" before the bare key.
type Type struct {
	Source    string
	Namespace string
	Data      map[string]interface{}
}

// Config is the process-wide config, loaded on first use.
var Config Type

func Load() (Type, error) {
	path, err := getConfigPath()
	if err != nil {
		return Type{}, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return Type{}, err
	}

	var data map[string]interface{}
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return Type{}, fmt.Errorf("config file %s: %w", path, err)
	}

	Config = Type{
		Source:    path,
		Namespace: Config.Namespace,
		Data:      data,
	}

	return Config, nil
}

// In returns a copy of the loaded config scoped to ns, e.g. "modules.svc".
func In(ns string) Type {
	lazyLoad()
	scoped := Config
	scoped.Namespace = ns
	return scoped
}

// get walks a dotted key path through the nested maps.
func (cfg Type) get(kspec string) (any, error) {
	keys := []string{kspec}
	if cfg.Namespace != "" {
		keys = []string{cfg.Namespace + "." + kspec, kspec}
	}

keyloop:
	for _, key := range keys {
		var current any = cfg.Data
		for _, k := range strings.Split(key, ".") {
			m, ok := current.(map[string]interface{})
			if !ok {
				continue keyloop
			}
			if current, ok = m[k]; !ok {
				continue keyloop
			}
		}
		return current, nil
	}

	return nil, fmt.Errorf("no valid path found among: %v", keys)
}

func (cfg Type) String(key string, defaultValue ...string) (string, error) {
	return lookup(cfg, key, defaultValue, asString)
}

func (cfg Type) Int(key string, defaultValue ...int) (int, error) {
	return lookup(cfg, key, defaultValue, asInt)
}

func (cfg Type) Bool(key string, defaultValue ...bool) (bool, error) {
	return lookup(cfg, key, defaultValue, asBool)
}

// Strings accepts either a single string or a list of strings.
func (cfg Type) Strings(key string, defaultValue ...[]string) ([]string, error) {
	return lookup(cfg, key, defaultValue, asStrings)
}

func GetString(key string, defaultValue ...string) (string, error) {
	lazyLoad()
	return Config.String(key, defaultValue...)
}

func GetInt(key string, defaultValue ...int) (int, error) {
	lazyLoad()
	return Config.Int(key, defaultValue...)
}

func GetBool(key string, defaultValue ...bool) (bool, error) {
	lazyLoad()
	return Config.Bool(key, defaultValue...)
}

func GetStringSlice(key string, defaultValue ...[]string) ([]string, error) {
	lazyLoad()
	return Config.Strings(key, defaultValue...)
}

func lazyLoad() {
	if len(Config.Data) == 0 {
		if _, err := Load(); err != nil {
			log.Debugf("config not loaded: %v", err)
		}
	}
}

// lookup falls back to the default only when the key is missing. A present
// key of the wrong type is always an error.
func lookup[T any](cfg Type, key string, defaultValue []T, conv func(any) (T, error)) (T, error) {
	val, err := cfg.get(key)
	if err != nil {
		if len(defaultValue) == 1 {
			return defaultValue[0], nil
		}
		var zero T
		return zero, err
	}

	v, err := conv(val)
	if err != nil {
		return v, fmt.Errorf("%s: %w", key, err)
	}
	return v, nil
}

func asString(v any) (string, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return "", errors.New("value is not a string")
}

// YAML numbers may be unmarshaled as int/float64 depending on content.
func asInt(v any) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		return int(n), nil
	}
	return 0, errors.New("value is not an int")
}

func asBool(v any) (bool, error) {
	switch b := v.(type) {
	case bool:
		return b, nil
	case string:
		switch strings.ToLower(b) {
		case "true", "yes", "on":
			return true, nil
		case "false", "no", "off":
			return false, nil
		}
	}
	return false, errors.New("value is not a bool")
}

func asStrings(v any) ([]string, error) {
	switch l := v.(type) {
	case string:
		return []string{l}, nil
	case []interface{}:
		out := make([]string, 0, len(l))
		for _, e := range l {
			s, ok := e.(string)
			if !ok {
				return nil, fmt.Errorf("list entry %v is not a string", e)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, errors.New("value is not a string or list of strings")
}

// getConfigPath honors EnvOverride, then looks for FileName in each of the
// standard directories.
func getConfigPath() (string, error) {
	if override := os.Getenv(EnvOverride); override != "" {
		info, err := os.Stat(override)
		if err != nil {
			return "", fmt.Errorf("config file not found: %s", override)
		}
		if info.IsDir() {
			return "", fmt.Errorf("%s points to a directory: %s", EnvOverride, override)
		}
		log.Debugf("using config file from %s: %s", EnvOverride, override)
		return override, nil
	}

	for _, env := range []string{"XDG_CONFIG_HOME", "APPDATA", "HOME"} {
		dir := os.Getenv(env)
		if dir == "" {
			continue
		}
		file := filepath.Join(dir, FileName)
		if info, err := os.Stat(file); err == nil && !info.IsDir() {
			log.Debugf("using config file: %s", file)
			return file, nil
		}
	}
	return "", fmt.Errorf("no %s found in $XDG_CONFIG_HOME, %%APPDATA%% or $HOME", FileName)
}
