// Package configloader assembles a service configuration from a YAML file, a .env file and the process environment.
package configloader

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigFile is read from the working directory when no other file is given.
const DefaultConfigFile = "config.yaml"

type Validator interface {
	Validate() error
}

// Load reads DefaultConfigFile, then .env, then <SERVICE>_ prefixed environment variables.
func Load[T Validator](serviceName string) (T, error) {
	return LoadFrom[T](serviceName, DefaultConfigFile)
}

// LoadFrom is Load with an explicit yaml file. Later sources override earlier ones.
// A missing or malformed yaml file is an error unless it is DefaultConfigFile and absent.
func LoadFrom[T Validator](serviceName, configFile string) (T, error) {
	var cfg T
	k := koanf.New(".")

	// PRODUCT_SERVER_PORT -> server.port
	envPrefix := fmt.Sprintf("%s_", strings.ToUpper(serviceName))
	envTransformer := func(key string) string {
		key = strings.ToLower(key)
		key = strings.TrimPrefix(key, strings.ToLower(envPrefix))
		return strings.ReplaceAll(key, "_", ".")
	}

	// 1. yaml file; only the default file may be absent
	if err := k.Load(file.Provider(configFile), yaml.Parser()); err != nil {
		if !errors.Is(err, fs.ErrNotExist) || configFile != DefaultConfigFile {
			return cfg, fmt.Errorf("error loading config file %q: %w", configFile, err)
		}
		log.Printf("INFO: config file '%s' not found, using environment only", configFile)
	}

	// 2. .env file, only keys carrying the service prefix
	if envFileMap, err := godotenv.Read(".env"); err == nil {
		envMap := make(map[string]any)
		for key, value := range envFileMap {
			if !strings.HasPrefix(strings.ToUpper(key), envPrefix) {
				continue
			}
			envMap[envTransformer(key)] = value
		}
		if err := k.Load(confmap.Provider(envMap, "."), nil); err != nil {
			log.Printf("WARN: error loading .env config: %v", err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		log.Printf("WARN: error reading .env file: %v", err)
	}

	// 3. system environment, the highest priority
	if err := k.Load(env.Provider(envPrefix, ".", envTransformer), nil); err != nil {
		log.Printf("WARN: error loading system env vars: %v", err)
	}

	if err := k.Unmarshal("", &cfg); err != nil {
		return cfg, fmt.Errorf("error unmarshalling config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}
