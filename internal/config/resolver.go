package config

import (
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Resolver looks up named configuration values across multiple runtime
// sources and returns the first non-empty match. Sources are probed in a
// fixed priority order: process environment, .env file, runtime config
// file. A source that cannot be read counts as "not found", never as an
// error. Each call re-probes; values are cheap and nothing is cached.
type Resolver struct {
	envFile     string
	runtimeFile string
}

func NewResolver() *Resolver {
	return &Resolver{
		envFile:     ".env",
		runtimeFile: "runtime-config.yaml",
	}
}

// NewResolverWithFiles is used by tests to point the file-backed sources
// at fixtures.
func NewResolverWithFiles(envFile, runtimeFile string) *Resolver {
	return &Resolver{envFile: envFile, runtimeFile: runtimeFile}
}

// Lookup returns the first defined, non-empty value for key, probing
// sources in priority order. The boolean is false when no source defines
// the key.
func (r *Resolver) Lookup(key string) (string, bool) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v, true
	}
	if v := r.fromEnvFile(key); v != "" {
		return v, true
	}
	if v := r.fromRuntimeFile(key); v != "" {
		return v, true
	}
	return "", false
}

// Get is Lookup without the presence flag; absent keys come back "".
func (r *Resolver) Get(key string) string {
	v, _ := r.Lookup(key)
	return v
}

func (r *Resolver) fromEnvFile(key string) string {
	vals, err := godotenv.Read(r.envFile)
	if err != nil {
		return ""
	}
	return vals[key]
}

func (r *Resolver) fromRuntimeFile(key string) string {
	data, err := os.ReadFile(r.runtimeFile)
	if err != nil {
		return ""
	}
	var vals map[string]string
	if err := yaml.Unmarshal(data, &vals); err != nil {
		return ""
	}
	return vals[key]
}
