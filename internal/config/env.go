package config

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment override, e.g. FTVOX_CHUNK_SIZE.
const EnvPrefix = "FTVOX_"

// options lists every recognized option name.
var options = []string{
	"seed", "chunk_size", "world_width", "world_height", "world_depth",
	"fov_degrees", "near", "far", "aspect_ratio",
	"workers", "jitter", "ambient_occlusion", "cloud_height",
}

// ApplyEnv applies FTVOX_<OPTION> overrides found by lookup, typically
// os.LookupEnv. Values are parsed as YAML scalars and checked against
// the same schema as config files.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) ([]string, error) {
	doc := make(map[string]any)
	var applied []string
	for _, name := range options {
		key := EnvPrefix + strings.ToUpper(name)
		raw, ok := lookup(key)
		if !ok {
			continue
		}
		var v any
		if err := yaml.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("parse %s: %w", key, err)
		}
		doc[name] = v
		applied = append(applied, key)
	}
	if len(doc) == 0 {
		return nil, nil
	}
	if err := apply(cfg, doc); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}
	return applied, nil
}
