package config

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	getter "github.com/hashicorp/go-getter"
	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://ft-vox.local/config.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("add config schema: %w", err)
	}
	s, err := c.Compile(schemaURL)
	if err != nil {
		return nil, fmt.Errorf("compile config schema: %w", err)
	}
	return s, nil
})

// Load fetches the YAML document at src and decodes it over DefaultConfig.
// src is a local path or any go-getter source (git::, https://, s3::, ...).
func Load(ctx context.Context, src string) (*Config, error) {
	dir, err := os.MkdirTemp("", "ftvox-config-")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	if isLocal(src) {
		if src, err = filepath.Abs(src); err != nil {
			return nil, fmt.Errorf("resolve config path: %w", err)
		}
	}

	dst := filepath.Join(dir, "config.yaml")
	if err := getter.GetFile(dst, src, getter.WithContext(ctx)); err != nil {
		return nil, fmt.Errorf("fetch config %s: %w", src, err)
	}
	data, err := os.ReadFile(dst)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	if err := Decode(cfg, data); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Decode validates a YAML document against the config schema and applies
// the options it sets to cfg. Options absent from the document keep their
// current value. An empty document is a no-op.
func Decode(cfg *Config, data []byte) error {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}
	if doc == nil {
		return nil
	}
	return apply(cfg, doc)
}

// apply validates doc, a decoded YAML value, and decodes it into cfg.
func apply(cfg *Config, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("parse config: %w", err)
	}

	schema, err := compileSchema()
	if err != nil {
		return err
	}
	if err := schema.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	if err := json.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("decode config: %w", err)
	}
	return nil
}

func isLocal(src string) bool {
	return !strings.Contains(src, "::") && !strings.Contains(src, "://")
}
