package config

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
)

//go:embed schema.json
var embeddedSchema string

// VerifyAgainstEmbeddedSchema validates the config against the embedded JSON schema.
// It checks that every section of the config is declared in the schema and runs required fields checks.
func VerifyAgainstEmbeddedSchema(cfg *Config) error {
	var schema struct {
		Ref  string                     `json:"$ref"`
		Defs map[string]json.RawMessage `json:"$defs"`
	}
	if err := json.Unmarshal([]byte(embeddedSchema), &schema); err != nil {
		return fmt.Errorf("parse embedded schema: %w", err)
	}

	root, ok := schema.Defs[strings.TrimPrefix(schema.Ref, "#/$defs/")]
	if !ok {
		return fmt.Errorf("schema root %q not found", schema.Ref)
	}
	var rootDef struct {
		Properties map[string]json.RawMessage `json:"properties"`
	}
	if err := json.Unmarshal(root, &rootDef); err != nil {
		return fmt.Errorf("parse schema root: %w", err)
	}

	// convert config to JSON for validation
	configData, err := json.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	var configMap map[string]any
	if err := json.Unmarshal(configData, &configMap); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}

	var unknown []string
	for k := range configMap {
		if _, ok := rootDef.Properties[k]; !ok {
			unknown = append(unknown, k)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("sections not declared in schema: %s", strings.Join(unknown, ", "))
	}

	if err := validateRequiredFields(cfg); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}
	return nil
}

// validateRequiredFields performs basic validation of required fields
func validateRequiredFields(cfg *Config) error {
	// check server config
	if cfg.Server.Listen == "" {
		return fmt.Errorf("server.listen is required")
	}
	if cfg.Server.Timeout == 0 {
		return fmt.Errorf("server.timeout is required")
	}

	// check providers
	if !cfg.Sources.Grants.Disabled && cfg.Sources.Grants.Endpoint == "" {
		return fmt.Errorf("sources.grants.endpoint is required when grants are enabled")
	}
	if !cfg.Sources.Contracts.Disabled && cfg.Sources.Contracts.Endpoint == "" {
		return fmt.Errorf("sources.contracts.endpoint is required when contracts are enabled")
	}
	if !cfg.Sources.NewsSearch.Disabled && cfg.Sources.NewsSearch.Endpoint == "" {
		return fmt.Errorf("sources.news_search.endpoint is required when news search is enabled")
	}
	for i, src := range cfg.Sources.RSS {
		if src.ID == "" {
			return fmt.Errorf("sources.rss[%d].id is required", i)
		}
	}

	return nil
}

// GenerateSchema generates a JSON schema for the Config struct
func GenerateSchema() (*jsonschema.Schema, error) {
	return jsonschema.Reflect(&Config{}), nil
}
