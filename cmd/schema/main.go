// schema generates JSON schema for pryzm configuration
package main

import (
	"encoding/json"
	"os"

	"github.com/go-pkgz/lgr"

	"github.com/umputun/pryzm/pkg/config"
)

func main() {
	outputPath := "schema.json"
	if len(os.Args) > 1 {
		outputPath = os.Args[1]
	}

	schema, err := config.GenerateSchema()
	if err != nil {
		lgr.Fatalf("[ERROR] failed to generate schema: %v", err)
	}

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		lgr.Fatalf("[ERROR] failed to marshal schema: %v", err)
	}

	if err := os.WriteFile(outputPath, append(data, '\n'), 0o600); err != nil {
		lgr.Fatalf("[ERROR] failed to write schema file %s: %v", outputPath, err)
	}

	lgr.Printf("[INFO] schema generated at %s", outputPath)
}
