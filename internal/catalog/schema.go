package catalog

import (
	"embed"
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

//go:embed schema/*.json
var schemaFS embed.FS

var schemaFiles = map[string]string{
	SiteFile:     "schema/site.schema.json",
	ProjectsFile: "schema/projects.schema.json",
}

// SchemaError lists the schema violations of one data file.
type SchemaError struct {
	File     string
	Problems []string
}

func (e *SchemaError) Error() string {
	return fmt.Sprintf("catalog: %s does not match schema: %s", e.File, strings.Join(e.Problems, "; "))
}

// Validate checks a YAML data file against its embedded JSON schema. name is
// the file's base name, SiteFile or ProjectsFile.
func Validate(name string, data []byte) error {
	path, ok := schemaFiles[name]
	if !ok {
		return fmt.Errorf("catalog: no schema for %q", name)
	}
	schemaBytes, err := schemaFS.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: read schema: %w", err)
	}

	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("catalog: decode %s: %w", name, err)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	result, err := gojsonschema.Validate(gojsonschema.NewBytesLoader(schemaBytes), gojsonschema.NewGoLoader(doc))
	if err != nil {
		return fmt.Errorf("catalog: validate %s: %w", name, err)
	}
	if result.Valid() {
		return nil
	}
	problems := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		problems = append(problems, e.String())
	}
	return &SchemaError{File: name, Problems: problems}
}
