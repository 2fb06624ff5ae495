package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"gopkg.in/yaml.v3"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// LoadFile loads, decodes and validates a catalog file. The format follows
// the extension: .hcl for HCL, anything else for YAML.
func LoadFile(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file %s: %w", path, err)
	}

	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return ParseHCL(data, path)
	}

	return ParseYAML(data)
}

// ParseYAML decodes a YAML catalog.
func ParseYAML(data []byte) (*File, error) {
	var f File

	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
	}

	return finish(&f)
}

// ParseHCL decodes an HCL catalog; filename is used in diagnostics.
func ParseHCL(data []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()

	hclFile, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse catalog HCL %s: %w", filename, diags)
	}

	var f File
	if diags := gohcl.DecodeBody(hclFile.Body, nil, &f); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode catalog HCL %s: %w", filename, diags)
	}

	return finish(&f)
}

func finish(f *File) (*File, error) {
	applyDefaults(f)

	if err := Validate(f); err != nil {
		return nil, err
	}

	return f, nil
}

// applyDefaults fills in default values for optional fields.
func applyDefaults(f *File) {
	if f.Version == "" {
		f.Version = "1"
	}
}

// Validate checks the structural constraints of a catalog.
func Validate(f *File) error {
	err := validate.Struct(f)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("failed to validate catalog: %w", err)
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: failed %q", fe.Namespace(), fe.Tag()))
	}

	return fmt.Errorf("invalid catalog: %s", strings.Join(msgs, "; "))
}

// Marshal serializes a catalog to YAML.
func Marshal(f *File) ([]byte, error) {
	return yaml.Marshal(f)
}
