package catalog

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/datazone/types"
	"gopkg.in/yaml.v3"
)

type formsFile struct {
	Forms []formSpec `yaml:"forms"`
}

type formSpec struct {
	Name     string         `yaml:"name"`
	Type     string         `yaml:"type"`
	Revision string         `yaml:"revision"`
	Content  map[string]any `yaml:"content"`
}

// LoadForms reads metadata form inputs from a YAML file.
func LoadForms(path string) ([]types.FormInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read forms: %w", err)
	}
	return ParseForms(data)
}

// ParseForms decodes a YAML document with a top-level forms list. Form content
// is re-encoded as the JSON string DataZone expects.
func ParseForms(data []byte) ([]types.FormInput, error) {
	var doc formsFile
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode forms: %w", err)
	}

	forms := make([]types.FormInput, 0, len(doc.Forms))
	for i, f := range doc.Forms {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return nil, fmt.Errorf("forms[%d]: name is required", i)
		}
		input := types.FormInput{FormName: aws.String(name)}
		if f.Type != "" {
			input.TypeIdentifier = aws.String(f.Type)
		}
		if f.Revision != "" {
			input.TypeRevision = aws.String(f.Revision)
		}
		if len(f.Content) > 0 {
			content, err := json.Marshal(f.Content)
			if err != nil {
				return nil, fmt.Errorf("forms[%d] %s: encode content: %w", i, name, err)
			}
			input.Content = aws.String(string(content))
		}
		forms = append(forms, input)
	}
	return forms, nil
}
