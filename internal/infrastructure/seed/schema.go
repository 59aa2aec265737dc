package seed

import (
	"fmt"
	"io"

	"github.com/invopop/jsonschema"
	"gopkg.in/yaml.v3"

	"github.com/jalshakti/sahayak/internal/domain/grievance"
)

// Schema returns the JSON Schema describing a seed document, for editor validation.
func Schema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		ExpandedStruct:             true,
		RequiredFromJSONSchemaTags: true,
		FieldNameTag:               "yaml",
	}

	schema := reflector.Reflect(&File{})
	schema.Title = "Grievance seed file"
	schema.Description = "Grievances loaded into the ledger at startup"
	return schema
}

// Write renders records as a seed document with absolute submission times.
func Write(w io.Writer, records []grievance.Grievance) error {
	file := File{Grievances: make([]Entry, 0, len(records))}
	for _, g := range records {
		file.Grievances = append(file.Grievances, Entry{
			ID:          g.ID,
			Category:    string(g.Category),
			Summary:     g.Summary,
			Location:    g.Location,
			Status:      string(g.Status),
			SubmittedAt: g.SubmittedAt.UTC(),
		})
	}

	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(file); err != nil {
		return fmt.Errorf("encode seed: %w", err)
	}
	return encoder.Close()
}
