package http

import (
	"fmt"

	"github.com/xeipuuv/gojsonschema"
)

const quoteRequestSchema = `{
	"type": "object",
	"properties": {
		"purchase_price": {"type": ["string", "number", "null"]},
		"down_payment":   {"type": ["string", "number", "null"]},
		"rate":           {"type": ["string", "number", "null"]},
		"term":           {"type": ["string", "number", "null"]}
	},
	"additionalProperties": false
}`

const contactRequestSchema = `{
	"type": "object",
	"properties": {
		"name":    {"type": "string", "maxLength": 200},
		"email":   {"type": "string", "maxLength": 320},
		"phone":   {"type": "string", "maxLength": 50},
		"message": {"type": "string", "maxLength": 5000}
	},
	"additionalProperties": false
}`

type requestSchema struct {
	schema *gojsonschema.Schema
}

func compileSchema(src string) (*requestSchema, error) {
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(src))
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	return &requestSchema{schema: s}, nil
}

// validate returns the schema violations for body. A body that is not JSON
// at all is reported as an error.
func (s *requestSchema) validate(body []byte) ([]string, error) {
	result, err := s.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, err
	}
	if result.Valid() {
		return nil, nil
	}
	errs := make([]string, len(result.Errors()))
	for i, desc := range result.Errors() {
		errs[i] = desc.String()
	}
	return errs, nil
}
