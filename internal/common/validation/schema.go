// Package validation checks dataset documents against JSON schemas before
// they enter the advisory pipeline. Documents arrive from external ingestion
// jobs, so malformed records are expected and rejected per document rather
// than failing the batch.
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult reports the outcome for one document.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors,omitempty"`
}

// Dataset schema names accepted by ValidateDocument.
const (
	SchemaMarket          = "market"
	SchemaForecast        = "forecast"
	SchemaWarehouse       = "warehouse"
	SchemaTransporter     = "transporter"
	SchemaSentimentReport = "sentimentReport"
)

var schemas = map[string]string{
	SchemaMarket: `{
		"type": "object",
		"required": ["id", "name", "county"],
		"properties": {
			"id":     {"type": "string", "minLength": 1},
			"name":   {"type": "string", "minLength": 1},
			"county": {"type": "string", "minLength": 1},
			"coordinates": {
				"type": "object",
				"required": ["lat", "long"],
				"properties": {
					"lat":  {"type": "number", "minimum": -5, "maximum": 5.5},
					"long": {"type": "number", "minimum": 33, "maximum": 42}
				}
			},
			"producePrices": {
				"type": "array",
				"items": {
					"type": "object",
					"required": ["produceName", "price", "unit"],
					"properties": {
						"produceName": {"type": "string", "minLength": 1},
						"price":       {"type": "number", "minimum": 0},
						"unit":        {"type": "string", "minLength": 1},
						"date":        {"type": "string"}
					}
				}
			}
		}
	}`,
	SchemaForecast: `{
		"type": "object",
		"required": ["id", "produceName", "period", "expectedProduction", "expectedDemand", "confidenceLevel"],
		"properties": {
			"id":                 {"type": "string", "minLength": 1},
			"produceName":        {"type": "string", "minLength": 1},
			"period":             {"type": "string", "minLength": 1},
			"expectedProduction": {"type": "number", "minimum": 0},
			"expectedDemand":     {"type": "number", "minimum": 0},
			"confidenceLevel":    {"type": "string", "enum": ["low", "medium", "high"]},
			"county":             {"type": "string"},
			"unit":               {"type": "string"}
		}
	}`,
	SchemaWarehouse: `{
		"type": "object",
		"required": ["id", "name", "county", "capacityTons"],
		"properties": {
			"id":               {"type": "string", "minLength": 1},
			"name":             {"type": "string", "minLength": 1},
			"county":           {"type": "string", "minLength": 1},
			"location":         {"type": "string"},
			"capacityTons":     {"type": "number", "minimum": 0},
			"hasRefrigeration": {"type": "boolean"},
			"goodsTypes":       {"type": "array", "items": {"type": "string"}},
			"pricePerMonth":    {"type": "number", "minimum": 0}
		}
	}`,
	SchemaTransporter: `{
		"type": "object",
		"required": ["id", "name", "countiesServed"],
		"properties": {
			"id":              {"type": "string", "minLength": 1},
			"name":            {"type": "string", "minLength": 1},
			"countiesServed":  {"type": "array", "items": {"type": "string"}, "minItems": 1},
			"hasRefrigerated": {"type": "boolean"},
			"capacityTons":    {"type": "number", "minimum": 0},
			"contactPhone":    {"type": "string"}
		}
	}`,
	SchemaSentimentReport: `{
		"type": "object",
		"required": ["id", "farmerId", "county", "sentiment", "topic", "text"],
		"properties": {
			"id":        {"type": "string", "minLength": 1},
			"farmerId":  {"type": "string", "minLength": 1},
			"county":    {"type": "string", "minLength": 1},
			"location":  {"type": "string"},
			"sentiment": {"type": "string", "enum": ["positive", "negative", "neutral"]},
			"topic":     {"type": "string", "enum": ["counterfeit", "disease", "policy", "technology", "other"]},
			"text":      {"type": "string", "minLength": 1},
			"timestamp": {"type": "string"},
			"verified":  {"type": "boolean"},
			"tags":      {"type": "array", "items": {"type": "string"}}
		}
	}`,
}

// compiled schemas, built lazily on first use.
var compiled = map[string]*gojsonschema.Schema{}

func schemaFor(name string) (*gojsonschema.Schema, error) {
	if s, ok := compiled[name]; ok {
		return s, nil
	}
	raw, ok := schemas[name]
	if !ok {
		return nil, fmt.Errorf("unknown dataset schema: %s", name)
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to compile schema %s: %w", name, err)
	}
	compiled[name] = s
	return s, nil
}

// ValidateDocument checks one decoded document against the named dataset
// schema.
func ValidateDocument(schemaName string, document map[string]interface{}) (*ValidationResult, error) {
	schema, err := schemaFor(schemaName)
	if err != nil {
		return nil, err
	}

	result, err := schema.Validate(gojsonschema.NewGoLoader(document))
	if err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}

	out := &ValidationResult{Valid: result.Valid()}
	for _, desc := range result.Errors() {
		out.Errors = append(out.Errors, fmt.Sprintf("%s: %s", desc.Field(), desc.Description()))
	}
	return out, nil
}

// ErrorSummary joins the per-field errors into one message suitable for a
// job failure detail.
func (vr *ValidationResult) ErrorSummary() string {
	return strings.Join(vr.Errors, "; ")
}
