package providers

import (
	"encoding/json"
	"strings"
	"sync"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/xeipuuv/gojsonschema"
)

// filterSchemaJSON is the shape a user-supplied listing filter must satisfy:
// an array of clauses, each with an allow-listed Key and a non-empty
// all-string Values array.
const filterSchemaJSON = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["Key", "Values"],
		"properties": {
			"Key": {
				"type": "string",
				"enum": ["tag-key", "tag-value", "name", "description", "primary-region"]
			},
			"Values": {
				"type": "array",
				"minItems": 1,
				"items": {"type": "string"}
			}
		}
	}
}`

var (
	filterSchemaOnce sync.Once
	filterSchema     *gojsonschema.Schema
)

func compiledFilterSchema() *gojsonschema.Schema {
	filterSchemaOnce.Do(func() {
		// The schema is a compile-time constant; a failure here is a bug.
		schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(filterSchemaJSON))
		if err != nil {
			panic("providers: invalid listing filter schema: " + err.Error())
		}
		filterSchema = schema
	})
	return filterSchema
}

// filterClause mirrors the wire shape of one ListSecrets filter entry.
type filterClause struct {
	Key    string   `json:"Key"`
	Values []string `json:"Values"`
}

// parseSecretsFilters turns untrusted filter JSON into ListSecrets filters.
//
// The policy is fail-open and all-or-nothing: empty input, malformed JSON, a
// non-array document, or ANY invalid clause discards the entire filter and
// returns nil, which means "list everything the credentials can see". A
// partially-valid filter is never applied, since silently enumerating under a
// subset of the intended clauses would look like a correct filter while
// matching the wrong secrets. Zero clauses ("[]") also means no filter.
//
// parseSecretsFilters never returns an error.
func parseSecretsFilters(filterJSON string) []types.Filter {
	if strings.TrimSpace(filterJSON) == "" {
		return nil
	}

	document := gojsonschema.NewStringLoader(filterJSON)
	result, err := compiledFilterSchema().Validate(document)
	if err != nil || !result.Valid() {
		return nil
	}

	var clauses []filterClause
	if err := json.Unmarshal([]byte(filterJSON), &clauses); err != nil {
		return nil
	}
	if len(clauses) == 0 {
		return nil
	}

	filters := make([]types.Filter, 0, len(clauses))
	for _, clause := range clauses {
		filters = append(filters, types.Filter{
			Key:    types.FilterNameStringType(clause.Key),
			Values: clause.Values,
		})
	}
	return filters
}
