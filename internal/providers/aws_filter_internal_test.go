package providers

import (
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/secretsmanager/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSecretsFiltersValid(t *testing.T) {
	t.Parallel()

	filters := parseSecretsFilters(`[{"Key": "tag-key", "Values": ["env"]}, {"Key": "name", "Values": ["app/", "db/"]}]`)
	require.Len(t, filters, 2)

	assert.Equal(t, types.FilterNameStringType("tag-key"), filters[0].Key)
	assert.Equal(t, []string{"env"}, filters[0].Values)
	assert.Equal(t, types.FilterNameStringType("name"), filters[1].Key)
	assert.Equal(t, []string{"app/", "db/"}, filters[1].Values)
}

func TestParseSecretsFiltersAllowedKeys(t *testing.T) {
	t.Parallel()

	for _, key := range []string{"tag-key", "tag-value", "name", "description", "primary-region"} {
		filters := parseSecretsFilters(`[{"Key": "` + key + `", "Values": ["x"]}]`)
		require.Len(t, filters, 1, "key %q should be accepted", key)
		assert.Equal(t, types.FilterNameStringType(key), filters[0].Key)
	}
}

// Any malformation discards the whole filter. A partially-applied filter
// would silently enumerate the wrong secrets, so there is no per-clause
// salvage.
func TestParseSecretsFiltersDiscarded(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		filterJSON string
	}{
		{"empty string", ""},
		{"whitespace only", "   \n\t"},
		{"malformed JSON", `[{"Key": "name", "Values":`},
		{"not an array", `{"Key": "name", "Values": ["x"]}`},
		{"empty array", `[]`},
		{"unknown key", `[{"Key": "owner", "Values": ["me"]}]`},
		{"missing Values", `[{"Key": "name"}]`},
		{"empty Values", `[{"Key": "name", "Values": []}]`},
		{"non-string value", `[{"Key": "name", "Values": ["ok", 7]}]`},
		{"missing Key", `[{"Values": ["x"]}]`},
		{"non-object clause", `["name"]`},
		{
			// One bad clause poisons an otherwise valid filter.
			"valid clause plus invalid clause",
			`[{"Key": "tag-key", "Values": ["env"]}, {"Key": "bogus", "Values": ["x"]}]`,
		},
		{"scalar document", `"name"`},
		{"null document", `null`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Nil(t, parseSecretsFilters(tt.filterJSON))
		})
	}
}

func TestParseSecretsFiltersExtraMembersTolerated(t *testing.T) {
	t.Parallel()

	// Unknown members on a clause are ignored rather than treated as
	// malformation; only Key and Values carry meaning.
	filters := parseSecretsFilters(`[{"Key": "description", "Values": ["prod"], "Comment": "ignored"}]`)
	require.Len(t, filters, 1)
	assert.Equal(t, types.FilterNameStringType("description"), filters[0].Key)
	assert.Equal(t, []string{"prod"}, filters[0].Values)
}
