package projection

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kryft-Studios/parsee/extraction"
)

// Test Plan for the projection engine:
// - never removes a field from every shape that carries it
// - only-mode keeps exactly the only-marked fields (plus kind)
// - The discriminator always survives
// - Projection is idempotent and does not mutate its input
// - Pruned optional fields disappear from the JSON rendering
// - Malformed modes resolve to include

func sampleItems() []extraction.Item {
	return []extraction.Item{
		{
			Kind:     extraction.KindClass,
			Name:     "UserService",
			Exports:  extraction.ExportNormal,
			Level:    extraction.LevelTop,
			Doc:      "/** service */",
			Position: &extraction.Position{StartLine: 3, EndLine: 20},
			Methods: []extraction.Method{{
				Name:       "find",
				Async:      true,
				ReturnType: "Promise<User>",
				Doc:        "/** finds */",
				Arguments: []extraction.Parameter{{
					Name:    "id",
					HasType: true,
					Type:    "string",
					Position: &extraction.Position{
						StartLine: 5,
					},
				}},
			}},
			Properties: []extraction.Property{{
				Name:          "limit",
				Static:        true,
				Readonly:      true,
				Accessibility: "private",
				Value:         extraction.NewValue(float64(10)),
				Raw:           "10",
			}},
		},
		{
			Kind: extraction.KindNamespace,
			Name: "Util",
			Members: []extraction.Item{{
				Kind:  extraction.KindVariable,
				Name:  "flag",
				Level: extraction.LevelNested,
				Doc:   "/** nested */",
				Value: extraction.NewValue(true),
			}},
		},
	}
}

func TestApply_NeverRemovesEverywhere(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{FieldDoc: ModeNever, FieldPosition: ModeNever})
	out := Apply(sampleItems(), policy)

	assert.Empty(t, out[0].Doc)
	assert.Nil(t, out[0].Position)
	assert.Empty(t, out[0].Methods[0].Doc)
	assert.Nil(t, out[0].Methods[0].Position)
	assert.Nil(t, out[0].Methods[0].Arguments[0].Position)
	assert.Empty(t, out[1].Members[0].Doc)

	// Untouched fields survive.
	assert.Equal(t, "UserService", out[0].Name)
	assert.Equal(t, "Promise<User>", out[0].Methods[0].ReturnType)
}

func TestApply_OnlyModeKeepsMarkedFields(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{
		FieldName:    ModeOnly,
		FieldMembers: ModeOnly,
		// include marks are irrelevant once only-mode is active
		FieldDoc: ModeInclude,
	})
	require.True(t, policy.OnlyMode())
	out := Apply(sampleItems(), policy)

	assert.Equal(t, extraction.KindClass, out[0].Kind)
	assert.Equal(t, "UserService", out[0].Name)
	assert.Empty(t, out[0].Doc)
	assert.Nil(t, out[0].Position)
	assert.Empty(t, out[0].Exports)
	assert.Nil(t, out[0].Methods)
	assert.Nil(t, out[0].Properties)

	// members is marked only, so the namespace tree survives with names.
	require.Len(t, out[1].Members, 1)
	assert.Equal(t, "flag", out[1].Members[0].Name)
	assert.Empty(t, out[1].Members[0].Doc)
}

func TestApply_KindAlwaysSurvives(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{FieldName: ModeOnly})
	out := Apply(sampleItems(), policy)
	assert.Equal(t, extraction.KindClass, out[0].Kind)
	assert.Equal(t, extraction.KindNamespace, out[1].Kind)
}

func TestApply_Idempotent(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{
		FieldDoc:      ModeNever,
		FieldPosition: ModeNever,
		FieldValue:    ModeNever,
	})
	once := Apply(sampleItems(), policy)
	twice := Apply(once, policy)
	assert.Equal(t, once, twice)
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	input := sampleItems()
	policy := Resolve(Config{FieldName: ModeNever, FieldMethods: ModeNever})
	_ = Apply(input, policy)

	assert.Equal(t, "UserService", input[0].Name)
	require.Len(t, input[0].Methods, 1)
	assert.Equal(t, "find", input[0].Methods[0].Name)
	assert.Equal(t, "flag", input[1].Members[0].Name)
}

func TestApply_PrunedFieldsAbsentInJSON(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{FieldDoc: ModeNever, FieldPosition: ModeNever})
	out := Apply(sampleItems(), policy)
	data, err := json.Marshal(out)
	require.NoError(t, err)
	assert.NotContains(t, string(data), `"doc"`)
	assert.NotContains(t, string(data), `"position"`)
	assert.Contains(t, string(data), `"kind"`)
}

func TestResolve_MalformedModeIsInclude(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{FieldDoc: Mode("sometimes")})
	assert.False(t, policy.OnlyMode())
	assert.True(t, policy.Keep(FieldDoc))
}

func TestResolve_IgnoresUnknownFields(t *testing.T) {
	t.Parallel()

	policy := Resolve(Config{Field("bogus"): ModeOnly})
	assert.False(t, policy.OnlyMode())
	assert.True(t, policy.Keep(FieldDoc))
}

func TestFields_CoversRecognizedSet(t *testing.T) {
	t.Parallel()

	fields := Fields()
	assert.Len(t, fields, 31)
	for _, f := range fields {
		assert.True(t, Recognized(f))
	}
	assert.False(t, Recognized(Field("kind")))
}
