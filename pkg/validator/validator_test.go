package validator_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jazzy-go/jazzy/pkg/validator"
)

func validate(t *testing.T, input map[string]any, rules validator.Rules) *validator.Errors {
	t.Helper()

	_, err := validator.Validate(input, rules)
	if err == nil {
		return nil
	}
	ve := validator.AsValidationError(err)
	require.NotNil(t, ve)
	return ve
}

func TestRequiredShortCircuits(t *testing.T) {
	t.Parallel()

	rules := validator.Rules{"name": "required|min:3"}

	ve := validate(t, map[string]any{"name": ""}, rules)
	require.NotNil(t, ve)
	require.Len(t, ve.Fields["name"], 1, "required stops remaining rules")
	assert.Equal(t, "name is required", ve.Fields["name"][0])
}

func TestRequired(t *testing.T) {
	t.Parallel()

	rules := validator.Rules{"name": "required"}

	for name, input := range map[string]map[string]any{
		"absent":       {},
		"null":         {"name": nil},
		"empty string": {"name": ""},
	} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			ve := validate(t, input, rules)
			require.NotNil(t, ve)
			assert.Contains(t, ve.Fields, "name")
		})
	}

	t.Run("zero int passes", func(t *testing.T) {
		t.Parallel()

		ve := validate(t, map[string]any{"name": float64(0)}, rules)
		assert.Nil(t, ve)
	})
}

func TestMinMaxAccumulation(t *testing.T) {
	t.Parallel()

	rules := validator.Rules{"name": "min:3|max:5"}

	t.Run("too short", func(t *testing.T) {
		t.Parallel()

		ve := validate(t, map[string]any{"name": "ab"}, rules)
		require.NotNil(t, ve)
		require.Len(t, ve.Fields["name"], 1)
		assert.Equal(t, "name must be at least 3 characters", ve.Fields["name"][0])
	})

	t.Run("too long", func(t *testing.T) {
		t.Parallel()

		ve := validate(t, map[string]any{"name": "abcdef"}, rules)
		require.NotNil(t, ve)
		require.Len(t, ve.Fields["name"], 1)
		assert.Equal(t, "name must be at most 5 characters", ve.Fields["name"][0])
	})

	t.Run("in range", func(t *testing.T) {
		t.Parallel()

		ve := validate(t, map[string]any{"name": "abcd"}, rules)
		assert.Nil(t, ve)
	})
}

func TestMultipleErrorsAccumulate(t *testing.T) {
	t.Parallel()

	// Non-required failures all accumulate for the same field.
	ve := validate(t, map[string]any{"age": "abc"}, validator.Rules{"age": "int|min:18"})
	require.NotNil(t, ve)
	assert.Equal(t, []string{"age must be an integer"}, ve.Fields["age"])

	ve = validate(t, map[string]any{"role": float64(7)}, validator.Rules{"role": "string|in:admin,user"})
	require.NotNil(t, ve)
	require.Len(t, ve.Fields["role"], 2)
}

func TestTypeRules(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name  string
		rules validator.Rules
		value any
		ok    bool
	}{
		{"string ok", validator.Rules{"f": "string"}, "hi", true},
		{"string rejects number", validator.Rules{"f": "string"}, float64(1), false},
		{"int ok", validator.Rules{"f": "int"}, float64(42), true},
		{"int tolerates numeric string", validator.Rules{"f": "int"}, "42", true},
		{"int rejects non-numeric string", validator.Rules{"f": "int"}, "forty", false},
		{"int rejects fraction", validator.Rules{"f": "int"}, float64(1.5), false},
		{"bool ok", validator.Rules{"f": "bool"}, true, true},
		{"bool tolerates 0", validator.Rules{"f": "bool"}, float64(0), true},
		{"bool tolerates 1", validator.Rules{"f": "bool"}, float64(1), true},
		{"bool rejects 2", validator.Rules{"f": "bool"}, float64(2), false},
		{"bool rejects string", validator.Rules{"f": "bool"}, "true", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			ve := validate(t, map[string]any{"f": tc.value}, tc.rules)
			if tc.ok {
				assert.Nil(t, ve)
			} else {
				require.NotNil(t, ve)
				assert.Contains(t, ve.Fields, "f")
			}
		})
	}
}

func TestMinMaxKindDispatch(t *testing.T) {
	t.Parallel()

	// A numeric-looking string stays a string: "100" under max:50 is a
	// 3-character length check, not a value check.
	ve := validate(t, map[string]any{"n": "100"}, validator.Rules{"n": "max:50"})
	assert.Nil(t, ve)

	// An actual JSON number compares by value.
	ve = validate(t, map[string]any{"n": float64(100)}, validator.Rules{"n": "max:50"})
	require.NotNil(t, ve)
	assert.Equal(t, "n must be at most 50", ve.Fields["n"][0])

	ve = validate(t, map[string]any{"n": float64(17)}, validator.Rules{"n": "min:18"})
	require.NotNil(t, ve)
	assert.Equal(t, "n must be at least 18", ve.Fields["n"][0])
}

func TestInRule(t *testing.T) {
	t.Parallel()

	rules := validator.Rules{"role": "in:admin,user,mod"}

	ve := validate(t, map[string]any{"role": "user"}, rules)
	assert.Nil(t, ve)

	ve = validate(t, map[string]any{"role": "root"}, rules)
	require.NotNil(t, ve)
	assert.Equal(t, "role must be one of: admin, user, mod", ve.Fields["role"][0])

	// Non-string values match through their string representation.
	ve = validate(t, map[string]any{"level": float64(2)}, validator.Rules{"level": "in:1,2,3"})
	assert.Nil(t, ve)
}

func TestOptionalFieldSkipped(t *testing.T) {
	t.Parallel()

	// Without "required", an absent field passes every rule.
	ve := validate(t, map[string]any{}, validator.Rules{"nickname": "string|min:3"})
	assert.Nil(t, ve)
}

func TestPassingValidationIsIdempotent(t *testing.T) {
	t.Parallel()

	input := map[string]any{"username": "abc", "password": "abcd"}
	rules := validator.Rules{
		"username": "required|min:3",
		"password": "required|min:4",
	}

	first, err := validator.Validate(input, rules)
	require.NoError(t, err)

	second, err := validator.Validate(input, rules)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, input, first, "input returned unchanged")
}

func TestNilInputTreatedAsEmptyObject(t *testing.T) {
	t.Parallel()

	ve := validate(t, nil, validator.Rules{"name": "required"})
	require.NotNil(t, ve)
	assert.Contains(t, ve.Fields, "name")
}
