package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func contactSchema() JSONSchema {
	return JSONSchema{
		Type: "object",
		Properties: map[string]Property{
			"name":    {Type: "string", MinLength: IntPtr(1)},
			"email":   {Type: "string", Format: "email"},
			"company": {Type: "string", MinLength: IntPtr(1)},
			"role":    {Type: "string", Enum: []string{"investor", "partner"}},
			"message": {Type: "string", MaxLength: IntPtr(10)},
		},
		Required: []string{"name", "email", "company"},
	}
}

func TestValidateInput_Valid(t *testing.T) {
	res, err := ValidateInput(map[string]interface{}{
		"name":    "Jane",
		"email":   "jane@example.com",
		"company": "Acme",
	}, contactSchema())
	require.NoError(t, err)
	assert.True(t, res.Valid)
	assert.Empty(t, res.Errors)
	_, ok := res.First()
	assert.False(t, ok)
}

func TestValidateInput_MissingFieldsInSchemaOrder(t *testing.T) {
	res, err := ValidateInput(map[string]interface{}{
		"name": "Jane",
	}, contactSchema())
	require.NoError(t, err)
	assert.False(t, res.Valid)

	first, ok := res.First()
	require.True(t, ok)
	assert.Equal(t, "email", first.Field)
	assert.Equal(t, "REQUIRED", first.Code)
	msgs := res.GetErrorMessages()
	require.Len(t, msgs, 2)
	assert.Contains(t, msgs[0], "email: ")
	assert.Contains(t, msgs[1], "company: ")
}

func TestValidateInput_Constraints(t *testing.T) {
	tests := []struct {
		name  string
		input map[string]interface{}
		field string
	}{
		{"bad email", map[string]interface{}{"name": "J", "email": "nope", "company": "A"}, "email"},
		{"bad enum", map[string]interface{}{"name": "J", "email": "j@x.io", "company": "A", "role": "pirate"}, "role"},
		{"too long", map[string]interface{}{"name": "J", "email": "j@x.io", "company": "A", "message": "far too long a message"}, "message"},
		{"empty name", map[string]interface{}{"name": "", "email": "j@x.io", "company": "A"}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := ValidateInput(tt.input, contactSchema())
			require.NoError(t, err)
			assert.False(t, res.Valid)
			first, _ := res.First()
			assert.Equal(t, tt.field, first.Field)
			assert.NotEmpty(t, res.GetErrorMessages())
		})
	}
}

