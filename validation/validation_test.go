package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidators(t *testing.T) {
	v := Violations{}
	Required("name", "  ", v)
	NonNegativeFloat("price", -1, v)
	PositiveInt("quantity", 0, v)
	OneOf("type", "INVOICE", []string{"QUOTE", "RECEIPT"}, v)
	NotEmpty("items", 0, v)

	assert.False(t, v.Empty())
	assert.Equal(t, "required", v["name"])
	assert.Equal(t, "must_not_be_negative", v["price"])
	assert.Equal(t, "must_be_positive", v["quantity"])
	assert.Equal(t, "invalid_value", v["type"])
	assert.Equal(t, "required", v["items"])
	assert.Equal(t, "validation failed: items=required, name=required, price=must_not_be_negative, quantity=must_be_positive, type=invalid_value", v.Error())
}

func TestValidatorsAcceptGoodInput(t *testing.T) {
	v := Violations{}
	Required("name", "Ana", v)
	NonNegativeFloat("price", 0, v)
	PositiveInt("quantity", 2, v)
	OneOf("type", "QUOTE", []string{"QUOTE", "RECEIPT"}, v)
	NotEmpty("items", 1, v)
	assert.True(t, v.Empty())
}
