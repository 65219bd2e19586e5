package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type submitForm struct {
	Title       string `json:"title" validate:"required"`
	Description string `json:"description" validate:"required"`
	Internal    string `json:"-" validate:"omitempty"`
}

func TestValidatePasses(t *testing.T) {
	assert.Nil(t, Validate(submitForm{Title: "t", Description: "d"}))
}

func TestValidateKeysByJSONName(t *testing.T) {
	fields := Validate(submitForm{Title: "only a title"})

	assert.Equal(t, map[string]string{"description": "required"}, fields)
}
