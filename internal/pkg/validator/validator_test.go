package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sampleRequest struct {
	Email  string `json:"email" validate:"required,email"`
	Rating int    `json:"rating" validate:"gte=1,lte=5"`
}

func TestValidate_Passes(t *testing.T) {
	assert.Nil(t, Validate(sampleRequest{Email: "demo@reviewhub.local", Rating: 4}))
}

func TestValidate_ReportsJSONFieldNames(t *testing.T) {
	details := Validate(sampleRequest{Email: "not-an-email", Rating: 9})

	assert.Equal(t, "email", details["email"])
	assert.Equal(t, "lte", details["rating"])
	// Go struct names never leak into the error details.
	assert.NotContains(t, details, "Email")
	assert.NotContains(t, details, "Rating")
}
