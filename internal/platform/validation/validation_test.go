package validation

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type bidForm struct {
	Amount      int64  `validate:"gt=0"`
	ImageURL    string `validate:"omitempty,url"`
	Title       string `validate:"required,max=5"`
	StartingBid int64  `validate:"gte=0"`
}

func TestFromBindError_ValidatorErrors(t *testing.T) {
	v := validator.New()
	err := v.Struct(bidForm{Amount: 0, ImageURL: "not a url", Title: "", StartingBid: -1})

	fe := FromBindError(err)

	assert.False(t, fe.Valid())
	assert.Equal(t, "must be greater than 0", fe["amount"])
	assert.Equal(t, "must be a valid URL", fe["image_url"])
	assert.Equal(t, "this field is required", fe["title"])
	assert.Equal(t, "must be at least 0", fe["starting_bid"])
}

func TestFromBindError_NonValidatorError(t *testing.T) {
	fe := FromBindError(errors.New("unexpected EOF"))

	assert.Equal(t, FieldErrors{"body": "invalid request body"}, fe)
}

func TestFromBindError_Nil(t *testing.T) {
	assert.True(t, FromBindError(nil).Valid())
}

func TestFieldErrors_CheckKeepsFirstMessage(t *testing.T) {
	fe := FieldErrors{}
	fe.Check(false, "confirmation", "passwords must match")
	fe.Check(false, "confirmation", "second message")
	fe.Check(true, "username", "never added")

	assert.Equal(t, FieldErrors{"confirmation": "passwords must match"}, fe)
	assert.Equal(t, "confirmation: passwords must match", fe.Error())
}
