package locale

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Name   string  `json:"name" validate:"required"`
	Amount float64 `json:"amount" validate:"gt=0"`
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
}

func validationErrors(t *testing.T, c *Catalog, v any) validator.ValidationErrors {
	t.Helper()
	err := c.Validator().Struct(v)
	var errs validator.ValidationErrors
	require.True(t, errors.As(err, &errs))
	return errs
}

func TestCatalog_Fields(t *testing.T) {
	c := New()
	errs := validationErrors(t, c, sample{Date: "10/02/2024"})

	en := c.Fields(c.Translator("en-US,en;q=0.9"), errs)
	assert.Equal(t, "name is required", en["name"])
	assert.Equal(t, "date must be a date in the 2006-01-02 format", en["date"])
	assert.Contains(t, en, "amount")

	ar := c.Fields(c.Translator("ar-EG"), errs)
	assert.Equal(t, "name مطلوب", ar["name"])
	assert.Equal(t, "amount لازم يكون أكبر من 0", ar["amount"])
}

func TestCatalog_Message(t *testing.T) {
	c := New()

	assert.Equal(t, "Wrong phone number or password.", c.Message(c.Translator(""), MsgInvalidCredentials))
	assert.Equal(t, "Wrong phone number or password.", c.Message(c.Translator("fr"), MsgInvalidCredentials))
	assert.Equal(t, "رقم الموبايل أو كلمة المرور غلط.", c.Message(c.Translator("ar"), MsgInvalidCredentials))
	assert.Equal(t, "unknown_key", c.Message(c.Translator("en"), "unknown_key"))
}

func TestCatalog_MessagesComplete(t *testing.T) {
	for key := range messages["en"] {
		_, ok := messages["ar"][key]
		assert.True(t, ok, "missing arabic text for %s", key)
	}
	assert.Len(t, messages["ar"], len(messages["en"]))
}
