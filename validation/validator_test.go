package validation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"gorecord/domain"
	"gorecord/validation"
)

func TestRequired(t *testing.T) {
	assert.NoError(t, validation.Required("value", "field"))
	assert.Error(t, validation.Required("", "field"))
	assert.Error(t, validation.Required("   ", "field"))
	assert.True(t, domain.IsValidation(validation.Required("", "field")))
}

func TestLength(t *testing.T) {
	assert.NoError(t, validation.Length("abc", "field", 1, 5))
	assert.Error(t, validation.Length("ab", "field", 3, 5))
	assert.Error(t, validation.Length("abcdef", "field", 1, 5))
	// max<=0 表示不限上限
	assert.NoError(t, validation.Length("abcdef", "field", 1, 0))
	// 按 rune 计数
	assert.NoError(t, validation.Length("héllo", "field", 5, 5))
}

func TestRangeAndPositive(t *testing.T) {
	assert.NoError(t, validation.Range(5, "field", 1, 10))
	assert.Error(t, validation.Range(0, "field", 1, 10))
	assert.Error(t, validation.Range(11, "field", 1, 10))

	assert.NoError(t, validation.Positive(1, "field"))
	assert.Error(t, validation.Positive(0, "field"))
	assert.Error(t, validation.Positive(-1, "field"))
}

func TestEmail(t *testing.T) {
	assert.NoError(t, validation.Email("user@example.com", "email"))
	assert.NoError(t, validation.Email("first.last+tag@sub.example.org", "email"))
	assert.Error(t, validation.Email("not-an-email", "email"))
	assert.Error(t, validation.Email("user@", "email"))
	// 空值交给 Required 组合
	assert.NoError(t, validation.Email("", "email"))
}

func TestPhone(t *testing.T) {
	assert.NoError(t, validation.Phone("+7 (495) 123-45-67", "phone"))
	assert.NoError(t, validation.Phone("84951234567", "phone"))
	assert.Error(t, validation.Phone("abc", "phone"))
	assert.Error(t, validation.Phone("+1", "phone"))
	assert.NoError(t, validation.Phone("", "phone"))
}

func TestPersonName(t *testing.T) {
	assert.NoError(t, validation.PersonName("Anna", "first name"))
	assert.NoError(t, validation.PersonName("Jean-Luc", "first name"))
	assert.NoError(t, validation.PersonName("O'Brien", "last name"))
	assert.Error(t, validation.PersonName("", "first name"))
	assert.Error(t, validation.PersonName("R2D2", "first name"))
}

func TestNotInFuture(t *testing.T) {
	now := time.Now()
	assert.NoError(t, validation.NotInFuture(now.Add(-time.Hour), "birth date", now))
	assert.Error(t, validation.NotInFuture(now.Add(time.Hour), "birth date", now))
}

func TestOneOf(t *testing.T) {
	assert.NoError(t, validation.OneOf("MALE", "gender", "MALE", "FEMALE", "NOT_SELECTED"))
	assert.Error(t, validation.OneOf("OTHER", "gender", "MALE", "FEMALE"))
}

func TestAll(t *testing.T) {
	err := validation.All(
		func() error { return validation.Required("x", "a") },
		func() error { return validation.Required("", "b") },
		func() error { return validation.Required("", "c") },
	)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "b must not be empty")
}
