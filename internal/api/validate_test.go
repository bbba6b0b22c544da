package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidPhone(t *testing.T) {
	valid := []string{
		"+221770001122",
		"00221770001122",
		"770001122",
		"781234567",
		"901234567",
	}
	for _, phone := range valid {
		assert.True(t, validPhone(phone), phone)
	}

	invalid := []string{
		"",
		"601234567",
		"+22177000112",
		"+2217700011223",
		"+33612345678",
		"77-000-11-22",
	}
	for _, phone := range invalid {
		assert.False(t, validPhone(phone), phone)
	}
}

func TestValidEmail(t *testing.T) {
	assert.True(t, validEmail("awa.diop@example.com"))
	assert.False(t, validEmail("not-an-email"))
}

func TestParseDate(t *testing.T) {
	d, err := parseDate("2025-03-15")
	assert.NoError(t, err)
	assert.Equal(t, 2025, d.Year())

	_, err = parseDate("15/03/2025")
	assert.Error(t, err)
}

func TestParsedDateOrNil(t *testing.T) {
	assert.Nil(t, parsedDateOrNil(nil))

	s := "2025-03-15"
	d := parsedDateOrNil(&s)
	assert.NotNil(t, d)
	assert.Equal(t, "2025-03-15", d.Format(dateLayout))
}
