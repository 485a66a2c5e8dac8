package validation

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		valid   bool
		message string
	}{
		{name: "valid name", input: "Ann Lee", valid: true},
		{name: "minimum length", input: "Ann", valid: true},
		{name: "maximum length", input: strings.Repeat("a", 100), valid: true},
		{name: "padded to minimum", input: "  Ann  ", valid: true},
		{name: "too short", input: "Al", message: "name must be at least 3 characters"},
		{name: "too short after trim", input: "  Al   ", message: "name must be at least 3 characters"},
		{name: "too long", input: strings.Repeat("a", 101), message: "name must not exceed 100 characters"},
		{name: "too long after trim keeps limit", input: " " + strings.Repeat("a", 100) + " ", valid: true},
		{name: "empty", input: "", message: "name is required and must be a string"},
		{name: "missing", input: nil, message: "name is required and must be a string"},
		{name: "not a string", input: float64(123), message: "name is required and must be a string"},
		{name: "multibyte characters counted once", input: "Éva", valid: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateName(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, tt.message, res.Message)
			}
		})
	}
}

func TestValidateEmail(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		valid   bool
		message string
	}{
		{name: "shortest valid", input: "a@b.c", valid: true},
		{name: "regular address", input: "ann@example.com", valid: true},
		{name: "mixed case with padding", input: "  ANN@Example.com ", valid: true},
		{name: "missing at", input: "ann.example.com", message: "email format is invalid"},
		{name: "no dot after at", input: "ann@example", message: "email format is invalid"},
		{name: "dot only before at", input: "a.b@example", message: "email format is invalid"},
		{name: "double at", input: "a@@b.c", message: "email format is invalid"},
		{name: "inner whitespace", input: "a b@c.d", message: "email format is invalid"},
		{name: "inner no-break space", input: "a\u00a0b@c.d", message: "email format is invalid"},
		{name: "line separator in domain", input: "a@b\u2028.c", message: "email format is invalid"},
		{name: "ideographic space in tld", input: "a@b.c\u3000d", message: "email format is invalid"},
		{name: "empty local part", input: "@b.c", message: "email format is invalid"},
		{name: "empty", input: "", message: "email is required and must be a string"},
		{name: "missing", input: nil, message: "email is required and must be a string"},
		{name: "not a string", input: true, message: "email is required and must be a string"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateEmail(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, tt.message, res.Message)
			}
		})
	}
}

func TestValidateAge(t *testing.T) {
	tests := []struct {
		name    string
		input   any
		valid   bool
		message string
	}{
		{name: "lower bound", input: float64(18), valid: true},
		{name: "upper bound", input: float64(120), valid: true},
		{name: "string integer", input: "25", valid: true},
		{name: "padded string integer", input: " 25 ", valid: true},
		{name: "json number", input: json.Number("30"), valid: true},
		{name: "native int", input: 40, valid: true},
		{name: "below minimum", input: float64(17), message: "age must be at least 18"},
		{name: "above maximum", input: float64(121), message: "age must not exceed 120"},
		{name: "string below minimum", input: "17", message: "age must be at least 18"},
		{name: "huge number", input: float64(1e10), message: "age must not exceed 120"},
		{name: "huge string", input: "99999999999999999999", message: "age must not exceed 120"},
		{name: "huge json number", input: json.Number("99999999999999999999"), message: "age must not exceed 120"},
		{name: "huge negative string", input: "-99999999999999999999", message: "age must be at least 18"},
		{name: "huge negative number", input: float64(-1e12), message: "age must be at least 18"},
		{name: "fractional string", input: "20.5", message: "age must be a valid integer"},
		{name: "fractional number", input: 20.5, message: "age must be a valid integer"},
		{name: "fractional json number", input: json.Number("20.5"), message: "age must be a valid integer"},
		{name: "not numeric", input: "abc", message: "age must be a valid integer"},
		{name: "trailing garbage", input: "25abc", message: "age must be a valid integer"},
		{name: "boolean", input: true, message: "age must be a valid integer"},
		{name: "missing", input: nil, message: "age is required"},
		{name: "empty string", input: "", message: "age is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := ValidateAge(tt.input)
			assert.Equal(t, tt.valid, res.Valid)
			if !tt.valid {
				assert.Equal(t, tt.message, res.Message)
			}
		})
	}
}

func TestParseAge(t *testing.T) {
	age, ok := ParseAge("25")
	assert.True(t, ok)
	assert.Equal(t, 25, age)

	age, ok = ParseAge(float64(42))
	assert.True(t, ok)
	assert.Equal(t, 42, age)

	age, ok = ParseAge(float64(1e20))
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt32, age)

	age, ok = ParseAge("99999999999999999999")
	assert.True(t, ok)
	assert.Equal(t, math.MaxInt32, age)

	_, ok = ParseAge("1e10")
	assert.False(t, ok)
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "Ann Lee", NormalizeName("  Ann Lee "))
	assert.Equal(t, "ann@example.com", NormalizeEmail("ANN@Example.com "))
}
