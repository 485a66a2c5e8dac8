// Package validation checks and normalizes the raw user fields accepted by the API.
//
// Inputs arrive as decoded JSON (or form) values, so every check takes an
// untyped value and reports a Result instead of failing with an error.
package validation

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	// MinNameLength is the minimum trimmed length of a name
	MinNameLength = 3
	// MaxNameLength is the maximum trimmed length of a name
	MaxNameLength = 100
	// MinAge is the minimum accepted age
	MinAge = 18
	// MaxAge is the maximum accepted age
	MaxAge = 120
)

// emailPattern requires a local part, an @, and a dotted domain, none containing whitespace or @.
// RE2's \s is ASCII only, so Unicode separators are excluded explicitly.
var emailPattern = regexp.MustCompile(`^[^\s\p{Z}\x{0B}\x{FEFF}@]+@[^\s\p{Z}\x{0B}\x{FEFF}@]+\.[^\s\p{Z}\x{0B}\x{FEFF}@]+$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("user_email", func(fl validator.FieldLevel) bool {
		return emailPattern.MatchString(fl.Field().String())
	})
	return v
}

// Result is the outcome of a single field check.
type Result struct {
	Valid   bool
	Message string
}

func ok() Result {
	return Result{Valid: true}
}

func fail(msg string) Result {
	return Result{Valid: false, Message: msg}
}

// ValidateName accepts a string whose trimmed length is within [MinNameLength, MaxNameLength].
func ValidateName(v any) Result {
	s, isString := v.(string)
	if !isString || s == "" {
		return fail("name is required and must be a string")
	}

	name := NormalizeName(s)
	if err := validate.Var(name, "min="+strconv.Itoa(MinNameLength)); err != nil {
		return fail("name must be at least " + strconv.Itoa(MinNameLength) + " characters")
	}
	if err := validate.Var(name, "max="+strconv.Itoa(MaxNameLength)); err != nil {
		return fail("name must not exceed " + strconv.Itoa(MaxNameLength) + " characters")
	}
	return ok()
}

// ValidateEmail accepts a string that, once trimmed, looks like local@domain.tld.
func ValidateEmail(v any) Result {
	s, isString := v.(string)
	if !isString || s == "" {
		return fail("email is required and must be a string")
	}

	if err := validate.Var(strings.TrimSpace(s), "required,user_email"); err != nil {
		return fail("email format is invalid")
	}
	return ok()
}

// ValidateAge accepts a base-10 integer within [MinAge, MaxAge].
func ValidateAge(v any) Result {
	if v == nil {
		return fail("age is required")
	}
	if s, isString := v.(string); isString && strings.TrimSpace(s) == "" {
		return fail("age is required")
	}

	age, parsed := ParseAge(v)
	if !parsed {
		return fail("age must be a valid integer")
	}
	if err := validate.Var(age, "gte="+strconv.Itoa(MinAge)); err != nil {
		return fail("age must be at least " + strconv.Itoa(MinAge))
	}
	if err := validate.Var(age, "lte="+strconv.Itoa(MaxAge)); err != nil {
		return fail("age must not exceed " + strconv.Itoa(MaxAge))
	}
	return ok()
}

// ParseAge converts a decoded value into an integer age.
// Fractional numbers and non-integer strings are rejected. Integers outside
// the int32 range are clamped so the range checks still report them.
func ParseAge(v any) (int, bool) {
	switch age := v.(type) {
	case int:
		return age, true
	case int32:
		return int(age), true
	case int64:
		return clampAge(age), true
	case float64:
		if math.IsNaN(age) || math.IsInf(age, 0) || age != math.Trunc(age) {
			return 0, false
		}
		if age > math.MaxInt32 {
			return math.MaxInt32, true
		}
		if age < math.MinInt32 {
			return math.MinInt32, true
		}
		return int(age), true
	case json.Number:
		return parseIntString(age.String())
	case string:
		return parseIntString(strings.TrimSpace(age))
	default:
		return 0, false
	}
}

// parseIntString accepts base-10 integer syntax of any magnitude.
func parseIntString(s string) (int, bool) {
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, false
	}
	// On ErrRange n already holds the saturated int64 value.
	return clampAge(n), true
}

func clampAge(n int64) int {
	switch {
	case n > math.MaxInt32:
		return math.MaxInt32
	case n < math.MinInt32:
		return math.MinInt32
	default:
		return int(n)
	}
}

// NormalizeName trims surrounding whitespace.
func NormalizeName(name string) string {
	return strings.TrimSpace(name)
}

// NormalizeEmail trims surrounding whitespace and lowercases.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
