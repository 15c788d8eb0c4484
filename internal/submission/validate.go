package submission

import (
	"encoding/json"
	"errors"
	"math"
	"regexp"
	"strconv"

	platformstrings "intake/pkg/platform/strings"
)

// ErrInvalidInput is returned by Validate for any input that does not satisfy
// the form schema. It carries no field detail.
var ErrInvalidInput = errors.New("invalid form data")

// jsSpace is the character class a browser matches with `\s`.
const jsSpace = `\t\n\v\f\r \x{00A0}\x{1680}\x{2000}-\x{200A}\x{2028}\x{2029}\x{202F}\x{205F}\x{3000}\x{FEFF}`

// EmailPattern is the browser-side pattern /^[^\s@]+@[^\s@]+\.[^\s@]+$/ with
// `\s` expanded so RE2 and ECMAScript agree on every input. The form page
// ships the short form of the same expression.
var EmailPattern = regexp.MustCompile(`^[^@` + jsSpace + `]+@[^@` + jsSpace + `]+\.[^@` + jsSpace + `]+$`)

// Validate checks untrusted decoded JSON against the form schema. input is
// typically the result of json.Decoder.Decode into an `any` (with or without
// UseNumber); a map[string]any is the only shape that can pass.
func Validate(input any) (PersonalData, error) {
	obj, ok := input.(map[string]any)
	if !ok || obj == nil {
		return PersonalData{}, ErrInvalidInput
	}

	name, ok := obj["name"].(string)
	if !ok || platformstrings.TrimSpace(name) == "" {
		return PersonalData{}, ErrInvalidInput
	}

	email, ok := obj["email"].(string)
	if !ok || !EmailPattern.MatchString(email) {
		return PersonalData{}, ErrInvalidInput
	}

	age, ok := parseAge(obj["age"])
	if !ok {
		return PersonalData{}, ErrInvalidInput
	}

	gender, ok := obj["gender"].(string)
	if !ok || !Gender(gender).IsValid() {
		return PersonalData{}, ErrInvalidInput
	}

	return PersonalData{
		Name:   name,
		Email:  email,
		Age:    age,
		Gender: Gender(gender),
	}, nil
}

// parseAge accepts JSON numbers only; numeric strings are rejected. The value
// must be integral and within [MinAge, MaxAge].
func parseAge(v any) (int, bool) {
	var f float64
	switch n := v.(type) {
	case json.Number:
		parsed, err := strconv.ParseFloat(string(n), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int32:
		f = float64(n)
	case int64:
		f = float64(n)
	default:
		return 0, false
	}

	if math.IsNaN(f) || math.Trunc(f) != f {
		return 0, false
	}
	if f < MinAge || f > MaxAge {
		return 0, false
	}
	return int(f), true
}
