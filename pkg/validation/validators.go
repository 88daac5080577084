package validation

import (
	"regexp"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// Regex patterns
var (
	// Allow letters, numbers, spaces, and common professional punctuation: . ' - / & ( ) ,
	nameRegex = regexp.MustCompile(`^[\p{L}0-9 .'/&(),-]+$`)

	// E164-like phone: optional +, digits 7-15 length
	phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

	// http(s) URLs only, for profile links (LinkedIn, GitHub, portfolio, website)
	urlRegex = regexp.MustCompile(`^https?://[^\s]+$`)
)

// RegisterValidators registers custom validators to the validator instance
func RegisterValidators(v *validator.Validate) {
	_ = v.RegisterValidation("valid_name", ValidName)
	_ = v.RegisterValidation("valid_phone", ValidPhone)
	_ = v.RegisterValidation("valid_link", ValidLink)
	_ = v.RegisterValidation("no_emoji", NoEmoji)
}

// ValidName validates that a string contains only valid name characters
// Rejects most special symbols
func ValidName(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true // Optional, use required if needed
	}
	return nameRegex.MatchString(val)
}

// ValidPhone validates a phone number structure
func ValidPhone(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return phoneRegex.MatchString(val)
}

// ValidLink validates an optional http(s) URL field
func ValidLink(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	return urlRegex.MatchString(val)
}

// NoEmoji validates that a string does not contain emoji characters
func NoEmoji(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	for _, r := range val {
		if r > 0x1F000 {
			return false // Supplementary characters (mostly emoji/symbols)
		}
		if unicode.In(r, unicode.So, unicode.Sk) { // Symbol other / Symbol modifier
			return false
		}
	}
	return true
}
