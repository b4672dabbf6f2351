package truegate

import (
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"
	zxcvbn "github.com/nbutton23/zxcvbn-go"
)

// MinPasswordLength matches the portal's registration policy.
const MinPasswordLength = 8

// MinPasswordScore is the zxcvbn score floor (0-4) applied on top of the
// character-class rules, so "Aa1!Aa1!" style minimum-effort passwords
// still get rejected.
const MinPasswordScore = 2

// PasswordRules returns the ozzo rule chain for a new password. The
// optional userInputs (email, names) are fed to the strength estimator so
// passwords derived from the user's own identity score poorly.
func PasswordRules(userInputs ...string) []validation.Rule {
	return []validation.Rule{
		validation.Required,
		validation.Length(MinPasswordLength, 0),
		validation.By(requireCharClasses),
		validation.By(requireStrength(MinPasswordScore, userInputs...)),
	}
}

func requireCharClasses(value any) error {
	raw, _ := value.(string)
	if raw == "" {
		return nil
	}
	var lower, upper, digit, special bool
	for _, r := range raw {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case unicode.IsDigit(r):
			digit = true
		case unicode.IsSymbol(r) || unicode.IsPunct(r):
			special = true
		}
	}
	if !lower || !upper || !digit || !special {
		return goerrors.New(
			"must contain uppercase, lowercase, number, and special character",
			goerrors.CategoryValidation,
		)
	}
	return nil
}

func requireStrength(minScore int, userInputs ...string) func(value any) error {
	return func(value any) error {
		raw, _ := value.(string)
		if raw == "" || minScore <= 0 {
			return nil
		}
		if minScore > 4 {
			minScore = 4
		}
		result := zxcvbn.PasswordStrength(raw, userInputs)
		if result.Score >= minScore {
			return nil
		}
		return goerrors.New("password is too weak; choose a more complex value", goerrors.CategoryValidation)
	}
}
