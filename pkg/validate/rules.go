package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

// Permissive phone charset: digits, spaces and common separators. No length
// bound; the forms accept international numbers in whatever shape visitors
// type them.
var phoneRegex = regexp.MustCompile(`^[0-9+\-() ]+$`)

// Required validates that a value is non-empty. Callers are expected to trim
// values before applying rules; whitespace-only input is still rejected here
// so an untrimmed value cannot sneak through.
func Required(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return strings.TrimSpace(value) != ""
		},
		Issue: Issue{
			Field:   field,
			Message: "field is required",
		},
	}
}

// MinLen validates a minimum length. Empty values pass so that a missing
// required field reports only the Required violation and optional fields
// accept the empty string.
func MinLen(field, value string, min int) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || len(value) >= min
		},
		Issue: Issue{
			Field:   field,
			Message: fmt.Sprintf("must be at least %d characters long", min),
		},
	}
}

// MaxLen validates a maximum length. Empty values pass.
func MaxLen(field, value string, max int) Rule {
	return Rule{
		Check: func() bool {
			return len(value) <= max
		},
		Issue: Issue{
			Field:   field,
			Message: fmt.Sprintf("must be at most %d characters long", max),
		},
	}
}

// Email validates a local@domain shape. Empty values pass; pair with
// Required when the field is mandatory. The domain must contain at least
// one dot so bare hostnames are rejected, matching typical web use.
func Email(field, value string) Rule {
	return Rule{
		Check: func() bool {
			if value == "" {
				return true
			}

			addr, err := mail.ParseAddress(value)
			if err != nil || addr.Address != value {
				return false
			}

			parts := strings.Split(addr.Address, "@")
			if len(parts) != 2 || parts[0] == "" {
				return false
			}

			domain := parts[1]
			if !strings.Contains(domain, ".") || strings.HasPrefix(domain, ".") || strings.HasSuffix(domain, ".") {
				return false
			}
			for part := range strings.SplitSeq(domain, ".") {
				if part == "" {
					return false
				}
			}
			return true
		},
		Issue: Issue{
			Field:   field,
			Message: "must be a valid email address",
		},
	}
}

// PhoneChars validates that a value contains only phone characters:
// digits, spaces, "+", "-", "(" and ")". Empty values pass.
func PhoneChars(field, value string) Rule {
	return Rule{
		Check: func() bool {
			return value == "" || phoneRegex.MatchString(value)
		},
		Issue: Issue{
			Field:   field,
			Message: "may contain only digits, spaces and + - ( )",
		},
	}
}
