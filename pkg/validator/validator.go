package validator

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	playground "github.com/go-playground/validator/v10"
)

const (
	minEmailLength    = 3
	maxEmailLength    = 255
	minPasswordLength = 6
	maxPasswordLength = 128
	asciiControlStart = 32
	asciiDelete       = 127

	dateLayout = "2006-01-02"

	tagISODate = "isodate"

	errEmailEmptyFmt        = "email cannot be empty"
	errEmailLengthFmt       = "email must be between %d and %d characters"
	errEmailInvalidFmt      = "invalid email format"
	errPasswordMinLengthFmt = "password must be at least %d characters"
	errPasswordMaxLengthFmt = "password must not exceed %d characters"
	errDueDateInvalidFmt    = "dueDate must be an ISO-8601 date or date-time"
	errIdentifierEmptyFmt   = "identifier cannot be empty"
	errIdentifierControlFmt = "identifier cannot contain control characters"
	errFieldRequiredFmt     = "%s is required"
	errFieldMinFmt          = "%s must be at least %s"
	errFieldInvalidFmt      = "%s is invalid"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

var structValidator = newStructValidator()

func newStructValidator() *playground.Validate {
	v := playground.New()

	// Report json field names so messages match the request body.
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	_ = v.RegisterValidation(tagISODate, func(fl playground.FieldLevel) bool {
		return DueDate(fl.Field().String()) == nil
	})

	return v
}

// Struct validates a request struct using its `validate` tags and returns the
// first violation as a readable message.
func Struct(s interface{}) error {
	err := structValidator.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs playground.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		return err
	}

	fe := validationErrs[0]
	switch fe.Tag() {
	case "required":
		return fmt.Errorf(errFieldRequiredFmt, fe.Field())
	case "min", "gte":
		return fmt.Errorf(errFieldMinFmt, fe.Field(), fe.Param())
	case "email":
		return fmt.Errorf(errEmailInvalidFmt)
	case tagISODate:
		return fmt.Errorf(errDueDateInvalidFmt)
	default:
		return fmt.Errorf(errFieldInvalidFmt, fe.Field())
	}
}

func Email(email string) error {
	if email == "" {
		return fmt.Errorf(errEmailEmptyFmt)
	}

	if len(email) < minEmailLength || len(email) > maxEmailLength {
		return fmt.Errorf(errEmailLengthFmt, minEmailLength, maxEmailLength)
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf(errEmailInvalidFmt)
	}

	return nil
}

func Password(password string) error {
	if len(password) < minPasswordLength {
		return fmt.Errorf(errPasswordMinLengthFmt, minPasswordLength)
	}

	if len(password) > maxPasswordLength {
		return fmt.Errorf(errPasswordMaxLengthFmt, maxPasswordLength)
	}

	return nil
}

// DueDate accepts a calendar date ("2024-01-31") or an RFC 3339 date-time.
func DueDate(value string) error {
	if _, err := time.Parse(dateLayout, value); err == nil {
		return nil
	}

	if _, err := time.Parse(time.RFC3339, value); err == nil {
		return nil
	}

	return fmt.Errorf(errDueDateInvalidFmt)
}

// Identifier checks path parameters before they reach the store.
func Identifier(id string) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf(errIdentifierEmptyFmt)
	}

	for _, char := range id {
		if char < asciiControlStart || char == asciiDelete {
			return fmt.Errorf(errIdentifierControlFmt)
		}
	}

	return nil
}
