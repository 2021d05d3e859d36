package config

import "fmt"

const (
	warnInvalidValueFmt = "Warning: invalid %s value '%s', using default"
)

type messageBuilders struct {
	invalidValue func(key, value string) string
}

func newMessageBuilders() messageBuilders {
	return messageBuilders{
		invalidValue: func(key, value string) string {
			return fmt.Sprintf(warnInvalidValueFmt, key, value)
		},
	}
}

var messages = newMessageBuilders()
