package enums

import "fmt"

// ConfirmationMethod is how an agent proved a pickup or delivery happened.
type ConfirmationMethod string

const (
	ConfirmationMethodPhotoMessage      ConfirmationMethod = "photo_message"
	ConfirmationMethodSignatureCheckbox ConfirmationMethod = "signature_checkbox"
)

var validConfirmationMethods = []ConfirmationMethod{
	ConfirmationMethodPhotoMessage,
	ConfirmationMethodSignatureCheckbox,
}

// IsValid reports whether the value is a known ConfirmationMethod.
func (m ConfirmationMethod) IsValid() bool {
	for _, candidate := range validConfirmationMethods {
		if candidate == m {
			return true
		}
	}
	return false
}

// ParseConfirmationMethod converts raw input into a ConfirmationMethod.
func ParseConfirmationMethod(value string) (ConfirmationMethod, error) {
	for _, candidate := range validConfirmationMethods {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid confirmation method %q", value)
}
