package entity

import (
	"fmt"
	"net/url"
	"strings"
)

const maxRouterNameLength = 128

// ValidationError is returned when an input field fails validation.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// ValidateRouter checks the writable fields of a router.
func ValidateRouter(name, rawURL string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "name", Message: "this field is required"}
	}

	if len(name) > maxRouterNameLength {
		return &ValidationError{Field: "name", Message: "too long"}
	}

	return ValidateRouterURL(rawURL)
}

// ValidateRouterURL reports whether rawURL is an absolute http or https URL.
func ValidateRouterURL(rawURL string) error {
	if rawURL == "" {
		return &ValidationError{Field: "url", Message: "this field is required"}
	}

	u, err := url.ParseRequestURI(rawURL)
	if err != nil || !u.IsAbs() || u.Host == "" {
		return &ValidationError{Field: "url", Message: "invalid url"}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return &ValidationError{Field: "url", Message: "unsupported scheme"}
	}

	return nil
}
