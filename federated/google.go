package federated

import "fmt"

// Google reads the flat OpenID Connect userinfo payload:
//
//	{"sub": "...", "email": "...", "name": "...", ...}
type Google struct{}

var _ Provider = Google{}

func (Google) Name() string {
	return "google"
}

func (Google) ExtractEmail(attrs map[string]any) (string, error) {
	email := stringAttr(attrs, "email")
	if email == "" {
		return "", ErrMissingEmail
	}
	return email, nil
}

func (Google) ExtractDisplayName(attrs map[string]any) string {
	return stringAttr(attrs, "name")
}

func (Google) ExtractProviderID(attrs map[string]any) string {
	if sub := stringAttr(attrs, "sub"); sub != "" {
		return sub
	}
	// some proxies pass sub through as a number
	if v, ok := attrs["sub"]; ok {
		return fmt.Sprint(v)
	}
	return ""
}
