package tui

import (
	"fmt"
	"regexp"
	"strings"
)

var hostnameLabelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

func validateHostname(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("hostname is required")
	}
	if !hostnameLabelPattern.MatchString(strings.ToLower(s)) {
		return fmt.Errorf("invalid hostname: must be alphanumeric with optional hyphens")
	}
	return nil
}

func validateFQDN(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return fmt.Errorf("fqdn is required")
	}

	labels := strings.Split(s, ".")
	if len(labels) < 2 {
		return fmt.Errorf("fqdn must contain at least two labels")
	}
	for _, label := range labels {
		if !hostnameLabelPattern.MatchString(strings.ToLower(label)) {
			return fmt.Errorf("fqdn contains invalid label %q", label)
		}
	}
	return nil
}

func validateServer(field string) func(string) error {
	return func(s string) error {
		s = strings.TrimSpace(s)
		if s == "" {
			return fmt.Errorf("%s is required", field)
		}
		for _, label := range strings.Split(s, ".") {
			if !hostnameLabelPattern.MatchString(strings.ToLower(label)) {
				return fmt.Errorf("%s is not a valid host name", field)
			}
		}
		return nil
	}
}
