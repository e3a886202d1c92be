// Package validation checks bindings before user-data rendering.
package validation

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/innogames/vmseed/pkg/config"
	"github.com/innogames/vmseed/pkg/userdata"
)

// Severity represents the severity of a validation issue.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// Issue represents a single problem found in the bindings.
type Issue struct {
	Field    string   `json:"field,omitempty"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Result holds all validation issues.
type Result struct {
	Issues []Issue `json:"issues"`
}

// HasErrors returns true if there are any error-level issues.
func (r *Result) HasErrors() bool {
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ErrorCount returns the number of error-level issues.
func (r *Result) ErrorCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityError {
			count++
		}
	}
	return count
}

// WarningCount returns the number of warning-level issues.
func (r *Result) WarningCount() int {
	count := 0
	for _, issue := range r.Issues {
		if issue.Severity == SeverityWarning {
			count++
		}
	}
	return count
}

func (r *Result) addError(field, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityError,
	})
}

func (r *Result) addWarning(field, format string, args ...interface{}) {
	r.Issues = append(r.Issues, Issue{
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
		Severity: SeverityWarning,
	})
}

// RFC 1123 host name label.
var hostnameLabelPattern = regexp.MustCompile(`^[a-z0-9]([a-z0-9-]{0,61}[a-z0-9])?$`)

// Repo filenames end up under /etc/apt/sources.list.d; keep them to a
// safe character set.
var repoFilenamePattern = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._-]*$`)

const (
	pgpArmorBegin = "-----BEGIN PGP PUBLIC KEY BLOCK-----"
	pgpArmorEnd   = "-----END PGP PUBLIC KEY BLOCK-----"
)

// Validate checks the bindings and returns every issue found. Rendering
// with error-level issues produces a structurally valid but unusable
// document, so callers should refuse to render on errors.
func Validate(b *config.Bindings) *Result {
	result := &Result{Issues: []Issue{}}

	validateHost(result, b)
	validateRepos(result, b.AptRepos)
	validateServer(result, "puppet_master", b.PuppetMaster)
	validateServer(result, "puppet_ca", b.PuppetCA)

	return result
}

func validateHost(result *Result, b *config.Bindings) {
	if b.Hostname == "" {
		result.addError("hostname", "hostname is required")
	} else if !hostnameLabelPattern.MatchString(strings.ToLower(b.Hostname)) {
		result.addError("hostname", "invalid hostname %q: must be alphanumeric with optional hyphens", b.Hostname)
	}

	if b.FQDN == "" {
		result.addError("fqdn", "fqdn is required")
		return
	}

	labels := strings.Split(b.FQDN, ".")
	if len(labels) < 2 {
		result.addError("fqdn", "fqdn %q must contain at least two labels", b.FQDN)
		return
	}
	for _, label := range labels {
		if !hostnameLabelPattern.MatchString(strings.ToLower(label)) {
			result.addError("fqdn", "fqdn %q contains invalid label %q", b.FQDN, label)
			return
		}
	}

	if b.Hostname != "" && !strings.HasPrefix(b.FQDN, b.Hostname+".") {
		result.addWarning("fqdn", "fqdn %q does not start with hostname %q", b.FQDN, b.Hostname)
	}
}

func validateRepos(result *Result, repos []userdata.AptSource) {
	seen := make(map[string]bool)

	for i, repo := range repos {
		field := fmt.Sprintf("apt_repos[%d]", i)

		if repo.Filename == "" {
			result.addError(field, "repository filename is required")
		} else {
			if !repoFilenamePattern.MatchString(repo.Filename) {
				result.addError(field, "repository filename %q contains invalid characters", repo.Filename)
			}
			if seen[repo.Filename] {
				result.addError(field, "duplicate repository filename %q", repo.Filename)
			}
			seen[repo.Filename] = true
		}

		source := strings.TrimSpace(repo.Source)
		if source == "" {
			result.addError(field, "repository source line is required")
		} else if !strings.HasPrefix(source, "deb ") && !strings.HasPrefix(source, "deb-src ") {
			result.addError(field, "repository source %q must start with deb or deb-src", repo.Source)
		}

		validateKey(result, field, repo.Key)
	}
}

func validateKey(result *Result, field string, key []string) {
	if len(key) == 0 {
		result.addError(field, "repository signing key is required")
		return
	}

	// Unsigned repos break apt on first boot long after rendering, but a
	// missing armor frame might still be a deliberately stripped key.
	if strings.TrimSpace(key[0]) != pgpArmorBegin {
		result.addWarning(field, "signing key does not start with %q", pgpArmorBegin)
	}
	if strings.TrimSpace(key[len(key)-1]) != pgpArmorEnd {
		result.addWarning(field, "signing key does not end with %q", pgpArmorEnd)
	}
}

func validateServer(result *Result, field, value string) {
	if value == "" {
		result.addError(field, "%s is required", field)
		return
	}

	for _, label := range strings.Split(value, ".") {
		if !hostnameLabelPattern.MatchString(strings.ToLower(label)) {
			result.addError(field, "%s %q is not a valid host name", field, value)
			return
		}
	}
}
