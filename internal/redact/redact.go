// Package redact scrubs sensitive fragments from strings before they reach
// logs. Error messages from the database driver can carry connection strings,
// SQL text, or tokens pulled from request headers; everything logged through
// the API error path goes through here first.
package redact

import "regexp"

// Placeholders substituted for matched fragments.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
)

type rule struct {
	pattern     *regexp.Regexp
	placeholder string
}

// Rules apply in order; credential patterns run before the broader ones so
// a DSN is collapsed as a credential rather than as a host or path.
var rules = []rule{
	// Connection strings with embedded credentials (postgres://user:pw@host).
	{regexp.MustCompile(`(?i)\b(postgres|postgresql|mysql)://[^@\s]+@`), CredentialPlaceholder},

	// password=..., secret: "...", and similar key/value credentials.
	{regexp.MustCompile(`(?i)(password|passwd|secret|jwt_secret)([=:\s]['"]?)[^'"&\s]{3,}`), CredentialPlaceholder},

	// Bearer headers and bare three-part JWTs.
	{regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9_\-.~+/]+=*`), TokenPlaceholder},
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), TokenPlaceholder},

	// SQL statement text echoed back by the driver.
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\w,*()$='"]+\b(FROM|INTO|SET|WHERE)\b[\s\w,*()$='"]*`), SQLPlaceholder},

	// Filesystem paths from wrapped os errors.
	{regexp.MustCompile(`(/[\w.-]+){2,}`), PathPlaceholder},
}

// String redacts sensitive fragments from the input string.
func String(input string) string {
	if input == "" {
		return input
	}
	for _, r := range rules {
		input = r.pattern.ReplaceAllString(input, r.placeholder)
	}
	return input
}

// Error redacts the error's message. Returns "" for a nil error.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
