package service

import "strings"

// ValidationError reports every invalid input field at once instead of
// failing on the first one.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.Fields, "; ")
}

// RequestMeta carries request-scoped attribution for the audit trail.
type RequestMeta struct {
	RequestID string
	IP        string
}

type AuditEntry struct {
	Action       string
	ResourceType string
	ResourceID   int64
	RequestID    string
	IPAddress    string
}
