package log

// Canonical field name constants for structured logging.
const (
	FieldRequestID = "request_id"
	FieldComponent = "component"

	FieldSection  = "section"
	FieldEndpoint = "endpoint"
	FieldSource   = "source"
	FieldStatus   = "status"
	FieldMethod   = "method"
	FieldPath     = "path"
	FieldRemote   = "remote"
	FieldDuration = "duration_ms"
)
