package validation

// Validator checks a struct against its validate tags and returns the
// failures keyed by JSON field name, or nil when the struct is valid.
type Validator interface {
	ValidateStruct(s any) map[string]string
}
