package constants

// Context keys set by the auth middleware.
const (
	ContextKeyPrincipal = "principal"
)

// Pagination defaults.
const (
	MinPage         = 1
	DefaultPageSize = 20
	MaxPageSize     = 100
)
