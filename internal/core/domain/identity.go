package domain

// Identity is the authenticated caller, rebuilt from the bearer token on
// every request. It is never persisted.
type Identity struct {
	Email string
	Role  Role
}
