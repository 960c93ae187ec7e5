package db

// StoreError is a custom error type for store failures
type StoreError string

// Error implements the error interface
func (e StoreError) Error() string {
	return string(e)
}

const (
	ErrNilConfig       StoreError = "config cannot be nil"
	ErrEmptyPath       StoreError = "database path cannot be empty"
	ErrSessionActive   StoreError = "a workday is already running, stop it first with 'daybook stop'"
	ErrEntryActive     StoreError = "a project entry is already running in this session, stop it first with 'daybook entry stop'"
	ErrSessionNotFound StoreError = "session not found"
	ErrCategoryExists  StoreError = "category already exists"
)
