package ledger

import "errors"

// Sentinel errors for the mutation protocols. Callers classify failures with
// errors.Is; repository-level causes stay attached through %w wrapping.
var (
	// ErrValidation marks malformed or constraint-violating input.
	ErrValidation = errors.New("invalid input")

	// ErrNotFound marks a reference to an entity that does not exist or is
	// not visible to the calling user.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName marks a name collision on a unique name.
	ErrDuplicateName = errors.New("name already in use")

	// ErrCategoryInUse blocks deletion of a category still referenced by
	// records.
	ErrCategoryInUse = errors.New("category is in use")

	// ErrCreate marks a failure inside the add-record transaction. The
	// whole scope is rolled back.
	ErrCreate = errors.New("failed to create record")

	// ErrDelete marks a failure inside the delete-record transaction. The
	// whole scope is rolled back.
	ErrDelete = errors.New("failed to delete record")

	// ErrImport marks a failure inside the import transaction. The whole
	// batch is rolled back.
	ErrImport = errors.New("import failed")
)
