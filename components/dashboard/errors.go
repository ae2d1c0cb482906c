package dashboard

import "errors"

// Sentinel errors returned by the layout store, codec, and persistence
// boundary. Callers match them with errors.Is; wrapped variants carry the
// offending card id or decoding detail.
var (
	// ErrInvalidCard signals an add/update payload missing required fields.
	ErrInvalidCard = errors.New("dashboard: invalid card")
	// ErrNotFound signals an operation targeting an id not present in the layout.
	ErrNotFound = errors.New("dashboard: card not found")
	// ErrNotDeletable signals a delete attempt on a system (non-custom) card.
	// System cards can only be hidden.
	ErrNotDeletable = errors.New("dashboard: system card cannot be deleted")
	// ErrEditModeRequired signals a mutation attempted while the layout is locked.
	ErrEditModeRequired = errors.New("dashboard: edit mode required")
	// ErrMalformedJSON signals an import payload that does not parse as JSON.
	ErrMalformedJSON = errors.New("dashboard: malformed configuration json")
	// ErrSchema signals an import payload that parses but violates the
	// configuration document schema.
	ErrSchema = errors.New("dashboard: configuration schema invalid")
	// ErrPersistence wraps external load/save failures. Always recoverable:
	// the in-memory layout survives and the caller may retry.
	ErrPersistence = errors.New("dashboard: persistence failure")
	// ErrConfigNotFound is returned by ConfigStore implementations when no
	// document exists for the scope key. The service treats it as "use defaults".
	ErrConfigNotFound = errors.New("dashboard: configuration not found")
)
