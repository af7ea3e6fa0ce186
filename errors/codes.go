package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Construction errors
const (
	// ErrCodeInvalidArgument indicates a malformed stage construction parameter.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
	// ErrCodeInvalidConfig indicates configuration that failed validation.
	ErrCodeInvalidConfig ErrorCode = "INVALID_CONFIG"
)

// Cardinality errors
const (
	// ErrCodeEmptySequence indicates a required element was requested from an empty sequence.
	ErrCodeEmptySequence ErrorCode = "EMPTY_SEQUENCE"
	// ErrCodeMoreThanOne indicates a single element was requested but several exist.
	ErrCodeMoreThanOne ErrorCode = "MORE_THAN_ONE_ELEMENT"
	// ErrCodeOutOfRange indicates a positional request past the end of the sequence.
	ErrCodeOutOfRange ErrorCode = "OUT_OF_RANGE"
)

// Element errors
const (
	// ErrCodeInvalidCast indicates an element could not be converted to the requested type.
	ErrCodeInvalidCast ErrorCode = "INVALID_CAST"
	// ErrCodeDuplicateKey indicates two elements produced the same key for a unique-key terminal.
	ErrCodeDuplicateKey ErrorCode = "DUPLICATE_KEY"
)
