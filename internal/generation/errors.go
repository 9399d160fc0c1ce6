package generation

import "errors"

// Common errors returned by the generation package
var (
	// ErrNotClassifiable is returned when an item carries no text a
	// prompt could be built from (for posts: no title).
	ErrNotClassifiable = errors.New("item has no classifiable text")

	// ErrGenerationFailed is returned when an inference call fails for
	// any transport-level reason. The underlying typed error from the
	// ollama package is wrapped and can be recovered with errors.As.
	ErrGenerationFailed = errors.New("failed to generate annotation")
)
