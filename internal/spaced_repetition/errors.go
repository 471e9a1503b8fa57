package spaced_repetition

import "errors"

// Sentinel errors for the scheduling core. Check with errors.Is.
var (
	// ErrInvalidQuality means a review quality was outside 0-5. The item is
	// not touched; out-of-range input is never clamped.
	ErrInvalidQuality = errors.New("spaced_repetition: quality must be between 0 and 5")

	// ErrItemNotFound means an operation referenced a study-item id that does
	// not exist in the store.
	ErrItemNotFound = errors.New("spaced_repetition: study item not found")

	// ErrInvalidDifficulty means an enrollment supplied an unknown difficulty
	// label.
	ErrInvalidDifficulty = errors.New("spaced_repetition: unknown difficulty")

	// ErrUnknownMode means a study-queue request used an unknown mode.
	ErrUnknownMode = errors.New("spaced_repetition: unknown study mode")
)
