package lineedit

import "errors"

// Failure kinds. Every error returned by Apply wraps exactly one of these, so
// callers can classify failures with errors.Is without parsing messages.
var (
	// ErrInvalidReference marks a malformed LINE:HASH anchor string.
	ErrInvalidReference = errors.New("invalid anchor reference")

	// ErrLineOutOfRange marks an anchor whose line number exceeds the current
	// file bounds. Fatal on first occurrence, never collected.
	ErrLineOutOfRange = errors.New("line out of range")

	// ErrRangeInverted marks a range whose start anchor resolves after its
	// end anchor.
	ErrRangeInverted = errors.New("range start after range end")

	// ErrScopeChanged marks a relocated range whose length differs from the
	// originally stated length.
	ErrScopeChanged = errors.New("range scope changed")

	// ErrHashMismatch marks anchors that match neither their stated line nor
	// a lone relocation candidate. All mismatches in a batch are collected
	// and reported together.
	ErrHashMismatch = errors.New("anchor hash mismatch")

	// ErrNoChangeProduced marks a batch in which every edit resolved to a
	// no-op.
	ErrNoChangeProduced = errors.New("no change produced")

	// ErrReplaceNotFound marks a replace operation whose old text matched
	// nothing, exactly or normalized.
	ErrReplaceNotFound = errors.New("replace target not found")
)

// kindError tags err with one of the failure kinds above.
func kindError(kind, err error) error {
	if err == nil {
		return nil
	}
	return errors.Join(kind, err)
}
