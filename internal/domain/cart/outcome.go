// internal/domain/cart/outcome.go
package cart

// outcomeKind discriminates the Outcome sum.
type outcomeKind int

const (
	outcomeSuccess outcomeKind = iota
	outcomeUnauthenticated
	outcomeRemoteFailure
	outcomeInvalidDraft
)

// Notification is the three-valued signal consumed by presentation.
// Presentation localizes/styles each value on its own; the core never
// produces free-form user-facing text.
type Notification string

const (
	ShowSuccess                Notification = "show_success"
	ShowUnauthenticatedWarning Notification = "show_unauthenticated_warning"
	ShowGenericFailure         Notification = "show_generic_failure"
)

// Outcome is the result of one add-to-cart mutation.
// It is always returned as a value, never raised past the usecase boundary.
type Outcome struct {
	kind outcomeKind

	// entry is set only for Success (the post-merge stored entry).
	entry Entry

	// reason is set for RemoteFailure / InvalidDraft.
	// It is meant for logging and must not be shown verbatim to the end user.
	reason string
}

func SuccessOutcome(entry Entry) Outcome {
	return Outcome{kind: outcomeSuccess, entry: entry}
}

func UnauthenticatedOutcome() Outcome {
	return Outcome{kind: outcomeUnauthenticated}
}

func RemoteFailureOutcome(reason string) Outcome {
	return Outcome{kind: outcomeRemoteFailure, reason: reason}
}

func InvalidDraftOutcome(reason string) Outcome {
	return Outcome{kind: outcomeInvalidDraft, reason: reason}
}

func (o Outcome) IsSuccess() bool         { return o.kind == outcomeSuccess }
func (o Outcome) IsUnauthenticated() bool { return o.kind == outcomeUnauthenticated }
func (o Outcome) IsRemoteFailure() bool   { return o.kind == outcomeRemoteFailure }
func (o Outcome) IsInvalidDraft() bool    { return o.kind == outcomeInvalidDraft }

// Entry returns the stored entry for a Success outcome.
// ok is false for every other kind.
func (o Outcome) Entry() (Entry, bool) {
	if o.kind != outcomeSuccess {
		return Entry{}, false
	}
	return o.entry, true
}

// Reason returns the internal failure detail (for logs only).
func (o Outcome) Reason() string { return o.reason }

// Notification maps the outcome onto the presentation signal.
// InvalidDraft collapses into the generic failure signal: it indicates a
// presentation-layer bug and there is nothing actionable for the user.
func (o Outcome) Notification() Notification {
	switch o.kind {
	case outcomeSuccess:
		return ShowSuccess
	case outcomeUnauthenticated:
		return ShowUnauthenticatedWarning
	default:
		return ShowGenericFailure
	}
}
