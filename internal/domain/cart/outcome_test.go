// internal/domain/cart/outcome_test.go
package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcomeNotification(t *testing.T) {
	e := Entry{ProductID: "p1", Title: "Widget", Quantity: 1}

	assert.Equal(t, ShowSuccess, SuccessOutcome(e).Notification())
	assert.Equal(t, ShowUnauthenticatedWarning, UnauthenticatedOutcome().Notification())
	assert.Equal(t, ShowGenericFailure, RemoteFailureOutcome("boom").Notification())

	// InvalidDraft collapses into the generic failure signal.
	assert.Equal(t, ShowGenericFailure, InvalidDraftOutcome("bad").Notification())
}

func TestOutcomeEntry(t *testing.T) {
	e := Entry{ProductID: "p1", Title: "Widget", Quantity: 2}

	got, ok := SuccessOutcome(e).Entry()
	assert.True(t, ok)
	assert.Equal(t, e, got)

	_, ok = RemoteFailureOutcome("boom").Entry()
	assert.False(t, ok)
}

func TestOutcomeReason(t *testing.T) {
	// Reason is log-only detail; it exists for the boundary that logs it.
	assert.Equal(t, "status=500", RemoteFailureOutcome("status=500").Reason())
	assert.Empty(t, UnauthenticatedOutcome().Reason())
}
