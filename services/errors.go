package services

import (
	"errors"
	"fmt"
)

var (
	ErrUnauthenticated        = errors.New("no authenticated user")
	ErrFeedFetchFailed        = errors.New("failed to fetch candidates")
	ErrLikeSubmissionFailed   = errors.New("failed to submit like")
	ErrInconsistentMatchState = errors.New("match reported without a conversation id")
	ErrNavigationDataMissing  = errors.New("conversation navigation data is incomplete")
	ErrLikeInFlight           = errors.New("like already in flight for candidate")
	ErrAlreadySettled         = errors.New("candidate already settled")
	ErrInvalidLimit           = errors.New("feed limit out of range")
	ErrUnknownCandidate       = errors.New("candidate is not in the deck")
	ErrScreenNotFound         = errors.New("screen not found")
	ErrNoMatchPresented       = errors.New("no match is being presented")
	ErrNavigationPending      = errors.New("conversation is already opening")
)

// InconsistentMatchError is returned when the backend reports a match but
// gives no usable conversation. The like itself was recorded.
type InconsistentMatchError struct {
	CandidateID string
	Liked       bool
}

func (e *InconsistentMatchError) Error() string {
	return fmt.Sprintf("candidate %s: %v", e.CandidateID, ErrInconsistentMatchState)
}

func (e *InconsistentMatchError) Is(target error) bool {
	return target == ErrInconsistentMatchState
}

// APIError is a non-2xx answer from the REST backend.
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s %s: unexpected status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}
