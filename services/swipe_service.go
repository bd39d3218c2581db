package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"vibin_client/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// SwipeService records swipe decisions for one screen. Each candidate moves
// through idle -> in_flight -> settled; a failed like goes back to idle.
type SwipeService struct {
	API BackendAPI

	mu     sync.Mutex
	states map[string]string
}

// NewSwipeService creates a recorder with an empty request-state map.
func NewSwipeService(api BackendAPI) *SwipeService {
	return &SwipeService{
		API:    api,
		states: make(map[string]string),
	}
}

// RecordLike submits a like for candidateID and interprets the answer. A second
// call while the first is outstanding returns ErrLikeInFlight without calling
// the backend.
func (ss *SwipeService) RecordLike(ctx context.Context, candidateID string) (models.LikeOutcome, error) {
	if err := ss.acquire(candidateID); err != nil {
		log.Printf("⚠️ Ignoring like for %s: %v", candidateID, err)
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "SwipeService.RecordLike", trace.WithAttributes(
		attribute.String("candidate.id", candidateID),
	))
	defer span.End()

	resp, err := ss.API.LikeUser(ctx, candidateID)
	if err == nil && resp == nil {
		err = errors.New("empty like response")
	}
	if err != nil {
		ss.setState(candidateID, models.RequestStateIdle)
		span.RecordError(err)
		span.SetStatus(codes.Error, "like failed")
		log.Printf("❌ Like for %s failed: %v", candidateID, err)
		return nil, fmt.Errorf("%w: %w", ErrLikeSubmissionFailed, err)
	}
	ss.setState(candidateID, models.RequestStateSettled)

	outcome, err := InterpretLikeResponse(candidateID, resp)
	if err != nil {
		span.RecordError(err)
		log.Printf("❌ Inconsistent match state for %s: %v", candidateID, err)
		return nil, err
	}

	if m, ok := outcome.(models.Matched); ok {
		span.SetAttributes(attribute.String("conversation.id", m.ConversationID))
		log.Printf("🎉 Match with %s, conversation %s", candidateID, m.ConversationID)
	} else {
		log.Printf("✅ Like recorded for %s", candidateID)
	}
	return outcome, nil
}

// Pass records a left swipe locally. It is refused while a like for the same
// candidate is outstanding.
func (ss *SwipeService) Pass(candidateID string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if ss.states[candidateID] == models.RequestStateInFlight {
		return false
	}
	ss.states[candidateID] = models.RequestStateSettled
	return true
}

// State returns the request state of candidateID.
func (ss *SwipeService) State(candidateID string) string {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	if state, ok := ss.states[candidateID]; ok {
		return state
	}
	return models.RequestStateIdle
}

// InterpretLikeResponse converts the wire answer into a LikeOutcome. A match
// without a conversation id yields an *InconsistentMatchError.
func InterpretLikeResponse(candidateID string, resp *models.LikeResponse) (models.LikeOutcome, error) {
	if !resp.Match {
		return models.LikedOnly{CandidateID: candidateID, Liked: resp.Liked}, nil
	}

	conversationID := resp.ConversationID()
	if conversationID == "" {
		return nil, &InconsistentMatchError{CandidateID: candidateID, Liked: resp.Liked}
	}
	return models.Matched{
		CandidateID:    candidateID,
		ConversationID: conversationID,
		Conversation:   resp.Conversation,
	}, nil
}

func (ss *SwipeService) acquire(candidateID string) error {
	ss.mu.Lock()
	defer ss.mu.Unlock()

	switch ss.states[candidateID] {
	case models.RequestStateInFlight:
		return ErrLikeInFlight
	case models.RequestStateSettled:
		return ErrAlreadySettled
	}
	ss.states[candidateID] = models.RequestStateInFlight
	return nil
}

func (ss *SwipeService) setState(candidateID, state string) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.states[candidateID] = state
}
