package services

import (
	"fmt"
	"log"
	"net/url"
	"strings"

	"vibin_client/models"

	"github.com/gorilla/mux"
)

// MatchBridge turns a confirmed match into the match modal and, when the user
// chooses to message, into a navigation intent for the conversation.
type MatchBridge struct {
	routes *mux.Router
}

// NewMatchBridge creates a bridge with the in-app navigation routes.
func NewMatchBridge() *MatchBridge {
	return &MatchBridge{routes: NewNavigationRouter()}
}

// NewNavigationRouter declares the in-app screens reachable from a match.
func NewNavigationRouter() *mux.Router {
	r := mux.NewRouter()
	r.Path("/conversations/{id}").Name(models.RouteConversation)
	return r
}

// PresentMatch builds the modal state. Both the profile and the conversation id
// are required.
func (mb *MatchBridge) PresentMatch(profile *models.CandidateProfile, conversationID string) (*models.MatchModalState, error) {
	conversationID = strings.TrimSpace(conversationID)
	if profile == nil || conversationID == "" {
		return nil, fmt.Errorf("%w: cannot present match", ErrNavigationDataMissing)
	}

	matched := *profile
	return &models.MatchModalState{Profile: &matched, ConversationID: conversationID}, nil
}

// NavigateToConversation packages the parameters needed to open the thread.
// Nothing is produced when any of them is missing.
func (mb *MatchBridge) NavigateToConversation(state *models.MatchModalState) (*models.NavigationIntent, error) {
	if state == nil || state.Profile == nil {
		return nil, fmt.Errorf("%w: no matched profile", ErrNavigationDataMissing)
	}
	conversationID := strings.TrimSpace(state.ConversationID)
	if conversationID == "" {
		return nil, fmt.Errorf("%w: no conversation id", ErrNavigationDataMissing)
	}

	path, err := mb.routes.Get(models.RouteConversation).URLPath("id", url.PathEscape(conversationID))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNavigationDataMissing, err)
	}

	intent := &models.NavigationIntent{
		Route: models.RouteConversation,
		Path:  path.Path,
		Params: models.NavigationParams{
			ID:    conversationID,
			Name:  state.Profile.Name,
			Image: state.Profile.Image.String(),
		},
	}
	log.Printf("💬 Opening conversation %s with %s", conversationID, state.Profile.ID)
	return intent, nil
}
