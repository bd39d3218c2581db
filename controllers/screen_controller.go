package controllers

import (
	"errors"
	"log"
	"net/http"

	"vibin_client/helpers"
	"vibin_client/models"
	"vibin_client/services"

	"github.com/gorilla/mux"
)

// ScreenController translates UI gestures into swipe screen operations
type ScreenController struct {
	Screens *services.ScreenManager
}

// NewScreenController creates a new ScreenController instance
func NewScreenController(screens *services.ScreenManager) *ScreenController {
	return &ScreenController{Screens: screens}
}

// OutcomeView is the JSON shape of a LikeOutcome.
type OutcomeView struct {
	Type           string `json:"type"`  // liked or matched
	Phase          string `json:"phase"` // Transient phase reached by the like
	CandidateID    string `json:"candidateId"`
	Liked          bool   `json:"liked"`
	ConversationID string `json:"conversationId,omitempty"`
}

// GestureResponse is returned by every gesture endpoint.
type GestureResponse struct {
	Ignored    bool                     `json:"ignored"`
	Outcome    *OutcomeView             `json:"outcome,omitempty"`
	Navigation *models.NavigationIntent `json:"navigation,omitempty"`
	Screen     services.ScreenSnapshot  `json:"screen"`
}

// HandleMount mounts a screen and loads its first deck
func (sc *ScreenController) HandleMount(w http.ResponseWriter, r *http.Request) {
	screen := sc.Screens.Mount()

	if err := screen.Refresh(r.Context()); errors.Is(err, services.ErrUnauthenticated) {
		_ = sc.Screens.Unmount(screen.ID)
		helpers.WriteErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", models.MessageUnauthenticated)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusCreated, screen.Snapshot())
}

// HandleGet returns the screen state
func (sc *ScreenController) HandleGet(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, screen.Snapshot())
}

// HandleUnmount closes the screen
func (sc *ScreenController) HandleUnmount(w http.ResponseWriter, r *http.Request) {
	if err := sc.Screens.Unmount(mux.Vars(r)["screenId"]); err != nil {
		writeScreenError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleRefresh reloads the deck; a failed load is reported in the snapshot
func (sc *ScreenController) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}
	if err := screen.Refresh(r.Context()); errors.Is(err, services.ErrUnauthenticated) {
		writeScreenError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, screen.Snapshot())
}

// HandleLike processes a swipe right on a card
func (sc *ScreenController) HandleLike(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}
	candidateID := mux.Vars(r)["candidateId"]

	outcome, err := screen.SwipeRight(r.Context(), candidateID)
	resp := GestureResponse{Outcome: outcomeView(outcome)}
	switch {
	case errors.Is(err, services.ErrLikeInFlight), errors.Is(err, services.ErrAlreadySettled):
		resp.Ignored = true
	case errors.Is(err, services.ErrScreenNotFound), errors.Is(err, services.ErrUnknownCandidate):
		writeScreenError(w, err)
		return
	case err != nil:
		// Surfaced to the user through the screen alert
		log.Printf("❌ Like on %s failed: %v", candidateID, err)
	}

	resp.Screen = screen.Snapshot()
	helpers.WriteJSONResponse(w, http.StatusOK, resp)
}

// HandlePass processes a swipe left on a card
func (sc *ScreenController) HandlePass(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}

	resp := GestureResponse{}
	err := screen.SwipeLeft(mux.Vars(r)["candidateId"])
	if errors.Is(err, services.ErrLikeInFlight) {
		resp.Ignored = true
	} else if err != nil {
		writeScreenError(w, err)
		return
	}

	resp.Screen = screen.Snapshot()
	helpers.WriteJSONResponse(w, http.StatusOK, resp)
}

// HandleMessageMatch opens the conversation of the presented match
func (sc *ScreenController) HandleMessageMatch(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}

	intent, err := screen.MessageMatch(r.Context())
	if err != nil && !errors.Is(err, services.ErrNavigationDataMissing) {
		writeScreenError(w, err)
		return
	}

	helpers.WriteJSONResponse(w, http.StatusOK, GestureResponse{Navigation: intent, Screen: screen.Snapshot()})
}

// HandleContinueBrowsing closes the match modal
func (sc *ScreenController) HandleContinueBrowsing(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}
	if err := screen.ContinueBrowsing(); err != nil {
		writeScreenError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, GestureResponse{Screen: screen.Snapshot()})
}

// HandleAcknowledgeAlert dismisses the current alert
func (sc *ScreenController) HandleAcknowledgeAlert(w http.ResponseWriter, r *http.Request) {
	screen, ok := sc.screen(w, r)
	if !ok {
		return
	}
	if err := screen.AcknowledgeAlert(); err != nil {
		writeScreenError(w, err)
		return
	}
	helpers.WriteJSONResponse(w, http.StatusOK, GestureResponse{Screen: screen.Snapshot()})
}

func (sc *ScreenController) screen(w http.ResponseWriter, r *http.Request) (*services.SwipeScreen, bool) {
	screen, err := sc.Screens.Get(mux.Vars(r)["screenId"])
	if err != nil {
		writeScreenError(w, err)
		return nil, false
	}
	return screen, true
}

func outcomeView(outcome models.LikeOutcome) *OutcomeView {
	switch o := outcome.(type) {
	case models.Matched:
		return &OutcomeView{Type: "matched", Phase: models.PhaseMatched, CandidateID: o.CandidateID, Liked: true, ConversationID: o.ConversationID}
	case models.LikedOnly:
		return &OutcomeView{Type: "liked", Phase: models.PhaseLikedOnly, CandidateID: o.CandidateID, Liked: o.Liked}
	}
	return nil
}

func writeScreenError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrScreenNotFound):
		helpers.WriteErrorResponse(w, http.StatusNotFound, "SCREEN_NOT_FOUND", "Screen not found")
	case errors.Is(err, services.ErrUnknownCandidate):
		helpers.WriteErrorResponse(w, http.StatusNotFound, "UNKNOWN_CANDIDATE", "Candidate is not in the deck")
	case errors.Is(err, services.ErrNoMatchPresented):
		helpers.WriteErrorResponse(w, http.StatusConflict, "NO_MATCH", "No match is being presented")
	case errors.Is(err, services.ErrNavigationPending):
		helpers.WriteErrorResponse(w, http.StatusConflict, "NAVIGATION_PENDING", "The conversation is already opening")
	case errors.Is(err, services.ErrUnauthenticated):
		helpers.WriteErrorResponse(w, http.StatusUnauthorized, "UNAUTHENTICATED", models.MessageUnauthenticated)
	default:
		log.Printf("❌ Screen request failed: %v", err)
		helpers.WriteErrorResponse(w, http.StatusInternalServerError, "INTERNAL", "Something went wrong")
	}
}
