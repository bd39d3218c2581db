package services

import (
	"errors"
	"testing"

	"vibin_client/models"
)

func TestNavigateToConversation(t *testing.T) {
	mb := NewMatchBridge()
	profile := &models.CandidateProfile{ID: "7", Name: "Ana", Image: models.RemoteImage("https://x/1.jpg")}

	state, err := mb.PresentMatch(profile, " conv-7 ")
	if err != nil {
		t.Fatalf("PresentMatch() error = %v", err)
	}
	if state.ConversationID != "conv-7" || state.Profile.ID != "7" {
		t.Fatalf("unexpected state %+v", state)
	}

	intent, err := mb.NavigateToConversation(state)
	if err != nil {
		t.Fatalf("NavigateToConversation() error = %v", err)
	}
	if intent.Route != models.RouteConversation {
		t.Fatalf("route = %q", intent.Route)
	}
	if intent.Path != "/conversations/conv-7" {
		t.Fatalf("path = %q", intent.Path)
	}
	want := models.NavigationParams{ID: "conv-7", Name: "Ana", Image: "https://x/1.jpg"}
	if intent.Params != want {
		t.Fatalf("params = %+v, want %+v", intent.Params, want)
	}
}

func TestNavigateToConversationPlaceholderImage(t *testing.T) {
	mb := NewMatchBridge()
	state := &models.MatchModalState{
		Profile:        &models.CandidateProfile{ID: "7", Name: "Ana", Image: models.PlaceholderImage()},
		ConversationID: "conv 7/a",
	}

	intent, err := mb.NavigateToConversation(state)
	if err != nil {
		t.Fatalf("NavigateToConversation() error = %v", err)
	}
	if intent.Params.Image != models.PlaceholderImageAsset {
		t.Fatalf("image = %q", intent.Params.Image)
	}
	if intent.Params.ID != "conv 7/a" {
		t.Fatalf("id = %q", intent.Params.ID)
	}
	if intent.Path != "/conversations/conv%207%2Fa" {
		t.Fatalf("path = %q", intent.Path)
	}
}

func TestPresentMatchCopiesProfile(t *testing.T) {
	profile := &models.CandidateProfile{ID: "7", Name: "Ana"}
	state, err := NewMatchBridge().PresentMatch(profile, "conv-7")
	if err != nil {
		t.Fatalf("PresentMatch() error = %v", err)
	}
	profile.Name = "changed"
	if state.Profile.Name != "Ana" {
		t.Fatalf("modal profile aliased the deck card")
	}
}

func TestMatchBridgeMissingData(t *testing.T) {
	mb := NewMatchBridge()
	profile := &models.CandidateProfile{ID: "7", Name: "Ana"}

	if _, err := mb.PresentMatch(nil, "conv-7"); !errors.Is(err, ErrNavigationDataMissing) {
		t.Fatalf("nil profile error = %v", err)
	}
	if _, err := mb.PresentMatch(profile, " "); !errors.Is(err, ErrNavigationDataMissing) {
		t.Fatalf("blank id error = %v", err)
	}

	states := []*models.MatchModalState{
		nil,
		{ConversationID: "conv-7"},
		{Profile: profile},
		{Profile: profile, ConversationID: "   "},
	}
	for i, state := range states {
		intent, err := mb.NavigateToConversation(state)
		if !errors.Is(err, ErrNavigationDataMissing) {
			t.Fatalf("case %d: error = %v, want ErrNavigationDataMissing", i, err)
		}
		if intent != nil {
			t.Fatalf("case %d: intent produced: %+v", i, intent)
		}
	}
}
