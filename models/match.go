package models

import "strings"

// MatchModalState is what the match modal displays. Profile and ConversationID
// are always set together.
type MatchModalState struct {
	Profile        *CandidateProfile `json:"profile"`
	ConversationID string            `json:"conversationId"`
}

// NavigationParams is the parameter bag handed to the navigation collaborator.
type NavigationParams struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// NavigationIntent describes a screen transition into a message thread.
type NavigationIntent struct {
	Route  string           `json:"route"`
	Path   string           `json:"path"`
	Params NavigationParams `json:"params"`
}

// Alert is a recoverable, user-facing error shown by the swipe screen.
type Alert struct {
	Kind        string `json:"kind"`
	Message     string `json:"message"`
	CandidateID string `json:"candidateId,omitempty"`
	Retry       bool   `json:"retry"`
}

func trimID(id string) string {
	return strings.TrimSpace(id)
}
