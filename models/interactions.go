package models

// Conversation is the thread the backend opens when two users match.
type Conversation struct {
	ID           string   `json:"id"`
	Participants []string `json:"participants"`
	LastMessage  any      `json:"lastMessage"`
	CreatedAt    string   `json:"createdAt"`
}

// LikeResponse is the body of POST /users/{targetId}/like.
type LikeResponse struct {
	Liked        bool          `json:"liked"`
	Match        bool          `json:"match"`
	Conversation *Conversation `json:"conversation,omitempty"` // Only set on a match
}

// ConversationID returns the trimmed conversation id, or "" when absent.
func (r LikeResponse) ConversationID() string {
	if r.Conversation == nil {
		return ""
	}
	return trimID(r.Conversation.ID)
}

// LikeOutcome is the result of a recorded like. It is either LikedOnly or Matched.
type LikeOutcome interface {
	Candidate() string
	isLikeOutcome()
}

// LikedOnly means the like was recorded without a mutual match.
type LikedOnly struct {
	CandidateID string `json:"candidateId"`
	Liked       bool   `json:"liked"`
}

// Matched means the like completed a mutual match with a usable conversation.
type Matched struct {
	CandidateID    string        `json:"candidateId"`
	ConversationID string        `json:"conversationId"`
	Conversation   *Conversation `json:"conversation,omitempty"`
}

func (o LikedOnly) Candidate() string { return o.CandidateID }
func (o Matched) Candidate() string   { return o.CandidateID }

func (LikedOnly) isLikeOutcome() {}
func (Matched) isLikeOutcome()   {}
