package models

// ✅ Feed batch bounds
const (
	DefaultFeedLimit = 50
	MaxFeedLimit     = 100
)

// PlaceholderImageAsset is the bundled image shown when a profile has no photo.
const PlaceholderImageAsset = "assets/images/profile-placeholder.png"

// ✅ Tag colors (games bucket vs everything else)
const (
	GameTagColor    = "#7C3AED"
	DefaultTagColor = "#0EA5E9"
)

// ✅ Tag categories
const (
	TagCategoryGame  = "game"
	TagCategorySport = "sport"
	TagCategoryOther = "other"
)

// ✅ Navigation routes
const (
	RouteConversation = "conversation"
)

// ✅ Per-candidate like request states
const (
	RequestStateIdle     = "idle"
	RequestStateInFlight = "in_flight"
	RequestStateSettled  = "settled"
)

// ✅ Swipe screen phases
const (
	PhaseIdle                 = "idle"
	PhaseSubmitting           = "submitting"
	PhaseLikedOnly            = "liked_only"
	PhaseMatched              = "matched"
	PhaseFailed               = "failed"
	PhasePresentingMatchModal = "presenting_match_modal"
	PhaseNavigatingToChat     = "navigating_to_chat"
)

// ✅ Feed statuses
const (
	FeedStatusIdle    = "idle"
	FeedStatusLoading = "loading"
	FeedStatusReady   = "ready"
	FeedStatusEmpty   = "empty"
	FeedStatusFailed  = "failed"
)

// ✅ Alert kinds surfaced to the user
const (
	AlertUnauthenticated        = "unauthenticated"
	AlertFeedFetchFailed        = "feed_fetch_failed"
	AlertLikeSubmissionFailed   = "like_submission_failed"
	AlertInconsistentMatchState = "inconsistent_match"
	AlertNavigationDataMissing  = "navigation_data_missing"
)

// ✅ User-facing messages
const (
	MessageUnauthenticated        = "Please sign in again to keep browsing."
	MessageFeedFetchFailed        = "We couldn't load new profiles. Tap to retry."
	MessageLikeSubmissionFailed   = "Your like didn't go through. Please try again."
	MessageInconsistentMatchState = "It's a match! We couldn't open the conversation automatically, you'll find it in your messages."
	MessageNavigationDataMissing  = "We couldn't open this chat. Please find the conversation in your messages."
)

// ✅ Screen events pushed to the UI
const (
	EventDeck     = "deck"
	EventMatch    = "match"
	EventAlert    = "alert"
	EventNavigate = "navigate"
)
