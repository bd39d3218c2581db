package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"vibin_client/models"

	"github.com/google/uuid"
)

// Notifier pushes screen events to the UI.
type Notifier interface {
	Notify(screenID, event string, payload any)
}

// Navigator performs the actual screen transition for an intent.
type Navigator interface {
	Navigate(ctx context.Context, screenID string, intent *models.NavigationIntent) error
}

// ScreenDeps are the collaborators shared by every mounted screen. None of
// them hold per-screen state.
type ScreenDeps struct {
	Auth      AuthProvider
	API       BackendAPI
	Images    ImageResolver
	Notifier  Notifier
	Navigator Navigator
	FeedLimit int
}

// ScreenSnapshot is the serializable state of a swipe screen.
type ScreenSnapshot struct {
	ScreenID   string                    `json:"screenId"`
	Phase      string                    `json:"phase"`
	FeedStatus string                    `json:"feedStatus"`
	Deck       []models.CandidateProfile `json:"deck"`
	FeedAlert  *models.Alert             `json:"feedAlert,omitempty"`
	Alert      *models.Alert             `json:"alert,omitempty"`
	LikeAlerts []*models.Alert           `json:"likeAlerts,omitempty"` // Failed likes, in deck order
	Match      *models.MatchModalState   `json:"match,omitempty"`
	Navigation *models.NavigationIntent  `json:"navigation,omitempty"`
	Locked     []string                  `json:"locked,omitempty"` // Cards with a like in flight
}

// SwipeScreen is one mounted swipe deck: it owns the deck, the swipe phases
// and the match modal. Network calls run outside the lock; results that
// arrive after Close, or after a newer feed load started, are dropped.
type SwipeScreen struct {
	ID string

	auth      AuthProvider
	feed      *FeedService
	swipes    *SwipeService
	bridge    *MatchBridge
	notifier  Notifier
	navigator Navigator
	limit     int

	mu         sync.Mutex
	mounted    bool
	generation uint64
	deck       []models.CandidateProfile
	feedStatus string
	feedAlert  *models.Alert
	alert      *models.Alert
	likeAlerts map[string]*models.Alert
	modal      *models.MatchModalState
	queued     []*models.MatchModalState
	opening    *models.MatchModalState // Modal handed to the Navigator, not yet resolved
	navigation *models.NavigationIntent
}

// NewSwipeScreen mounts a screen with its own swipe recorder.
func NewSwipeScreen(id string, deps ScreenDeps) *SwipeScreen {
	limit := deps.FeedLimit
	if limit <= 0 {
		limit = models.DefaultFeedLimit
	}
	return &SwipeScreen{
		ID:         id,
		auth:       deps.Auth,
		feed:       NewFeedService(deps.API, deps.Images),
		swipes:     NewSwipeService(deps.API),
		bridge:     NewMatchBridge(),
		notifier:   deps.Notifier,
		navigator:  deps.Navigator,
		limit:      limit,
		mounted:    true,
		feedStatus: models.FeedStatusIdle,
		likeAlerts: make(map[string]*models.Alert),
	}
}

// Refresh loads a new deck for the signed-in user. The deck is replaced as a
// whole and only by the most recent load, a failed one included.
func (s *SwipeScreen) Refresh(ctx context.Context) error {
	user, err := s.auth.CurrentUser(ctx)
	if err == nil && user == nil {
		err = ErrUnauthenticated
	}
	if err != nil {
		s.mu.Lock()
		if !s.mounted {
			s.mu.Unlock()
			return nil
		}
		// Supersedes any load still in flight
		s.generation++
		s.deck = nil
		s.likeAlerts = make(map[string]*models.Alert)
		if errors.Is(err, ErrUnauthenticated) {
			s.feedStatus = models.FeedStatusIdle
			s.alert = &models.Alert{Kind: models.AlertUnauthenticated, Message: models.MessageUnauthenticated}
		} else {
			s.feedStatus = models.FeedStatusFailed
			s.feedAlert = &models.Alert{Kind: models.AlertFeedFetchFailed, Message: models.MessageFeedFetchFailed, Retry: true}
		}
		alert := s.currentAlertLocked()
		s.mu.Unlock()

		log.Printf("❌ Screen %s cannot load feed: %v", s.ID, err)
		s.notify(models.EventAlert, alert)
		return err
	}

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return nil
	}
	s.generation++
	generation := s.generation
	s.feedStatus = models.FeedStatusLoading
	s.mu.Unlock()

	candidates, err := s.feed.FetchCandidates(ctx, user.ID, s.limit)

	s.mu.Lock()
	if !s.mounted || generation != s.generation {
		s.mu.Unlock()
		log.Printf("⚠️ Screen %s dropping stale feed result (generation %d)", s.ID, generation)
		return nil
	}
	if err != nil {
		s.deck = nil
		s.likeAlerts = make(map[string]*models.Alert)
		s.feedStatus = models.FeedStatusFailed
		s.feedAlert = &models.Alert{Kind: models.AlertFeedFetchFailed, Message: models.MessageFeedFetchFailed, Retry: true}
		alert := s.feedAlert
		s.mu.Unlock()

		s.notify(models.EventAlert, alert)
		return err
	}

	deck := make([]models.CandidateProfile, 0, len(candidates))
	for _, c := range candidates {
		if s.swipes.State(c.ID) == models.RequestStateSettled {
			continue
		}
		deck = append(deck, c)
	}
	s.deck = deck
	for id := range s.likeAlerts {
		if s.indexLocked(id) < 0 {
			delete(s.likeAlerts, id)
		}
	}
	s.feedAlert = nil
	s.feedStatus = models.FeedStatusReady
	if len(deck) == 0 {
		s.feedStatus = models.FeedStatusEmpty
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(models.EventDeck, snapshot)
	return nil
}

// SwipeRight likes a card in the deck. A repeated gesture on a card whose like
// is still outstanding returns ErrLikeInFlight and changes nothing.
func (s *SwipeScreen) SwipeRight(ctx context.Context, candidateID string) (models.LikeOutcome, error) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return nil, ErrScreenNotFound
	}
	idx := s.indexLocked(candidateID)
	if idx < 0 {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}
	profile := s.deck[idx]
	s.mu.Unlock()

	outcome, err := s.swipes.RecordLike(ctx, candidateID)
	if errors.Is(err, ErrLikeInFlight) || errors.Is(err, ErrAlreadySettled) {
		return nil, err
	}

	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return outcome, nil
	}

	var events []screenEvent
	switch {
	case errors.Is(err, ErrInconsistentMatchState):
		s.removeLocked(candidateID)
		s.alert = &models.Alert{Kind: models.AlertInconsistentMatchState, Message: models.MessageInconsistentMatchState, CandidateID: candidateID}
		events = append(events, screenEvent{models.EventDeck, nil}, screenEvent{models.EventAlert, s.alert})
	case err != nil:
		alert := &models.Alert{Kind: models.AlertLikeSubmissionFailed, Message: models.MessageLikeSubmissionFailed, CandidateID: candidateID, Retry: true}
		s.likeAlerts[candidateID] = alert
		events = append(events, screenEvent{models.EventAlert, alert})
	default:
		s.removeLocked(candidateID)
		events = append(events, screenEvent{models.EventDeck, nil})
		if m, ok := outcome.(models.Matched); ok {
			events = append(events, s.presentLocked(&profile, m.ConversationID)...)
		}
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(events, snapshot)
	return outcome, err
}

// SwipeLeft drops a card locally. No backend call is made.
func (s *SwipeScreen) SwipeLeft(candidateID string) error {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return ErrScreenNotFound
	}
	if s.indexLocked(candidateID) < 0 {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrUnknownCandidate, candidateID)
	}
	if !s.swipes.Pass(candidateID) {
		s.mu.Unlock()
		return ErrLikeInFlight
	}
	s.removeLocked(candidateID)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.notify(models.EventDeck, snapshot)
	return nil
}

// MessageMatch leaves the match modal for the conversation. The modal is
// handed over before the Navigator runs, so a match is opened at most once.
// Incomplete match data blocks the navigation and raises a recoverable alert.
func (s *SwipeScreen) MessageMatch(ctx context.Context) (*models.NavigationIntent, error) {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return nil, ErrScreenNotFound
	}
	if s.opening != nil {
		s.mu.Unlock()
		return nil, ErrNavigationPending
	}
	if s.modal == nil {
		s.mu.Unlock()
		return nil, ErrNoMatchPresented
	}
	state := s.modal
	s.modal = nil
	s.opening = state
	s.mu.Unlock()

	intent, err := s.bridge.NavigateToConversation(state)
	if err == nil && s.navigator != nil {
		if navErr := s.navigator.Navigate(ctx, s.ID, intent); navErr != nil {
			err = fmt.Errorf("%w: %w", ErrNavigationDataMissing, navErr)
		}
	}

	s.mu.Lock()
	if !s.mounted || s.opening != state {
		s.mu.Unlock()
		return nil, nil
	}
	s.opening = nil
	var events []screenEvent
	if err != nil {
		log.Printf("❌ Screen %s cannot open conversation: %v", s.ID, err)
		s.alert = &models.Alert{Kind: models.AlertNavigationDataMissing, Message: models.MessageNavigationDataMissing}
		events = append(events, screenEvent{models.EventAlert, s.alert})
		events = append(events, s.nextMatchLocked()...)
		intent = nil
	} else {
		s.navigation = intent
	}
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(events, snapshot)
	return intent, err
}

// ContinueBrowsing closes the match modal, or returns from the conversation,
// and shows the next queued match if any.
func (s *SwipeScreen) ContinueBrowsing() error {
	s.mu.Lock()
	if !s.mounted {
		s.mu.Unlock()
		return ErrScreenNotFound
	}
	if s.opening != nil {
		s.mu.Unlock()
		return ErrNavigationPending
	}
	if s.modal == nil && s.navigation == nil {
		s.mu.Unlock()
		return ErrNoMatchPresented
	}
	s.modal = nil
	s.navigation = nil
	events := s.nextMatchLocked()
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.emit(events, snapshot)
	return nil
}

// AcknowledgeAlert dismisses the current alert and any failed-like alerts.
func (s *SwipeScreen) AcknowledgeAlert() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.mounted {
		return ErrScreenNotFound
	}
	s.alert = nil
	s.likeAlerts = make(map[string]*models.Alert)
	return nil
}

// Snapshot returns a copy of the screen state.
func (s *SwipeScreen) Snapshot() ScreenSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close unmounts the screen. Completions arriving afterwards are ignored.
func (s *SwipeScreen) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mounted = false
	s.deck = nil
	s.modal = nil
	s.queued = nil
	s.opening = nil
}

type screenEvent struct {
	name    string
	payload any
}

// presentLocked opens the modal for a match, or queues it behind an open one.
func (s *SwipeScreen) presentLocked(profile *models.CandidateProfile, conversationID string) []screenEvent {
	state, err := s.bridge.PresentMatch(profile, conversationID)
	if err != nil {
		s.alert = &models.Alert{Kind: models.AlertNavigationDataMissing, Message: models.MessageNavigationDataMissing, CandidateID: profile.ID}
		return []screenEvent{{models.EventAlert, s.alert}}
	}
	if s.modal != nil || s.opening != nil || s.navigation != nil {
		s.queued = append(s.queued, state)
		return nil
	}
	s.modal = state
	return []screenEvent{{models.EventMatch, state}}
}

func (s *SwipeScreen) nextMatchLocked() []screenEvent {
	if len(s.queued) == 0 {
		return nil
	}
	s.modal = s.queued[0]
	s.queued = s.queued[1:]
	return []screenEvent{{models.EventMatch, s.modal}}
}

func (s *SwipeScreen) phaseLocked() string {
	switch {
	case s.navigation != nil, s.opening != nil:
		return models.PhaseNavigatingToChat
	case s.modal != nil:
		return models.PhasePresentingMatchModal
	case s.alert != nil, len(s.likeAlerts) > 0:
		return models.PhaseFailed
	}
	for _, c := range s.deck {
		if s.swipes.State(c.ID) == models.RequestStateInFlight {
			return models.PhaseSubmitting
		}
	}
	return models.PhaseIdle
}

func (s *SwipeScreen) snapshotLocked() ScreenSnapshot {
	deck := make([]models.CandidateProfile, len(s.deck))
	copy(deck, s.deck)

	var locked []string
	var likeAlerts []*models.Alert
	for _, c := range s.deck {
		if s.swipes.State(c.ID) == models.RequestStateInFlight {
			locked = append(locked, c.ID)
		}
		if alert, ok := s.likeAlerts[c.ID]; ok {
			likeAlerts = append(likeAlerts, alert)
		}
	}

	return ScreenSnapshot{
		ScreenID:   s.ID,
		Phase:      s.phaseLocked(),
		FeedStatus: s.feedStatus,
		Deck:       deck,
		FeedAlert:  s.feedAlert,
		Alert:      s.alert,
		LikeAlerts: likeAlerts,
		Match:      s.modal,
		Navigation: s.navigation,
		Locked:     locked,
	}
}

func (s *SwipeScreen) currentAlertLocked() *models.Alert {
	if s.alert != nil {
		return s.alert
	}
	return s.feedAlert
}

func (s *SwipeScreen) indexLocked(candidateID string) int {
	for i, c := range s.deck {
		if c.ID == candidateID {
			return i
		}
	}
	return -1
}

func (s *SwipeScreen) removeLocked(candidateID string) {
	delete(s.likeAlerts, candidateID)
	if idx := s.indexLocked(candidateID); idx >= 0 {
		s.deck = append(s.deck[:idx], s.deck[idx+1:]...)
	}
	if len(s.deck) == 0 && s.feedStatus == models.FeedStatusReady {
		s.feedStatus = models.FeedStatusEmpty
	}
}

// emit sends events in order; a nil deck payload is replaced by the snapshot.
func (s *SwipeScreen) emit(events []screenEvent, snapshot ScreenSnapshot) {
	for _, e := range events {
		payload := e.payload
		if e.name == models.EventDeck {
			payload = snapshot
		}
		s.notify(e.name, payload)
	}
}

func (s *SwipeScreen) notify(event string, payload any) {
	if s.notifier != nil {
		s.notifier.Notify(s.ID, event, payload)
	}
}

// ScreenManager mounts and unmounts swipe screens.
type ScreenManager struct {
	deps ScreenDeps

	mu      sync.Mutex
	screens map[string]*SwipeScreen
}

// NewScreenManager creates a manager handing deps to every screen it mounts.
func NewScreenManager(deps ScreenDeps) *ScreenManager {
	return &ScreenManager{
		deps:    deps,
		screens: make(map[string]*SwipeScreen),
	}
}

// Mount creates a new screen with a fresh id.
func (m *ScreenManager) Mount() *SwipeScreen {
	screen := NewSwipeScreen(uuid.NewString(), m.deps)

	m.mu.Lock()
	m.screens[screen.ID] = screen
	m.mu.Unlock()

	log.Printf("✅ Screen %s mounted", screen.ID)
	return screen
}

// Get returns a mounted screen.
func (m *ScreenManager) Get(id string) (*SwipeScreen, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	screen, ok := m.screens[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrScreenNotFound, id)
	}
	return screen, nil
}

// Unmount closes a screen and forgets it.
func (m *ScreenManager) Unmount(id string) error {
	m.mu.Lock()
	screen, ok := m.screens[id]
	delete(m.screens, id)
	m.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrScreenNotFound, id)
	}
	screen.Close()
	log.Printf("👋 Screen %s unmounted", id)
	return nil
}

// CloseAll unmounts every screen.
func (m *ScreenManager) CloseAll() {
	m.mu.Lock()
	screens := m.screens
	m.screens = make(map[string]*SwipeScreen)
	m.mu.Unlock()

	for _, screen := range screens {
		screen.Close()
	}
}
