package services

import (
	"context"
	"sync"

	"vibin_client/models"
)

type fakeAPI struct {
	mu        sync.Mutex
	listCalls int
	likeCalls map[string]int

	listFn func(ctx context.Context, call, limit int) ([]models.RawUser, error)
	likeFn func(ctx context.Context, targetID string) (*models.LikeResponse, error)
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{likeCalls: make(map[string]int)}
}

func (f *fakeAPI) ListUsers(ctx context.Context, limit int) ([]models.RawUser, error) {
	f.mu.Lock()
	f.listCalls++
	call := f.listCalls
	fn := f.listFn
	f.mu.Unlock()

	if fn == nil {
		return nil, nil
	}
	return fn(ctx, call, limit)
}

func (f *fakeAPI) LikeUser(ctx context.Context, targetID string) (*models.LikeResponse, error) {
	f.mu.Lock()
	f.likeCalls[targetID]++
	fn := f.likeFn
	f.mu.Unlock()

	if fn == nil {
		return &models.LikeResponse{Liked: true}, nil
	}
	return fn(ctx, targetID)
}

func (f *fakeAPI) ListCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeAPI) LikeCalls(id string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.likeCalls[id]
}

type staticAuth struct {
	user *models.CurrentUser
	err  error
}

func (a staticAuth) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	return a.user, a.err
}

type switchableAuth struct {
	mu   sync.Mutex
	user *models.CurrentUser
	err  error
}

func (a *switchableAuth) CurrentUser(ctx context.Context) (*models.CurrentUser, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.user, a.err
}

func (a *switchableAuth) set(user *models.CurrentUser) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user, a.err = user, nil
}

func (a *switchableAuth) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.user, a.err = nil, err
}

type recordedEvent struct {
	ScreenID string
	Event    string
	Payload  any
}

type recorder struct {
	mu          sync.Mutex
	events      []recordedEvent
	intents     []*models.NavigationIntent
	navigateErr error
}

func (r *recorder) Notify(screenID, event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, recordedEvent{screenID, event, payload})
}

func (r *recorder) Navigate(ctx context.Context, screenID string, intent *models.NavigationIntent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.navigateErr != nil {
		return r.navigateErr
	}
	r.intents = append(r.intents, intent)
	return nil
}

func (r *recorder) Events(name string) []recordedEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []recordedEvent
	for _, e := range r.events {
		if e.Event == name {
			out = append(out, e)
		}
	}
	return out
}

func (r *recorder) Intents() []*models.NavigationIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.NavigationIntent(nil), r.intents...)
}

func strPtr(s string) *string { return &s }

func rawUsers(ids ...string) []models.RawUser {
	users := make([]models.RawUser, 0, len(ids))
	for _, id := range ids {
		users = append(users, models.RawUser{ID: id, Name: "user " + id, Age: 25})
	}
	return users
}

func deckIDs(deck []models.CandidateProfile) []string {
	ids := make([]string, 0, len(deck))
	for _, c := range deck {
		ids = append(ids, c.ID)
	}
	return ids
}
