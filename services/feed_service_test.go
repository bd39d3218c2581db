package services

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"vibin_client/models"
)

type fakeResolver struct {
	err   error
	calls []string
}

func (r *fakeResolver) ResolveImage(ctx context.Context, value string) (string, error) {
	r.calls = append(r.calls, value)
	if r.err != nil {
		return "", r.err
	}
	return "https://signed.example/" + value, nil
}

func TestFetchCandidatesNormalizesProfile(t *testing.T) {
	api := newFakeAPI()
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		return []models.RawUser{{
			ID:     "42",
			Name:   "Ana",
			Age:    27,
			Images: []*string{strPtr("https://x/1.jpg"), nil},
			Image:  strPtr("https://legacy/x.jpg"),
			Tags:   []string{"1", "9"},
		}}, nil
	}

	got, err := NewFeedService(api, nil).FetchCandidates(context.Background(), "me", 50)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("expected 1 candidate, got %d", len(got))
	}

	profile := got[0]
	if profile.Image.URL != "https://x/1.jpg" || profile.Image.Asset != "" {
		t.Fatalf("unexpected image %+v", profile.Image)
	}
	want := []models.Tag{
		{ID: "1", Label: models.GameTags["1"], Color: models.GameTagColor, Category: models.TagCategoryGame},
		{ID: "9", Label: "9", Color: models.DefaultTagColor, Category: models.TagCategoryOther},
	}
	if !reflect.DeepEqual(profile.Tags, want) {
		t.Fatalf("tags = %+v, want %+v", profile.Tags, want)
	}
	if profile.Name != "Ana" || profile.Age != 27 {
		t.Fatalf("unexpected profile %+v", profile)
	}
}

func TestImagePriority(t *testing.T) {
	tests := []struct {
		name string
		user models.RawUser
		want models.ImageReference
	}{
		{
			name: "images first element wins over legacy",
			user: models.RawUser{Images: []*string{strPtr("https://a/1.jpg")}, Image: strPtr("https://legacy.jpg")},
			want: models.RemoteImage("https://a/1.jpg"),
		},
		{
			name: "padded url is kept as sent",
			user: models.RawUser{Images: []*string{strPtr(" https://a/1.jpg ")}},
			want: models.RemoteImage(" https://a/1.jpg "),
		},
		{
			name: "null first element falls back to legacy",
			user: models.RawUser{Images: []*string{nil, strPtr("https://a/2.jpg")}, Image: strPtr("https://legacy.jpg")},
			want: models.RemoteImage("https://legacy.jpg"),
		},
		{
			name: "empty images falls back to legacy",
			user: models.RawUser{Images: []*string{}, Image: strPtr("https://legacy.jpg")},
			want: models.RemoteImage("https://legacy.jpg"),
		},
		{
			name: "only null entries and no legacy uses placeholder",
			user: models.RawUser{Images: []*string{nil, nil}},
			want: models.PlaceholderImage(),
		},
		{
			name: "nothing at all uses placeholder",
			user: models.RawUser{},
			want: models.PlaceholderImage(),
		},
		{
			name: "blank values count as missing",
			user: models.RawUser{Images: []*string{strPtr("  ")}, Image: strPtr("")},
			want: models.PlaceholderImage(),
		},
	}

	fs := NewFeedService(newFakeAPI(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := fs.NormalizeProfile(context.Background(), tt.user).Image
			if got != tt.want {
				t.Fatalf("image = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestFetchCandidatesExcludesSelf(t *testing.T) {
	api := newFakeAPI()
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		return rawUsers("a", "me", "b", "me", "c"), nil
	}

	got, err := NewFeedService(api, nil).FetchCandidates(context.Background(), "me", 10)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if ids := deckIDs(got); !reflect.DeepEqual(ids, []string{"a", "b", "c"}) {
		t.Fatalf("ids = %v", ids)
	}
}

func TestFetchCandidatesPassesLimit(t *testing.T) {
	api := newFakeAPI()
	var seen int
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		seen = limit
		return nil, nil
	}

	got, err := NewFeedService(api, nil).FetchCandidates(context.Background(), "me", 50)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if seen != 50 {
		t.Fatalf("limit = %d, want 50", seen)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil result, got %#v", got)
	}
}

func TestFetchCandidatesRejectsInvalidLimit(t *testing.T) {
	api := newFakeAPI()
	fs := NewFeedService(api, nil)

	for _, limit := range []int{0, -1, models.MaxFeedLimit + 1} {
		if _, err := fs.FetchCandidates(context.Background(), "me", limit); !errors.Is(err, ErrInvalidLimit) {
			t.Fatalf("limit %d: error = %v, want ErrInvalidLimit", limit, err)
		}
	}
	if api.ListCalls() != 0 {
		t.Fatalf("backend called %d times", api.ListCalls())
	}
}

func TestFetchCandidatesFailure(t *testing.T) {
	api := newFakeAPI()
	boom := errors.New("connection refused")
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		return nil, boom
	}

	got, err := NewFeedService(api, nil).FetchCandidates(context.Background(), "me", 50)
	if !errors.Is(err, ErrFeedFetchFailed) || !errors.Is(err, boom) {
		t.Fatalf("error = %v, want ErrFeedFetchFailed wrapping the cause", err)
	}
	if got != nil {
		t.Fatalf("expected no candidates, got %v", got)
	}
}

func TestFetchCandidatesResolvesStorageKeys(t *testing.T) {
	api := newFakeAPI()
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		return []models.RawUser{
			{ID: "a", Images: []*string{strPtr("profile-pics/a.jpg")}},
			{ID: "b", Image: strPtr("https://cdn/b.jpg")},
			{ID: "c"},
		}, nil
	}
	resolver := &fakeResolver{}

	got, err := NewFeedService(api, resolver).FetchCandidates(context.Background(), "me", 10)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if got[0].Image.URL != "https://signed.example/profile-pics/a.jpg" {
		t.Fatalf("key not presigned: %+v", got[0].Image)
	}
	if got[1].Image.URL != "https://cdn/b.jpg" {
		t.Fatalf("absolute url changed: %+v", got[1].Image)
	}
	if !got[2].Image.IsPlaceholder() {
		t.Fatalf("expected placeholder, got %+v", got[2].Image)
	}
	if !reflect.DeepEqual(resolver.calls, []string{"profile-pics/a.jpg"}) {
		t.Fatalf("resolver calls = %v", resolver.calls)
	}
}

func TestFetchCandidatesResolverFailureUsesPlaceholder(t *testing.T) {
	api := newFakeAPI()
	api.listFn = func(ctx context.Context, call, limit int) ([]models.RawUser, error) {
		return []models.RawUser{{ID: "a", Images: []*string{strPtr("profile-pics/a.jpg")}}}, nil
	}

	got, err := NewFeedService(api, &fakeResolver{err: errors.New("no credentials")}).FetchCandidates(context.Background(), "me", 10)
	if err != nil {
		t.Fatalf("FetchCandidates() error = %v", err)
	}
	if got[0].Image != models.PlaceholderImage() {
		t.Fatalf("image = %+v, want placeholder", got[0].Image)
	}
}
