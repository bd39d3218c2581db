package models

import (
	"strings"
)

// RawUser is a user record as returned by GET /users.
type RawUser struct {
	ID     string    `json:"id"`
	Name   string    `json:"name"`
	Age    int       `json:"age"`
	Image  *string   `json:"image,omitempty"`  // Legacy single image
	Images []*string `json:"images,omitempty"` // Entries may be null
	Tags   []string  `json:"tags"`
}

// ImageReference is either a remote URL or a bundled asset, never both.
type ImageReference struct {
	URL   string `json:"url,omitempty"`
	Asset string `json:"asset,omitempty"`
}

// RemoteImage references an image by URL.
func RemoteImage(url string) ImageReference {
	return ImageReference{URL: url}
}

// PlaceholderImage references the bundled placeholder.
func PlaceholderImage() ImageReference {
	return ImageReference{Asset: PlaceholderImageAsset}
}

// IsPlaceholder reports whether the reference points at a bundled asset.
func (r ImageReference) IsPlaceholder() bool {
	return r.URL == ""
}

// String returns the displayable value of the reference.
func (r ImageReference) String() string {
	if r.URL != "" {
		return r.URL
	}
	if r.Asset != "" {
		return r.Asset
	}
	return PlaceholderImageAsset
}

// CandidateProfile is the normalized card shown in the swipe deck.
type CandidateProfile struct {
	ID    string         `json:"id"`
	Name  string         `json:"name"`
	Age   int            `json:"age"`
	Image ImageReference `json:"image"`
	Tags  []Tag          `json:"tags"`
}

// CurrentUser is the authenticated user supplied by the auth collaborator.
type CurrentUser struct {
	ID    string `json:"id"`
	Name  string `json:"name,omitempty"`
	Token string `json:"-"`
}

// PrimaryImage picks the image source of a raw record: the first element of
// images when present, then the legacy image field. Blank values count as
// missing; others are returned as sent. ok is false when neither yields a
// value and the placeholder must be used.
func (u RawUser) PrimaryImage() (string, bool) {
	if len(u.Images) > 0 && u.Images[0] != nil && strings.TrimSpace(*u.Images[0]) != "" {
		return *u.Images[0], true
	}
	if u.Image != nil && strings.TrimSpace(*u.Image) != "" {
		return *u.Image, true
	}
	return "", false
}
