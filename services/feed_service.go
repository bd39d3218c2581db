package services

import (
	"context"
	"fmt"
	"log"

	"vibin_client/models"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// FeedService supplies the swipe deck with candidate profiles.
type FeedService struct {
	API    BackendAPI
	Images ImageResolver // Optional, resolves storage keys to URLs
}

// NewFeedService creates a feed supplier backed by api.
func NewFeedService(api BackendAPI, images ImageResolver) *FeedService {
	return &FeedService{API: api, Images: images}
}

// FetchCandidates loads up to limit users, drops the requesting user and
// normalizes the rest into display profiles.
func (fs *FeedService) FetchCandidates(ctx context.Context, excludingUserID string, limit int) ([]models.CandidateProfile, error) {
	if limit < 1 || limit > models.MaxFeedLimit {
		return nil, fmt.Errorf("%w: %d (allowed 1..%d)", ErrInvalidLimit, limit, models.MaxFeedLimit)
	}

	ctx, span := tracer.Start(ctx, "FeedService.FetchCandidates", trace.WithAttributes(
		attribute.String("user.id", excludingUserID),
		attribute.Int("feed.limit", limit),
	))
	defer span.End()

	raw, err := fs.API.ListUsers(ctx, limit)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "list users failed")
		log.Printf("❌ Failed to fetch candidates for %s: %v", excludingUserID, err)
		return nil, fmt.Errorf("%w: %w", ErrFeedFetchFailed, err)
	}

	candidates := make([]models.CandidateProfile, 0, len(raw))
	for _, user := range raw {
		if user.ID == excludingUserID {
			continue
		}
		candidates = append(candidates, fs.NormalizeProfile(ctx, user))
	}

	span.SetAttributes(attribute.Int("feed.candidates", len(candidates)))
	log.Printf("✅ Feed loaded %d candidates for %s", len(candidates), excludingUserID)
	return candidates, nil
}

// NormalizeProfile maps a raw record into a CandidateProfile.
func (fs *FeedService) NormalizeProfile(ctx context.Context, user models.RawUser) models.CandidateProfile {
	return models.CandidateProfile{
		ID:    user.ID,
		Name:  user.Name,
		Age:   user.Age,
		Image: fs.resolveImage(ctx, user),
		Tags:  models.ResolveTags(user.Tags),
	}
}

func (fs *FeedService) resolveImage(ctx context.Context, user models.RawUser) models.ImageReference {
	value, ok := user.PrimaryImage()
	if !ok {
		return models.PlaceholderImage()
	}
	if fs.Images == nil || IsAbsoluteURL(value) {
		return models.RemoteImage(value)
	}

	resolved, err := fs.Images.ResolveImage(ctx, value)
	if err != nil || resolved == "" {
		log.Printf("⚠️ Falling back to placeholder for %s: %v", user.ID, err)
		return models.PlaceholderImage()
	}
	return models.RemoteImage(resolved)
}
