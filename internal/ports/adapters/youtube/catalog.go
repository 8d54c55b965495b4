package youtube

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/api/option"
	yt "google.golang.org/api/youtube/v3"
)

// MaxPlaylistVideos bounds playlist expansion; each page costs API quota.
const MaxPlaylistVideos = 200

var ErrNotFound = errors.New("youtube: not found")

var errEnoughItems = errors.New("enough playlist items")

// Catalog answers metadata questions through the YouTube Data API v3.
type Catalog struct {
	service *yt.Service
}

func NewCatalog(ctx context.Context, apiKey string, opts ...option.ClientOption) (*Catalog, error) {
	if apiKey == "" {
		return nil, errors.New("youtube: api key required")
	}
	opts = append([]option.ClientOption{option.WithAPIKey(apiKey)}, opts...)
	service, err := yt.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create youtube service: %w", err)
	}
	return &Catalog{service: service}, nil
}

func (c *Catalog) VideoTitle(ctx context.Context, videoID string) (string, error) {
	resp, err := c.service.Videos.List([]string{"snippet"}).Id(videoID).Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("videos.list %s: %w", videoID, err)
	}
	if len(resp.Items) == 0 || resp.Items[0].Snippet == nil {
		return "", fmt.Errorf("%w: video %s", ErrNotFound, videoID)
	}
	return resp.Items[0].Snippet.Title, nil
}

// PlaylistVideoIDs returns video IDs in playlist order, up to MaxPlaylistVideos.
func (c *Catalog) PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error) {
	var ids []string
	err := c.service.PlaylistItems.List([]string{"contentDetails"}).
		PlaylistId(playlistID).
		MaxResults(50).
		Pages(ctx, func(resp *yt.PlaylistItemListResponse) error {
			for _, it := range resp.Items {
				if it.ContentDetails == nil || it.ContentDetails.VideoId == "" {
					continue
				}
				ids = append(ids, it.ContentDetails.VideoId)
				if len(ids) >= MaxPlaylistVideos {
					return errEnoughItems
				}
			}
			return nil
		})
	if err != nil && !errors.Is(err, errEnoughItems) {
		return nil, fmt.Errorf("playlistItems.list %s: %w", playlistID, err)
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: playlist %s is empty or private", ErrNotFound, playlistID)
	}
	return ids, nil
}

type CaptionTrack struct {
	Language      string
	Name          string
	AutoGenerated bool
}

// CaptionTracks lists caption metadata; downloading track bodies needs OAuth,
// so the text itself comes from Timedtext.
func (c *Catalog) CaptionTracks(ctx context.Context, videoID string) ([]CaptionTrack, error) {
	resp, err := c.service.Captions.List([]string{"snippet"}, videoID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("captions.list %s: %w", videoID, err)
	}
	out := make([]CaptionTrack, 0, len(resp.Items))
	for _, it := range resp.Items {
		if it.Snippet == nil {
			continue
		}
		out = append(out, CaptionTrack{
			Language:      it.Snippet.Language,
			Name:          it.Snippet.Name,
			AutoGenerated: it.Snippet.TrackKind == "asr",
		})
	}
	return out, nil
}

// PickLanguage prefers want, then a manual track, then anything.
func PickLanguage(tracks []CaptionTrack, want string) string {
	if len(tracks) == 0 {
		return want
	}
	for _, t := range tracks {
		if t.Language == want {
			return want
		}
	}
	for _, t := range tracks {
		if !t.AutoGenerated {
			return t.Language
		}
	}
	return tracks[0].Language
}

func (c *Catalog) CaptionLanguage(ctx context.Context, videoID, want string) (string, error) {
	tracks, err := c.CaptionTracks(ctx, videoID)
	if err != nil {
		return want, err
	}
	return PickLanguage(tracks, want), nil
}
