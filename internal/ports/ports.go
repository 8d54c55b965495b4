package ports

import (
	"context"

	"github.com/forPelevin/ytdigest/internal/types"
)

// Completer is a single-shot chat completion: one system and one user message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type VideoCatalog interface {
	VideoTitle(ctx context.Context, videoID string) (string, error)
	PlaylistVideoIDs(ctx context.Context, playlistID string) ([]string, error)
	// CaptionLanguage resolves the caption language to fetch, given a preference.
	CaptionLanguage(ctx context.Context, videoID, want string) (string, error)
}

type TranscriptSource interface {
	Transcript(ctx context.Context, videoID, lang string) ([]types.Segment, error)
}
