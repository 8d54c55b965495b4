package youtube

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/forPelevin/ytdigest/internal/types"
)

const defaultTimedtextURL = "https://www.youtube.com/api/timedtext"

// Timedtext fetches caption text from YouTube's public timedtext endpoint.
type Timedtext struct {
	client  *http.Client
	baseURL string
}

func NewTimedtext(baseURL string) *Timedtext {
	if baseURL == "" {
		baseURL = defaultTimedtextURL
	}
	return &Timedtext{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: baseURL,
	}
}

type json3 struct {
	Events []struct {
		TStartMs int64 `json:"tStartMs"`
		Segs     []struct {
			UTF8 string `json:"utf8"`
		} `json:"segs"`
	} `json:"events"`
}

func (tc *Timedtext) Transcript(ctx context.Context, videoID, lang string) ([]types.Segment, error) {
	if videoID == "" {
		return nil, fmt.Errorf("video ID is required")
	}
	if lang == "" {
		lang = "en"
	}
	params := url.Values{}
	params.Set("v", videoID)
	params.Set("lang", lang)
	params.Set("fmt", "json3")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, tc.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	resp, err := tc.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("timedtext request failed: %w", err)
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, fmt.Errorf("%w: captions for video %s in language %s", ErrNotFound, videoID, lang)
	case http.StatusForbidden:
		return nil, fmt.Errorf("access denied: video region restricted or captions disabled")
	case http.StatusTooManyRequests:
		return nil, fmt.Errorf("rate limited by YouTube")
	default:
		return nil, fmt.Errorf("timedtext API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read timedtext response: %w", err)
	}
	// An unknown language yields 200 with an empty body.
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil, fmt.Errorf("%w: captions for video %s in language %s", ErrNotFound, videoID, lang)
	}
	return parseJSON3(body)
}

func parseJSON3(data []byte) ([]types.Segment, error) {
	var doc json3
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("unmarshal timedtext JSON: %w", err)
	}
	var out []types.Segment
	for _, ev := range doc.Events {
		var text strings.Builder
		for _, s := range ev.Segs {
			text.WriteString(s.UTF8)
		}
		t := strings.Join(strings.Fields(text.String()), " ")
		if t == "" {
			continue
		}
		out = append(out, types.Segment{
			Timestamp: FormatTimestamp(time.Duration(ev.TStartMs) * time.Millisecond),
			Text:      t,
		})
	}
	return out, nil
}

// FormatTimestamp renders m:ss below an hour and h:mm:ss above.
func FormatTimestamp(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	sec := int(d / time.Second)
	h, m, s := sec/3600, (sec/60)%60, sec%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
