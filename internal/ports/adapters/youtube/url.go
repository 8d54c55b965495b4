package youtube

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

var ErrInvalidURL = errors.New("invalid youtube url")

var (
	videoIDRE    = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)
	playlistIDRE = regexp.MustCompile(`^[A-Za-z0-9_-]{10,64}$`)
)

// Target is what a user-supplied URL points at. A watch URL inside a playlist
// carries both IDs.
type Target struct {
	VideoID    string
	PlaylistID string
}

func (t Target) IsPlaylist() bool { return t.PlaylistID != "" }

// ParseURL accepts watch, youtu.be, shorts, embed, live and playlist URLs, and
// bare 11 character video IDs.
func ParseURL(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{}, fmt.Errorf("%w: empty input", ErrInvalidURL)
	}
	if videoIDRE.MatchString(s) {
		return Target{VideoID: s}, nil
	}
	if !strings.Contains(s, "://") {
		s = "https://" + s
	}
	u, err := url.Parse(s)
	if err != nil {
		return Target{}, fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	host := strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
	host = strings.TrimPrefix(host, "m.")
	host = strings.TrimPrefix(host, "music.")

	var t Target
	switch host {
	case "youtu.be":
		t.VideoID = firstPathPart(u.Path)
	case "youtube.com", "youtube-nocookie.com":
		parts := strings.Split(strings.Trim(u.Path, "/"), "/")
		switch parts[0] {
		case "watch", "playlist":
			t.VideoID = u.Query().Get("v")
		case "shorts", "embed", "live", "v":
			if len(parts) > 1 {
				t.VideoID = parts[1]
			}
		}
	default:
		return Target{}, fmt.Errorf("%w: unsupported host %q", ErrInvalidURL, u.Hostname())
	}
	t.PlaylistID = u.Query().Get("list")

	if t.VideoID != "" && !videoIDRE.MatchString(t.VideoID) {
		return Target{}, fmt.Errorf("%w: bad video id %q", ErrInvalidURL, t.VideoID)
	}
	if t.PlaylistID != "" && !playlistIDRE.MatchString(t.PlaylistID) {
		return Target{}, fmt.Errorf("%w: bad playlist id %q", ErrInvalidURL, t.PlaylistID)
	}
	if t.VideoID == "" && t.PlaylistID == "" {
		return Target{}, fmt.Errorf("%w: no video or playlist in %q", ErrInvalidURL, raw)
	}
	return t, nil
}

func firstPathPart(p string) string {
	p = strings.Trim(p, "/")
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i]
	}
	return p
}
