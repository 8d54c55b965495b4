package youtube

import (
	"errors"
	"testing"
)

func TestParseURL(t *testing.T) {
	const vid = "dQw4w9WgXcQ"
	const list = "PLrAXtmErZgOeiKm4sgNOknGvNjby9efdf"

	tests := []struct {
		name    string
		in      string
		want    Target
		wantErr bool
	}{
		{name: "bare id", in: vid, want: Target{VideoID: vid}},
		{name: "watch", in: "https://www.youtube.com/watch?v=" + vid, want: Target{VideoID: vid}},
		{name: "watch no scheme", in: "youtube.com/watch?v=" + vid + "&t=42s", want: Target{VideoID: vid}},
		{name: "mobile", in: "https://m.youtube.com/watch?v=" + vid, want: Target{VideoID: vid}},
		{name: "short link", in: "https://youtu.be/" + vid + "?si=abc", want: Target{VideoID: vid}},
		{name: "shorts", in: "https://www.youtube.com/shorts/" + vid, want: Target{VideoID: vid}},
		{name: "embed", in: "https://www.youtube-nocookie.com/embed/" + vid, want: Target{VideoID: vid}},
		{name: "playlist", in: "https://www.youtube.com/playlist?list=" + list, want: Target{PlaylistID: list}},
		{name: "watch in playlist", in: "https://www.youtube.com/watch?v=" + vid + "&list=" + list, want: Target{VideoID: vid, PlaylistID: list}},
		{name: "empty", in: "  ", wantErr: true},
		{name: "other host", in: "https://vimeo.com/12345", wantErr: true},
		{name: "bad id", in: "https://youtu.be/short", wantErr: true},
		{name: "channel page", in: "https://www.youtube.com/@golang", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseURL(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidURL) {
					t.Fatalf("expected ErrInvalidURL, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseURL(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}
