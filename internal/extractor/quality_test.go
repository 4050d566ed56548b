package extractor

import "testing"

func TestExtractQuality(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "bare resolution with p",
			text: "Naruto S01 EP05 720p Tamil",
			want: "720P",
		},
		{
			name: "uppercase P suffix",
			text: "Naruto 1080P HEVC",
			want: "1080P",
		},
		{
			name: "bracketed without suffix",
			text: "Naruto [480]",
			want: "480P",
		},
		{
			name: "decorated quality label",
			text: "Qᴜᴀʟɪᴛʏ : 1080",
			want: "1080P",
		},
		{
			name: "plain quality label",
			text: "QUALITY: 2160",
			want: "2160P",
		},
		{
			name: "quality label lowercase",
			text: "quality : 360",
			want: "360P",
		},
		{
			name: "spaced suffix",
			text: "resolution 480 p",
			want: "480P",
		},
		{
			name: "off list value falls through to later pattern",
			text: "[999p] Quality: 720",
			want: "720P",
		},
		{
			name: "off list value with no better match yields default",
			text: "Naruto 540p",
			want: "720P",
		},
		{
			name: "no resolution yields default",
			text: "Naruto Shippuden Tamil",
			want: "720P",
		},
		{
			name: "low end of allow list",
			text: "Naruto 144p",
			want: "144P",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExtractQuality(tt.text); got != tt.want {
				t.Errorf("ExtractQuality(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
