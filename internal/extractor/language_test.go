package extractor

import "testing"

func TestExtractLanguage(t *testing.T) {
	e := New()

	tests := []struct {
		name string
		text string
		want string
	}{
		{
			name: "tamil in body",
			text: "Naruto S01 EP05 Tamil 720p",
			want: "Tam",
		},
		{
			name: "tamil script",
			text: "Naruto தமிழ் 720p",
			want: "Tam",
		},
		{
			name: "english in body",
			text: "Bleach English Subbed",
			want: "Eng",
		},
		{
			name: "multi audio",
			text: "One Piece [Multi Audio] 1080p",
			want: "Multi",
		},
		{
			name: "dual audio",
			text: "Dr Stone Dual Audio",
			want: "Dual",
		},
		{
			name: "labeled audio segment wins over body",
			text: "Audio : English\nTamil subtitles available",
			want: "Eng",
		},
		{
			name: "decorated audio label",
			text: "Aᴜᴅɪᴏ : Tamil, Japanese",
			want: "Tam",
		},
		{
			name: "unrecognized label falls back to body scan",
			text: "Audio : Japanese\nTamil subs",
			want: "Tam",
		},
		{
			name: "table order puts tamil before english",
			text: "Naruto Tamil English",
			want: "Tam",
		},
		{
			name: "substring containment matches inside words",
			text: "Tampa Bay Documentary",
			want: "Tam",
		},
		{
			name: "no language",
			text: "Naruto 720p",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := e.ExtractLanguage(tt.text); got != tt.want {
				t.Errorf("ExtractLanguage(%q) = %q, want %q", tt.text, got, tt.want)
			}
		})
	}
}
