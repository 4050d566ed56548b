package extractor

import "testing"

func TestExtractEpisodeInfo(t *testing.T) {
	e := New()

	tests := []struct {
		name        string
		text        string
		wantSeason  string
		wantEpisode string
		wantTitle   string
	}{
		{
			name:        "channel prefixed title first",
			text:        "@Channel - Naruto S01 EP05 [720p] Tamil",
			wantSeason:  "01",
			wantEpisode: "05",
			wantTitle:   "Naruto",
		},
		{
			name:        "channel prefixed bracket first",
			text:        "@AnimeHub - [S02 EP11] Bleach [1080p]",
			wantSeason:  "02",
			wantEpisode: "11",
			wantTitle:   "Bleach",
		},
		{
			name:        "bracketed season episode",
			text:        "One Punch Man [S03 E12] 720p",
			wantSeason:  "03",
			wantEpisode: "12",
			wantTitle:   "One Punch Man",
		},
		{
			name:        "bracketed season episode with EP",
			text:        "Dr Stone [S01 EP09]",
			wantSeason:  "01",
			wantEpisode: "09",
			wantTitle:   "Dr Stone",
		},
		{
			name:        "bare season episode",
			text:        "Attack on Titan S04 E28 1080p",
			wantSeason:  "04",
			wantEpisode: "28",
			wantTitle:   "Attack on Titan",
		},
		{
			name:        "bare season episode with EP",
			text:        "Vinland Saga S2 EP7",
			wantSeason:  "02",
			wantEpisode: "07",
			wantTitle:   "Vinland Saga",
		},
		{
			name:        "single digit padding",
			text:        "Demon Slayer S1 E3",
			wantSeason:  "01",
			wantEpisode: "03",
			wantTitle:   "Demon Slayer",
		},
		{
			name:        "wide numbers are padded not truncated",
			text:        "One Piece S1 EP1015",
			wantSeason:  "01",
			wantEpisode: "1015",
			wantTitle:   "One Piece",
		},
		{
			name:        "lowercase tokens",
			text:        "haikyuu s3 ep5",
			wantSeason:  "03",
			wantEpisode: "05",
			wantTitle:   "haikyuu",
		},
		{
			name:        "no match falls back to defaults",
			text:        "  Some Movie 2023  ",
			wantSeason:  "01",
			wantEpisode: "01",
			wantTitle:   "Some Movie 2023",
		},
		{
			name:        "structured emoji format",
			text:        "📺 Jujutsu Kaisen [S02]\nEᴘɪꜱᴏᴅᴇ : 7",
			wantSeason:  "02",
			wantEpisode: "07",
			wantTitle:   "Jujutsu Kaisen",
		},
		{
			name:        "structured format missing episode group",
			text:        "📺 Mob Psycho [S03] Eᴘɪꜱᴏᴅᴇ pending",
			wantSeason:  "03",
			wantEpisode: "01",
			wantTitle:   "Mob Psycho",
		},
		{
			name:        "structured format missing title group",
			text:        "📺 Eᴘɪꜱᴏᴅᴇ : 12",
			wantSeason:  "01",
			wantEpisode: "12",
			wantTitle:   "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info := e.ExtractEpisodeInfo(tt.text)

			if info.Season != tt.wantSeason {
				t.Errorf("season = %q, want %q", info.Season, tt.wantSeason)
			}
			if info.Episode != tt.wantEpisode {
				t.Errorf("episode = %q, want %q", info.Episode, tt.wantEpisode)
			}
			if info.Title != tt.wantTitle {
				t.Errorf("title = %q, want %q", info.Title, tt.wantTitle)
			}
		})
	}
}

func TestExtractEpisodeInfoPriorityOrder(t *testing.T) {
	e := New()

	// The channel form and the bracket form can both match; channel wins.
	info := e.ExtractEpisodeInfo("@Channel - Naruto S01 EP05 [S09 E09]")
	if info.Season != "01" || info.Episode != "05" {
		t.Errorf("expected channel pattern to win, got S%s E%s", info.Season, info.Episode)
	}
	if info.Title != "Naruto" {
		t.Errorf("expected channel title, got %q", info.Title)
	}
}

func TestPadNumber(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1", "01"},
		{"07", "07"},
		{"123", "123"},
		{"1015", "1015"},
	}

	for _, tt := range tests {
		if got := padNumber(tt.in); got != tt.want {
			t.Errorf("padNumber(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
