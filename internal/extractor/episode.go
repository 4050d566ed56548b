package extractor

import (
	"regexp"
	"strings"
)

const (
	defaultSeason  = "01"
	defaultEpisode = "01"
)

// Structured-format markers used by release channels that post decorated
// captions. The episode label is typographic small caps, not ASCII.
const (
	televisionMarker = "📺"
	episodeMarker    = "Eᴘɪꜱᴏᴅᴇ"
)

// EpisodeInfo holds the season/episode pair and the raw title candidate
// recovered from a caption. Season and episode are zero-padded strings,
// never empty; Title is untrimmed of noise and must be cleaned by the caller.
type EpisodeInfo struct {
	Season  string
	Episode string
	Title   string
}

// episodeRule pairs a pattern with the extraction of its submatches.
// Rules are evaluated in order and the first structural match wins.
type episodeRule struct {
	pattern *regexp.Regexp
	extract func(m []string, text string) EpisodeInfo
}

// Extractor recovers episode, quality, and language information from
// free-text captions using precompiled pattern chains.
type Extractor struct {
	episodeRules      []episodeRule
	structuredTitle   *regexp.Regexp
	structuredEpisode *regexp.Regexp
	bracketSplit      *regexp.Regexp
	seasonSplit       *regexp.Regexp
	qualityPatterns   []*regexp.Regexp
	audioLabel        *regexp.Regexp
}

// New creates an Extractor with all patterns precompiled
func New() *Extractor {
	e := &Extractor{
		structuredTitle:   regexp.MustCompile(`(?i)📺\s*([^\[]+)\s*\[S(\d+)\]`),
		structuredEpisode: regexp.MustCompile(`(?i)Eᴘɪꜱᴏᴅᴇ\s*:\s*(\d+)`),
		bracketSplit:      regexp.MustCompile(`(?i)\[S\d+`),
		seasonSplit:       regexp.MustCompile(`(?i)S\d+`),
		qualityPatterns:   compileQualityPatterns(),
		audioLabel:        regexp.MustCompile(`(?i)(?:Aᴜᴅɪᴏ|Audio)\s*:\s*([^,\n\]]+)`),
	}
	e.episodeRules = e.compileEpisodeRules()
	return e
}

// ExtractEpisodeInfo recovers (season, episode, title) from a caption.
// It never fails: unmatched fields fall back to "01" and the trimmed input.
func (e *Extractor) ExtractEpisodeInfo(text string) EpisodeInfo {
	cleanText := strings.TrimSpace(text)

	if strings.Contains(cleanText, televisionMarker) && strings.Contains(cleanText, episodeMarker) {
		return e.parseStructured(cleanText)
	}

	for _, rule := range e.episodeRules {
		if m := rule.pattern.FindStringSubmatch(cleanText); m != nil {
			return rule.extract(m, cleanText)
		}
	}

	return EpisodeInfo{
		Season:  defaultSeason,
		Episode: defaultEpisode,
		Title:   cleanText,
	}
}

// compileEpisodeRules builds the ordered first-match-wins rule chain:
// channel-prefixed forms take priority over bracketed forms, which take
// priority over bare season/episode tokens.
func (e *Extractor) compileEpisodeRules() []episodeRule {
	return []episodeRule{
		{
			// @handle - Title S01 EP05
			pattern: regexp.MustCompile(`(?i)@\w+\s*-\s*(.+?)\s+S(\d+)\s*EP(\d+)`),
			extract: func(m []string, text string) EpisodeInfo {
				return EpisodeInfo{
					Season:  padNumber(m[2]),
					Episode: padNumber(m[3]),
					Title:   strings.TrimSpace(m[1]),
				}
			},
		},
		{
			// @handle - [S01 EP05] Title
			pattern: regexp.MustCompile(`(?i)@\w+\s*-\s*\[S(\d+)\s*EP(\d+)\]\s*(.+?)(?:\s*\[|$)`),
			extract: func(m []string, text string) EpisodeInfo {
				return EpisodeInfo{
					Season:  padNumber(m[1]),
					Episode: padNumber(m[2]),
					Title:   strings.TrimSpace(m[3]),
				}
			},
		},
		{
			// [S01 E05]
			pattern: regexp.MustCompile(`(?i)\[S(\d+)\s*E(\d+)\]`),
			extract: e.extractBeforeBracket,
		},
		{
			// [S01 EP05]
			pattern: regexp.MustCompile(`(?i)\[S(\d+)\s*EP(\d+)\]`),
			extract: e.extractBeforeBracket,
		},
		{
			// S01 E05
			pattern: regexp.MustCompile(`(?i)S(\d+)\s*E(\d+)`),
			extract: e.extractBeforeSeason,
		},
		{
			// S01 EP05
			pattern: regexp.MustCompile(`(?i)S(\d+)\s*EP(\d+)`),
			extract: e.extractBeforeSeason,
		},
	}
}

// extractBeforeBracket uses everything preceding the [S.. token as the title
func (e *Extractor) extractBeforeBracket(m []string, text string) EpisodeInfo {
	return EpisodeInfo{
		Season:  padNumber(m[1]),
		Episode: padNumber(m[2]),
		Title:   strings.TrimSpace(e.bracketSplit.Split(text, 2)[0]),
	}
}

// extractBeforeSeason uses everything preceding the S.. token as the title
func (e *Extractor) extractBeforeSeason(m []string, text string) EpisodeInfo {
	return EpisodeInfo{
		Season:  padNumber(m[1]),
		Episode: padNumber(m[2]),
		Title:   strings.TrimSpace(e.seasonSplit.Split(text, 2)[0]),
	}
}

// parseStructured handles the decorated channel format where the title+season
// group and the episode group appear independently. Either group may be
// missing; absent fields keep their defaults.
func (e *Extractor) parseStructured(text string) EpisodeInfo {
	info := EpisodeInfo{
		Season:  defaultSeason,
		Episode: defaultEpisode,
	}

	if m := e.structuredTitle.FindStringSubmatch(text); m != nil {
		info.Title = strings.TrimSpace(m[1])
		info.Season = padNumber(m[2])
	}

	if m := e.structuredEpisode.FindStringSubmatch(text); m != nil {
		info.Episode = padNumber(m[1])
	}

	return info
}

// padNumber left-pads a digit string to at least two characters.
// Wider values pass through untouched; padding never truncates.
func padNumber(digits string) string {
	if len(digits) < 2 {
		return "0" + digits
	}
	return digits
}
