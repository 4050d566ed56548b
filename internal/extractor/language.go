package extractor

import "strings"

// languageTable maps caption substrings to short language tags. Order is
// significant: the first matching key wins, so compound keys ("multi audio",
// "dual audio") must precede their single-word forms.
var languageTable = []struct {
	key string
	tag string
}{
	{"தமிழ்", "Tam"},
	{"tamil", "Tam"},
	{"tam", "Tam"},
	{"english", "Eng"},
	{"eng", "Eng"},
	{"multi audio", "Multi"},
	{"multi", "Multi"},
	{"dual audio", "Dual"},
	{"dual", "Dual"},
}

// ExtractLanguage recovers a short language tag from a caption. A labeled
// Audio: segment is consulted first; when it yields nothing the whole
// lower-cased text is scanned for the same substrings. Matching is plain
// substring containment, so keys may match inside unrelated words; that
// looseness is intentional and covered by tests. Returns "" on no match.
func (e *Extractor) ExtractLanguage(text string) string {
	if m := e.audioLabel.FindStringSubmatch(text); m != nil {
		audioText := strings.ToLower(strings.TrimSpace(m[1]))
		for _, entry := range languageTable {
			if strings.Contains(audioText, entry.key) {
				return entry.tag
			}
		}
	}

	textLower := strings.ToLower(text)
	for _, entry := range languageTable {
		if strings.Contains(textLower, entry.key) {
			return entry.tag
		}
	}

	return ""
}
