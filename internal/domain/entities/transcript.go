package entities

import (
	"fmt"
	"strings"
)

// TranscriptEntry represents a single timestamped utterance from the source
// transcript. Immutable once produced.
type TranscriptEntry struct {
	Timestamp    string  `json:"timestamp"`
	StartSeconds float64 `json:"start_seconds"`
	Text         string  `json:"text"`
}

// Chunk is a merged window of consecutive entries' words, the unit of
// retrieval. Timestamp and StartSeconds come from the entry that opened the
// window.
type Chunk struct {
	Text         string  `json:"text"`
	Timestamp    string  `json:"timestamp"`
	StartSeconds float64 `json:"start_seconds"`
}

// Video holds everything known about one loaded video.
type Video struct {
	VideoID          string            `json:"video_id"`
	URL              string            `json:"url"`
	Title            string            `json:"title"`
	Duration         string            `json:"duration,omitempty"`
	Description      string            `json:"description,omitempty"`
	LanguageOriginal string            `json:"language_original"`
	Entries          []TranscriptEntry `json:"entries"`
	Chunks           []Chunk           `json:"chunks"`
}

// FullText joins all entry texts with spaces.
func (v *Video) FullText() string {
	parts := make([]string, len(v.Entries))
	for i, e := range v.Entries {
		parts[i] = e.Text
	}
	return strings.Join(parts, " ")
}

// TextBlock formats the transcript as readable timestamped lines, the form
// fed to the long-form generation prompts.
func (v *Video) TextBlock() string {
	var sb strings.Builder
	for i, e := range v.Entries {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString("[" + e.Timestamp + "] " + e.Text)
	}
	return sb.String()
}

// FormatSeconds renders a second offset as M:SS or H:MM:SS.
func FormatSeconds(seconds float64) string {
	s := int(seconds)
	h, r := s/3600, s%3600
	m, s := r/60, r%60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%d:%02d", m, s)
}
