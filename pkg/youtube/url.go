package youtube

import "regexp"

var videoIDPattern = regexp.MustCompile(
	`(?:https?://)?(?:www\.)?(?:youtube\.com/(?:watch\?v=|shorts/|embed/)|youtu\.be/)([a-zA-Z0-9_-]{11})`,
)

// ExtractVideoID pulls the 11-character video id out of any common YouTube
// URL form (watch, shorts, embed, youtu.be). Returns "" when text contains
// no video link.
func ExtractVideoID(text string) string {
	m := videoIDPattern.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return m[1]
}

// IsVideoURL reports whether text contains a YouTube video link.
func IsVideoURL(text string) bool {
	return ExtractVideoID(text) != ""
}

// WatchURL builds the canonical watch URL for a video id.
func WatchURL(videoID string) string {
	return "https://www.youtube.com/watch?v=" + videoID
}
