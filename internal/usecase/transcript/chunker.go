package transcript

import (
	"strings"

	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
)

// ChunkEntries splits timestamped entries into overlapping word windows.
// Words accumulate into a running buffer; once the buffer reaches size words
// it is emitted as one chunk and reseeded with its last overlap words. The
// chunk carries the timestamp of the entry that began its buffer. A
// non-empty remainder is flushed as the final chunk.
//
// config.Validate rejects overlap >= size at startup; the clamp here only
// guards direct callers.
func ChunkEntries(entries []entities.TranscriptEntry, size, overlap int) []entities.Chunk {
	if size <= 0 {
		return nil
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= size {
		overlap = size - 1
	}

	var chunks []entities.Chunk
	var words []string
	startTS, startSec := "0:00", 0.0

	for _, entry := range entries {
		if len(words) == 0 {
			startTS, startSec = entry.Timestamp, entry.StartSeconds
		}
		words = append(words, strings.Fields(entry.Text)...)
		if len(words) >= size {
			chunks = append(chunks, entities.Chunk{
				Text:         strings.Join(words, " "),
				Timestamp:    startTS,
				StartSeconds: startSec,
			})
			words = append([]string(nil), words[len(words)-overlap:]...)
		}
	}

	if len(words) > 0 {
		chunks = append(chunks, entities.Chunk{
			Text:         strings.Join(words, " "),
			Timestamp:    startTS,
			StartSeconds: startSec,
		})
	}
	return chunks
}
