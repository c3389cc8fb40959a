package qa

import (
	"context"
	"sort"

	"go.uber.org/zap"

	apperrors "github.com/video-assistant-team/video-assistant/errors"
	"github.com/video-assistant-team/video-assistant/internal/domain/entities"
)

// Embedder is the slice of the embedding client the QA layer needs.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
	EmbedOne(ctx context.Context, text string) ([]float32, error)
}

// searcher ranks stored vectors against a query vector. Both backends must
// produce the same ranking for identical inputs; which one serves is an
// availability detail.
type searcher interface {
	search(query []float32, topK int) ([]int, error)
}

// VectorIndex holds normalized chunk embeddings parallel to their chunks.
// Built once per video, immutable afterwards, owned by a single session.
type VectorIndex struct {
	chunks   []entities.Chunk
	vectors  [][]float32
	searcher searcher
	logger   *zap.Logger
}

// BuildIndex embeds every chunk and prepares the search backend. An empty
// chunk list is rejected eagerly; a zero-entry index is never returned.
func BuildIndex(ctx context.Context, embedder Embedder, chunks []entities.Chunk, logger *zap.Logger) (*VectorIndex, error) {
	if len(chunks) == 0 {
		return nil, apperrors.ErrEmptyTranscript()
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}

	vectors, err := embedder.Embed(ctx, texts)
	if err != nil {
		return nil, apperrors.FromProvider(err)
	}

	idx := &VectorIndex{chunks: chunks, vectors: vectors, logger: logger}
	if s, err := newOptimizedSearcher(vectors); err == nil {
		idx.searcher = s
	} else {
		logger.Info("optimized vector backend unavailable, using linear scan", zap.String("reason", err.Error()))
		idx.searcher = bruteSearcher{vectors: vectors}
	}

	logger.Info("vector index built", zap.Int("chunks", len(chunks)), zap.Int("dim", len(vectors[0])))
	return idx, nil
}

// Len returns the number of indexed chunks.
func (idx *VectorIndex) Len() int {
	return len(idx.chunks)
}

// Search returns up to topK chunks ordered by descending cosine similarity
// to the query vector. The query must be normalized, as all stored vectors
// are; ties keep original chunk order.
func (idx *VectorIndex) Search(query []float32, topK int) []entities.Chunk {
	if topK > len(idx.chunks) {
		topK = len(idx.chunks)
	}
	if topK <= 0 {
		return nil
	}

	order, err := idx.searcher.search(query, topK)
	if err != nil {
		idx.logger.Warn("vector backend search failed, using linear scan", zap.Error(err))
		order, _ = bruteSearcher{vectors: idx.vectors}.search(query, topK)
	}

	results := make([]entities.Chunk, 0, len(order))
	for _, i := range order {
		if i >= 0 && i < len(idx.chunks) {
			results = append(results, idx.chunks[i])
		}
	}
	return results
}

// bruteSearcher is the exact linear-scan backend, always available.
type bruteSearcher struct {
	vectors [][]float32
}

func (b bruteSearcher) search(query []float32, topK int) ([]int, error) {
	order := make([]int, len(b.vectors))
	scores := make([]float32, len(b.vectors))
	for i, v := range b.vectors {
		order[i] = i
		scores[i] = dot(v, query)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return scores[order[i]] > scores[order[j]]
	})
	if topK < len(order) {
		order = order[:topK]
	}
	return order, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
