//go:build vectors

package qa

import (
	"errors"
	"strconv"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"
)

// bleveSearcher is the optimized nearest-neighbor backend, a faiss-backed
// in-memory KNN index. Cosine similarity is preserved by indexing with
// dot_product over vectors the embedder already normalized.
type bleveSearcher struct {
	index bleve.Index
}

func newOptimizedSearcher(vectors [][]float32) (searcher, error) {
	if len(vectors) == 0 || len(vectors[0]) == 0 {
		return nil, errors.New("no vectors to index")
	}

	vecMapping := mapping.NewVectorFieldMapping()
	vecMapping.Dims = len(vectors[0])
	vecMapping.Similarity = "dot_product"

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt("vector", vecMapping)

	indexMapping := bleve.NewIndexMapping()
	indexMapping.DefaultMapping = doc

	index, err := bleve.NewMemOnly(indexMapping)
	if err != nil {
		return nil, err
	}

	batch := index.NewBatch()
	for i, v := range vectors {
		if err := batch.Index(strconv.Itoa(i), map[string]interface{}{"vector": v}); err != nil {
			return nil, err
		}
	}
	if err := index.Batch(batch); err != nil {
		return nil, err
	}

	return &bleveSearcher{index: index}, nil
}

func (s *bleveSearcher) search(queryVec []float32, topK int) ([]int, error) {
	req := bleve.NewSearchRequest(query.NewMatchNoneQuery())
	req.Size = topK
	req.AddKNN("vector", queryVec, int64(topK), 1.0)

	res, err := s.index.Search(req)
	if err != nil {
		return nil, err
	}

	order := make([]int, 0, len(res.Hits))
	for _, hit := range res.Hits {
		i, err := strconv.Atoi(hit.ID)
		if err != nil {
			continue
		}
		order = append(order, i)
	}
	return order, nil
}
