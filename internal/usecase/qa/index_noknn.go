//go:build !vectors

package qa

import "errors"

// Without the vectors build tag there is no KNN support compiled in; the
// linear scan serves every search.
func newOptimizedSearcher(_ [][]float32) (searcher, error) {
	return nil, errors.New("knn backend requires the vectors build tag")
}
