// Package index provides a brute-force inner-product index over
// L2-normalized vectors.
package index

import (
	"errors"
	"sort"
)

// Index is an immutable similarity index built from an embedding
// matrix. Vector ids are row positions in the matrix it was built from.
type Index struct {
	vectors   [][]float64
	dimension int
}

// Build constructs an index from the given matrix. Every row must
// share the dimension of the first.
func Build(vectors [][]float64) (*Index, error) {
	if len(vectors) == 0 {
		return nil, errors.New("cannot build index from empty matrix")
	}
	dim := len(vectors[0])
	if dim == 0 {
		return nil, errors.New("cannot build index from zero-dimension vectors")
	}
	for _, v := range vectors {
		if len(v) != dim {
			return nil, errors.New("inconsistent vector dimensions")
		}
	}
	return &Index{vectors: vectors, dimension: dim}, nil
}

// Len returns the number of indexed vectors.
func (ix *Index) Len() int { return len(ix.vectors) }

// Dimension returns the vector dimension.
func (ix *Index) Dimension() int { return ix.dimension }

// Search returns the ids of the k most similar vectors by descending
// dot product, padding with the sentinel id -1 (score 0) when fewer
// than k vectors exist. Both slices always have length k.
func (ix *Index) Search(query []float64, k int) (scores []float64, ids []int) {
	if k <= 0 {
		return nil, nil
	}
	type hit struct {
		id    int
		score float64
	}
	hits := make([]hit, len(ix.vectors))
	for i, v := range ix.vectors {
		hits[i] = hit{id: i, score: dot(v, query)}
	}
	sort.SliceStable(hits, func(a, b int) bool { return hits[a].score > hits[b].score })

	scores = make([]float64, k)
	ids = make([]int, k)
	for i := 0; i < k; i++ {
		if i < len(hits) {
			scores[i] = hits[i].score
			ids[i] = hits[i].id
		} else {
			ids[i] = -1
		}
	}
	return scores, ids
}

func dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
