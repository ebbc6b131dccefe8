// Package corpus holds the read-only input the sampler core consumes:
// a fixed vocabulary size and a fixed sequence of tokenized documents.
//
// Loading a corpus from disk, tokenizing raw text, and building a
// vocabulary are external collaborators; this package only models the
// already-tokenized, already-validated shape the sampler needs:
// documents as dense word-id sequences over a fixed vocabulary.
package corpus

import "github.com/bobonovski/hdplda/hdperrors"

// Corpus is a fixed, read-only sequence of tokenized documents over a
// vocabulary of size V. Word ids are dense integers in [0, V).
type Corpus struct {
	vocabSize int
	docs      [][]int
}

// New validates and wraps docs as a Corpus. It fails if V<1, if there
// are no documents, if any document is empty, or if any token falls
// outside [0, V).
func New(vocabSize int, docs [][]int) (*Corpus, error) {
	if vocabSize < 1 {
		return nil, hdperrors.NewInvalidConfig("vocabSize", "must be >= 1")
	}
	if len(docs) < 1 {
		return nil, hdperrors.NewInvalidConfig("docs", "must contain at least one document")
	}
	for _, doc := range docs {
		if len(doc) < 1 {
			return nil, hdperrors.NewInvalidConfig("docs", "document must be nonempty")
		}
		for _, v := range doc {
			if v < 0 || v >= vocabSize {
				return nil, hdperrors.NewInvalidConfig("docs",
					"token out of vocabulary range")
			}
		}
	}
	owned := make([][]int, len(docs))
	for j, doc := range docs {
		owned[j] = append([]int(nil), doc...)
	}
	return &Corpus{vocabSize: vocabSize, docs: owned}, nil
}

// VocabSize returns V.
func (c *Corpus) VocabSize() int { return c.vocabSize }

// NumDocs returns D.
func (c *Corpus) NumDocs() int { return len(c.docs) }

// Doc returns the word-id sequence of document j. The returned slice
// must not be mutated by the caller.
func (c *Corpus) Doc(j int) []int { return c.docs[j] }

// Len returns the token count n_j of document j.
func (c *Corpus) Len(j int) int { return len(c.docs[j]) }

// N returns the total token count across the corpus.
func (c *Corpus) N() int {
	n := 0
	for _, doc := range c.docs {
		n += len(doc)
	}
	return n
}
