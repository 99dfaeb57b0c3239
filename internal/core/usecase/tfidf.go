package usecase

import (
	"math"
	"sort"

	"github.com/worawit/lawgraph/internal/thai"
)

// tfidfIndex is rebuilt per query over the candidate chunks. The corpus is
// small enough that rebuilding beats keeping a stale index in sync with
// ingestion.
type tfidfIndex struct {
	vocab   map[string]int
	idf     []float64
	docVecs [][]float64
}

// buildTFIDF tokenizes every text, keeps the maxVocab highest-document-
// frequency terms (ties broken lexicographically) and produces max-tf
// normalized document vectors with smoothed IDF.
func buildTFIDF(texts []string, maxVocab int) tfidfIndex {
	df := make(map[string]int)
	docsTokens := make([][]string, len(texts))
	for i, t := range texts {
		toks := thai.Tokenize(t)
		docsTokens[i] = toks
		seen := make(map[string]struct{}, len(toks))
		for _, w := range toks {
			if _, ok := seen[w]; ok {
				continue
			}
			seen[w] = struct{}{}
			df[w]++
		}
	}

	n := len(texts)
	if n < 1 {
		n = 1
	}

	type termDF struct {
		term string
		df   int
	}
	terms := make([]termDF, 0, len(df))
	for w, c := range df {
		terms = append(terms, termDF{w, c})
	}
	sort.Slice(terms, func(i, j int) bool {
		if terms[i].df != terms[j].df {
			return terms[i].df > terms[j].df
		}
		return terms[i].term < terms[j].term
	})
	if maxVocab > 0 && len(terms) > maxVocab {
		terms = terms[:maxVocab]
	}

	vocab := make(map[string]int, len(terms))
	idf := make([]float64, len(terms))
	for i, t := range terms {
		vocab[t.term] = i
		idf[i] = math.Log(float64(n+1)/float64(t.df+1)) + 1.0
	}

	docVecs := make([][]float64, len(texts))
	for i, toks := range docsTokens {
		docVecs[i] = vectorize(toks, vocab, idf)
	}
	return tfidfIndex{vocab: vocab, idf: idf, docVecs: docVecs}
}

func (ix tfidfIndex) vectorizeQuery(q string) []float64 {
	return vectorize(thai.Tokenize(q), ix.vocab, ix.idf)
}

func vectorize(toks []string, vocab map[string]int, idf []float64) []float64 {
	tf := make(map[string]int)
	for _, w := range toks {
		if _, ok := vocab[w]; ok {
			tf[w]++
		}
	}
	vec := make([]float64, len(vocab))
	if len(tf) == 0 {
		return vec
	}
	maxTF := 0
	for _, c := range tf {
		if c > maxTF {
			maxTF = c
		}
	}
	for w, c := range tf {
		j := vocab[w]
		vec[j] = (float64(c) / float64(maxTF)) * idf[j]
	}
	return vec
}

// cosine returns 0 for zero-norm vectors instead of NaN.
func cosine(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var num, da, db float64
	for i := 0; i < n; i++ {
		num += a[i] * b[i]
		da += a[i] * a[i]
		db += b[i] * b[i]
	}
	if da == 0 || db == 0 {
		return 0
	}
	return num / (math.Sqrt(da) * math.Sqrt(db))
}

func cosine32(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var num, da, db float64
	for i := 0; i < n; i++ {
		x, y := float64(a[i]), float64(b[i])
		num += x * y
		da += x * x
		db += y * y
	}
	if da == 0 || db == 0 {
		return 0
	}
	return num / (math.Sqrt(da) * math.Sqrt(db))
}
