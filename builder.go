// Copyright 2016 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package langram

import (
	"sort"
	"sync"

	"github.com/RoDmitry/langram/internal/defaultscript"
)

// detectorConfig is the resolved, immutable configuration a Detector
// carries.
type detectorConfig struct {
	languages       LanguageSet
	longTextMinlen  int
	longNgramSizes  []NgramSize
	shortNgramSizes []NgramSize
}

var defaultShortNgramSizes = []NgramSize{Uni, Bi, Tri, Quadri, Five, Word}
var defaultLongNgramSizes = []NgramSize{Tri, Quadri, Five, Word}

// maxTrigramsShortNgramSizes and maxTrigramsLongNgramSizes are the
// MaxTrigrams preset: a faster, lower-accuracy n-gram size selection.
var maxTrigramsShortNgramSizes = []NgramSize{Uni, Bi, Tri, Word}
var maxTrigramsLongNgramSizes = []NgramSize{Tri, Word}

// DetectorBuilder is the fluent configuration surface for Detector.
type DetectorBuilder struct {
	store *ModelsStore

	languages       []ScriptLanguage
	longTextMinlen  int
	longNgramSizes  []NgramSize
	shortNgramSizes []NgramSize
	segmenter       WordSegmenter
}

// NewDetectorBuilder starts a builder against an already-open store,
// seeded with defaults: minlen 120, the default long/short n-gram size
// sequences, and no languages configured (callers must call Languages or
// AllLanguages before Build).
func NewDetectorBuilder(store *ModelsStore) *DetectorBuilder {
	return &DetectorBuilder{
		store:           store,
		longTextMinlen:  120,
		longNgramSizes:  append([]NgramSize(nil), defaultLongNgramSizes...),
		shortNgramSizes: append([]NgramSize(nil), defaultShortNgramSizes...),
	}
}

// Languages restricts the candidate set to exactly the given languages.
func (b *DetectorBuilder) Languages(langs ...ScriptLanguage) *DetectorBuilder {
	b.languages = langs
	return b
}

// AllLanguages seeds the candidate set with the full ScriptLanguage
// enumeration.
func (b *DetectorBuilder) AllLanguages() *DetectorBuilder {
	b.languages = AllScriptLanguages()
	return b
}

// Minlen sets long_text_minlen, the character-count threshold that
// switches between short_ngram_sizes and long_ngram_sizes.
func (b *DetectorBuilder) Minlen(n int) *DetectorBuilder {
	b.longTextMinlen = n
	return b
}

// LongNgrams overrides long_ngram_sizes (deduplicated, order preserved).
func (b *DetectorBuilder) LongNgrams(sizes ...NgramSize) *DetectorBuilder {
	b.longNgramSizes = dedupSizes(sizes)
	return b
}

// ShortNgrams overrides short_ngram_sizes (deduplicated, order
// preserved).
func (b *DetectorBuilder) ShortNgrams(sizes ...NgramSize) *DetectorBuilder {
	b.shortNgramSizes = dedupSizes(sizes)
	return b
}

// MaxTrigrams applies the bundled "faster, lower accuracy" preset:
// short = {Uni, Bi, Tri, Word}, long = {Tri, Word}.
func (b *DetectorBuilder) MaxTrigrams() *DetectorBuilder {
	b.shortNgramSizes = append([]NgramSize(nil), maxTrigramsShortNgramSizes...)
	b.longNgramSizes = append([]NgramSize(nil), maxTrigramsLongNgramSizes...)
	return b
}

// Segmenter overrides the WordSegmenter used at detection time. If never
// called, Build wires in the bundled internal/defaultscript
// implementation.
func (b *DetectorBuilder) Segmenter(ws WordSegmenter) *DetectorBuilder {
	b.segmenter = ws
	return b
}

func dedupSizes(sizes []NgramSize) []NgramSize {
	seen := make(map[NgramSize]struct{}, len(sizes))
	out := make([]NgramSize, 0, len(sizes))
	for _, s := range sizes {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// Build validates the accumulated configuration and constructs a
// Detector bound to the builder's store.
func (b *DetectorBuilder) Build() (*Detector, error) {
	if len(b.languages) == 0 {
		return nil, &ErrNoLanguagesConfigured{}
	}
	segmenter := b.segmenter
	if segmenter == nil {
		segmenter = defaultWordSegmenter()
	}
	return &Detector{
		store:     b.store,
		segmenter: segmenter,
		config: detectorConfig{
			languages:       NewLanguageSet(b.languages...),
			longTextMinlen:  b.longTextMinlen,
			longNgramSizes:  append([]NgramSize(nil), b.longNgramSizes...),
			shortNgramSizes: append([]NgramSize(nil), b.shortNgramSizes...),
		},
	}, nil
}

// scriptToLanguageIDs groups the ScriptLanguage enumeration by its
// Unicode script, the table the bundled defaultscript.Segmenter needs.
// Built once, lazily, since it never depends on any particular store.
var scriptToLanguageIDsOnce sync.Once
var scriptToLanguageIDs map[string][]uint16

func buildScriptToLanguageIDs() map[string][]uint16 {
	scriptToLanguageIDsOnce.Do(func() {
		m := make(map[string][]uint16)
		for i := 0; i < NumScriptLanguages; i++ {
			l := ScriptLanguage(i)
			m[l.Script()] = append(m[l.Script()], uint16(i))
		}
		for k := range m {
			sort.Slice(m[k], func(i, j int) bool { return m[k][i] < m[k][j] })
		}
		scriptToLanguageIDs = m
	})
	return scriptToLanguageIDs
}

// defaultSegmenterAdapter adapts internal/defaultscript.Segmenter (which
// knows nothing about ScriptLanguage) to the public WordSegmenter
// interface.
type defaultSegmenterAdapter struct {
	inner *defaultscript.Segmenter
}

func defaultWordSegmenter() WordSegmenter {
	return &defaultSegmenterAdapter{inner: defaultscript.NewSegmenter(buildScriptToLanguageIDs())}
}

func (a *defaultSegmenterAdapter) Segment(text string) ([]Word, []ScriptLanguageCount) {
	rawWords, rawTally := a.inner.Segment(text)

	words := make([]Word, len(rawWords))
	for i, w := range rawWords {
		words[i] = Word{Buf: w.Buf}
	}

	tally := make([]ScriptLanguageCount, len(rawTally))
	for i, c := range rawTally {
		tally[i] = ScriptLanguageCount{Language: ScriptLanguage(c.Language), Count: c.Count}
	}
	return words, tally
}
