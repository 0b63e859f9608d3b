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
	"math"
	"sort"
)

// ReorderDistanceFunc computes the ceiling distance used by
// DetectTopOneReordered, exposed as a pluggable strategy. byteCount is
// the UTF-8 byte length of the scored text, wordCount the number of
// segmented words.
type ReorderDistanceFunc func(byteCount, wordCount int) float64

// DefaultReorderDistance shrinks as the text lengthens, so short,
// ambiguous fragments get a wider tie-break window than long,
// already-confident ones.
func DefaultReorderDistance(byteCount, wordCount int) float64 {
	denom := float64(byteCount) + float64(wordCount*wordCount*wordCount) - 1
	if denom <= 0 {
		return math.Inf(1)
	}
	return 1.35 / denom
}

// Detector is the top-level façade: it holds an immutable reference to
// a ModelsStore and a resolved configuration, and is safe for concurrent
// use by multiple goroutines.
type Detector struct {
	store     *ModelsStore
	segmenter WordSegmenter
	config    detectorConfig

	reorderDistance ReorderDistanceFunc
}

// CloneWithLanguages rebuilds a Detector against the same ModelsStore and
// segmenter with a different candidate language set, without re-parsing
// the model file.
func (d *Detector) CloneWithLanguages(langs ...ScriptLanguage) *Detector {
	clone := *d
	clone.config.languages = NewLanguageSet(langs...)
	return &clone
}

// WithReorderDistance overrides the reorder_distance strategy used by
// DetectTopOneReordered. Nil restores DefaultReorderDistance.
func (d *Detector) WithReorderDistance(fn ReorderDistanceFunc) *Detector {
	clone := *d
	clone.reorderDistance = fn
	return &clone
}

func (d *Detector) reorderDistanceFunc() ReorderDistanceFunc {
	if d.reorderDistance != nil {
		return d.reorderDistance
	}
	return DefaultReorderDistance
}

// Probabilities ranks the configured languages that survive the
// script-evidence filter by mean log-probability, descending, ties broken
// by ascending language id. Configured languages the text's script
// evidence does not support are left out. Returns an empty slice rather
// than an error for any input the engine cannot score.
func (d *Detector) Probabilities(text string) []LanguageProbability {
	probs, _, _ := d.probabilitiesInternal(text)
	return probs
}

// ProbabilitiesRelative is Probabilities normalized to sum to 1.
func (d *Detector) ProbabilitiesRelative(text string) []LanguageRelative {
	return toRelative(d.Probabilities(text))
}

// DetectTopOneRaw returns the best single language by raw log-prob, ties
// broken by ascending language id. ok is false only when Probabilities is
// empty.
func (d *Detector) DetectTopOneRaw(text string) (lang ScriptLanguage, ok bool) {
	probs := d.Probabilities(text)
	if len(probs) == 0 {
		return 0, false
	}
	return probs[0].Language, true
}

// DetectTopOneOrNone returns the top language unless the gap between the
// first and second log-prob is smaller than minDistance, NaN, or smaller
// than machine epsilon.
func (d *Detector) DetectTopOneOrNone(text string, minDistance float64) (lang ScriptLanguage, ok bool) {
	probs := d.Probabilities(text)
	if len(probs) == 0 {
		return 0, false
	}
	if len(probs) == 1 {
		return probs[0].Language, true
	}
	gap := probs[0].LogProb - probs[1].LogProb
	if math.IsNaN(gap) {
		return 0, false
	}
	threshold := minDistance
	if threshold < machineEpsilon {
		threshold = machineEpsilon
	}
	if gap < threshold {
		return 0, false
	}
	return probs[0].Language, true
}

// machineEpsilon is the smallest float64 step at 1.0 (2^-52), used as a
// minimum meaningful gap.
const machineEpsilon = 2.220446049250313e-16

// scriptTallyMarginPercent is how close, as a percentage of the top
// script-evidence count, a language's count must be to stay a candidate.
const scriptTallyMarginPercent = 95

// filterWithMargin narrows a script-evidence tally down to the languages
// whose count is within marginPercent of the tally's top count, so a
// handful of stray characters from one script can't keep every language
// written in that script in the race against a dominant majority script.
// A tally entry with count 0 never clears the margin and is dropped.
func filterWithMargin(tally []ScriptLanguageCount, marginPercent int) LanguageSet {
	set := NewLanguageSet()

	top := 0
	for _, t := range tally {
		if t.Count > top {
			top = t.Count
		}
	}
	if top == 0 {
		return set
	}

	threshold := float64(top) * float64(marginPercent) / 100
	for _, t := range tally {
		if float64(t.Count) >= threshold {
			set.Add(t.Language)
		}
	}
	return set
}

// DetectTopOneReordered biases the top-one choice toward more widely
// spoken languages when the leading candidates are within a
// reorder_distance ceiling of each other. ok is false only when
// Probabilities was empty.
func (d *Detector) DetectTopOneReordered(text string) (lang ScriptLanguage, ok bool) {
	probs, byteCount, wordCount := d.probabilitiesInternal(text)
	if len(probs) == 0 {
		return 0, false
	}

	dist := d.reorderDistanceFunc()(byteCount, wordCount)
	ceiling := probs[0].LogProb - dist

	survivors := make([]LanguageProbability, 0, len(probs))
	for _, p := range probs {
		if p.LogProb >= ceiling {
			survivors = append(survivors, p)
		}
	}

	sort.Slice(survivors, func(i, j int) bool { return survivors[i].Language < survivors[j].Language })
	return survivors[0].Language, true
}

// probabilitiesInternal runs the full detection orchestration and
// additionally returns the byte/word counts DetectTopOneReordered needs
// for its ceiling formula.
func (d *Detector) probabilitiesInternal(text string) (probs []LanguageProbability, byteCount, wordCount int) {
	if text == "" {
		return nil, 0, 0
	}

	words, tally := d.segmenter.Segment(text)
	if len(words) == 0 {
		return nil, 0, 0
	}

	tallySet := filterWithMargin(tally, scriptTallyMarginPercent)
	filtered := tallySet.Intersect(d.config.languages)
	if filtered.IsEmpty() {
		return nil, 0, 0
	}

	filteredLangs := filtered.ToSlice()
	charactersCount := 0
	for _, w := range words {
		charactersCount += len(w.Buf)
	}

	if len(filteredLangs) == 1 {
		return []LanguageProbability{{Language: filteredLangs[0], LogProb: 0.0}}, len(text), len(words)
	}

	ngramSizes := d.config.shortNgramSizes
	if charactersCount >= d.config.longTextMinlen {
		ngramSizes = d.config.longNgramSizes
	}

	wordgramsEnabled := len(ngramSizes) > 0 && ngramSizes[len(ngramSizes)-1] == Word
	charSizes := ngramSizes
	if wordgramsEnabled {
		charSizes = ngramSizes[:len(ngramSizes)-1]
	}

	acc := NewScoreAccumulator()
	for _, size := range charSizes {
		it := NewNgramIterator(words, size)
		ScoreCharNgrams(d.store, size, it, filtered, acc)
	}
	if wordgramsEnabled {
		it := NewNgramIterator(words, Word)
		ScoreWordgrams(d.store, it, filtered, acc)
	}

	probs = make([]LanguageProbability, len(filteredLangs))
	for i, lang := range filteredLangs {
		score := math.Inf(-1)
		if acc.Cnt[lang] > 0 {
			score = acc.Sum[lang] / float64(acc.Cnt[lang])
		}
		probs[i] = LanguageProbability{Language: lang, LogProb: score}
	}

	sort.Slice(probs, func(i, j int) bool {
		if probs[i].LogProb != probs[j].LogProb {
			return probs[i].LogProb > probs[j].LogProb
		}
		return probs[i].Language < probs[j].Language
	})

	return probs, len(text), len(words)
}
