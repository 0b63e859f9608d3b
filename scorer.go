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

// ScoreAccumulator is the dense per-language (sum, count) buffer the
// Scorer fills: a plain array indexed by ScriptLanguage id rather than a
// hash map, giving branch-free O(1) access and a single well-known
// allocation per detection call.
type ScoreAccumulator struct {
	Sum [NumScriptLanguages]float64
	Cnt [NumScriptLanguages]int
}

// NewScoreAccumulator returns a zeroed accumulator.
func NewScoreAccumulator() *ScoreAccumulator { return &ScoreAccumulator{} }

// scoreEntries is the core loop shared by character and word n-gram
// scoring: it consumes one key's sorted entry list against a disposable
// clone of the candidate set, crediting observed evidence to languages
// present in the list and a floor to every candidate language the list
// didn't mention.
func scoreEntries(acc *ScoreAccumulator, entries NgramEntries, candidates LanguageSet, floor func(ScriptLanguage) float64) {
	w := candidates.Clone()
	for _, e := range entries {
		if w.Remove(e.Language) {
			acc.Sum[e.Language] += e.LogProb
			acc.Cnt[e.Language]++
		}
	}
	for _, lang := range w.ToSlice() {
		acc.Sum[lang] += floor(lang)
	}
}

// ScoreCharNgrams consumes every n-gram it yields from the iterator
// (which must have been built for a character NgramSize, Uni..Five)
// against ms's table for that size, accumulating into acc.
func ScoreCharNgrams(ms *ModelsStore, size NgramSize, it *NgramIterator, candidates LanguageSet, acc *ScoreAccumulator) {
	floor := func(lang ScriptLanguage) float64 { return ms.LangFloor(lang) }
	for {
		key, ok := it.Next()
		if !ok {
			break
		}
		entries, found := ms.GetNgramEntries(size, &key)
		if !found || len(entries) == 0 {
			continue
		}
		scoreEntries(acc, entries, candidates, floor)
	}
}

// ScoreWordgrams consumes every distinct word the iterator yields (it
// must have been built with size == Word) against ms's word-gram table.
func ScoreWordgrams(ms *ModelsStore, it *NgramIterator, candidates LanguageSet, acc *ScoreAccumulator) {
	floor := func(ScriptLanguage) float64 { return ms.WordgramFloor() }
	for {
		key, ok := it.NextWord()
		if !ok {
			break
		}
		entries, found := ms.GetWordgramEntries(key)
		if !found || len(entries) == 0 {
			continue
		}
		scoreEntries(acc, entries, candidates, floor)
	}
}
