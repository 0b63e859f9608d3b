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

// Package defaultscript is the bundled, swappable default for the
// ScriptClassifier/WordSegmenter collaborators the detection engine
// treats as external. It has no dependency on the parent package:
// callers supply the script→language mapping, keeping the dependency
// arrow pointing one way (parent imports this package, not the
// reverse).
package defaultscript

import (
	"sort"
	"unicode"

	"golang.org/x/text/unicode/rangetable"
)

// wordRunes merges the Unicode letter, mark and decimal-digit categories
// into one range table, the fast membership test a word boundary scan
// needs. Built once at package init via rangetable.Merge rather than
// three separate unicode.Is calls per rune.
var wordRunes = rangetable.Merge(unicode.L, unicode.M, unicode.Nd)

// IsWordRune reports whether r can appear inside a word, as opposed to
// being a separator.
func IsWordRune(r rune) bool { return unicode.Is(wordRunes, r) }

// FindScript returns the Unicode script name containing r (one of the
// keys of unicode.Scripts), or "" if r belongs to none (e.g. punctuation
// under the common/inherited pseudo-scripts).
func FindScript(r rune) string {
	for name, tbl := range unicode.Scripts {
		if name == "Common" || name == "Inherited" {
			continue
		}
		if unicode.Is(tbl, r) {
			return name
		}
	}
	return ""
}

// Word is one segmented word, carrying its code points with separators
// already stripped.
type Word struct {
	Buf []rune
}

// LangCount pairs an opaque language id with a tally, mirroring spec
// §6.1's script_language_tally shape without depending on the parent
// package's ScriptLanguage type.
type LangCount struct {
	Language uint16
	Count    int
}

// Segmenter is a minimal WordSegmenter built on Go's stdlib unicode
// tables: it splits text into maximal runs of word runes and tallies,
// over the whole text, how much script evidence supports each candidate
// language id.
type Segmenter struct {
	scriptToLanguages map[string][]uint16
}

// NewSegmenter builds a Segmenter. scriptToLanguages maps a Unicode
// script name (as returned by FindScript) to the language ids recognized
// in it; the parent package supplies this from its own ScriptLanguage
// enumeration.
func NewSegmenter(scriptToLanguages map[string][]uint16) *Segmenter {
	return &Segmenter{scriptToLanguages: scriptToLanguages}
}

// Segment splits text into words and tallies script evidence (spec
// §6.1). The tally is returned sorted ascending by language id for
// determinism.
func (s *Segmenter) Segment(text string) ([]Word, []LangCount) {
	var words []Word
	var cur []rune
	counts := make(map[uint16]int)

	flush := func() {
		if len(cur) > 0 {
			words = append(words, Word{Buf: cur})
			cur = nil
		}
	}

	for _, r := range text {
		if !IsWordRune(r) {
			flush()
			continue
		}
		cur = append(cur, r)
		if script := FindScript(r); script != "" {
			for _, lang := range s.scriptToLanguages[script] {
				counts[lang]++
			}
		}
	}
	flush()

	tally := make([]LangCount, 0, len(counts))
	for lang, cnt := range counts {
		tally = append(tally, LangCount{Language: lang, Count: cnt})
	}
	sort.Slice(tally, func(i, j int) bool { return tally[i].Language < tally[j].Language })

	return words, tally
}
