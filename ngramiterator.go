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

import "unicode/utf8"

// NgramIterator is a lazy, deduplicated sequence of n-grams of one chosen
// NgramSize drawn from a segmented word list. It is not restartable:
// consuming it borrows the word slice once, and the Detector creates a
// fresh iterator per n-gram size it scores.
//
// For character sizes (Uni..Five) it slides a fixed-width window of
// non-separator code points within each word. For Word it yields each
// distinct word once, encoded as its raw UTF-8 bytes rather than a fixed
// NgramString (words routinely exceed NgramString's 5-code-point cap).
type NgramIterator struct {
	words []Word
	size  NgramSize

	wi, ci int
	seen   map[string]struct{}
}

// NewNgramIterator builds an iterator over words for the given size.
func NewNgramIterator(words []Word, size NgramSize) *NgramIterator {
	return &NgramIterator{
		words: words,
		size:  size,
		seen:  make(map[string]struct{}),
	}
}

// Next returns the next not-yet-seen n-gram and true, or false once the
// word list is exhausted. Returned NgramString values are only ever
// character n-grams (Uni..Five); callers iterating Word should use
// NextWord instead.
func (it *NgramIterator) Next() (NgramString, bool) {
	charLen := it.size.charLen()
	for it.wi < len(it.words) {
		buf := it.words[it.wi].Buf
		lastStart := len(buf) - charLen
		for it.ci <= lastStart {
			start := it.ci
			it.ci++
			ng := NewNgramString(buf[start : start+charLen])
			key := string(ng.Bytes())
			if _, dup := it.seen[key]; dup {
				continue
			}
			it.seen[key] = struct{}{}
			return ng, true
		}
		it.wi++
		it.ci = 0
	}
	return NgramString{}, false
}

// NextWord returns the next not-yet-seen whole word, encoded as UTF-8
// bytes, and true, or false once exhausted. Only valid when the
// iterator was constructed with size == Word.
func (it *NgramIterator) NextWord() ([]byte, bool) {
	for it.wi < len(it.words) {
		buf := it.words[it.wi].Buf
		it.wi++
		if len(buf) == 0 {
			continue
		}
		b := make([]byte, 0, len(buf)*utf8.UTFMax)
		for _, r := range buf {
			var tmp [utf8.UTFMax]byte
			n := utf8.EncodeRune(tmp[:], r)
			b = append(b, tmp[:n]...)
		}
		key := string(b)
		if _, dup := it.seen[key]; dup {
			continue
		}
		it.seen[key] = struct{}{}
		return b, true
	}
	return nil, false
}
