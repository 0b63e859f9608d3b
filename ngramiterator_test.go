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
	"testing"

	"github.com/stretchr/testify/assert"
)

func wordsFrom(ss ...string) []Word {
	words := make([]Word, len(ss))
	for i, s := range ss {
		words[i] = Word{Buf: []rune(s)}
	}
	return words
}

func TestNgramIteratorCharSlidingWindow(t *testing.T) {
	it := NewNgramIterator(wordsFrom("aba"), Bi)

	var got []string
	for {
		ng, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, ng.String())
	}
	// "aba" -> "ab", "ba"; both distinct, no repeats.
	assert.ElementsMatch(t, []string{"ab", "ba"}, got)
	assert.Len(t, got, 2)
}

func TestNgramIteratorDedupesWithinCall(t *testing.T) {
	it := NewNgramIterator(wordsFrom("aaaa"), Uni)

	var got []string
	for {
		ng, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, ng.String())
	}
	assert.Equal(t, []string{"a"}, got)
}

func TestNgramIteratorSkipsShortWords(t *testing.T) {
	it := NewNgramIterator(wordsFrom("a", "bb"), Tri)

	_, ok := it.Next()
	assert.False(t, ok, "no word is long enough to hold a trigram")
}

func TestNgramIteratorWordMode(t *testing.T) {
	it := NewNgramIterator(wordsFrom("the", "cat", "the"), Word)

	var got []string
	for {
		w, ok := it.NextWord()
		if !ok {
			break
		}
		got = append(got, string(w))
	}
	assert.ElementsMatch(t, []string{"the", "cat"}, got)
}
