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

import "github.com/RoaringBitmap/roaring"

// LanguageSet is the candidate-language working set the Scorer mutates
// while consuming one n-gram's entry list. It wraps a roaring bitmap for
// O(1)-membership, O(1)-removal set algebra over dense ScriptLanguage
// ids.
type LanguageSet struct {
	bm *roaring.Bitmap
}

// NewLanguageSet builds a LanguageSet containing exactly the given
// languages.
func NewLanguageSet(langs ...ScriptLanguage) LanguageSet {
	bm := roaring.New()
	for _, l := range langs {
		bm.Add(uint32(l))
	}
	return LanguageSet{bm: bm}
}

// Contains reports whether lang is a member of the set.
func (s LanguageSet) Contains(lang ScriptLanguage) bool {
	return s.bm.Contains(uint32(lang))
}

// Remove removes lang from the set, returning whether it was present.
func (s LanguageSet) Remove(lang ScriptLanguage) bool {
	return s.bm.CheckedRemove(uint32(lang))
}

// Add inserts lang into the set.
func (s LanguageSet) Add(lang ScriptLanguage) { s.bm.Add(uint32(lang)) }

// Len returns the number of languages currently in the set.
func (s LanguageSet) Len() int { return int(s.bm.GetCardinality()) }

// Clone returns an independent copy of s, a fresh working set the
// Scorer needs for every key it consumes.
func (s LanguageSet) Clone() LanguageSet {
	return LanguageSet{bm: s.bm.Clone()}
}

// ToSlice returns the set's members in ascending language_id order.
func (s LanguageSet) ToSlice() []ScriptLanguage {
	vals := s.bm.ToArray()
	out := make([]ScriptLanguage, len(vals))
	for i, v := range vals {
		out[i] = ScriptLanguage(v)
	}
	return out
}

// Intersect returns a new set containing only languages present in both
// s and o, used to build Detector's filtered candidate set from script
// evidence.
func (s LanguageSet) Intersect(o LanguageSet) LanguageSet {
	return LanguageSet{bm: roaring.And(s.bm, o.bm)}
}

// IsEmpty reports whether the set has no members.
func (s LanguageSet) IsEmpty() bool { return s.bm.IsEmpty() }
