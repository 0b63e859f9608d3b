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

import "encoding/binary"

// simpleSection is a contiguous byte range within the packed model file.
type simpleSection struct {
	off uint32
	sz  uint32
}

func (s *simpleSection) write(w *tocWriter) {
	w.u32(s.off)
	w.u32(s.sz)
}

func (s *simpleSection) read(r *reader) error {
	var err error
	if s.off, err = r.u32(); err != nil {
		return err
	}
	if s.sz, err = r.u32(); err != nil {
		return err
	}
	return nil
}

// indexedSection is a simpleSection of concatenated variable-length items
// (data) plus a second simpleSection of cumulative byte offsets into it
// (index, with len(items)+1 uint32 entries), supporting keys of
// arbitrary length.
type indexedSection struct {
	data  simpleSection
	index simpleSection
}

func (s *indexedSection) write(w *tocWriter) {
	s.data.write(w)
	s.index.write(w)
}

func (s *indexedSection) read(r *reader) error {
	if err := s.data.read(r); err != nil {
		return err
	}
	return s.index.read(r)
}

// ngramTableSection stores one NgramSize's worth of the packed model: every
// distinct n-gram key observed during training, and for each key a sorted
// (language_id, log_prob) list.
type ngramTableSection struct {
	keys    indexedSection
	entries indexedSection
}

func (s *ngramTableSection) write(w *tocWriter) {
	s.keys.write(w)
	s.entries.write(w)
}

func (s *ngramTableSection) read(r *reader) error {
	if err := s.keys.read(r); err != nil {
		return err
	}
	return s.entries.read(r)
}

// modelTOC lists every section of the packed model file in a fixed
// order: (langs_ngram_min_probability, ngrams[5], wordgrams,
// wordgram_min_probability, hash). hash is moved first on disk so a
// reader can validate schema compatibility before touching anything
// else.
type modelTOC struct {
	hash          simpleSection // one u64, §3 "hash"
	langFloors    simpleSection // float64 per ScriptLanguage, §3 "langs_ngram_min_probability"
	ngrams        [ngramCharSizeCount]ngramTableSection
	wordgrams     ngramTableSection
	wordgramFloor simpleSection // one float64, §3 "wordgram_min_probability"
}

func (t *modelTOC) sections() []tocSection {
	secs := make([]tocSection, 0, 2+ngramCharSizeCount+2)
	secs = append(secs, &t.hash, &t.langFloors)
	for i := range t.ngrams {
		secs = append(secs, &t.ngrams[i])
	}
	secs = append(secs, &t.wordgrams, &t.wordgramFloor)
	return secs
}

type tocSection interface {
	write(w *tocWriter)
	read(r *reader) error
}

// tocWriter accumulates the fixed-width TOC blob (section count followed by
// every section's off/sz pair) that gets appended near the end of the file.
type tocWriter struct {
	buf []byte
}

func (w *tocWriter) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf = append(w.buf, b[:]...)
}

func writeTOC(t *modelTOC) []byte {
	secs := t.sections()
	w := &tocWriter{}
	w.u32(uint32(len(secs)))
	for _, s := range secs {
		s.write(w)
	}
	return w.buf
}
