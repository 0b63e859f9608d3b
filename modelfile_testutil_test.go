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
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// testModelBuilder assembles a packed model file byte-for-byte the way
// modelfile.go's parse() expects to read one, without going through any
// training pipeline. It exists purely for tests in this package.
type testModelBuilder struct {
	buf        []byte
	langFloors [NumScriptLanguages]float64
	ngrams     [ngramCharSizeCount]map[string][]NgramEntry
	wordgrams  map[string][]NgramEntry
	wgFloor    float64
	hash       *uint64
}

func newTestModelBuilder() *testModelBuilder {
	b := &testModelBuilder{
		wordgrams: make(map[string][]NgramEntry),
	}
	for i := range b.langFloors {
		b.langFloors[i] = math.Inf(-1)
	}
	for i := range b.ngrams {
		b.ngrams[i] = make(map[string][]NgramEntry)
	}
	return b
}

func (b *testModelBuilder) setLangFloor(lang ScriptLanguage, v float64) *testModelBuilder {
	b.langFloors[lang] = v
	return b
}

func (b *testModelBuilder) setWordgramFloor(v float64) *testModelBuilder {
	b.wgFloor = v
	return b
}

func (b *testModelBuilder) addNgram(size NgramSize, key string, entries ...NgramEntry) *testModelBuilder {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Language < entries[j].Language })
	b.ngrams[size][key] = entries
	return b
}

// addNgramRaw stores entries in the exact order given, skipping addNgram's
// ascending language-id sort. Only meant for tests exercising buildTable's
// construction-time validation of malformed tables.
func (b *testModelBuilder) addNgramRaw(size NgramSize, key string, entries ...NgramEntry) *testModelBuilder {
	b.ngrams[size][key] = entries
	return b
}

func (b *testModelBuilder) addWordgram(key string, entries ...NgramEntry) *testModelBuilder {
	sort.Slice(entries, func(i, j int) bool { return entries[i].Language < entries[j].Language })
	b.wordgrams[key] = entries
	return b
}

func (b *testModelBuilder) withBadHash() *testModelBuilder {
	var h uint64 = 0xdeadbeef
	b.hash = &h
	return b
}

func (b *testModelBuilder) writeSection(data []byte) simpleSection {
	off := len(b.buf)
	b.buf = append(b.buf, data...)
	return simpleSection{off: uint32(off), sz: uint32(len(data))}
}

func (b *testModelBuilder) writeTable(m map[string][]NgramEntry) ngramTableSection {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	entryLists := make([][]NgramEntry, len(keys))
	for i, k := range keys {
		entryLists[i] = m[k]
	}

	var keysData []byte
	keysIdx := make([]byte, 0, 4*(len(keys)+1))
	var zero [4]byte
	keysIdx = append(keysIdx, zero[:]...)

	var entriesData []byte
	entriesIdx := make([]byte, 0, 4*(len(keys)+1))
	entriesIdx = append(entriesIdx, zero[:]...)

	for i, k := range keys {
		keysData = append(keysData, []byte(k)...)
		var off [4]byte
		binary.BigEndian.PutUint32(off[:], uint32(len(keysData)))
		keysIdx = append(keysIdx, off[:]...)

		for _, e := range entryLists[i] {
			var rec [entryByteSize]byte
			binary.BigEndian.PutUint16(rec[:2], uint16(e.Language))
			binary.BigEndian.PutUint64(rec[2:], math.Float64bits(e.LogProb))
			entriesData = append(entriesData, rec[:]...)
		}
		var eoff [4]byte
		binary.BigEndian.PutUint32(eoff[:], uint32(len(entriesData)))
		entriesIdx = append(entriesIdx, eoff[:]...)
	}

	return ngramTableSection{
		keys: indexedSection{
			data:  b.writeSection(keysData),
			index: b.writeSection(keysIdx),
		},
		entries: indexedSection{
			data:  b.writeSection(entriesData),
			index: b.writeSection(entriesIdx),
		},
	}
}

// build assembles the full file bytes: section bodies, then the TOC
// blob, then the 8-byte (tocOff, tocSz) trailer.
func (b *testModelBuilder) build() []byte {
	var toc modelTOC

	hash := EnumerationHash()
	if b.hash != nil {
		hash = *b.hash
	}
	var hashBytes [8]byte
	binary.BigEndian.PutUint64(hashBytes[:], hash)
	toc.hash = b.writeSection(hashBytes[:])

	floorBytes := make([]byte, 8*NumScriptLanguages)
	for i, f := range b.langFloors {
		binary.BigEndian.PutUint64(floorBytes[i*8:], math.Float64bits(f))
	}
	toc.langFloors = b.writeSection(floorBytes)

	for i := range b.ngrams {
		toc.ngrams[i] = b.writeTable(b.ngrams[i])
	}
	toc.wordgrams = b.writeTable(b.wordgrams)

	var wgFloorBytes [8]byte
	binary.BigEndian.PutUint64(wgFloorBytes[:], math.Float64bits(b.wgFloor))
	toc.wordgramFloor = b.writeSection(wgFloorBytes[:])

	tocBytes := writeTOC(&toc)
	tocOff := len(b.buf)
	b.buf = append(b.buf, tocBytes...)

	var trailer [8]byte
	binary.BigEndian.PutUint32(trailer[:4], uint32(tocOff))
	binary.BigEndian.PutUint32(trailer[4:], uint32(len(tocBytes)))
	b.buf = append(b.buf, trailer[:]...)

	return b.buf
}

// openTestStore writes b's assembled bytes to a temp file and opens it
// as a ModelsStore, registering cleanup.
func (b *testModelBuilder) openTestStore(t *testing.T) *ModelsStore {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, modelFileName)
	if err := os.WriteFile(path, b.build(), 0o644); err != nil {
		t.Fatalf("writing test model file: %v", err)
	}
	ms, err := Open(path)
	if err != nil {
		t.Fatalf("opening test model file: %v", err)
	}
	t.Cleanup(func() { _ = ms.Close() })
	return ms
}
