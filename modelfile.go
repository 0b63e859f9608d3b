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
	"log"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cespare/xxhash/v2"
	humanize "github.com/dustin/go-humanize"
	mmap "github.com/edsrzf/mmap-go"
	"github.com/pkg/errors"
)

// modelFileName is the conventional name of the packed model artifact.
const modelFileName = "langram_models.bin"

// envModelsPath is the environment override for the model file location.
const envModelsPath = "LANGRAM_MODELS_PATH"

// fallbackModelsPath is the conventional absolute path tried last, when
// no more specific path is given.
const fallbackModelsPath = "/usr/local/share/langram/" + modelFileName

// reader walks a byte slice sequentially, a small cursor for pulling
// fixed-width fields out of a mmap'd region before any of it is trusted.
type reader struct {
	b   []byte
	off int
}

func (r *reader) u32() (uint32, error) {
	if r.off+4 > len(r.b) {
		return 0, errors.New("langram: truncated model file (u32)")
	}
	v := binary.BigEndian.Uint32(r.b[r.off:])
	r.off += 4
	return v, nil
}

func (r *reader) u64() (uint64, error) {
	if r.off+8 > len(r.b) {
		return 0, errors.New("langram: truncated model file (u64)")
	}
	v := binary.BigEndian.Uint64(r.b[r.off:])
	r.off += 8
	return v, nil
}

// NgramEntry is one (language, log-probability) observation attached to
// an n-gram key.
type NgramEntry struct {
	Language ScriptLanguage
	LogProb  float64
}

// NgramEntries is the sorted-by-language_id list ModelsStore returns for
// a single key.
type NgramEntries []NgramEntry

const entryByteSize = 10 // uint16 langID + float64 logProb, BigEndian

// ngramTable is the in-memory index ModelsStore builds on open for one
// packed table: a map from the raw n-gram bytes to the absolute file
// range holding that key's NgramEntries. Building the map is the one
// O(keys) pass ModelsStore pays at open time; every lookup after that is
// O(1) average with zero further allocation until the caller decodes an
// entry out of the mapped bytes.
type ngramTable struct {
	index map[string]simpleSection
}

// buildTable indexes one packed table's keys and also enforces the two
// invariants the training pipeline is supposed to guarantee at write
// time: every key's entry list is non-empty, and sorted ascending by
// language id.
func (ms *ModelsStore) buildTable(sec ngramTableSection) (ngramTable, error) {
	keysData := ms.section(sec.keys.data)
	keysIdx := ms.section(sec.keys.index)
	entriesData := ms.section(sec.entries.data)
	entriesIdx := ms.section(sec.entries.index)

	n := len(keysIdx)/4 - 1
	if n < 0 {
		return ngramTable{}, errors.New("langram: corrupt keys index section")
	}
	if len(entriesIdx)/4-1 != n {
		return ngramTable{}, errors.New("langram: keys/entries index length mismatch")
	}

	t := ngramTable{index: make(map[string]simpleSection, n)}
	for i := 0; i < n; i++ {
		kStart := binary.BigEndian.Uint32(keysIdx[i*4:])
		kEnd := binary.BigEndian.Uint32(keysIdx[(i+1)*4:])
		if kEnd < kStart || int(kEnd) > len(keysData) {
			return ngramTable{}, errors.New("langram: corrupt key offset")
		}
		key := string(keysData[kStart:kEnd])

		eStart := binary.BigEndian.Uint32(entriesIdx[i*4:])
		eEnd := binary.BigEndian.Uint32(entriesIdx[(i+1)*4:])
		if eEnd < eStart || (eEnd-eStart)%entryByteSize != 0 || int(eEnd) > len(entriesData) {
			return ngramTable{}, errors.New("langram: corrupt entries offset")
		}
		if eEnd == eStart {
			return ngramTable{}, &ErrModelDecodeError{Detail: "empty entry list for key " + strconv.Quote(key)}
		}

		prevLang := -1
		for off := eStart; off < eEnd; off += entryByteSize {
			lang := int(binary.BigEndian.Uint16(entriesData[off:]))
			if lang < prevLang {
				return ngramTable{}, &ErrModelDecodeError{Detail: "entry list for key " + strconv.Quote(key) + " is not sorted by lang_id"}
			}
			prevLang = lang
		}

		t.index[key] = simpleSection{off: sec.entries.data.off + eStart, sz: eEnd - eStart}
	}
	return t, nil
}

// lookup returns the decoded NgramEntries for key, or ok=false. Decoding
// is lazy: only the entries belonging to this one key are ever touched.
func (ms *ModelsStore) lookup(t *ngramTable, key []byte) (NgramEntries, bool) {
	sec, ok := t.index[string(key)]
	if !ok {
		return nil, false
	}
	raw := ms.section(sec)
	out := make(NgramEntries, len(raw)/entryByteSize)
	for i := range out {
		b := raw[i*entryByteSize:]
		out[i] = NgramEntry{
			Language: ScriptLanguage(binary.BigEndian.Uint16(b)),
			LogProb:  math.Float64frombits(binary.BigEndian.Uint64(b[2:])),
		}
	}
	return out, true
}

// ModelsStore provides zero-copy read access to the packed model file.
// It is created once per process and shared; all its exported accessors
// are safe for concurrent use since the backing mmap is never mutated
// after Open.
type ModelsStore struct {
	path string
	mm   mmap.MMap

	hash          uint64
	langFloors    []float64 // indexed by ScriptLanguage
	tables        [ngramCharSizeCount]ngramTable
	wordgrams     ngramTable
	wordgramFloor float64
}

// section returns the byte range s describes as a slice aliasing the
// mapped file; it never copies.
func (ms *ModelsStore) section(s simpleSection) []byte {
	return ms.mm[s.off : s.off+s.sz]
}

// resolveModelPath implements the resolution order: explicit env
// override, then a file beside the running executable, then a
// conventional fallback path.
func resolveModelPath() (string, []string) {
	var tried []string

	if p := os.Getenv(envModelsPath); p != "" {
		tried = append(tried, p)
		if _, err := os.Stat(p); err == nil {
			return p, tried
		}
	}

	if exe, err := os.Executable(); err == nil {
		p := filepath.Join(filepath.Dir(exe), modelFileName)
		tried = append(tried, p)
		if _, err := os.Stat(p); err == nil {
			return p, tried
		}
	}

	tried = append(tried, fallbackModelsPath)
	if _, err := os.Stat(fallbackModelsPath); err == nil {
		return fallbackModelsPath, tried
	}

	return "", tried
}

// OpenDefault resolves the model file path and opens it.
func OpenDefault() (*ModelsStore, error) {
	path, tried := resolveModelPath()
	if path == "" {
		return nil, &ErrModelFileNotFound{Tried: tried}
	}
	return Open(path)
}

// Open memory-maps the packed model file at path, validates its schema
// hash against this build's ScriptLanguage enumeration, and builds the
// in-memory key→offset indexes for every n-gram table.
func Open(path string) (*ModelsStore, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &ErrModelIoError{Path: path, Err: err}
	}
	defer f.Close()

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, &ErrModelIoError{Path: path, Err: errors.Wrap(err, "mmap")}
	}

	ms := &ModelsStore{path: path, mm: m}
	if err := ms.parse(); err != nil {
		_ = m.Unmap()
		return nil, err
	}

	log.Printf("langram: opened model file %s (%s)", path, humanize.Bytes(uint64(len(m))))
	return ms, nil
}

// parse reads the trailing TOC, validates the schema hash, and builds
// every table's key index. It never retains the reader: once this
// returns, ModelsStore only ever touches the mmap through simpleSection
// offsets resolved here.
func (ms *ModelsStore) parse() error {
	data := []byte(ms.mm)
	if len(data) < 8 {
		return &ErrModelDecodeError{Detail: "file too small to hold a TOC trailer"}
	}

	tocOff := binary.BigEndian.Uint32(data[len(data)-8:])
	tocSz := binary.BigEndian.Uint32(data[len(data)-4:])
	if int(tocOff)+int(tocSz) > len(data)-8 {
		return &ErrModelDecodeError{Detail: "TOC range out of bounds"}
	}

	r := &reader{b: data[tocOff : tocOff+tocSz]}
	count, err := r.u32()
	if err != nil {
		return &ErrModelDecodeError{Detail: err.Error()}
	}

	var toc modelTOC
	secs := toc.sections()
	if int(count) != len(secs) {
		return &ErrModelDecodeError{Detail: "unexpected TOC section count"}
	}
	for _, s := range secs {
		if err := s.read(r); err != nil {
			return &ErrModelDecodeError{Detail: err.Error()}
		}
	}

	hashBytes := ms.sectionOf(data, toc.hash)
	if len(hashBytes) != 8 {
		return &ErrModelDecodeError{Detail: "hash section has wrong size"}
	}
	ms.hash = binary.BigEndian.Uint64(hashBytes)
	if want := EnumerationHash(); ms.hash != want {
		return &ErrModelHashMismatch{StoredHash: ms.hash, WantHash: want}
	}

	floorBytes := ms.sectionOf(data, toc.langFloors)
	if len(floorBytes)%8 != 0 {
		return &ErrModelDecodeError{Detail: "lang floor section has wrong size"}
	}
	ms.langFloors = make([]float64, len(floorBytes)/8)
	for i := range ms.langFloors {
		ms.langFloors[i] = math.Float64frombits(binary.BigEndian.Uint64(floorBytes[i*8:]))
		if ms.langFloors[i] > 0 {
			return &ErrModelDecodeError{Detail: "positive language floor"}
		}
	}

	for i := range toc.ngrams {
		t, err := ms.buildTable(toc.ngrams[i])
		if err != nil {
			return err
		}
		ms.tables[i] = t
	}
	wg, err := ms.buildTable(toc.wordgrams)
	if err != nil {
		return err
	}
	ms.wordgrams = wg

	wgFloorBytes := ms.sectionOf(data, toc.wordgramFloor)
	if len(wgFloorBytes) != 8 {
		return &ErrModelDecodeError{Detail: "wordgram floor section has wrong size"}
	}
	ms.wordgramFloor = math.Float64frombits(binary.BigEndian.Uint64(wgFloorBytes))
	if ms.wordgramFloor > 0 {
		return &ErrModelDecodeError{Detail: "positive wordgram floor"}
	}

	return nil
}

func (ms *ModelsStore) sectionOf(data []byte, s simpleSection) []byte {
	return data[s.off : s.off+s.sz]
}

// Close unmaps the backing file. Further use of the store is invalid
// after Close.
func (ms *ModelsStore) Close() error {
	if err := ms.mm.Unmap(); err != nil {
		log.Printf("langram: WARN unmap %s: %v", ms.path, err)
		return err
	}
	return nil
}

// GetNgramEntries returns the sorted-by-language NgramEntries for key at
// the given character NgramSize (Uni..Five), or ok=false if the key was
// never observed during training.
func (ms *ModelsStore) GetNgramEntries(size NgramSize, key *NgramString) (NgramEntries, bool) {
	if size < Uni || size > Five {
		return nil, false
	}
	return ms.lookup(&ms.tables[size], key.Bytes())
}

// GetWordgramEntries returns the NgramEntries for a whole-word key. Unlike
// GetNgramEntries, the key is an arbitrary-length UTF-8 byte slice: words
// routinely exceed NgramString's 5-code-point capacity.
func (ms *ModelsStore) GetWordgramEntries(key []byte) (NgramEntries, bool) {
	return ms.lookup(&ms.wordgrams, key)
}

// LangFloor returns the precomputed per-language character floor
// log-probability, or negative infinity if lang has no trained profile.
func (ms *ModelsStore) LangFloor(lang ScriptLanguage) float64 {
	if int(lang) < 0 || int(lang) >= len(ms.langFloors) {
		return math.Inf(-1)
	}
	return ms.langFloors[lang]
}

// WordgramFloor returns the global word-gram floor log-probability.
func (ms *ModelsStore) WordgramFloor() float64 { return ms.wordgramFloor }

// EnumerationHash hashes the ScriptLanguage enumeration (string form, in
// id order), so Open can reject a model file trained against a
// different enumeration than this binary was built with.
func EnumerationHash() uint64 {
	h := xxhash.New()
	for i := 0; i < NumScriptLanguages; i++ {
		_, _ = h.Write([]byte(ScriptLanguage(i).String()))
		_, _ = h.Write([]byte{0})
	}
	return h.Sum64()
}
