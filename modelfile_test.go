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
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModelsStoreOpenAndAccessors(t *testing.T) {
	b := newTestModelBuilder().
		setLangFloor(English, -5.0).
		setLangFloor(German, -6.0).
		setWordgramFloor(-8.0).
		addNgram(Uni, "g", NgramEntry{Language: English, LogProb: -1.0}, NgramEntry{Language: German, LogProb: -0.5}).
		addNgram(Tri, "gro", NgramEntry{Language: German, LogProb: -0.2}).
		addWordgram("groß", NgramEntry{Language: German, LogProb: -0.1})

	ms := b.openTestStore(t)

	key := NewNgramString([]rune("g"))
	entries, ok := ms.GetNgramEntries(Uni, &key)
	require.True(t, ok)
	require.Len(t, entries, 2)
	assert.Equal(t, English, entries[0].Language)
	assert.InDelta(t, -1.0, entries[0].LogProb, 1e-12)
	assert.Equal(t, German, entries[1].Language)

	triKey := NewNgramString([]rune("gro"))
	triEntries, ok := ms.GetNgramEntries(Tri, &triKey)
	require.True(t, ok)
	require.Len(t, triEntries, 1)

	wgEntries, ok := ms.GetWordgramEntries([]byte("groß"))
	require.True(t, ok)
	require.Len(t, wgEntries, 1)

	_, ok = ms.GetNgramEntries(Uni, &NgramString{})
	assert.False(t, ok)

	assert.InDelta(t, -5.0, ms.LangFloor(English), 1e-12)
	assert.InDelta(t, -6.0, ms.LangFloor(German), 1e-12)
	assert.True(t, math.IsInf(ms.LangFloor(French), -1))
	assert.InDelta(t, -8.0, ms.WordgramFloor(), 1e-12)
}

func TestModelsStoreHashMismatch(t *testing.T) {
	b := newTestModelBuilder().withBadHash()
	dir := t.TempDir()
	path := dir + "/bad.bin"
	require.NoError(t, os.WriteFile(path, b.build(), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var mismatch *ErrModelHashMismatch
	require.ErrorAs(t, err, &mismatch)
}

func TestModelsStoreRejectsEmptyEntryList(t *testing.T) {
	b := newTestModelBuilder().addNgram(Tri, "zzz")
	dir := t.TempDir()
	path := dir + "/empty.bin"
	require.NoError(t, os.WriteFile(path, b.build(), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var decodeErr *ErrModelDecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestModelsStoreRejectsUnsortedEntryList(t *testing.T) {
	b := newTestModelBuilder().addNgramRaw(Tri, "zzz",
		NgramEntry{Language: German, LogProb: -0.1},
		NgramEntry{Language: English, LogProb: -0.2},
	)
	dir := t.TempDir()
	path := dir + "/unsorted.bin"
	require.NoError(t, os.WriteFile(path, b.build(), 0o644))

	_, err := Open(path)
	require.Error(t, err)
	var decodeErr *ErrModelDecodeError
	require.ErrorAs(t, err, &decodeErr)
}

func TestModelsStoreFileNotFound(t *testing.T) {
	_, err := Open("/nonexistent/path/to/langram_models.bin")
	require.Error(t, err)
	var ioErr *ErrModelIoError
	require.ErrorAs(t, err, &ioErr)
}
