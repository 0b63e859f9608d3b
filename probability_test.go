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
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestToRelativeEmpty(t *testing.T) {
	assert.Nil(t, toRelative(nil))
}

func TestToRelativeTiedZeros(t *testing.T) {
	probs := []LanguageProbability{
		{Language: English, LogProb: 0.0},
		{Language: German, LogProb: 0.0},
		{Language: French, LogProb: -1.0},
	}
	rel := toRelative(probs)
	assert.Len(t, rel, 2)
	for _, r := range rel {
		assert.InDelta(t, 0.5, r.Relative, 1e-12)
	}
}

func TestToRelativeAllNegativeInfinity(t *testing.T) {
	probs := []LanguageProbability{
		{Language: English, LogProb: math.Inf(-1)},
		{Language: German, LogProb: math.Inf(-1)},
	}
	rel := toRelative(probs)
	require := assert.New(t)
	require.Len(rel, 2)
	for _, r := range rel {
		require.InDelta(0.5, r.Relative, 1e-12)
	}
}

func TestToRelativeNormalizes(t *testing.T) {
	probs := []LanguageProbability{
		{Language: English, LogProb: -0.1},
		{Language: German, LogProb: -2.0},
	}
	rel := toRelative(probs)
	sum := 0.0
	for _, r := range rel {
		assert.GreaterOrEqual(t, r.Relative, 0.0)
		assert.LessOrEqual(t, r.Relative, 1.0)
		sum += r.Relative
	}
	assert.InDelta(t, 1.0, sum, 1e-9)
	// English had the higher (less negative) log-prob so it keeps the
	// larger share.
	assert.Greater(t, rel[0].Relative, rel[1].Relative)
}

func TestToRelativeUnderflowCollapsesToFirst(t *testing.T) {
	probs := []LanguageProbability{
		{Language: English, LogProb: -800},
		{Language: German, LogProb: -900},
	}
	rel := toRelative(probs)
	assert.Len(t, rel, 1)
	assert.Equal(t, English, rel[0].Language)
	assert.Equal(t, 1.0, rel[0].Relative)
}
