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

import "math"

// LanguageProbability pairs a ScriptLanguage with its raw log-probability,
// the element type Detector.Probabilities returns.
type LanguageProbability struct {
	Language ScriptLanguage
	LogProb  float64
}

// LanguageRelative pairs a ScriptLanguage with a normalized relative
// probability in [0, 1].
type LanguageRelative struct {
	Language ScriptLanguage
	Relative float64
}

// toRelative normalizes a descending-sorted, non-empty probs slice into
// relative shares summing to 1.
func toRelative(probs []LanguageProbability) []LanguageRelative {
	if len(probs) == 0 {
		return nil
	}

	first := probs[0].LogProb

	if first == 0.0 {
		k := 1
		for k < len(probs) && probs[k].LogProb == 0.0 {
			k++
		}
		share := 1.0 / float64(k)
		out := make([]LanguageRelative, k)
		for i := 0; i < k; i++ {
			out[i] = LanguageRelative{Language: probs[i].Language, Relative: share}
		}
		return out
	}

	if math.IsInf(first, -1) {
		share := 1.0 / float64(len(probs))
		out := make([]LanguageRelative, len(probs))
		for i, p := range probs {
			out[i] = LanguageRelative{Language: p.Language, Relative: share}
		}
		return out
	}

	exps := make([]float64, len(probs))
	var sum float64
	for i, p := range probs {
		exps[i] = math.Exp(p.LogProb)
		sum += exps[i]
	}
	if sum == 0 {
		return []LanguageRelative{{Language: probs[0].Language, Relative: 1.0}}
	}
	out := make([]LanguageRelative, len(probs))
	for i, p := range probs {
		out[i] = LanguageRelative{Language: p.Language, Relative: exps[i] / sum}
	}
	return out
}
