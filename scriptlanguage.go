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

import "golang.org/x/text/language"

// ScriptLanguage is a dense, non-negative id identifying one (language,
// script) pair. The same natural language written in two different
// scripts gets two distinct ids, because their n-gram statistics differ
// completely.
//
// The full upstream enumeration this library is modeled after carries
// ~190 trained profiles plus further script-only entries, for roughly 350
// ids total. This port ships a curated subset large enough to exercise
// every code path and a representative spread of scripts; see DESIGN.md
// for why the rest isn't reproduced here. The id space is left open
// (NumScriptLanguages is a var-free compile-time constant) so a denser
// table can be dropped in later without touching the detection engine.
type ScriptLanguage uint16

// scriptLanguageInfo is everything the library itself needs to know about
// an enumeration entry: its canonical BCP-47 tag (returned by Tag()), the
// script it's written in (used to build the bundled default segmenter's
// script→language map), and its enumeration name (returned by String()).
type scriptLanguageInfo struct {
	tag    language.Tag
	script string // Unicode script name, matching unicode.Scripts keys
	name   string
}

// The enumeration order here is the wire format: it's hashed into the
// packed model file (§3 "A hash of the enumeration... is stored in the
// model file") and used as the array index for every per-language buffer
// in Scorer and Detector. Never reorder or remove an entry; append only.
const (
	English ScriptLanguage = iota
	German
	French
	Spanish
	Portuguese
	Italian
	Dutch
	Swedish
	Danish
	NorwegianBokmal
	NorwegianNynorsk
	Icelandic
	Finnish
	Polish
	Czech
	Slovak
	Slovenian
	Croatian
	Serbian
	Bulgarian
	Russian
	Ukrainian
	Belarusian
	Kazakh
	Greek
	Turkish
	Hungarian
	Romanian
	Lithuanian
	Latvian
	Estonian
	Albanian
	Macedonian
	Hebrew
	Arabic
	Urdu
	Persian
	Hindi
	Bengali
	Punjabi
	Gujarati
	Tamil
	Telugu
	Kannada
	Malayalam
	Marathi
	Nepali
	Sinhala
	Thai
	Lao
	Burmese
	Khmer
	Vietnamese
	Indonesian
	Malay
	Tagalog
	Japanese
	Korean
	Mongolian
	Amharic
	Georgian
	Armenian
	Azerbaijani
	Swahili
	Zulu
	Afrikaans
	Welsh
	Irish
	Basque
	Catalan
	Esperanto
	Latin
	ChineseMandarinSimplified
	ChineseMandarinTraditional

	// numScriptLanguages must stay last: it's the dense bound every
	// per-language array in this package is sized to.
	numScriptLanguages
)

// NumScriptLanguages is the size of the dense ScriptLanguage id space.
const NumScriptLanguages = int(numScriptLanguages)

// scriptLanguageTable is built from BCP-47 tags via language.MustParse
// rather than the package's predefined Tag vars (language.German and
// friends): MustParse only needs the tag string to be well-formed, so it
// doesn't depend on which convenience vars a given x/text release
// happens to export.
var scriptLanguageTable = [numScriptLanguages]scriptLanguageInfo{
	English:                    {language.MustParse("en"), "Latin", "English"},
	German:                     {language.MustParse("de"), "Latin", "German"},
	French:                     {language.MustParse("fr"), "Latin", "French"},
	Spanish:                    {language.MustParse("es"), "Latin", "Spanish"},
	Portuguese:                 {language.MustParse("pt"), "Latin", "Portuguese"},
	Italian:                    {language.MustParse("it"), "Latin", "Italian"},
	Dutch:                      {language.MustParse("nl"), "Latin", "Dutch"},
	Swedish:                    {language.MustParse("sv"), "Latin", "Swedish"},
	Danish:                     {language.MustParse("da"), "Latin", "Danish"},
	NorwegianBokmal:            {language.MustParse("nb"), "Latin", "NorwegianBokmal"},
	NorwegianNynorsk:           {language.MustParse("nn"), "Latin", "NorwegianNynorsk"},
	Icelandic:                  {language.MustParse("is"), "Latin", "Icelandic"},
	Finnish:                    {language.MustParse("fi"), "Latin", "Finnish"},
	Polish:                     {language.MustParse("pl"), "Latin", "Polish"},
	Czech:                      {language.MustParse("cs"), "Latin", "Czech"},
	Slovak:                     {language.MustParse("sk"), "Latin", "Slovak"},
	Slovenian:                  {language.MustParse("sl"), "Latin", "Slovenian"},
	Croatian:                   {language.MustParse("hr"), "Latin", "Croatian"},
	Serbian:                    {language.MustParse("sr"), "Cyrillic", "Serbian"},
	Bulgarian:                  {language.MustParse("bg"), "Cyrillic", "Bulgarian"},
	Russian:                    {language.MustParse("ru"), "Cyrillic", "Russian"},
	Ukrainian:                  {language.MustParse("uk"), "Cyrillic", "Ukrainian"},
	Belarusian:                 {language.MustParse("be"), "Cyrillic", "Belarusian"},
	Kazakh:                     {language.MustParse("kk"), "Cyrillic", "Kazakh"},
	Greek:                      {language.MustParse("el"), "Greek", "Greek"},
	Turkish:                    {language.MustParse("tr"), "Latin", "Turkish"},
	Hungarian:                  {language.MustParse("hu"), "Latin", "Hungarian"},
	Romanian:                   {language.MustParse("ro"), "Latin", "Romanian"},
	Lithuanian:                 {language.MustParse("lt"), "Latin", "Lithuanian"},
	Latvian:                    {language.MustParse("lv"), "Latin", "Latvian"},
	Estonian:                   {language.MustParse("et"), "Latin", "Estonian"},
	Albanian:                   {language.MustParse("sq"), "Latin", "Albanian"},
	Macedonian:                 {language.MustParse("mk"), "Cyrillic", "Macedonian"},
	Hebrew:                     {language.MustParse("he"), "Hebrew", "Hebrew"},
	Arabic:                     {language.MustParse("ar"), "Arabic", "Arabic"},
	Urdu:                       {language.MustParse("ur"), "Arabic", "Urdu"},
	Persian:                    {language.MustParse("fa"), "Arabic", "Persian"},
	Hindi:                      {language.MustParse("hi"), "Devanagari", "Hindi"},
	Bengali:                    {language.MustParse("bn"), "Bengali", "Bengali"},
	Punjabi:                    {language.MustParse("pa"), "Gurmukhi", "Punjabi"},
	Gujarati:                   {language.MustParse("gu"), "Gujarati", "Gujarati"},
	Tamil:                      {language.MustParse("ta"), "Tamil", "Tamil"},
	Telugu:                     {language.MustParse("te"), "Telugu", "Telugu"},
	Kannada:                    {language.MustParse("kn"), "Kannada", "Kannada"},
	Malayalam:                  {language.MustParse("ml"), "Malayalam", "Malayalam"},
	Marathi:                    {language.MustParse("mr"), "Devanagari", "Marathi"},
	Nepali:                     {language.MustParse("ne"), "Devanagari", "Nepali"},
	Sinhala:                    {language.MustParse("si"), "Sinhala", "Sinhala"},
	Thai:                       {language.MustParse("th"), "Thai", "Thai"},
	Lao:                        {language.MustParse("lo"), "Lao", "Lao"},
	Burmese:                    {language.MustParse("my"), "Myanmar", "Burmese"},
	Khmer:                      {language.MustParse("km"), "Khmer", "Khmer"},
	Vietnamese:                 {language.MustParse("vi"), "Latin", "Vietnamese"},
	Indonesian:                 {language.MustParse("id"), "Latin", "Indonesian"},
	Malay:                      {language.MustParse("ms"), "Latin", "Malay"},
	Tagalog:                    {language.MustParse("fil"), "Latin", "Tagalog"},
	Japanese:                   {language.MustParse("ja"), "Han", "Japanese"},
	Korean:                     {language.MustParse("ko"), "Hangul", "Korean"},
	Mongolian:                  {language.MustParse("mn"), "Cyrillic", "Mongolian"},
	Amharic:                    {language.MustParse("am"), "Ethiopic", "Amharic"},
	Georgian:                   {language.MustParse("ka"), "Georgian", "Georgian"},
	Armenian:                   {language.MustParse("hy"), "Armenian", "Armenian"},
	Azerbaijani:                {language.MustParse("az"), "Latin", "Azerbaijani"},
	Swahili:                    {language.MustParse("sw"), "Latin", "Swahili"},
	Zulu:                       {language.MustParse("zu"), "Latin", "Zulu"},
	Afrikaans:                  {language.MustParse("af"), "Latin", "Afrikaans"},
	Welsh:                      {language.MustParse("cy"), "Latin", "Welsh"},
	Irish:                      {language.MustParse("ga"), "Latin", "Irish"},
	Basque:                     {language.MustParse("eu"), "Latin", "Basque"},
	Catalan:                    {language.MustParse("ca"), "Latin", "Catalan"},
	Esperanto:                  {language.MustParse("eo"), "Latin", "Esperanto"},
	Latin:                      {language.MustParse("la"), "Latin", "Latin"},
	ChineseMandarinSimplified:  {language.MustParse("zh-Hans"), "Han", "ChineseMandarinSimplified"},
	ChineseMandarinTraditional: {language.MustParse("zh-Hant"), "Han", "ChineseMandarinTraditional"},
}

// String returns the enumeration name, e.g. "NorwegianBokmal".
func (l ScriptLanguage) String() string {
	if int(l) < 0 || int(l) >= NumScriptLanguages {
		return "ScriptLanguage(?)"
	}
	return scriptLanguageTable[l].name
}

// Tag returns the canonical BCP-47 language tag for l.
func (l ScriptLanguage) Tag() language.Tag { return scriptLanguageTable[l].tag }

// Script returns the Unicode script name (matching the stdlib unicode.Scripts
// table keys) this ScriptLanguage is written in.
func (l ScriptLanguage) Script() string { return scriptLanguageTable[l].script }

// AllScriptLanguages returns every enumeration member in id order, the
// same default DetectorBuilder.AllLanguages() seeds itself with.
func AllScriptLanguages() []ScriptLanguage {
	all := make([]ScriptLanguage, NumScriptLanguages)
	for i := range all {
		all[i] = ScriptLanguage(i)
	}
	return all
}

// Word is one segmented word: its code points, in original order, with
// separators already stripped by the WordSegmenter.
type Word struct {
	Buf []rune
}

// ScriptLanguageCount pairs a ScriptLanguage with a tally, the shape the
// WordSegmenter's script-evidence accumulator returns.
type ScriptLanguageCount struct {
	Language ScriptLanguage
	Count    int
}

// ScriptID identifies a Unicode script, external to this package. The
// bundled default classifier in internal/defaultscript uses Unicode
// script names as ScriptID values; any conformant implementation may use
// a different representation since it's only ever round-tripped through
// ScriptClassifier itself.
type ScriptID string

// ScriptClassifier maps code points to scripts and scripts to the
// languages recognized in them. It describes the classifier contract
// only: no function in this package takes a ScriptClassifier, and the
// Detector receives script evidence solely through WordSegmenter's tally.
// internal/defaultscript does its own classification with its FindScript
// function and a script→language map; it has no type implementing this
// interface.
type ScriptClassifier interface {
	FindScript(r rune) ScriptID
	ScriptToLanguages(s ScriptID) []ScriptLanguage
}

// WordSegmenter turns a text's char stream into words plus per-(language)
// script-evidence tally. It is an external collaborator: word boundary
// detection and script-evidence accumulation are deliberately out of
// this library's scope.
type WordSegmenter interface {
	Segment(text string) (words []Word, tally []ScriptLanguageCount)
}
