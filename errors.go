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

import "fmt"

// Error taxonomy for ModelsStore construction. Detection operations
// themselves never return an error: they degrade to an empty ranking
// instead.

// ErrModelFileNotFound is returned when none of the candidate model file
// paths could be opened.
type ErrModelFileNotFound struct {
	Tried []string
}

func (e *ErrModelFileNotFound) Error() string {
	return fmt.Sprintf("langram: no model file found, tried: %v", e.Tried)
}

// ErrModelIoError wraps a read or mmap failure.
type ErrModelIoError struct {
	Path string
	Err  error
}

func (e *ErrModelIoError) Error() string {
	return fmt.Sprintf("langram: i/o error opening model file %q: %v", e.Path, e.Err)
}

func (e *ErrModelIoError) Unwrap() error { return e.Err }

// ErrModelDecodeError wraps an archive parse or validation failure.
type ErrModelDecodeError struct {
	Detail string
}

func (e *ErrModelDecodeError) Error() string {
	return "langram: model decode error: " + e.Detail
}

// ErrNoLanguagesConfigured is returned by DetectorBuilder.Build when the
// builder holds no languages: neither Languages nor AllLanguages was
// called, or Languages was called with no arguments.
type ErrNoLanguagesConfigured struct{}

func (e *ErrNoLanguagesConfigured) Error() string {
	return "langram: DetectorBuilder: no languages configured"
}

// ErrModelHashMismatch reports a schema incompatibility between the
// binary model file and this library's built-in ScriptLanguage
// enumeration. The caller must rebuild the model file against the
// enumeration this binary was built with.
type ErrModelHashMismatch struct {
	StoredHash uint64
	WantHash   uint64
}

func (e *ErrModelHashMismatch) Error() string {
	return fmt.Sprintf("langram: model hash mismatch: file has %#x, enumeration wants %#x", e.StoredHash, e.WantHash)
}
