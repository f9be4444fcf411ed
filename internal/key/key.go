//
//   Copyright 2023 The original authors
//
//   Licensed under the Apache License, Version 2.0 (the "License");
//   you may not use this file except in compliance with the License.
//   You may obtain a copy of the License at
//
//       http://www.apache.org/licenses/LICENSE-2.0
//
//   Unless required by applicable law or agreed to in writing, software
//   distributed under the License is distributed on an "AS IS" BASIS,
//   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//   See the License for the specific language governing permissions and
//   limitations under the License.
//

// Package key turns station names into comparable map keys.
//
// Names of up to Capacity bytes are copied into a zero-padded array that
// lives inside the Key value, so the common case needs no heap storage and
// compares as two machine words. Longer names are borrowed: the Key keeps
// a string header pointing at the caller's bytes, which must stay
// unchanged and reachable for as long as the Key is in use. For a mapped
// input file that is the lifetime of the whole job.
package key

import (
	"bytes"
	"strings"
	"unsafe"

	"github.com/zeebo/xxh3"
)

// Capacity is the longest name stored inline.
const Capacity = 16

// Key identifies a station. Exactly one of inline and borrowed is set,
// chosen by the name length alone, so equal names always produce equal
// Keys. Names must not contain zero bytes.
type Key struct {
	inline   [Capacity]byte
	borrowed string
}

// Encode returns the Key for name. Names longer than Capacity are not
// copied.
func Encode(name []byte) Key {
	var k Key
	if len(name) <= Capacity {
		copy(k.inline[:], name)
		return k
	}
	k.borrowed = unsafe.String(unsafe.SliceData(name), len(name))
	return k
}

// Inline reports whether the name is stored inside the Key.
func (k Key) Inline() bool {
	return k.borrowed == ""
}

// Bytes decodes the name, which must not be modified. For inline keys
// that is the buffer up to the first zero byte, or the full buffer for a
// name of exactly Capacity bytes, aliasing *k.
func (k *Key) Bytes() []byte {
	if !k.Inline() {
		return unsafe.Slice(unsafe.StringData(k.borrowed), len(k.borrowed))
	}
	n := k.inlineLen()
	return k.inline[:n:n]
}

// String returns a copy of the name.
func (k Key) String() string {
	if !k.Inline() {
		return strings.Clone(k.borrowed)
	}
	return string(k.inline[:k.inlineLen()])
}

func (k *Key) inlineLen() int {
	if n := bytes.IndexByte(k.inline[:], 0); n >= 0 {
		return n
	}
	return Capacity
}

// Hash returns a 64-bit hash consistent with ==. Inline keys are hashed
// over the whole padded buffer.
func (k Key) Hash() uint64 {
	if !k.Inline() {
		return xxh3.HashString(k.borrowed)
	}
	return xxh3.Hash(k.inline[:])
}
