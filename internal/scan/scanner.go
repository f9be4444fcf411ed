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

// Package scan splits a measurements buffer into record-aligned chunks and
// walks the "<station>;<temperature>\n" records of a chunk without
// copying.
package scan

import (
	"bytes"
	"errors"
	"fmt"

	"xpug.it/stationstats/internal/fixedpoint"
)

// ErrMalformedRecord is reported in strict mode for a record whose station
// name is empty, runs over a line terminator or holds a zero byte.
var ErrMalformedRecord = errors.New("malformed record")

// Scanner yields the records of a buffer in order, one per call to Next.
// It cannot be restarted. Key returns a sub-slice of the buffer.
//
// A final fragment without a ';' is dropped. A final record that has its
// ';' but no trailing newline is returned like any other.
type Scanner struct {
	data   []byte
	pos    int
	strict bool

	key   []byte
	value int64
	err   error
}

// New returns a Scanner that trusts its input. Temperatures outside the
// grammar decode to unspecified values.
func New(data []byte) *Scanner {
	return &Scanner{data: data}
}

// NewStrict returns a Scanner that validates every record and stops at
// the first malformed one.
func NewStrict(data []byte) *Scanner {
	return &Scanner{data: data, strict: true}
}

// Next advances to the next record and reports whether there is one.
func (s *Scanner) Next() bool {
	if s.err != nil || s.pos >= len(s.data) {
		return false
	}
	rest := s.data[s.pos:]

	semi := bytes.IndexByte(rest, ';')
	if semi < 0 {
		s.pos = len(s.data)
		return false
	}
	name := rest[:semi]
	rest = rest[semi+1:]

	temp := rest
	consumed := semi + 1 + len(rest)
	if nl := bytes.IndexByte(rest, '\n'); nl >= 0 {
		temp = rest[:nl]
		consumed = semi + 1 + nl + 1
	}

	if s.strict {
		if err := s.check(name, temp); err != nil {
			s.err = err
			return false
		}
	} else {
		s.value = fixedpoint.Parse(temp)
	}
	s.key = name
	s.pos += consumed
	return true
}

func (s *Scanner) check(name, temp []byte) error {
	if len(name) == 0 || bytes.IndexByte(name, '\n') >= 0 || bytes.IndexByte(name, 0) >= 0 {
		return fmt.Errorf("record at byte %d: %w", s.pos, ErrMalformedRecord)
	}
	v, err := fixedpoint.ParseStrict(temp)
	if err != nil {
		return fmt.Errorf("record at byte %d: %w", s.pos, err)
	}
	s.value = v
	return nil
}

// Key returns the station name of the current record.
func (s *Scanner) Key() []byte {
	return s.key
}

// Value returns the temperature of the current record, scaled by
// fixedpoint.Scale.
func (s *Scanner) Value() int64 {
	return s.value
}

// Offset returns the number of bytes consumed so far.
func (s *Scanner) Offset() int {
	return s.pos
}

// Err returns the error that stopped a strict Scanner, if any.
func (s *Scanner) Err() error {
	return s.err
}
