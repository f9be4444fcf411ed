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

// Package fixedpoint decodes the temperature format of the measurements
// file, "^-?[0-9]{1,2}[.][0-9]$", into integers scaled by ten.
package fixedpoint

import (
	"errors"
	"fmt"
)

// Scale is the factor between a decoded value and its display units.
const Scale = 10

// ErrMalformed is returned by ParseStrict for input outside the grammar.
var ErrMalformed = errors.New("malformed temperature")

// Parse reads a decimal number that matches "^-?[0-9]{1,2}[.][0-9]",
// e.g.: -12.3, -3.4, 5.6, 78.9 and returns the value*10, i.e. -123, -34,
// 56, 789. Digits are taken by position and nothing is validated; input of
// any length other than 3, 4 or 5 returns 0.
func Parse(data []byte) int64 {
	switch len(data) {
	// -12.3
	case 5:
		return -(int64(data[1])*100 + int64(data[2])*10 + int64(data[4]) - '0'*(100+10+1))
	case 4:
		// -1.2
		if data[0] == '-' {
			return -(int64(data[1])*10 + int64(data[3]) - '0'*(10+1))
		}
		// 12.3
		return int64(data[0])*100 + int64(data[1])*10 + int64(data[3]) - '0'*(100+10+1)
	// 1.2
	case 3:
		return int64(data[0])*10 + int64(data[2]) - '0'*(10+1)
	}
	return 0
}

// ParseStrict is Parse preceded by a full check of the grammar.
func ParseStrict(data []byte) (int64, error) {
	if !valid(data) {
		return 0, fmt.Errorf("%w: %q", ErrMalformed, data)
	}
	return Parse(data), nil
}

func valid(data []byte) bool {
	if len(data) > 0 && data[0] == '-' {
		data = data[1:]
	}
	switch len(data) {
	case 3:
		return isDigit(data[0]) && data[1] == '.' && isDigit(data[2])
	case 4:
		return isDigit(data[0]) && isDigit(data[1]) && data[2] == '.' && isDigit(data[3])
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
