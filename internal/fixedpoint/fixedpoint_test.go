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

package fixedpoint

import (
	"errors"
	"fmt"
	"testing"
)

func TestParse(t *testing.T) {
	for _, tc := range []struct {
		value    string
		expected string
	}{
		{value: "-99.9", expected: "-999"},
		{value: "-12.3", expected: "-123"},
		{value: "-3.4", expected: "-34"},
		{value: "-1.5", expected: "-15"},
		{value: "-1.0", expected: "-10"},
		{value: "-0.0", expected: "0"},
		{value: "0.0", expected: "0"},
		{value: "0.3", expected: "3"},
		{value: "5.0", expected: "50"},
		{value: "12.3", expected: "123"},
		{value: "99.9", expected: "999"},
	} {
		if number := Parse([]byte(tc.value)); fmt.Sprintf("%d", number) != tc.expected {
			t.Errorf("Wrong parsing of %v, expected: %s, got: %d", tc.value, tc.expected, number)
		}
	}
}

func TestParseUnsupportedLength(t *testing.T) {
	for _, value := range []string{"", "1", "1.", "-100.0", "123.45"} {
		if number := Parse([]byte(value)); number != 0 {
			t.Errorf("Parse(%q) = %d, want fallback 0", value, number)
		}
	}
}

func TestParseMatchesStrictOnEveryValue(t *testing.T) {
	for tenths := -999; tenths <= 999; tenths++ {
		sign := ""
		abs := tenths
		if tenths < 0 {
			sign, abs = "-", -tenths
		}
		text := fmt.Sprintf("%s%d.%d", sign, abs/10, abs%10)

		got, err := ParseStrict([]byte(text))
		if err != nil {
			t.Fatalf("ParseStrict(%q) error: %v", text, err)
		}
		if got != int64(tenths) {
			t.Fatalf("ParseStrict(%q) = %d, want %d", text, got, tenths)
		}
		if fast := Parse([]byte(text)); fast != got {
			t.Fatalf("Parse(%q) = %d, ParseStrict = %d", text, fast, got)
		}
	}
}

func TestParseStrictRejects(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"empty", ""},
		{"no fraction", "12"},
		{"two fraction digits", "1.23"},
		{"three integer digits", "100.0"},
		{"plus sign", "+1.0"},
		{"letters", "ab.c"},
		{"missing dot", "12-3"},
		{"lone minus", "-"},
		{"carriage return", "1.0\r"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseStrict([]byte(tt.value))
			if !errors.Is(err, ErrMalformed) {
				t.Errorf("ParseStrict(%q) error = %v, want ErrMalformed", tt.value, err)
			}
		})
	}
}

var parseSink int64

func BenchmarkParse(b *testing.B) {
	data1 := []byte("1.2")
	data2 := []byte("-12.3")

	for i := 0; i < b.N; i++ {
		parseSink = Parse(data1) + Parse(data2)
	}
}

func BenchmarkParseStrict(b *testing.B) {
	data1 := []byte("1.2")
	data2 := []byte("-12.3")

	for i := 0; i < b.N; i++ {
		v1, _ := ParseStrict(data1)
		v2, _ := ParseStrict(data2)
		parseSink = v1 + v2
	}
}
