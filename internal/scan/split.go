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

package scan

import "bytes"

// Split divides data into at most n contiguous chunks of roughly
// len(data)/n bytes. Every chunk but the last ends right after a '\n',
// so no record is cut in two. Empty data yields no chunks.
func Split(data []byte, n int) [][]byte {
	if len(data) == 0 {
		return nil
	}
	if n <= 0 {
		n = 1
	}

	chunkSize := len(data) / n
	if chunkSize == 0 {
		chunkSize = len(data)
	}

	chunks := make([][]byte, 0, n)
	start := 0
	for start < len(data) {
		end := start + chunkSize
		if end >= len(data) || len(chunks) == n-1 {
			chunks = append(chunks, data[start:])
			break
		}

		// a boundary that already follows a '\n' stays where it is
		nlPos := bytes.IndexByte(data[end-1:], '\n')
		if nlPos == -1 {
			chunks = append(chunks, data[start:])
			break
		}
		end += nlPos
		chunks = append(chunks, data[start:end])
		start = end
	}
	return chunks
}
