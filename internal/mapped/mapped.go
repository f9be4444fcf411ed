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

// Package mapped makes a measurements file available as one read-only
// byte slice.
package mapped

import (
	"fmt"
	"os"
	"strings"

	"github.com/edsrzf/mmap-go"
	"github.com/klauspost/compress/zstd"
)

// Input is the whole content of a measurements file. Plain files are
// memory mapped; ".zst" files are decompressed into memory.
type Input struct {
	data []byte
	m    mmap.MMap
}

// Open maps the file at name.
func Open(name string) (*Input, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", name, err)
	}
	size := fi.Size()
	if size == 0 {
		return &Input{}, nil
	}
	if size < 0 || size != int64(int(size)) {
		return nil, fmt.Errorf("invalid file size of %s: %d", name, size)
	}

	m, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("mmap %s: %w", name, err)
	}

	if strings.HasSuffix(name, ".zst") {
		data, err := decompress(m)
		if uerr := m.Unmap(); uerr != nil && err == nil {
			err = uerr
		}
		if err != nil {
			return nil, fmt.Errorf("decompress %s: %w", name, err)
		}
		return &Input{data: data}, nil
	}

	advise(m)
	return &Input{data: m, m: m}, nil
}

func decompress(src []byte) ([]byte, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(0))
	if err != nil {
		return nil, err
	}
	defer dec.Close()
	return dec.DecodeAll(src, nil)
}

// Bytes returns the file content. It must not be modified and is only
// valid until Close.
func (in *Input) Bytes() []byte {
	return in.data
}

// Close releases the mapping.
func (in *Input) Close() error {
	in.data = nil
	if in.m == nil {
		return nil
	}
	err := in.m.Unmap()
	in.m = nil
	if err != nil {
		return fmt.Errorf("munmap: %w", err)
	}
	return nil
}
