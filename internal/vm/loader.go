package vm

// loader.go reads a program image: a flat file of 2N bytes encoding N
// consecutive 16-bit words, big-endian by default. Unlike an LC-3 object
// file, this format carries no origin header; programs always load at
// PCStart.

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
)

// ReadProgram reads a whole program image from r. If littleEndian is set,
// each word's bytes are swapped after reading big-endian. An image with an
// odd byte count is rejected, since the remainder byte has no valid
// interpretation as a word.
func ReadProgram(r io.Reader, littleEndian bool) ([]Word, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: reading program: %w", errProgram, err)
	}

	if len(raw)%2 != 0 {
		return nil, fmt.Errorf("%w: odd byte length %d", errProgram, len(raw))
	}

	words := make([]Word, len(raw)/2)
	if err := binary.Read(bytes.NewReader(raw), binary.BigEndian, words); err != nil {
		return nil, fmt.Errorf("%w: decoding words: %w", errProgram, err)
	}

	if littleEndian {
		for i, w := range words {
			words[i] = Word(w>>8) | Word(w<<8)
		}
	}

	return words, nil
}
