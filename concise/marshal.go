package concise

import (
	"bytes"
	"fmt"

	"concise/internal/common"
)

const marshalVersion = 1

// MarshalBinary encodes the set as: a version byte, a WAH-mode flag byte,
// a little-endian word count, then that many little-endian words.
func (s *Set) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	wordCount := s.lastWordIndex + 1

	if _, err := common.WriteUint8(&buf, marshalVersion); err != nil {
		return nil, err
	}
	wahFlag := uint8(0)
	if s.simulateWAH {
		wahFlag = 1
	}
	if _, err := common.WriteUint8(&buf, wahFlag); err != nil {
		return nil, err
	}
	if _, err := common.WriteUint32(&buf, uint32(wordCount)); err != nil {
		return nil, err
	}
	for i := 0; i < wordCount; i++ {
		if _, err := common.WriteUint32(&buf, s.words[i]); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}

// UnmarshalBinary decodes a set previously produced by MarshalBinary,
// replacing s's contents.
func (s *Set) UnmarshalBinary(data []byte) error {
	r := bytes.NewReader(data)

	version, err := common.ReadUint8(r)
	if err != nil {
		return fmt.Errorf("concise: reading version: %w", err)
	}
	if version != marshalVersion {
		return invalidArgumentError(fmt.Sprintf("unsupported encoding version %d", version))
	}

	wahFlag, err := common.ReadUint8(r)
	if err != nil {
		return fmt.Errorf("concise: reading wah flag: %w", err)
	}

	wordCount, err := common.ReadUint32(r)
	if err != nil {
		return fmt.Errorf("concise: reading word count: %w", err)
	}

	words := make([]uint32, wordCount)
	for i := range words {
		w, err := common.ReadUint32(r)
		if err != nil {
			return fmt.Errorf("concise: reading word %d: %w", i, err)
		}
		words[i] = w
	}

	s.words = words
	s.lastWordIndex = len(words) - 1
	s.simulateWAH = wahFlag != 0
	s.size = -1
	s.modCount++
	s.updateLast()
	return nil
}
