package main

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"concise/concise"
)

var log = logrus.New()

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <file.cbm>\n", os.Args[0])
		os.Exit(1)
	}
	inspectFile(os.Args[1])
}

func inspectFile(path string) {
	data, err := os.ReadFile(path)
	if err != nil {
		log.WithError(err).Fatal("failed to read file")
	}

	s := concise.New()
	if err := s.UnmarshalBinary(data); err != nil {
		log.WithError(err).Fatal("failed to decode CONCISE bitmap")
	}

	fmt.Printf("Inspecting: %s\n", path)
	fmt.Println()
	fmt.Printf("WAH mode:   %v\n", s.WAHMode())
	fmt.Printf("Elements:   %d\n", s.Size())
	if s.IsEmpty() {
		fmt.Println("Words:      0 (empty)")
		return
	}

	last, err := s.Last()
	if err != nil {
		log.WithError(err).Fatal("failed to read last element")
	}
	fmt.Printf("Highest:    %d\n", last)
	fmt.Printf("Compression ratio:  %.4f\n", s.CompressionRatio())
	fmt.Printf("Words per element:  %.4f\n", s.CollectionCompressionRatio())
	fmt.Println()

	printWordLayout(data)
}

// printWordLayout decodes the persisted word array directly from the bytes
// read from disk, rather than from the Set already built above, so the
// printed offsets match what a hex dump of the file would show.
func printWordLayout(data []byte) {
	const headerLen = 6 // version byte + WAH flag byte + 4-byte word count
	if len(data) < headerLen {
		fmt.Println("(truncated header, cannot print word layout)")
		return
	}

	wordCount := int(data[2]) | int(data[3])<<8 | int(data[4])<<16 | int(data[5])<<24
	fmt.Printf("Words:      %d\n", wordCount)
	fmt.Println()

	offset := headerLen
	for i := 0; i < wordCount && offset+4 <= len(data); i++ {
		w := uint32(data[offset]) | uint32(data[offset+1])<<8 | uint32(data[offset+2])<<16 | uint32(data[offset+3])<<24
		fmt.Printf("word[%d] = 0x%08X  %s\n", i, w, describeWord(w))
		offset += 4
	}
}

func describeWord(w uint32) string {
	const literalBit = uint32(1) << 31
	const sequenceFillBit = uint32(1) << 30
	if w&literalBit != 0 {
		return fmt.Sprintf("literal bits=0x%07X", w&(literalBit-1))
	}
	fill := "zero"
	if w&sequenceFillBit != 0 {
		fill = "one"
	}
	flip := (w >> 25) & 0x1F
	count := w & 0x1FFFFFF
	if flip == 0 {
		return fmt.Sprintf("%s-sequence blocks=%d", fill, count+1)
	}
	return fmt.Sprintf("%s-sequence blocks=%d flip=bit%d", fill, count+1, flip-1)
}
