// Package image implements the append-only word vector that carries the
// assembled code and data, each word tagged with the source line that
// produced it (for diagnostics emitted during later passes).
package image

// Word is one entry in an Image: a 10-bit value plus the source line that
// produced it.
type Word struct {
	Value uint16
	Line  int
}

// Image is an append-only sequence of words.
type Image struct {
	words []Word
}

// Push appends a word to the image and returns the 0-based offset it was
// written to, relative to the start of this image.
func (img *Image) Push(value uint16, line int) int {
	offset := len(img.words)
	img.words = append(img.words, Word{Value: value, Line: line})
	return offset
}

// Len returns the number of words currently in the image.
func (img *Image) Len() int {
	return len(img.words)
}

// Words returns the underlying word slice. Callers must not retain it
// across further Push calls.
func (img *Image) Words() []Word {
	return img.words
}

// Set overwrites the word at offset, preserving its recorded line, for
// callers that need in-place patching. Neither pass calls it: pass 1
// reserves placeholder words with Push and pass 2 builds its own image.
func (img *Image) Set(offset int, value uint16) {
	img.words[offset].Value = value
}

// Append concatenates other onto img, returning the offset at which
// other's first word landed. The assembler pipeline keeps code and data as
// separate images; the object writer places data after code itself.
func (img *Image) Append(other *Image) int {
	base := len(img.words)
	img.words = append(img.words, other.words...)
	return base
}
