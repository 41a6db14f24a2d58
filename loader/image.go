// Package loader reads the plain-text hex memory images the SP
// simulator boots from: one 8-hex-digit instruction word per line, up
// to the full 64K-word SRAM, injected identically into both the
// instruction and data memories — the reference model's load_program
// behavior (fscanf("%08x") per line into memory_image[], then
// llsim_mem_inject into both srami and sramd).
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/archlab/spsim/sram"
)

// MaxWords is the largest image this loader will accept: one word per
// address in the 64K-word SRAM address space.
const MaxWords = sram.Height

// Image holds a loaded program as a flat slice of 32-bit words,
// address 0 first.
type Image struct {
	Words []uint32
}

// LoadOption configures an optional behavior of Load.
type LoadOption func(*loadOptions)

type loadOptions struct {
	trace io.Writer
}

// WithTraceWriter directs Load to append a one-line "program %s
// loaded, %d lines" record to w once the image is read, mirroring
// sp.c's load_program writing the same line to inst_trace_fp.
func WithTraceWriter(w io.Writer) LoadOption {
	return func(o *loadOptions) { o.trace = w }
}

// Load reads path as a hex memory image: one 8-digit hex word per
// line, blank lines and lines starting with "#" ignored. It stops once
// MaxWords words have been read, matching the reference loader's
// SP_SRAM_HEIGHT bound.
func Load(path string, opts ...LoadOption) (*Image, error) {
	var o loadOptions
	for _, opt := range opts {
		opt(&o)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	img, err := Read(f)
	if err != nil {
		return nil, err
	}

	if o.trace != nil {
		fmt.Fprintf(o.trace, "program %s loaded, %d lines\n", path, len(img.Words))
	}

	return img, nil
}

// Read parses a hex memory image from r. See Load for the format.
func Read(r io.Reader) (*Image, error) {
	img := &Image{}
	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() && len(img.Words) < MaxWords {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		word, err := strconv.ParseUint(line, 16, 32)
		if err != nil {
			return nil, fmt.Errorf("loader: line %d: %q is not an 8-digit hex word: %w", lineNo, line, err)
		}
		img.Words = append(img.Words, uint32(word))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("loader: %w", err)
	}
	return img, nil
}

// InjectInto populates both srami and sramd with the image's words
// starting at address 0, identically, matching the reference loader
// writing the same memory_image[] contents into both banks.
func (img *Image) InjectInto(srami, sramd *sram.Port) {
	for addr, word := range img.Words {
		srami.Inject(uint32(addr), word)
		sramd.Inject(uint32(addr), word)
	}
}
