// Package encoder converts binary files into C string-literal array declarations.
package encoder

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
)

const (
	// DefaultWrapWidth is the character tally at which a new quoted segment starts.
	DefaultWrapWidth = 160

	// OutputSuffix is appended to the input path to form the output path.
	OutputSuffix = ".c"

	escapeWidth = 4 // len(`\xHH`)
	hexDigits   = "0123456789abcdef"
)

// Identifier derives the array name from the input path.
// Every '.' becomes '_'; nothing else is touched.
func Identifier(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}

// OutputPath returns the path the declaration for input is written to.
func OutputPath(input string) string {
	return input + OutputSuffix
}

// Encoder writes array declarations with a fixed wrap width.
type Encoder struct {
	// WrapWidth is the tally (4 per escape) that forces a new segment.
	WrapWidth int

	segments int
}

// New returns an Encoder using the given wrap width.
// A width of 0 selects DefaultWrapWidth.
func New(wrapWidth int) *Encoder {
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}
	return &Encoder{WrapWidth: wrapWidth}
}

// Segments reports how many quoted segments the last Encode call produced.
func (e *Encoder) Segments() int {
	return e.segments
}

// Encode reads r to EOF and writes the declaration of name to w.
//
// The running tally starts at 1 and is reset to 1 after each wrap, so with the
// default width every segment carries 40 escapes. When the input length is a
// positive multiple of that count the declaration ends with an empty "" segment.
func (e *Encoder) Encode(w io.Writer, name string, r io.Reader) error {
	width := e.WrapWidth
	if width <= 0 {
		width = DefaultWrapWidth
	}

	bw := bufio.NewWriter(w)
	br := bufio.NewReader(r)

	bw.WriteString("static const char ")
	bw.WriteString(name)
	bw.WriteString("[] = \n\t\"")

	e.segments = 1
	tally := 1
	esc := [escapeWidth]byte{'\\', 'x'}
	for {
		b, err := br.ReadByte()
		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}
		esc[2] = hexDigits[b>>4]
		esc[3] = hexDigits[b&0x0f]
		bw.Write(esc[:])

		tally += escapeWidth
		if tally >= width {
			bw.WriteString("\"\n\t\"")
			e.segments++
			tally = 1
		}
	}

	bw.WriteString("\";\n")
	return bw.Flush()
}

// Encode writes the declaration of name for data to w using the default width.
func Encode(w io.Writer, name string, data []byte) error {
	return New(DefaultWrapWidth).Encode(w, name, bytes.NewReader(data))
}

// WriteFunc persists the encoded declaration at path.
type WriteFunc func(path string, data []byte) error

// Options control Convert.
type Options struct {
	// WrapWidth overrides DefaultWrapWidth when positive.
	WrapWidth int
	// Write persists the output. Defaults to a direct overwrite.
	Write WriteFunc
}

// Result describes a completed conversion.
type Result struct {
	Input      string
	Output     string
	Identifier string
	Bytes      int
	Segments   int
}

// Convert reads input, encodes it and writes OutputPath(input).
// Read and write failures are returned as *FileAccessError.
func Convert(ctx context.Context, input string, opts Options) (Result, error) {
	res := Result{
		Input:      input,
		Output:     OutputPath(input),
		Identifier: Identifier(input),
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return res, &FileAccessError{Op: "read", Path: input, Err: unwrapPathError(err)}
	}
	res.Bytes = len(data)
	slog.Debug("read input", "path", input, "bytes", res.Bytes)

	var buf bytes.Buffer
	buf.Grow(len(data)*escapeWidth + len(data)/10 + len(res.Identifier) + 32)

	enc := New(opts.WrapWidth)
	if err := enc.Encode(&buf, res.Identifier, bytes.NewReader(data)); err != nil {
		return res, fmt.Errorf("failed to encode %s: %w", input, err)
	}
	res.Segments = enc.Segments()

	if err := ctx.Err(); err != nil {
		return res, err
	}

	write := opts.Write
	if write == nil {
		write = writeDirect
	}
	if err := write(res.Output, buf.Bytes()); err != nil {
		return res, &FileAccessError{Op: "write", Path: res.Output, Err: unwrapPathError(err)}
	}
	slog.Debug("wrote output", "path", res.Output, "segments", res.Segments)

	return res, nil
}

func writeDirect(path string, data []byte) error {
	return os.WriteFile(path, data, 0644)
}

// unwrapPathError strips *os.PathError so the path is not reported twice.
func unwrapPathError(err error) error {
	var pe *os.PathError
	if errors.As(err, &pe) {
		return pe.Err
	}
	return err
}
