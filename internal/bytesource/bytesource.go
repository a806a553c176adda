// Package bytesource materializes an XRK/XRZ file into a single decoded
// in-memory buffer: it resolves the file's container format (raw XRK vs a
// compressed XRZ wrapper) and hands every other component plain XRK bytes.
package bytesource

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"

	"github.com/scottsmith/xrklog/compress"
	"github.com/scottsmith/xrklog/errs"
	"github.com/scottsmith/xrklog/format"
	"github.com/scottsmith/xrklog/internal/pool"
	"github.com/scottsmith/xrklog/section"
)

// ByteSource owns the fully decoded (raw XRK) byte buffer for one Parse
// call. Close returns its backing buffer to the shared pool; callers must
// not retain Bytes() past Close.
type ByteSource struct {
	path string
	buf  *pool.ByteBuffer
}

// Open reads path, determines its container format by extension and/or
// magic sniff, transparently decompresses an XRZ wrapper if present, and
// returns a ByteSource over the resulting raw XRK bytes.
func Open(path string) (*ByteSource, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.NewIOError(path, err)
	}

	decoded, err := decode(path, raw)
	if err != nil {
		return nil, err
	}

	buf := pool.GetFileBuffer()
	buf.MustWrite(decoded)

	return &ByteSource{path: path, buf: buf}, nil
}

// decode returns raw XRK bytes from the container, decompressing it first
// if it is not already raw XRK. The extension is a hint, not a
// requirement: content already carrying the XRK magic is accepted as raw
// regardless of extension (an .xrz file that happens to hold uncompressed
// XRK bytes is valid), and an .xrk extension whose content doesn't is
// still given a shot at magic-sniffed decompression rather than rejected
// outright, since firmware naming is not authoritative.
func decode(path string, raw []byte) ([]byte, error) {
	if bytes.HasPrefix(raw, section.Magic[:]) {
		return raw, nil
	}

	algo := compress.Sniff(raw)
	if algo == format.CompressionNone {
		detail := "neither raw XRK magic nor a recognized compression header"
		if looksLikeXRZ(path) {
			detail += " (file has an .xrz extension but no recognized compression magic)"
		}

		return nil, errs.NewFormatError(0, errs.ReasonBadMagic, detail)
	}

	codec, err := compress.GetCodec(algo)
	if err != nil {
		return nil, errs.NewFormatError(0, errs.ReasonBadCompression, err.Error())
	}

	decoded, err := codec.Decompress(raw)
	if err != nil {
		return nil, errs.NewFormatError(0, errs.ReasonBadCompression, err.Error())
	}

	if !bytes.HasPrefix(decoded, section.Magic[:]) {
		return nil, errs.NewFormatError(0, errs.ReasonBadMagic, "decompressed payload is not raw XRK")
	}

	return decoded, nil
}

// looksLikeXRZ reports whether path's extension suggests a compressed
// container. It is informational only; decode always verifies by content.
func looksLikeXRZ(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".xrz")
}

// Bytes returns the decoded raw XRK byte slice. Valid until Close.
func (s *ByteSource) Bytes() []byte {
	return s.buf.Bytes()
}

// Path returns the source file path Open was called with.
func (s *ByteSource) Path() string {
	return s.path
}

// Close returns the backing buffer to the shared pool.
func (s *ByteSource) Close() error {
	pool.PutFileBuffer(s.buf)
	s.buf = nil

	return nil
}
