package shsm

import (
	"encoding/hex"

	"golang.org/x/crypto/blake2b"
)

// Digest is a BLAKE2b-256 digest of a byte stream.
type Digest [blake2b.Size256]byte

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}

func (d Digest) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Report is the result of re-encoding decoded data and comparing it with the
// original.
type Report struct {
	Size          int    `json:"size"`
	EncodedSize   int    `json:"encoded_size"`
	Digest        Digest `json:"digest"`
	EncodedDigest Digest `json:"encoded_digest"`
	Identical     bool   `json:"identical"`

	// DiffOffset is the offset of the first byte that differs between the
	// streams, or -1 if they are identical. If one stream is a prefix of the
	// other, DiffOffset is the length of the shorter stream.
	DiffOffset int64 `json:"diff_offset"`
}

// Verify decodes b, encodes the resulting model, and reports whether the
// encoded bytes are identical to b.
func (d Decoder) Verify(b []byte) (report *Report, warn, err error) {
	model, warn, err := d.decode(b)
	if err != nil {
		return nil, warn, err
	}
	out, err := Encoder{}.encode(model)
	if err != nil {
		return nil, warn, err
	}
	report = &Report{
		Size:          len(b),
		EncodedSize:   len(out),
		Digest:        blake2b.Sum256(b),
		EncodedDigest: blake2b.Sum256(out),
		DiffOffset:    firstDiff(b, out),
	}
	report.Identical = report.DiffOffset < 0
	return report, warn, nil
}

// Verify checks the round trip of b using a default Decoder. Warnings are
// discarded.
func Verify(b []byte) (*Report, error) {
	report, _, err := Decoder{}.Verify(b)
	return report, err
}

func firstDiff(a, b []byte) int64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			return int64(i)
		}
	}
	if len(a) != len(b) {
		return int64(n)
	}
	return -1
}
