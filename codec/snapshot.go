package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/bitvec"
)

// Snapshot format:
//
//	[4] magic "BVSN"
//	[1] version
//	[1] compression flag (as applied, see compressPayload)
//	[uvarint] bit size
//	[uvarint] payload byte length
//	[…] payload: little-endian words, compressed per flag
const (
	magic   = "BVSN"
	version = 1
)

// maxSnapshotPayload bounds the declared payload length a reader will
// allocate for, guarding against corrupt headers.
const maxSnapshotPayload = 1 << 36

var (
	// ErrBadMagic is returned when the input does not start with a
	// snapshot header.
	ErrBadMagic = errors.New("not a bitvec snapshot")

	// ErrShortBuffer is returned when a word dump is shorter than the
	// vector it claims to hold.
	ErrShortBuffer = errors.New("buffer too short for vector size")
)

// Encode writes a snapshot of v to w.
func Encode(w io.Writer, v *bitvec.Vector, comp Compression) error {
	raw := MarshalWords(v)
	payload, applied, err := compressPayload(raw, comp)
	if err != nil {
		return fmt.Errorf("codec: compress snapshot: %w", err)
	}

	hdr := make([]byte, 0, len(magic)+2+2*binary.MaxVarintLen64)
	hdr = append(hdr, magic...)
	hdr = append(hdr, version, byte(applied))
	hdr = binary.AppendUvarint(hdr, uint64(v.Len()))
	hdr = binary.AppendUvarint(hdr, uint64(len(payload)))

	if _, err := w.Write(hdr); err != nil {
		return fmt.Errorf("codec: write snapshot header: %w", err)
	}
	if _, err := w.Write(payload); err != nil {
		return fmt.Errorf("codec: write snapshot payload: %w", err)
	}
	return nil
}

// Decode reads a snapshot from r and reconstructs the vector.
func Decode(r io.Reader) (*bitvec.Vector, error) {
	br := newByteReader(r)

	var m [len(magic)]byte
	if _, err := io.ReadFull(br, m[:]); err != nil {
		return nil, fmt.Errorf("codec: read snapshot magic: %w", err)
	}
	if string(m[:]) != magic {
		return nil, ErrBadMagic
	}

	ver, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("codec: read snapshot version: %w", err)
	}
	if ver != version {
		return nil, fmt.Errorf("codec: unsupported snapshot version %d", ver)
	}

	compByte, err := br.ReadByte()
	if err != nil {
		return nil, fmt.Errorf("codec: read compression flag: %w", err)
	}

	size, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("codec: read vector size: %w", err)
	}
	payloadLen, err := binary.ReadUvarint(br)
	if err != nil {
		return nil, fmt.Errorf("codec: read payload length: %w", err)
	}
	if payloadLen > maxSnapshotPayload {
		return nil, fmt.Errorf("codec: payload length %d exceeds limit", payloadLen)
	}

	payload := make([]byte, payloadLen)
	if _, err := io.ReadFull(br, payload); err != nil {
		return nil, fmt.Errorf("codec: read snapshot payload: %w", err)
	}

	wordCount := (size + 63) / 64
	if wordCount*8 > maxSnapshotPayload {
		return nil, fmt.Errorf("codec: vector size %d exceeds limit", size)
	}
	raw, err := decompressPayload(payload, Compression(compByte), int(wordCount)*8)
	if err != nil {
		return nil, fmt.Errorf("codec: decompress snapshot: %w", err)
	}
	return UnmarshalWords(raw, int(size))
}

// MarshalWords returns the words of r as flat little-endian bytes, 8 bytes
// per word, lowest word first.
func MarshalWords(r bitvec.WordReader) []byte {
	buf := make([]byte, r.Words()*8)
	for wi := 0; wi < r.Words(); wi++ {
		binary.LittleEndian.PutUint64(buf[wi*8:], r.Word(wi))
	}
	return buf
}

// UnmarshalWords reconstructs a vector of the given size from a flat
// little-endian word dump. data must hold at least ceil(size/8) bytes; a
// trailing partial word may be truncated at the byte level. Bytes beyond
// the vector's words are ignored, and hanging bits are discarded.
func UnmarshalWords(data []byte, size int) (*bitvec.Vector, error) {
	v, err := bitvec.New(size)
	if err != nil {
		return nil, err
	}
	if len(data) < (size+7)/8 {
		return nil, ErrShortBuffer
	}

	for wi := 0; wi < v.Words(); wi++ {
		off := wi * 8
		var w uint64
		if off+8 <= len(data) {
			w = binary.LittleEndian.Uint64(data[off:])
		} else {
			for i, b := range data[off:] {
				w |= uint64(b) << uint(8*i)
			}
		}
		v.SetWord(wi, w)
	}
	return v, nil
}

// byteReader adapts any reader to the io.ByteReader that
// binary.ReadUvarint needs. It reads one byte at a time and never buffers
// ahead, so the caller's reader position stays exact.
type byteReader struct {
	io.Reader
}

func newByteReader(r io.Reader) byteReader {
	return byteReader{Reader: r}
}

func (b byteReader) ReadByte() (byte, error) {
	var buf [1]byte
	_, err := io.ReadFull(b.Reader, buf[:])
	return buf[0], err
}
