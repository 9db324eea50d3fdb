// Package codec serializes bit vectors as flat little-endian word dumps,
// optionally compressed.
//
// Codec selection is a compatibility boundary: the compression flag is
// recorded in the snapshot header, so snapshots decode regardless of the
// writer's choice, but bytes produced by a newer format version may not
// decode on older readers.
package codec

import (
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the payload compression algorithm.
type Compression uint8

const (
	// None stores the word dump as-is.
	None Compression = 0
	// LZ4 uses LZ4 block compression (fast, good for hot snapshots).
	LZ4 Compression = 1
	// ZSTD uses ZSTD block compression (better ratio, good for cold
	// snapshots).
	ZSTD Compression = 2
)

func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case ZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	zstdDecoderPool.Put(dec)
}

// compressPayload compresses the word dump. The returned flag is the
// compression actually applied: an incompressible payload (or one whose
// compressed form saves less than 10%) is stored raw under None.
func compressPayload(data []byte, comp Compression) ([]byte, Compression, error) {
	if comp == None || len(data) == 0 {
		return data, None, nil
	}

	var compressed []byte
	switch comp {
	case LZ4:
		bound := lz4.CompressBlockBound(len(data))
		buf := make([]byte, bound)
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, None, err
		}
		if n == 0 {
			// Incompressible.
			return data, None, nil
		}
		compressed = buf[:n]
	case ZSTD:
		enc := getZstdEncoder()
		defer putZstdEncoder(enc)
		compressed = enc.EncodeAll(data, nil)
	default:
		return nil, None, fmt.Errorf("unknown compression: %d", comp)
	}

	if float64(len(compressed)) > float64(len(data))*0.9 {
		return data, None, nil
	}
	return compressed, comp, nil
}

// decompressPayload reverses compressPayload into a buffer of rawLen bytes.
func decompressPayload(data []byte, comp Compression, rawLen int) ([]byte, error) {
	switch comp {
	case None:
		if len(data) < rawLen {
			return nil, errors.New("payload shorter than declared size")
		}
		return data[:rawLen], nil
	case LZ4:
		out := make([]byte, rawLen)
		n, err := lz4.UncompressBlock(data, out)
		if err != nil {
			return nil, err
		}
		if n != rawLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	case ZSTD:
		dec := getZstdDecoder()
		defer putZstdDecoder(dec)
		out, err := dec.DecodeAll(data, make([]byte, 0, rawLen))
		if err != nil {
			return nil, err
		}
		if len(out) != rawLen {
			return nil, errors.New("decompressed size mismatch")
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unknown compression: %d", comp)
	}
}
