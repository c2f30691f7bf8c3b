package codec

import (
	"encoding/binary"
	"errors"
	"fmt"
	"sync"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the algorithm applied to an encoded payload.
type Compression uint8

const (
	// CompressionNone stores the payload as-is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZstd uses zstd (better ratio).
	CompressionZstd Compression = 2
)

// String returns the stable name of the compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZstd:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// Extension returns the file suffix for the compression, including the dot.
func (c Compression) Extension() string {
	switch c {
	case CompressionLZ4:
		return ".lz4"
	case CompressionZstd:
		return ".zst"
	default:
		return ""
	}
}

// ParseCompression maps a name ("none", "lz4", "zstd") to a Compression.
func ParseCompression(name string) (Compression, error) {
	switch name {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCompression, name)
	}
}

var (
	// ErrUnknownCompression is returned for an unsupported algorithm.
	ErrUnknownCompression = errors.New("codec: unknown compression")

	// ErrCorruptFrame is returned when a frame header or body is inconsistent.
	ErrCorruptFrame = errors.New("codec: corrupt frame")
)

// Frame format: [magic 'M'][Compression uint8][UncompressedSize uint32][StoredSize uint32][Data...]
// StoredSize == 0 means Data holds the payload uncompressed.
const (
	frameMagic      = 'M'
	frameHeaderSize = 10
)

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

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil)
	return dec
}

// Compress frames data with the given algorithm. If compression does not
// shrink the payload below 90% of its size, the frame stores it raw.
func Compress(data []byte, c Compression) ([]byte, error) {
	if uint64(len(data)) > 1<<32-1 {
		return nil, fmt.Errorf("codec: payload of %d bytes exceeds frame limit", len(data))
	}

	var compressed []byte
	switch c {
	case CompressionNone:
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(data)))
		n, err := lz4.CompressBlock(data, buf, nil)
		if err != nil {
			return nil, err
		}
		compressed = buf[:n]
	case CompressionZstd:
		enc := getZstdEncoder()
		compressed = enc.EncodeAll(data, nil)
		zstdEncoderPool.Put(enc)
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}

	stored := compressed
	if len(compressed) == 0 || float64(len(compressed)) > float64(len(data))*0.9 {
		stored = nil
	}

	out := make([]byte, frameHeaderSize, frameHeaderSize+max(len(stored), len(data)))
	out[0] = frameMagic
	out[1] = byte(c)
	binary.LittleEndian.PutUint32(out[2:], uint32(len(data)))
	binary.LittleEndian.PutUint32(out[6:], uint32(len(stored)))
	if stored == nil {
		return append(out, data...), nil
	}
	return append(out, stored...), nil
}

// Decompress reverses Compress. The algorithm is read from the frame header.
func Decompress(frame []byte) ([]byte, error) {
	c, rawSize, storedSize, err := readHeader(frame)
	if err != nil {
		return nil, err
	}
	body := frame[frameHeaderSize:]

	if storedSize == 0 {
		if uint32(len(body)) != rawSize {
			return nil, fmt.Errorf("%w: want %d raw bytes, have %d", ErrCorruptFrame, rawSize, len(body))
		}
		out := make([]byte, rawSize)
		copy(out, body)
		return out, nil
	}
	if uint32(len(body)) != storedSize {
		return nil, fmt.Errorf("%w: want %d stored bytes, have %d", ErrCorruptFrame, storedSize, len(body))
	}

	out := make([]byte, rawSize)
	switch c {
	case CompressionLZ4:
		n, err := lz4.UncompressBlock(body, out)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(n) != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return out, nil
	case CompressionZstd:
		dec := getZstdDecoder()
		defer zstdDecoderPool.Put(dec)
		decoded, err := dec.DecodeAll(body, out[:0])
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrCorruptFrame, err)
		}
		if uint32(len(decoded)) != rawSize {
			return nil, fmt.Errorf("%w: decompressed size mismatch", ErrCorruptFrame)
		}
		return decoded, nil
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownCompression, uint8(c))
	}
}

// FrameCompression reports the algorithm recorded in a frame header.
func FrameCompression(frame []byte) (Compression, error) {
	c, _, _, err := readHeader(frame)
	return c, err
}

func readHeader(frame []byte) (Compression, uint32, uint32, error) {
	if len(frame) < frameHeaderSize || frame[0] != frameMagic {
		return 0, 0, 0, fmt.Errorf("%w: missing header", ErrCorruptFrame)
	}
	return Compression(frame[1]),
		binary.LittleEndian.Uint32(frame[2:]),
		binary.LittleEndian.Uint32(frame[6:]),
		nil
}
