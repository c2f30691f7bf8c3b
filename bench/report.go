package bench

import (
	"fmt"
	"time"

	"github.com/hupe1980/mcvol/codec"
	"github.com/hupe1980/mcvol/internal/cpuinfo"
)

// Report wraps the rows of one experiment with the host it ran on.
type Report[T any] struct {
	Kind    string       `json:"kind"`
	Codec   string       `json:"codec"`
	Created time.Time    `json:"created"`
	Seed    uint64       `json:"seed"`
	Host    cpuinfo.Info `json:"host"`
	Rows    []T          `json:"rows"`
}

// NewReport creates a report stamped with the current time and host.
func NewReport[T any](kind string, seed uint64, rows []T) Report[T] {
	return Report[T]{
		Kind:    kind,
		Created: time.Now().UTC(),
		Seed:    seed,
		Host:    cpuinfo.Detect(),
		Rows:    rows,
	}
}

// Encode marshals the report with c and frames it with comp unless comp is
// CompressionNone. A nil codec selects codec.Default.
func (r Report[T]) Encode(c codec.Codec, comp codec.Compression) ([]byte, error) {
	if c == nil {
		c = codec.Default
	}
	r.Codec = c.Name()

	data, err := c.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("bench: encode %s report: %w", r.Kind, err)
	}
	if comp == codec.CompressionNone {
		return data, nil
	}
	return codec.Compress(data, comp)
}

// DecodeReport reverses Encode. Framed input is decompressed first.
func DecodeReport[T any](data []byte, c codec.Codec) (Report[T], error) {
	if c == nil {
		c = codec.Default
	}

	if _, err := codec.FrameCompression(data); err == nil {
		raw, err := codec.Decompress(data)
		if err != nil {
			return Report[T]{}, err
		}
		data = raw
	}

	var r Report[T]
	if err := c.Unmarshal(data, &r); err != nil {
		return Report[T]{}, fmt.Errorf("bench: decode report: %w", err)
	}
	return r, nil
}
