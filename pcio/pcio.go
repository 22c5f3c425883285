// Package pcio reads and writes point-cloud blobs.
//
// The format is a fixed little-endian header followed by the raw
// row-major float32 coordinate payload, optionally compressed:
//
//	offset size  field
//	0      4     magic "KDPC"
//	4      1     format version (currently 1)
//	5      1     compression (0 none, 1 lz4, 2 zstd)
//	6      2     reserved (zero)
//	8      4     dimensionality
//	12     8     point count
//	20     ...   payload (count*dim float32, little-endian)
//
// Only point data is persisted; the KD-tree itself is rebuilt from the
// loaded cloud.
package pcio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/hupe1980/kdgo/blobstore"
	"github.com/hupe1980/kdgo/pointcloud"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

var magic = [4]byte{'K', 'D', 'P', 'C'}

const formatVersion = 1

// maxPayloadFloats caps decoded payload size to guard against corrupt
// or hostile headers (16 GiB of float32s).
const maxPayloadFloats = 4 << 30

var (
	// ErrBadMagic is returned when a blob does not start with the
	// point-cloud magic bytes.
	ErrBadMagic = errors.New("pcio: bad magic")

	// ErrUnsupportedVersion is returned for format versions newer than
	// this package understands.
	ErrUnsupportedVersion = errors.New("pcio: unsupported format version")

	// ErrUnsupportedCompression is returned for unknown compression codes.
	ErrUnsupportedCompression = errors.New("pcio: unsupported compression")
)

// Compression selects the payload compression codec.
type Compression uint8

const (
	CompressionNone Compression = iota
	CompressionLZ4
	CompressionZstd
)

// String returns a string representation of the Compression.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionLZ4:
		return "LZ4"
	case CompressionZstd:
		return "Zstd"
	default:
		return fmt.Sprintf("Unknown(%d)", uint8(c))
	}
}

// Options contains configuration options for writing point clouds.
type Options struct {
	// Compression selects the payload codec (default none).
	Compression Compression
}

// DefaultOptions contains the default write configuration.
var DefaultOptions = Options{
	Compression: CompressionNone,
}

type header struct {
	Magic       [4]byte
	Version     uint8
	Compression uint8
	Reserved    uint16
	Dim         uint32
	Count       uint64
}

// Write encodes the cloud to w.
func Write(w io.Writer, cloud *pointcloud.Cloud, optFns ...func(o *Options)) error {
	opts := DefaultOptions

	for _, fn := range optFns {
		fn(&opts)
	}

	h := header{
		Magic:       magic,
		Version:     formatVersion,
		Compression: uint8(opts.Compression),
		Dim:         uint32(cloud.Dim()),
		Count:       uint64(cloud.Len()),
	}
	if err := binary.Write(w, binary.LittleEndian, h); err != nil {
		return err
	}

	payload, closeFn, err := compressedWriter(w, opts.Compression)
	if err != nil {
		return err
	}

	if err := writeFloats(payload, cloud.Data()); err != nil {
		closeFn()
		return err
	}

	return closeFn()
}

// Read decodes a cloud from r.
func Read(r io.Reader) (*pointcloud.Cloud, error) {
	var h header
	if err := binary.Read(r, binary.LittleEndian, &h); err != nil {
		return nil, err
	}

	if h.Magic != magic {
		return nil, ErrBadMagic
	}
	if h.Version != formatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}

	total := h.Count * uint64(h.Dim)
	if total > maxPayloadFloats {
		return nil, fmt.Errorf("pcio: payload too large: %d floats", total)
	}

	payload, closeFn, err := compressedReader(r, Compression(h.Compression))
	if err != nil {
		return nil, err
	}
	defer closeFn()

	data := make([]float32, total)
	if err := readFloats(payload, data); err != nil {
		return nil, err
	}

	return pointcloud.FromSlice(int(h.Dim), data)
}

// Save encodes the cloud and writes it to the blob store under name.
func Save(ctx context.Context, store blobstore.BlobStore, name string, cloud *pointcloud.Cloud, optFns ...func(o *Options)) error {
	var buf bytes.Buffer
	if err := Write(&buf, cloud, optFns...); err != nil {
		return err
	}
	return store.Put(ctx, name, buf.Bytes())
}

// Load opens the named blob and decodes it into a cloud.
func Load(ctx context.Context, store blobstore.BlobStore, name string) (*pointcloud.Cloud, error) {
	blob, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer blob.Close()

	return Read(bufio.NewReader(io.NewSectionReader(blob, 0, blob.Size())))
}

func compressedWriter(w io.Writer, c Compression) (io.Writer, func() error, error) {
	switch c {
	case CompressionNone:
		return w, func() error { return nil }, nil
	case CompressionLZ4:
		zw := lz4.NewWriter(w)
		return zw, zw.Close, nil
	case CompressionZstd:
		zw, err := zstd.NewWriter(w)
		if err != nil {
			return nil, nil, err
		}
		return zw, zw.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedCompression, uint8(c))
	}
}

func compressedReader(r io.Reader, c Compression) (io.Reader, func(), error) {
	switch c {
	case CompressionNone:
		return r, func() {}, nil
	case CompressionLZ4:
		return lz4.NewReader(r), func() {}, nil
	case CompressionZstd:
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, nil, err
		}
		return zr.IOReadCloser(), zr.Close, nil
	default:
		return nil, nil, fmt.Errorf("%w: %d", ErrUnsupportedCompression, uint8(c))
	}
}

// writeFloats streams values in fixed-size chunks to avoid one big
// staging buffer for large clouds.
func writeFloats(w io.Writer, values []float32) error {
	const chunkFloats = 4096
	buf := make([]byte, chunkFloats*4)

	for len(values) > 0 {
		n := len(values)
		if n > chunkFloats {
			n = chunkFloats
		}
		for i, v := range values[:n] {
			binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
		}
		if _, err := w.Write(buf[:n*4]); err != nil {
			return err
		}
		values = values[n:]
	}

	return nil
}

func readFloats(r io.Reader, dst []float32) error {
	const chunkFloats = 4096
	buf := make([]byte, chunkFloats*4)

	for len(dst) > 0 {
		n := len(dst)
		if n > chunkFloats {
			n = chunkFloats
		}
		if _, err := io.ReadFull(r, buf[:n*4]); err != nil {
			return err
		}
		for i := range dst[:n] {
			dst[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
		}
		dst = dst[n:]
	}

	return nil
}
