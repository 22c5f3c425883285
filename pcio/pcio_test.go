package pcio

import (
	"bytes"
	"context"
	"testing"

	"github.com/hupe1980/kdgo/blobstore"
	"github.com/hupe1980/kdgo/pointcloud"
	"github.com/hupe1980/kdgo/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteRead(t *testing.T) {
	rng := testutil.NewRNG(41)
	cloud := testutil.RandomCloud(rng, 3, 1000, -100, 100)

	for _, compression := range []Compression{CompressionNone, CompressionLZ4, CompressionZstd} {
		t.Run(compression.String(), func(t *testing.T) {
			var buf bytes.Buffer
			err := Write(&buf, cloud, func(o *Options) {
				o.Compression = compression
			})
			require.NoError(t, err)

			got, err := Read(&buf)
			require.NoError(t, err)

			assert.Equal(t, cloud.Dim(), got.Dim())
			assert.Equal(t, cloud.Len(), got.Len())
			assert.Equal(t, cloud.Data(), got.Data())
		})
	}
}

func TestWriteRead_EmptyCloud(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, pointcloud.New(3)))

	got, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.Equal(t, 3, got.Dim())
}

func TestRead_Errors(t *testing.T) {
	t.Run("bad magic", func(t *testing.T) {
		_, err := Read(bytes.NewReader(make([]byte, 64)))
		assert.ErrorIs(t, err, ErrBadMagic)
	})

	t.Run("truncated header", func(t *testing.T) {
		_, err := Read(bytes.NewReader([]byte{'K', 'D'}))
		assert.Error(t, err)
	})

	t.Run("truncated payload", func(t *testing.T) {
		var buf bytes.Buffer
		cloud, err := pointcloud.FromSlice(3, []float32{1, 2, 3, 4, 5, 6})
		require.NoError(t, err)
		require.NoError(t, Write(&buf, cloud))

		_, err = Read(bytes.NewReader(buf.Bytes()[:buf.Len()-4]))
		assert.Error(t, err)
	})

	t.Run("unsupported version", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, pointcloud.New(2)))

		data := buf.Bytes()
		data[4] = 99

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnsupportedVersion)
	})

	t.Run("unsupported compression", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, Write(&buf, pointcloud.New(2)))

		data := buf.Bytes()
		data[5] = 42

		_, err := Read(bytes.NewReader(data))
		assert.ErrorIs(t, err, ErrUnsupportedCompression)
	})
}

func TestSaveLoad(t *testing.T) {
	ctx := context.Background()
	store := blobstore.NewMemoryStore()

	rng := testutil.NewRNG(42)
	cloud := testutil.RandomCloud(rng, 3, 500, 0, 1)

	require.NoError(t, Save(ctx, store, "clouds/test.kdpc", cloud, func(o *Options) {
		o.Compression = CompressionZstd
	}))

	got, err := Load(ctx, store, "clouds/test.kdpc")
	require.NoError(t, err)
	assert.Equal(t, cloud.Data(), got.Data())

	_, err = Load(ctx, store, "clouds/missing.kdpc")
	assert.ErrorIs(t, err, blobstore.ErrNotFound)
}
