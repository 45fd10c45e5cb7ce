package store

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, dir string, rels ...string) {
	t.Helper()
	for _, rel := range rels {
		p := filepath.Join(dir, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o755))
		require.NoError(t, os.WriteFile(p, []byte(rel), 0o644))
	}
}

func TestLocalGlob(t *testing.T) {
	dir := t.TempDir()
	writeFixture(t, dir,
		"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.bin",
		"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T14-00-00.bin",
		"2022-06-06T09-24-28/Patch2/Patch2_90_2022-06-06T13-00-00.bin",
		"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.csv",
		"2022-06-13T13-14-25/Patch1/Patch1_90_2022-06-13T14-00-00.bin",
		"2022-06-06T09-24-28/Metadata.yml",
	)
	root := NewLocal(dir)

	t.Run("PatternAndExtension", func(t *testing.T) {
		matches, err := root.Glob(context.Background(), "", "Patch1_90_*", "bin")
		require.NoError(t, err)
		require.Len(t, matches, 3)
		assert.Contains(t, matches[0], "Patch1_90_2022-06-06T13-00-00.bin")
	})

	t.Run("EpochGlob", func(t *testing.T) {
		matches, err := root.Glob(context.Background(), "2022-06-13*", "Patch1_90_*", "bin")
		require.NoError(t, err)
		require.Len(t, matches, 1)
		assert.Contains(t, matches[0], "2022-06-13T13-14-25")
	})

	t.Run("NonChunkedAtEpochLevel", func(t *testing.T) {
		matches, err := root.Glob(context.Background(), "", "Metadata", "yml")
		require.NoError(t, err)
		assert.Len(t, matches, 1)
	})

	t.Run("MissingRootDirectory", func(t *testing.T) {
		matches, err := NewLocal(filepath.Join(dir, "absent")).Glob(context.Background(), "", "*", "bin")
		require.NoError(t, err)
		assert.Empty(t, matches)
	})

	t.Run("SortedOutput", func(t *testing.T) {
		matches, err := root.Glob(context.Background(), "", "*_90_*", "bin")
		require.NoError(t, err)
		require.Len(t, matches, 4)
		assert.IsIncreasing(t, matches)
	})
}

func TestMatchRel(t *testing.T) {
	tests := []struct {
		rel       string
		epochGlob string
		expected  bool
	}{
		{"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.bin", "", true},
		{"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.bin", "**", true},
		{"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.bin", "2022-06-06*", true},
		{"2022-06-06T09-24-28/Patch1/Patch1_90_2022-06-06T13-00-00.bin", "2022-06-13*", false},
		{"Patch1_90_2022-06-06T13-00-00.bin", "2022-06-06*", false},
		{"2022-06-06T09-24-28/Patch1/Patch2_90_2022-06-06T13-00-00.bin", "", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, matchRel(tt.rel, tt.epochGlob, "Patch1_90_*", "bin"), tt.rel)
	}
}

func TestCacheFetch(t *testing.T) {
	t.Run("FillOnceThenReuse", func(t *testing.T) {
		c := newCache(t.TempDir(), nil)
		var fills atomic.Int32
		fill := func(_ context.Context, w io.Writer) error {
			fills.Add(1)
			_, err := w.Write([]byte("payload"))
			return err
		}

		local, err := c.fetch(context.Background(), "epoch/device/file.bin", fill)
		require.NoError(t, err)
		content, err := os.ReadFile(local)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))

		again, err := c.fetch(context.Background(), "epoch/device/file.bin", fill)
		require.NoError(t, err)
		assert.Equal(t, local, again)
		assert.Equal(t, int32(1), fills.Load())
	})

	t.Run("ConcurrentFillsDeduplicated", func(t *testing.T) {
		c := newCache(t.TempDir(), nil)
		var fills atomic.Int32
		var wg sync.WaitGroup
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := c.fetch(context.Background(), "epoch/file.bin", func(_ context.Context, w io.Writer) error {
					fills.Add(1)
					_, err := w.Write([]byte("payload"))
					return err
				})
				assert.NoError(t, err)
			}()
		}
		wg.Wait()
		assert.LessOrEqual(t, fills.Load(), int32(2))
	})

	t.Run("CompressedObjectMaterializesDecompressed", func(t *testing.T) {
		var compressed bytes.Buffer
		zw, err := zstd.NewWriter(&compressed)
		require.NoError(t, err)
		_, err = zw.Write([]byte("payload"))
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		c := newCache(t.TempDir(), nil)
		rel, compression := splitCompression("epoch/device/file.bin.zst")
		local, err := c.fetch(context.Background(), rel, func(_ context.Context, w io.Writer) error {
			return decompress(w, bytes.NewReader(compressed.Bytes()), compression)
		})
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(c.dir, "epoch", "device", "file.bin"), local)
		content, err := os.ReadFile(local)
		require.NoError(t, err)
		assert.Equal(t, "payload", string(content))
	})

	t.Run("FailedFillLeavesNoEntry", func(t *testing.T) {
		c := newCache(t.TempDir(), nil)
		_, err := c.fetch(context.Background(), "epoch/file.bin", func(_ context.Context, _ io.Writer) error {
			return assert.AnError
		})
		require.ErrorIs(t, err, assert.AnError)
		_, err = os.Stat(filepath.Join(c.dir, "epoch", "file.bin"))
		assert.True(t, os.IsNotExist(err))
	})
}

func TestSplitCompression(t *testing.T) {
	tests := []struct {
		key                 string
		expectedRel         string
		expectedCompression string
	}{
		{"epoch/device/file.bin", "epoch/device/file.bin", ""},
		{"epoch/device/file.bin.zst", "epoch/device/file.bin", ".zst"},
		{"epoch/device/file.bin.lz4", "epoch/device/file.bin", ".lz4"},
	}
	for _, tt := range tests {
		rel, compression := splitCompression(tt.key)
		assert.Equal(t, tt.expectedRel, rel)
		assert.Equal(t, tt.expectedCompression, compression)
	}
}

func TestDecompress(t *testing.T) {
	payload := bytes.Repeat([]byte("chunked acquisition data "), 64)

	t.Run("Zstd", func(t *testing.T) {
		var compressed bytes.Buffer
		zw, err := zstd.NewWriter(&compressed)
		require.NoError(t, err)
		_, err = zw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, zw.Close())

		var out bytes.Buffer
		require.NoError(t, decompress(&out, &compressed, ".zst"))
		assert.Equal(t, payload, out.Bytes())
	})

	t.Run("Lz4", func(t *testing.T) {
		var compressed bytes.Buffer
		lw := lz4.NewWriter(&compressed)
		_, err := lw.Write(payload)
		require.NoError(t, err)
		require.NoError(t, lw.Close())

		var out bytes.Buffer
		require.NoError(t, decompress(&out, &compressed, ".lz4"))
		assert.Equal(t, payload, out.Bytes())
	})

	t.Run("PassThrough", func(t *testing.T) {
		var out bytes.Buffer
		require.NoError(t, decompress(&out, bytes.NewReader(payload), ""))
		assert.Equal(t, payload, out.Bytes())
	})

	t.Run("Unsupported", func(t *testing.T) {
		var out bytes.Buffer
		require.Error(t, decompress(&out, bytes.NewReader(payload), ".gz"))
	})
}
