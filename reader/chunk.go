package reader

import (
	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/frame"
)

// Chunk extracts path and epoch information from chunk files, used for
// cataloguing a dataset rather than decoding payloads.
//
// Columns:
//   - path (str): Filesystem path of the chunk file.
//   - epoch (str): Epoch the chunk belongs to.
type Chunk struct {
	Descriptor
}

// NewChunk creates a chunk catalogue reader matching the same files as
// the given reader.
func NewChunk(r Reader) *Chunk {
	return NewChunkPattern(r.Pattern(), r.Extension())
}

// NewChunkPattern creates a chunk catalogue reader with an explicit
// pattern and extension.
func NewChunkPattern(pattern, extension string) *Chunk {
	return &Chunk{Descriptor: NewDescriptor(pattern, []string{"path", "epoch"}, extension)}
}

// Read implements Reader. It returns a single row holding the file's
// path and epoch, indexed at its chunk time.
func (r *Chunk) Read(path string) (*frame.Frame, error) {
	key, err := chunktime.ChunkKey(path)
	if err != nil {
		return nil, err
	}
	out := frame.New(r.Columns())
	out.Append(key.Time, path, key.Epoch)
	return out, nil
}
