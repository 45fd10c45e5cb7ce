package reader

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hupe1980/chunkio/chunktime"
	"github.com/hupe1980/chunkio/frame"
)

// Metadata extracts the workflow metadata document written once per epoch
// directory. The file is not itself chunked; the row is indexed at the
// epoch timestamp parsed from the directory name.
//
// Columns:
//   - workflow (str): Path of the workflow that acquired the epoch.
//   - commit (str): Commit hash of the acquisition source code.
//   - metadata (map): The remaining metadata document.
type Metadata struct {
	Descriptor
}

// NewMetadata creates an epoch metadata reader. An empty pattern defaults
// to "Metadata".
func NewMetadata(pattern string) *Metadata {
	if pattern == "" {
		pattern = "Metadata"
	}
	return &Metadata{Descriptor: NewDescriptor(
		pattern,
		[]string{"workflow", "commit", "metadata"},
		"yml",
	)}
}

// Read implements Reader.
func (r *Metadata) Read(path string) (*frame.Frame, error) {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) < 2 {
		return nil, fmt.Errorf("reader: %s: no epoch directory", path)
	}
	epoch, err := chunktime.ParseEpoch(parts[len(parts)-2])
	if err != nil {
		return nil, err
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var document map[string]any
	if err := json.Unmarshal(raw, &document); err != nil {
		return nil, fmt.Errorf("reader: %s: %w", path, err)
	}
	workflow, ok := document["Workflow"]
	if !ok {
		return nil, fmt.Errorf("reader: %s: metadata document has no Workflow", path)
	}
	delete(document, "Workflow")
	commit := document["Commit"] // may be absent in legacy documents
	delete(document, "Commit")

	out := frame.New(r.Columns())
	out.Append(epoch, workflow, commit, document)
	return out, nil
}
