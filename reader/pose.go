package reader

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/chunkio/frame"
	"github.com/hupe1980/chunkio/harp"
)

// DefaultModelRoot is the shared directory searched for pose model
// configurations when no directory local to the data file exists.
const DefaultModelRoot = "/ceph/aeon/aeon/data/processed"

const configFileName = "confmap_config.json"

var poseColumns = []string{"identity", "identity_likelihood", "part", "x", "y", "part_likelihood"}

// Pose decodes per-frame multi-part keypoint estimates produced by a
// tracking model and reshapes them into one row per (frame, part).
//
// The wide on-file column layout depends on an externally stored
// per-deployment model configuration, resolved from the filename; a
// fixed-offset suffix of the pattern, with `_` separators mapped to path
// segments, names the model directory.
//
// The pattern should typically be `<device>_<hpcnode>_<jobid>*`. If a
// register prefix is required the pattern should end with a trailing
// underscore, e.g. `Camera_202_*`; otherwise it should include a common
// prefix for the pose model folder excluding the trailing underscore,
// e.g. `Camera_model-dir*`.
//
// Columns:
//   - identity (str): ID of a subject in the environment.
//   - identity_likelihood: Likelihood of the subject's identity.
//   - part (str): Bodypart on the subject.
//   - x, y (float): Coordinates of the bodypart.
//   - part_likelihood (float): Likelihood of the specified bodypart.
type Pose struct {
	Descriptor
	decoder       harp.Decoder
	modelRoot     string
	includeModel  bool
	patternOffset int
}

// PoseOption configures a Pose reader.
type PoseOption func(*Pose)

// WithModelRoot overrides the shared model configuration root.
func WithModelRoot(root string) PoseOption {
	return func(r *Pose) {
		r.modelRoot = root
	}
}

// WithModelProvenance stamps every emitted row with the resolved model
// directory in an extra `model` column.
func WithModelProvenance() PoseOption {
	return func(r *Pose) {
		r.includeModel = true
	}
}

// NewPose creates a pose reader with the given pattern and binary
// decoder.
func NewPose(pattern string, decoder harp.Decoder, optFns ...PoseOption) *Pose {
	r := &Pose{
		Descriptor:    NewDescriptor(pattern, nil, "bin"),
		decoder:       decoder,
		modelRoot:     DefaultModelRoot,
		patternOffset: strings.LastIndex(pattern, "_") + 1,
	}
	for _, fn := range optFns {
		fn(r)
	}
	return r
}

// Read implements Reader.
func (r *Pose) Read(file string) (*frame.Frame, error) {
	modelDir := r.modelDir(file)

	// The directory local to the data file takes priority over the
	// shared model root.
	localDir := filepath.Join(filepath.Dir(file), filepath.FromSlash(modelDir))
	sharedDir := filepath.Join(r.modelRoot, filepath.FromSlash(modelDir))
	configDir := localDir
	if _, err := os.Stat(localDir); err != nil {
		if _, err := os.Stat(sharedDir); err != nil {
			return nil, &ConfigNotFoundError{Local: localDir, Shared: sharedDir}
		}
		configDir = sharedDir
	}

	configFile := filepath.Join(configDir, configFileName)
	if _, err := os.Stat(configFile); err != nil {
		return nil, &ConfigNotFoundError{Local: configDir}
	}
	config, err := loadModelConfig(configFile)
	if err != nil {
		return nil, err
	}
	identities, err := classNames(config, configFile)
	if err != nil {
		return nil, err
	}
	parts, err := bodyparts(config, configFile)
	if err != nil {
		return nil, err
	}

	// Probe the legacy wide layout first; a payload width mismatch means
	// the file carries one likelihood column per class instead.
	columns := []string{"identity", "identity_likelihood"}
	for _, part := range parts {
		columns = append(columns, part+"_x", part+"_y", part+"_likelihood")
	}
	data, err := r.decode(file, columns)
	perClassLikelihood := false
	if err != nil {
		var cce *harp.ColumnCountError
		if !errors.As(err, &cce) {
			return nil, err
		}
		perClassLikelihood = true
		columns = []string{"identity"}
		for _, identity := range identities {
			columns = append(columns, identity+"_likelihood")
		}
		for _, part := range parts {
			columns = append(columns, part+"_x", part+"_y", part+"_likelihood")
		}
		if data, err = r.decode(file, columns); err != nil {
			return nil, err
		}
	}

	outColumns := poseColumns
	if r.includeModel {
		outColumns = append(append([]string(nil), poseColumns...), "model")
	}
	out := frame.New(outColumns)
	partBase := 2
	if perClassLikelihood {
		partBase = 1 + len(identities)
	}
	for i := 0; i < data.Len(); i++ {
		row := data.Row(i)
		identity := identityLabel(row[0], identities)
		var likelihood any
		if perClassLikelihood {
			// Collapse the per-class likelihood columns into a single
			// mapping keyed by class label.
			m := make(map[string]any, len(identities))
			for c, id := range identities {
				m[id] = row[1+c]
			}
			likelihood = m
		} else {
			likelihood = row[1]
		}
		for p, part := range parts {
			col := partBase + p*3
			values := []any{identity, likelihood, part, row[col], row[col+1], row[col+2]}
			if r.includeModel {
				values = append(values, modelDir)
			}
			out.Append(data.Time(i), values...)
		}
	}
	return out, nil
}

// modelDir derives the model configuration directory from the data file
// name: the stem past the pattern offset, with `_` mapped to path
// segments and the final segment (the chunk timestamp) removed.
func (r *Pose) modelDir(file string) string {
	stem := strings.TrimSuffix(filepath.Base(file), filepath.Ext(file))
	if r.patternOffset < len(stem) {
		stem = stem[r.patternOffset:]
	}
	return path.Dir(strings.ReplaceAll(stem, "_", "/"))
}

func (r *Pose) decode(file string, columns []string) (*frame.Frame, error) {
	if r.decoder == nil {
		return nil, errors.New("reader: no harp decoder configured")
	}
	return r.decoder.Decode(file, columns)
}

func loadModelConfig(configFile string) (map[string]any, error) {
	stem := strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	if stem != "confmap_config" {
		return nil, &UnsupportedConfigError{Path: configFile}
	}
	raw, err := os.ReadFile(configFile)
	if err != nil {
		return nil, err
	}
	var config map[string]any
	if err := json.Unmarshal(raw, &config); err != nil {
		return nil, fmt.Errorf("reader: %s: %w", configFile, err)
	}
	return config, nil
}

// classNames returns the class/identity label list of a model config, or
// an empty list for models without identity tracking.
func classNames(config map[string]any, configFile string) ([]string, error) {
	heads, err := modelHeads(config, configFile, "class_vectors")
	if err != nil {
		return nil, err
	}
	vectors := recursiveLookup(heads, "class_vectors")
	if vectors == nil {
		return nil, nil
	}
	m, _ := vectors.(map[string]any)
	classes, ok := m["classes"]
	if !ok {
		return nil, &MissingKeyError{Key: "class_vectors", Path: configFile}
	}
	return stringList(classes), nil
}

// bodyparts returns the ordered body-part name list of a model config,
// the anchor part first.
func bodyparts(config map[string]any, configFile string) ([]string, error) {
	heads, err := modelHeads(config, configFile, "anchor_part")
	if err != nil {
		return nil, err
	}
	anchor := recursiveLookup(heads, "anchor_part")
	if anchor == nil {
		return nil, &MissingKeyError{Key: "anchor_part", Path: configFile}
	}
	names := recursiveLookup(heads, "part_names")
	if names == nil {
		return nil, &MissingKeyError{Key: "part_names", Path: configFile}
	}
	parts := []string{fmt.Sprintf("anchor_%v", anchor)}
	return append(parts, stringList(names)...), nil
}

func modelHeads(config map[string]any, configFile, key string) (any, error) {
	model, ok := config["model"].(map[string]any)
	if !ok {
		return nil, &MissingKeyError{Key: key, Path: configFile}
	}
	heads, ok := model["heads"]
	if !ok {
		return nil, &MissingKeyError{Key: key, Path: configFile}
	}
	return heads, nil
}

// recursiveLookup searches a decoded JSON document depth-first for the
// first non-empty value under key. Mapping keys are visited in sorted
// order so the lookup is deterministic.
func recursiveLookup(obj any, key string) any {
	switch obj := obj.(type) {
	case map[string]any:
		if found := obj[key]; truthy(found) {
			return found
		}
		keys := make([]string, 0, len(obj))
		for k := range obj {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			if found := recursiveLookup(obj[k], key); found != nil {
				return found
			}
		}
	case []any:
		for _, item := range obj {
			if found := recursiveLookup(item, key); found != nil {
				return found
			}
		}
	}
	return nil
}

// truthy mirrors the emptiness convention of the config documents: empty
// containers, empty strings, zeros and nulls do not count as a match.
func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case string:
		return v != ""
	case float64:
		return v != 0
	case map[string]any:
		return len(v) > 0
	case []any:
		return len(v) > 0
	default:
		return true
	}
}

func stringList(v any) []string {
	items, _ := v.([]any)
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprintf("%v", item))
	}
	return out
}

// identityLabel maps an integer identity code to its class label. With no
// class list the code is passed through unchanged.
func identityLabel(v any, classes []string) any {
	if len(classes) == 0 {
		return v
	}
	if i, ok := toUint64(v); ok && int(i) < len(classes) {
		return classes[i]
	}
	return v
}
