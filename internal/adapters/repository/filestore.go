package repository

import (
	"bytes"
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/metrics"
	"github.com/xeipuuv/gojsonschema"
)

//go:embed snapshot.schema.json
var snapshotSchema []byte

const (
	defaultFileMode = 0o644
	dirMode         = 0o755
)

// FileStore keeps snapshots as pretty-printed JSON objects keyed by slug.
type FileStore struct {
	validate bool
	mode     os.FileMode
	schema   gojsonschema.JSONLoader
}

// NewFileStore creates a FileStore. Schema validation is on by default.
func NewFileStore(opts ...Option) *FileStore {
	s := &FileStore{
		validate: true,
		mode:     defaultFileMode,
		schema:   gojsonschema.NewBytesLoader(snapshotSchema),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save writes ix atomically: a synced temp file in the target directory
// is renamed over path once fully written. An existing snapshot keeps its
// permission bits.
func (s *FileStore) Save(ctx context.Context, path string, ix model.Index) error {
	start := time.Now()
	defer func() {
		metrics.RecordSnapshotSave(float64(time.Since(start).Milliseconds()))
	}()
	if err := ctx.Err(); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if ix == nil {
		ix = model.Index{}
	}
	if err := enc.Encode(ix); err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		metrics.RecordSnapshotError("io")
		return fmt.Errorf("create snapshot dir %s: %w", dir, err)
	}
	if err := renameio.WriteFile(path, buf.Bytes(), s.mode); err != nil {
		metrics.RecordSnapshotError("io")
		return fmt.Errorf("replace snapshot %s: %w", path, err)
	}
	return nil
}

// Load reads and validates the snapshot at path.
func (s *FileStore) Load(ctx context.Context, path string) (model.Index, error) {
	start := time.Now()
	defer func() {
		metrics.RecordSnapshotLoad(float64(time.Since(start).Milliseconds()))
	}()
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.RecordSnapshotError("missing")
			return nil, fmt.Errorf("%w at %s; run `ladder build-index --ratings-file <ratings.txt>` first", ErrSnapshotMissing, path)
		}
		metrics.RecordSnapshotError("io")
		return nil, fmt.Errorf("read snapshot %s: %w", path, err)
	}

	if s.validate {
		if err := s.check(data); err != nil {
			metrics.RecordSnapshotError("corrupt")
			return nil, err
		}
	}

	var ix model.Index
	if err := json.Unmarshal(data, &ix); err != nil {
		metrics.RecordSnapshotError("corrupt")
		return nil, fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	if ix == nil {
		metrics.RecordSnapshotError("corrupt")
		return nil, fmt.Errorf("%w: not an object", ErrSnapshotCorrupt)
	}
	for k, rec := range ix {
		if rec.Slug != k {
			metrics.RecordSnapshotError("corrupt")
			return nil, fmt.Errorf("%w: key %q holds slug %q", ErrSnapshotCorrupt, k, rec.Slug)
		}
	}
	return ix, nil
}

func (s *FileStore) check(data []byte) error {
	res, err := gojsonschema.Validate(s.schema, gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotCorrupt, err)
	}
	if res.Valid() {
		return nil
	}
	msgs := make([]string, 0, len(res.Errors()))
	for _, e := range res.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrSnapshotCorrupt, strings.Join(msgs, "; "))
}
