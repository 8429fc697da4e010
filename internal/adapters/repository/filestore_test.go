package repository

import (
	"context"
	"errors"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/okian/ladder/internal/domain/extract"
	"github.com/okian/ladder/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()

	Convey("Given an index produced by the extractor", t, func() {
		src := "1 two-sum 1496.0000 stuff\n64 minimum-path-sum 1650.3333\n827 making-a-large-island 2550.1\nno id here-too a1680.8242b\n"
		ix, _, err := extract.New().Extract(ctx, strings.NewReader(src))
		So(err, ShouldBeNil)

		store := NewFileStore()
		path := filepath.Join(t.TempDir(), "nested", "data", "ratings.json")

		Convey("When it is saved and loaded back", func() {
			So(store.Save(ctx, path, ix), ShouldBeNil)
			got, err := store.Load(ctx, path)

			Convey("Then every field survives", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, len(ix))
				for k, want := range ix {
					rec, ok := got[k]
					So(ok, ShouldBeTrue)
					So(rec.Slug, ShouldEqual, want.Slug)
					So(math.Abs(rec.Rating-want.Rating), ShouldBeLessThan, 1e-12)
					if want.ProblemID == nil {
						So(rec.ProblemID, ShouldBeNil)
					} else {
						So(*rec.ProblemID, ShouldEqual, *want.ProblemID)
					}
				}
			})

			Convey("And the file is human-readable JSON with a null id", func() {
				data, err := os.ReadFile(path)
				So(err, ShouldBeNil)
				So(string(data), ShouldContainSubstring, `"two-sum": {`)
				So(string(data), ShouldContainSubstring, `"problem_id": null`)
			})

			Convey("And no temp files are left behind", func() {
				entries, err := os.ReadDir(filepath.Dir(path))
				So(err, ShouldBeNil)
				So(len(entries), ShouldEqual, 1)
			})
		})

		Convey("When a second save replaces the first", func() {
			So(store.Save(ctx, path, ix), ShouldBeNil)
			So(store.Save(ctx, path, model.Index{"a-b": {Slug: "a-b", Rating: 900.5}}), ShouldBeNil)
			got, err := store.Load(ctx, path)

			Convey("Then only the new snapshot remains", func() {
				So(err, ShouldBeNil)
				So(len(got), ShouldEqual, 1)
				So(got["a-b"].Rating, ShouldEqual, 900.5)
			})
		})
	})
}

func TestFileStoreErrors(t *testing.T) {
	ctx := context.Background()

	Convey("Given a file store", t, func() {
		store := NewFileStore()
		dir := t.TempDir()

		Convey("When loading a snapshot that was never built", func() {
			_, err := store.Load(ctx, filepath.Join(dir, "ratings.json"))

			Convey("Then ErrSnapshotMissing tells the caller to build it", func() {
				So(errors.Is(err, ErrSnapshotMissing), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "build-index")
			})
		})

		Convey("When the snapshot is not JSON", func() {
			path := filepath.Join(dir, "bad.json")
			So(os.WriteFile(path, []byte("{not json"), 0o600), ShouldBeNil)
			_, err := store.Load(ctx, path)
			So(errors.Is(err, ErrSnapshotCorrupt), ShouldBeTrue)
		})

		Convey("When a record breaks the schema", func() {
			path := filepath.Join(dir, "schema.json")
			So(os.WriteFile(path, []byte(`{"two-sum": {"slug": "two-sum", "rating": "high"}}`), 0o600), ShouldBeNil)
			_, err := store.Load(ctx, path)
			So(errors.Is(err, ErrSnapshotCorrupt), ShouldBeTrue)
			So(err.Error(), ShouldContainSubstring, "rating")
		})

		Convey("When a key does not match its slug", func() {
			path := filepath.Join(dir, "mismatch.json")
			So(os.WriteFile(path, []byte(`{"two-sum": {"slug": "three-sum", "rating": 1500.5}}`), 0o600), ShouldBeNil)
			_, err := store.Load(ctx, path)
			So(errors.Is(err, ErrSnapshotCorrupt), ShouldBeTrue)
		})

		Convey("When validation is disabled the JSON decoder still guards", func() {
			path := filepath.Join(dir, "null.json")
			So(os.WriteFile(path, []byte(`null`), 0o600), ShouldBeNil)
			_, err := NewFileStore(WithSchemaValidation(false)).Load(ctx, path)
			So(errors.Is(err, ErrSnapshotCorrupt), ShouldBeTrue)
		})

		Convey("When the context is already cancelled", func() {
			cctx, cancel := context.WithCancel(ctx)
			cancel()
			So(errors.Is(store.Save(cctx, filepath.Join(dir, "x.json"), model.Index{}), context.Canceled), ShouldBeTrue)
		})
	})
}

func TestFileStoreMode(t *testing.T) {
	Convey("Given a custom file mode", t, func() {
		path := filepath.Join(t.TempDir(), "ratings.json")
		store := NewFileStore(WithFileMode(0o600))
		So(store.Save(context.Background(), path, model.Index{}), ShouldBeNil)

		info, err := os.Stat(path)
		So(err, ShouldBeNil)
		So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
	})

	Convey("Given an existing snapshot with restricted permissions", t, func() {
		path := filepath.Join(t.TempDir(), "ratings.json")
		So(os.WriteFile(path, []byte("{}\n"), 0o600), ShouldBeNil)

		So(NewFileStore().Save(context.Background(), path, model.Index{"a-b": {Slug: "a-b", Rating: 900.5}}), ShouldBeNil)

		Convey("Then the replacement keeps them", func() {
			info, err := os.Stat(path)
			So(err, ShouldBeNil)
			So(info.Mode().Perm(), ShouldEqual, os.FileMode(0o600))
		})
	})
}
