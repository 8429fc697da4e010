package service_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	service "github.com/okian/ladder/internal/app"
	"github.com/okian/ladder/internal/adapters/repository"
	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/internal/domain/extract"
	"github.com/okian/ladder/pkg/logger"
	. "github.com/smartystreets/goconvey/convey"
)

func init() {
	// Initialize logging for tests
	err := logger.Init()
	if err != nil {
		panic(err)
	}
}

const ratingsText = `1 two-sum 1200.0
15 three-sum 1650.3333
167 two-sum-ii-input-array-is-sorted 1550.0
653 two-sum-iv-input-is-a-bst 1500.5
not a record
1099 two-sum-less-than-k 1400.0
`

func writeRatings(t *testing.T, dir string) string {
	t.Helper()
	p := filepath.Join(dir, "ratings.txt")
	if err := os.WriteFile(p, []byte(ratingsText), 0o600); err != nil {
		t.Fatalf("write ratings: %v", err)
	}
	return p
}

func TestService_New(t *testing.T) {
	Convey("Given a new service with default options", t, func() {
		svc := service.New()

		Convey("Then it should have sensible defaults", func() {
			So(svc, ShouldNotBeNil)
			So(svc.SnapshotPath(), ShouldEqual, "data/ratings.json")
			delta, limit := svc.Defaults()
			So(delta, ShouldEqual, bridge.DefaultDelta)
			So(limit, ShouldEqual, bridge.DefaultLimit)
		})
	})

	Convey("Given a new service with custom options", t, func() {
		svc := service.New(
			service.WithSnapshotPath("/tmp/x.json"),
			service.WithDefaults(300, 5),
			service.WithStore(repository.NewFileStore(repository.WithSchemaValidation(false))),
			service.WithExtractor(extract.New()),
			service.WithLogger(logger.Get()),
		)

		Convey("Then the options are applied", func() {
			So(svc.SnapshotPath(), ShouldEqual, "/tmp/x.json")
			delta, limit := svc.Defaults()
			So(delta, ShouldEqual, 300)
			So(limit, ShouldEqual, 5)
		})
	})

	Convey("Given zero-valued options", t, func() {
		svc := service.New(service.WithSnapshotPath(""), service.WithDefaults(0, 0), service.WithStore(nil))

		Convey("Then the defaults survive", func() {
			So(svc.SnapshotPath(), ShouldEqual, "data/ratings.json")
			delta, limit := svc.Defaults()
			So(delta, ShouldEqual, bridge.DefaultDelta)
			So(limit, ShouldEqual, bridge.DefaultLimit)
		})
	})
}

func TestService_Build(t *testing.T) {
	Convey("Given a ratings file and an empty output directory", t, func() {
		dir := t.TempDir()
		src := writeRatings(t, dir)
		dst := filepath.Join(dir, "data", "ratings.json")
		svc := service.New(service.WithSnapshotPath(dst))
		ctx := context.Background()

		Convey("When the index is built", func() {
			n, err := svc.Build(ctx, src, "")

			Convey("Then every parsable line becomes a record", func() {
				So(err, ShouldBeNil)
				So(n, ShouldEqual, 5)
				_, statErr := os.Stat(dst)
				So(statErr, ShouldBeNil)
			})

			Convey("Then the stats report the last build", func() {
				stats := svc.GetStats()
				So(stats["snapshotExists"], ShouldBeTrue)
				last, ok := stats["lastBuild"].(map[string]int)
				So(ok, ShouldBeTrue)
				So(last["records"], ShouldEqual, 5)
				So(last["skipped"], ShouldEqual, 1)
			})
		})

		Convey("When the source does not exist", func() {
			n, err := svc.Build(ctx, filepath.Join(dir, "missing.txt"), dst)

			Convey("Then nothing is written", func() {
				So(errors.Is(err, extract.ErrSourceUnreadable), ShouldBeTrue)
				So(n, ShouldEqual, 0)
				_, statErr := os.Stat(dst)
				So(os.IsNotExist(statErr), ShouldBeTrue)
				So(svc.GetStats()["snapshotExists"], ShouldBeFalse)
			})
		})
	})
}

func TestService_Lookup(t *testing.T) {
	Convey("Given a built index", t, func() {
		dir := t.TempDir()
		dst := filepath.Join(dir, "ratings.json")
		svc := service.New(service.WithSnapshotPath(dst))
		ctx := context.Background()
		_, err := svc.Build(ctx, writeRatings(t, dir), dst)
		So(err, ShouldBeNil)

		Convey("When looking up by slug", func() {
			rec, err := svc.Lookup(ctx, "three-sum")

			Convey("Then the record is returned", func() {
				So(err, ShouldBeNil)
				So(rec.Rating, ShouldEqual, 1650.3333)
				So(rec.ProblemID, ShouldNotBeNil)
				So(*rec.ProblemID, ShouldEqual, 15)
			})
		})

		Convey("When looking up by problem URL", func() {
			rec, err := svc.Lookup(ctx, "https://leetcode.com/problems/Two-Sum/description/")

			Convey("Then the URL is resolved to its slug", func() {
				So(err, ShouldBeNil)
				So(rec.Slug, ShouldEqual, "two-sum")
			})
		})

		Convey("When the slug is unknown", func() {
			_, err := svc.Lookup(ctx, "zzzzzzzz-zzzz")

			Convey("Then ErrUnknownIdentifier is returned", func() {
				So(errors.Is(err, bridge.ErrUnknownIdentifier), ShouldBeTrue)
			})
		})
	})

	Convey("Given no snapshot", t, func() {
		svc := service.New(service.WithSnapshotPath(filepath.Join(t.TempDir(), "none.json")))
		_, err := svc.Lookup(context.Background(), "two-sum")

		Convey("Then ErrSnapshotMissing is returned", func() {
			So(errors.Is(err, repository.ErrSnapshotMissing), ShouldBeTrue)
		})
	})
}

func TestService_Suggest(t *testing.T) {
	Convey("Given a built index", t, func() {
		dir := t.TempDir()
		dst := filepath.Join(dir, "ratings.json")
		svc := service.New(service.WithSnapshotPath(dst))
		ctx := context.Background()
		_, err := svc.Build(ctx, writeRatings(t, dir), dst)
		So(err, ShouldBeNil)

		Convey("When suggesting for three-sum with a wide delta", func() {
			res, err := svc.Suggest(ctx, "three-sum", 500, 10)

			Convey("Then bridges are strictly easier and within delta", func() {
				So(err, ShouldBeNil)
				So(res.Target.Slug, ShouldEqual, "three-sum")
				So(len(res.Bridges), ShouldBeGreaterThan, 0)
				for _, b := range res.Bridges {
					So(b.Rating, ShouldBeLessThan, res.Target.Rating)
					So(res.Target.Rating-b.Rating, ShouldBeLessThanOrEqualTo, 500)
				}
			})
		})

		Convey("When the limit is not positive", func() {
			res, err := svc.Suggest(ctx, "two-sum-ii-input-array-is-sorted", 1000, 0)

			Convey("Then the service default limit applies", func() {
				So(err, ShouldBeNil)
				So(len(res.Bridges), ShouldEqual, 3)
				So(res.Bridges[0].Slug, ShouldEqual, "two-sum-iv-input-is-a-bst")
			})
		})

		Convey("When the target is the easiest problem", func() {
			res, err := svc.Suggest(ctx, "two-sum", 1000, 3)

			Convey("Then the bridge list is empty, not an error", func() {
				So(err, ShouldBeNil)
				So(res.Bridges, ShouldBeEmpty)
			})
		})

		Convey("When the target is unknown", func() {
			_, err := svc.Suggest(ctx, "two-summ", 150, 3)

			Convey("Then the error carries suggestions", func() {
				var unk *bridge.UnknownIdentifierError
				So(errors.As(err, &unk), ShouldBeTrue)
				So(unk.Suggestions, ShouldContain, "two-sum")
			})
		})
	})
}
