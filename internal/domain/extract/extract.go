// Package extract turns loosely formatted rating tables into an Index.
//
// Every line is examined on its own: the first slug-looking token is the
// key, the last decimal number is the rating and the first short integer,
// if any, is the problem id. Lines missing a slug or a rating are skipped.
// A later line for the same slug replaces the earlier one. "\n", "\r\n"
// and a bare "\r" all end a line.
package extract

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/linescan"
)

// Stats summarises one extraction run.
type Stats struct {
	Lines       int // lines read, blank ones included
	Blank       int
	NoSlug      int
	NoRating    int
	Overwritten int // records replaced by a later line with the same slug
	Records     int // len of the resulting index
}

// Skipped is the number of non-blank lines that yielded no record.
func (s Stats) Skipped() int { return s.NoSlug + s.NoRating }

// Option configures an Extractor.
type Option func(*Extractor)

// WithSlugMatcher replaces the slug heuristic.
func WithSlugMatcher(m Matcher) Option {
	return func(e *Extractor) {
		if m != nil {
			e.slug = m
		}
	}
}

// WithRatingMatcher replaces the rating heuristic.
func WithRatingMatcher(m Matcher) Option {
	return func(e *Extractor) {
		if m != nil {
			e.rating = m
		}
	}
}

// WithIDMatcher replaces the problem id heuristic.
func WithIDMatcher(m Matcher) Option {
	return func(e *Extractor) {
		if m != nil {
			e.id = m
		}
	}
}

// Extractor applies the line heuristics.
type Extractor struct {
	slug   Matcher
	rating Matcher
	id     Matcher
}

// New returns an Extractor using the default patterns unless overridden.
func New(opts ...Option) *Extractor {
	e := &Extractor{
		slug:   SlugPattern,
		rating: RatingPattern,
		id:     IDPattern,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ParseLine extracts a record from a single line. ok is false when the
// line has no slug or no rating.
func (e *Extractor) ParseLine(raw string) (rec model.Record, ok bool) {
	rec, reason := e.parse(strings.TrimSpace(strings.ToValidUTF8(raw, "")))
	return rec, reason == ""
}

func (e *Extractor) parse(line string) (model.Record, string) {
	if line == "" {
		return model.Record{}, "blank"
	}
	s, ok := e.slug.Match(line)
	if !ok {
		return model.Record{}, "no_slug"
	}
	r, ok := e.rating.Match(line)
	if !ok {
		return model.Record{}, "no_rating"
	}
	rating, err := strconv.ParseFloat(r, 64)
	if err != nil {
		return model.Record{}, "no_rating"
	}
	rec := model.Record{Slug: s, Rating: rating}
	if v, ok := e.id.Match(line); ok {
		if id, err := strconv.Atoi(v); err == nil {
			rec.ProblemID = model.IntPtr(id)
		}
	}
	return rec, ""
}

// Extract reads r to EOF and builds an index from its lines.
func (e *Extractor) Extract(ctx context.Context, r io.Reader) (model.Index, Stats, error) {
	out := make(model.Index)
	var st Stats
	sc := linescan.New(r)
	for {
		if err := ctx.Err(); err != nil {
			return nil, st, err
		}
		if !sc.Scan() {
			break
		}
		st.Lines++
		rec, reason := e.parse(strings.TrimSpace(strings.ToValidUTF8(sc.Text(), "")))
		switch reason {
		case "":
			if _, dup := out[rec.Slug]; dup {
				st.Overwritten++
			}
			out[rec.Slug] = rec
		case "blank":
			st.Blank++
		case "no_slug":
			st.NoSlug++
		case "no_rating":
			st.NoRating++
		}
	}
	if err := sc.Err(); err != nil {
		return nil, st, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	st.Records = len(out)
	return out, st, nil
}

// ExtractFile opens path and extracts it.
func (e *Extractor) ExtractFile(ctx context.Context, path string) (model.Index, Stats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer func() { _ = f.Close() }()
	return e.Extract(ctx, f)
}
