// Package lineproto serves ratings lookups over a line-oriented text
// protocol, one request per input line and one JSON object per response.
//
//	lookup two-sum   -> {"slug":"two-sum","rating":1496,"problem_id":1}
//	lookup nope      -> {}
//	anything else    -> {"error":"unknown command"}
package lineproto

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/okian/ladder/internal/domain/bridge"
	"github.com/okian/ladder/internal/domain/model"
	"github.com/okian/ladder/pkg/linescan"
	"github.com/okian/ladder/pkg/logger"
	"github.com/okian/ladder/pkg/metrics"
)

// Banner is written once before the first request is read.
const Banner = "ratings MCP ready"

const lookupCmd = "lookup "

// Looker resolves an identifier to its record.
type Looker interface {
	Lookup(ctx context.Context, ref string) (model.Record, error)
}

type errorResponse struct {
	Error string `json:"error"`
}

// Server answers protocol requests using a Looker.
type Server struct {
	looker Looker
	logger logger.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// New returns a Server backed by looker.
func New(looker Looker, opts ...Option) *Server {
	s := &Server{looker: looker}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Named("lineproto")
	}
	return s
}

// Serve writes the banner, then answers each line of r on w until EOF or
// until ctx is done. A write failure ends the session.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	if _, err := fmt.Fprintln(w, Banner); err != nil {
		return err
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)

	sc := linescan.New(r)
	served := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !sc.Scan() {
			break
		}
		if err := enc.Encode(s.Handle(ctx, sc.Text())); err != nil {
			return err
		}
		served++
	}
	if err := sc.Err(); err != nil {
		return err
	}
	s.logger.Debug(ctx, "session closed", logger.Int("requests", served))
	return nil
}

// Handle answers a single request line. The returned value is always
// JSON-encodable.
func (s *Server) Handle(ctx context.Context, line string) any {
	line = strings.TrimSpace(strings.ToValidUTF8(line, ""))
	if !strings.HasPrefix(line, lookupCmd) {
		metrics.RecordProtocolCommand("unknown")
		return errorResponse{Error: "unknown command"}
	}
	metrics.RecordProtocolCommand("lookup")

	rec, err := s.looker.Lookup(ctx, line[len(lookupCmd):])
	switch {
	case err == nil:
		return rec
	case errors.Is(err, bridge.ErrUnknownIdentifier):
		return struct{}{}
	default:
		s.logger.Warn(ctx, "lookup failed", logger.Error(err))
		return errorResponse{Error: err.Error()}
	}
}
