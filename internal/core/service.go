package core

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/JonMunkholm/tab2sql/internal/config"
)

// ErrNoDatabase is returned by Service.Load when no database is configured.
var ErrNoDatabase = errors.New("no database configured")

// Request carries per-call options. Zero-value fields fall back to the
// configured defaults where noted.
type Request struct {
	Parse ParseConfig
	Table string // empty uses Config.Parse.TableName
}

// Service provides the conversion operations used by the HTTP server and CLI.
type Service struct {
	cfg     *config.Config
	loader  *Loader
	limiter *LoadLimiter
}

// NewService creates a Service. db may be nil, which disables Load.
func NewService(db TxBeginner, cfg *config.Config) *Service {
	s := &Service{
		cfg:     cfg,
		limiter: NewLoadLimiter(cfg.Load.MaxConcurrent, cfg.Load.MaxWaitTime),
	}
	if db != nil {
		s.loader = NewLoader(db)
	}
	return s
}

// DefaultRequest returns a Request populated from configuration.
func (s *Service) DefaultRequest() Request {
	return Request{
		Parse: ParseConfig{
			FirstLineHeaders:           s.cfg.Parse.FirstLineHeaders,
			ConvertNullSentinel:        s.cfg.Parse.ConvertNullSentinel,
			ConvertEmptyStringSentinel: s.cfg.Parse.ConvertEmptyStringSentinel,
		},
		Table: s.cfg.Parse.TableName,
	}
}

// HasDatabase reports whether Load is available.
func (s *Service) HasDatabase() bool {
	return s.loader != nil
}

// Parse reads r and parses it.
func (s *Service) Parse(ctx context.Context, r io.Reader, req Request) (*ParseResult, error) {
	text, err := ReadInput(r, s.cfg.Parse.MaxInputSize)
	if err != nil {
		return nil, err
	}

	result, err := Parse(text, req.Parse)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}

	slog.DebugContext(ctx, "input parsed",
		"rows", len(result.Rows),
		"columns", len(result.Columns),
		"first_line_headers", req.Parse.FirstLineHeaders,
	)
	return result, nil
}

// Convert reads and parses r, then renders the SQL script.
func (s *Service) Convert(ctx context.Context, r io.Reader, req Request) (*ParseResult, string, error) {
	result, err := s.Parse(ctx, r, req)
	if err != nil {
		return nil, "", err
	}

	script, err := EmitSQL(result, s.table(req))
	if err != nil {
		return nil, "", fmt.Errorf("emit sql: %w", err)
	}
	return result, script, nil
}

// Load parses r and recreates the table in the configured database.
// Concurrent loads are bounded by the limiter; each load is bounded by
// Config.Load.Timeout.
func (s *Service) Load(ctx context.Context, r io.Reader, req Request, useCopy bool) (*LoadResult, error) {
	if s.loader == nil {
		return nil, ErrNoDatabase
	}

	result, err := s.Parse(ctx, r, req)
	if err != nil {
		return nil, err
	}

	if err := s.limiter.Acquire(ctx); err != nil {
		return nil, fmt.Errorf("acquire load slot: %w", err)
	}
	defer s.limiter.Release()

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Load.Timeout)
	defer cancel()

	return s.loader.Load(ctx, result, LoadOptions{Table: s.table(req), UseCopy: useCopy})
}

// LimiterStatus returns the load limiter state.
func (s *Service) LimiterStatus() LoadLimiterStatus {
	return s.limiter.Status()
}

// WaitForLoads blocks until active loads finish or ctx is done.
func (s *Service) WaitForLoads(ctx context.Context) error {
	return s.limiter.WaitForDrain(ctx)
}

func (s *Service) table(req Request) string {
	if req.Table != "" {
		return req.Table
	}
	return s.cfg.Parse.TableName
}
