// Package numerator allocates raw invoice sequence references.
//
// The allocator hands out zero-padded sequence numbers ("00892") scoped
// to a series and calendar year. Display formatting (the "FK/YEAR/ref"
// composition) is not done here; it belongs to the invoice package.
package numerator

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
)

// Strategy defines the sequence allocation strategy.
type Strategy int

const (
	// StrategyStrict uses UPDATE ... RETURNING for every reference.
	// Guarantees gapless sequences; required for invoice references
	// because tax filings assume continuity.
	StrategyStrict Strategy = iota

	// StrategyCached allocates ranges of numbers in memory. Faster, but
	// restarts leave gaps. Suitable for internal series only.
	StrategyCached
)

// Options configures sequence allocation.
type Options struct {
	Strategy Strategy
	// RangeSize is the number of references reserved at once in Cached
	// strategy. Default is 50.
	RangeSize int64
}

// DefaultOptions returns standard options (Strict).
func DefaultOptions() *Options {
	return &Options{Strategy: StrategyStrict}
}

// Config holds sequence configuration.
type Config struct {
	// Series names the sequence (e.g., "invoice").
	Series string

	// PadWidth is the minimum reference width (default 5).
	PadWidth int

	// ResetPeriod: "year", "month", "never". Invoice references reset
	// yearly so the formatted number FK/YEAR/ref stays unambiguous.
	ResetPeriod string
}

// DefaultConfig returns sensible defaults for a series.
func DefaultConfig(series string) Config {
	return Config{
		Series:      series,
		PadWidth:    5,
		ResetPeriod: "year",
	}
}

// Querier interface for database operations.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type cachedRange struct {
	current int64
	max     int64
}

// Service allocates sequence references from a sys_sequences table.
type Service struct {
	querier Querier

	cacheMu sync.Mutex
	ranges  map[string]*cachedRange
}

// New creates a new sequence allocator.
func New(querier Querier) *Service {
	return &Service{
		querier: querier,
		ranges:  make(map[string]*cachedRange),
	}
}

// NextRef allocates the next raw reference for the series.
func (s *Service) NextRef(ctx context.Context, cfg Config, opts *Options, period time.Time) (string, error) {
	if s == nil {
		return "", fmt.Errorf("numerator service is not initialized")
	}
	if opts == nil {
		opts = DefaultOptions()
	}

	key := s.buildKey(cfg, period)

	var num int64
	var err error
	switch opts.Strategy {
	case StrategyCached:
		num, err = s.nextCached(ctx, key, opts)
	case StrategyStrict:
		fallthrough
	default:
		num, err = s.nextStrict(ctx, key)
	}
	if err != nil {
		return "", err
	}

	return s.formatRef(cfg, num), nil
}

// Next implements order.Sequencer with default (strict, yearly) config.
func (s *Service) Next(ctx context.Context, series string, period time.Time) (string, error) {
	return s.NextRef(ctx, DefaultConfig(series), nil, period)
}

// nextStrict fetches the next value directly from DB using UPSERT + RETURNING.
func (s *Service) nextStrict(ctx context.Context, key string) (int64, error) {
	var num int64
	err := s.querier.QueryRow(ctx, `
        INSERT INTO sys_sequences (key, current_val)
        VALUES ($1, 1)
        ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + 1
        RETURNING current_val
	`, key).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("strict next: %w", err)
	}
	return num, nil
}

// nextCached serves from an in-memory range, refilling from DB when the
// range is exhausted. current_val in DB tracks the last value handed
// out, so a refill bumps it by RangeSize and owns (old, old+size].
func (s *Service) nextCached(ctx context.Context, key string, opts *Options) (int64, error) {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	rng, exists := s.ranges[key]
	if !exists {
		rng = &cachedRange{}
		s.ranges[key] = rng
	}

	if rng.current >= rng.max {
		size := opts.RangeSize
		if size <= 0 {
			size = 50
		}

		var newMax int64
		err := s.querier.QueryRow(ctx, `
            INSERT INTO sys_sequences (key, current_val)
            VALUES ($1, $2)
            ON CONFLICT (key) DO UPDATE SET current_val = sys_sequences.current_val + $2
            RETURNING current_val
		`, key, size).Scan(&newMax)
		if err != nil {
			return 0, fmt.Errorf("reserve range: %w", err)
		}

		rng.current = newMax - size
		rng.max = newMax
	}

	rng.current++
	return rng.current, nil
}

// SetNext sets the next sequence value (for migration purposes).
func (s *Service) SetNext(ctx context.Context, cfg Config, period time.Time, value int64) error {
	key := s.buildKey(cfg, period)

	var result int64
	err := s.querier.QueryRow(ctx, `
		INSERT INTO sys_sequences (key, current_val)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET current_val = $2
		RETURNING current_val
	`, key, value).Scan(&result)

	s.cacheMu.Lock()
	delete(s.ranges, key)
	s.cacheMu.Unlock()

	return err
}

// buildKey creates the sequence key based on config and period.
func (s *Service) buildKey(cfg Config, period time.Time) string {
	switch cfg.ResetPeriod {
	case "month":
		return fmt.Sprintf("%s_%s", cfg.Series, period.Format("2006_01"))
	case "never":
		return cfg.Series
	default:
		return fmt.Sprintf("%s_%s", cfg.Series, period.Format("2006"))
	}
}

// formatRef zero-pads the allocated value. No prefix or year is baked
// in here; the raw reference must survive invoice.FormatNumber intact.
func (s *Service) formatRef(cfg Config, num int64) string {
	padWidth := cfg.PadWidth
	if padWidth == 0 {
		padWidth = 5
	}
	return fmt.Sprintf("%0*d", padWidth, num)
}
