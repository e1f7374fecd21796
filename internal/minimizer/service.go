package minimizer

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/geange/dfamin"
	"github.com/geange/dfamin/internal/cache"
	"github.com/geange/dfamin/internal/logging"
	"github.com/geange/dfamin/internal/metrics"
	"golang.org/x/sync/singleflight"
)

var (
	// ErrTooLarge matches every *LimitError.
	ErrTooLarge = errors.New("automaton too large")

	// ErrDeadline is returned when the caller's context ends before the result is ready.
	ErrDeadline = errors.New("minimization deadline exceeded")
)

// LimitError reports a description exceeding a configured size limit.
type LimitError struct {
	Field string
	Limit int
	Got   int
}

func (e *LimitError) Error() string {
	return fmt.Sprintf("automaton too large: %d %s exceeds the limit of %d", e.Got, e.Field, e.Limit)
}

func (e *LimitError) Is(target error) bool {
	return target == ErrTooLarge
}

// Service minimizes loosely typed descriptions with limits, a result cache and deduplication of
// concurrent identical requests.
type Service struct {
	cache      cache.Cache
	logger     *slog.Logger
	maxStates  int
	maxSymbols int
	lenient    bool
	separator  string
	group      singleflight.Group
}

type Option func(*Service)

// WithCache sets the result cache.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		s.cache = c
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithLimits bounds the number of declared states and symbols; zero means unbounded.
func WithLimits(maxStates, maxSymbols int) Option {
	return func(s *Service) {
		s.maxStates = maxStates
		s.maxSymbols = maxSymbols
	}
}

// WithLenientReferences drops undeclared references instead of rejecting the request.
func WithLenientReferences(lenient bool) Option {
	return func(s *Service) {
		s.lenient = lenient
	}
}

// WithSeparator sets the separator used when naming merged states.
func WithSeparator(sep string) Option {
	return func(s *Service) {
		s.separator = sep
	}
}

func New(opts ...Option) *Service {
	s := &Service{
		cache:  cache.Nop{},
		logger: logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Minimize decodes raw, enforces the limits and returns the minimal description. Identical requests
// are served from the cache or share one computation. When ctx ends first the computation keeps
// running in the background to fill the cache, and ErrDeadline is returned.
func (s *Service) Minimize(ctx context.Context, raw map[string]any) (*dfamin.Description, error) {
	started := time.Now()
	out, err := s.minimize(ctx, raw)
	metrics.MinimizeDuration.Observe(time.Since(started).Seconds())
	metrics.MinimizeRequests.WithLabelValues(resultOf(err)).Inc()
	if err != nil {
		s.logger.Debug("minimization rejected", "error", err)
		return nil, err
	}
	metrics.StatesOut.Observe(float64(len(out.States)))
	return out, nil
}

func (s *Service) minimize(ctx context.Context, raw map[string]any) (*dfamin.Description, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDeadline, err)
	}

	desc, err := dfamin.DecodeDescription(raw)
	if err != nil {
		return nil, err
	}
	metrics.StatesIn.Observe(float64(len(desc.States)))
	if err := s.checkLimits(desc); err != nil {
		return nil, err
	}

	key, err := s.key(desc)
	if err != nil {
		return nil, err
	}

	if encoded, ok := s.lookup(ctx, key); ok {
		return decode(encoded)
	}

	ch := s.group.DoChan(key, func() (any, error) {
		return s.compute(context.WithoutCancel(ctx), key, desc)
	})
	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("joined in-flight minimization", "key", key)
		}
		return decode(res.Val.([]byte))
	case <-ctx.Done():
		s.logger.Warn("minimization abandoned", "key", key, "states", len(desc.States), "error", ctx.Err())
		return nil, fmt.Errorf("%w: %w", ErrDeadline, ctx.Err())
	}
}

func (s *Service) compute(ctx context.Context, key string, desc *dfamin.Description) ([]byte, error) {
	started := time.Now()
	out, err := dfamin.MinimizeDescription(desc, s.options()...)
	if err != nil {
		return nil, err
	}
	encoded, err := json.Marshal(out)
	if err != nil {
		return nil, fmt.Errorf("failed to encode result: %w", err)
	}
	s.logger.Info("minimized automaton",
		"states_in", len(desc.States),
		"states_out", len(out.States),
		"symbols", len(desc.Alphabet),
		"took", time.Since(started))

	if err := s.cache.Set(ctx, key, encoded); err != nil {
		s.logger.Warn("failed to store result", "key", key, "error", err)
	}
	return encoded, nil
}

func (s *Service) lookup(ctx context.Context, key string) ([]byte, bool) {
	encoded, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("error").Inc()
		s.logger.Warn("cache lookup failed", "key", key, "error", err)
		return nil, false
	case ok:
		metrics.CacheLookups.WithLabelValues("hit").Inc()
		return encoded, true
	default:
		metrics.CacheLookups.WithLabelValues("miss").Inc()
		return nil, false
	}
}

func (s *Service) checkLimits(desc *dfamin.Description) error {
	if s.maxStates > 0 && len(desc.States) > s.maxStates {
		return &LimitError{Field: "states", Limit: s.maxStates, Got: len(desc.States)}
	}
	if s.maxSymbols > 0 && len(desc.Alphabet) > s.maxSymbols {
		return &LimitError{Field: "symbols", Limit: s.maxSymbols, Got: len(desc.Alphabet)}
	}
	return nil
}

func (s *Service) options() []dfamin.Option {
	opts := []dfamin.Option{dfamin.WithSeparator(s.separator)}
	if s.lenient {
		opts = append(opts, dfamin.WithLenientReferences())
	}
	return opts
}

// cacheKey is the normalized request: label order and duplicates do not change the result, and
// encoding/json writes map keys sorted.
type cacheKey struct {
	Description *dfamin.Description `json:"description"`
	Lenient     bool                `json:"lenient"`
	Separator   string              `json:"separator"`
}

func (s *Service) key(desc *dfamin.Description) (string, error) {
	normalized := *desc
	normalized.States = sortedUnique(desc.States)
	normalized.Alphabet = sortedUnique(desc.Alphabet)
	normalized.Final = sortedUnique(desc.Final)

	data, err := json.Marshal(cacheKey{Description: &normalized, Lenient: s.lenient, Separator: s.separator})
	if err != nil {
		return "", fmt.Errorf("failed to encode request: %w", err)
	}
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

func sortedUnique(labels []string) []string {
	out := slices.Clone(labels)
	slices.Sort(out)
	return slices.Compact(out)
}

func decode(encoded []byte) (*dfamin.Description, error) {
	out := &dfamin.Description{}
	if err := json.Unmarshal(encoded, out); err != nil {
		return nil, fmt.Errorf("failed to decode result: %w", err)
	}
	return out, nil
}

func resultOf(err error) string {
	switch {
	case err == nil:
		return metrics.ResultOK
	case errors.Is(err, dfamin.ErrMalformedInput), errors.Is(err, dfamin.ErrPrecondition):
		return metrics.ResultMalformed
	case errors.Is(err, ErrTooLarge):
		return metrics.ResultTooLarge
	case errors.Is(err, ErrDeadline):
		return metrics.ResultTimeout
	default:
		return metrics.ResultError
	}
}
