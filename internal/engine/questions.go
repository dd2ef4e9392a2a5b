package engine

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"smashduel/internal/domain"
)

const (
	// DefaultPoolSize is how many candidate questions are requested per turn
	DefaultPoolSize = 10

	// fetchTimeout bounds a single pool fetch
	fetchTimeout = 10 * time.Second
)

// PoolState describes the lifecycle of the candidate pool for one turn
type PoolState string

const (
	PoolIdle        PoolState = "IDLE"        // No fetch issued this turn
	PoolLoading     PoolState = "LOADING"     // Fetch in flight
	PoolReady       PoolState = "READY"       // Pool loaded (possibly empty)
	PoolUnavailable PoolState = "UNAVAILABLE" // Fetch failed, retry possible
)

// PoolFetcher retrieves candidate questions filtered by round variant.
// Implemented by the REST client; faked in tests.
type PoolFetcher interface {
	RandomQuestions(ctx context.Context, variant domain.RoundVariant, count int) ([]domain.CandidateQuestion, error)
}

// QuestionSource resolves the question material the attacker will submit:
// freely authored text, or a selection from the server-provided candidate
// pool. SMASH_B pins the pool mode at turn start; SMASH_A leaves the mode
// unset until the attacker chooses.
type QuestionSource struct {
	fetcher  PoolFetcher
	logger   zerolog.Logger
	poolSize int

	mu       sync.Mutex
	gen      uint64 // incremented per turn; stale fetch results are discarded
	variant  domain.RoundVariant
	mode     domain.QuestionMode
	state    PoolState
	pool     []domain.CandidateQuestion
	selected *domain.CandidateQuestion
}

// NewQuestionSource creates a question source backed by the given fetcher
func NewQuestionSource(fetcher PoolFetcher, logger zerolog.Logger) *QuestionSource {
	return &QuestionSource{
		fetcher:  fetcher,
		logger:   logger.With().Str("component", "questions").Logger(),
		poolSize: DefaultPoolSize,
		state:    PoolIdle,
	}
}

// BeginTurn resets the source for a new turn. For SMASH_B the mode is
// forced to PREDEFINED and a pool fetch is triggered immediately.
func (s *QuestionSource) BeginTurn(variant domain.RoundVariant) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.gen++
	s.variant = variant
	s.pool = nil
	s.selected = nil
	s.state = PoolIdle

	if variant.ForcesPool() {
		s.mode = domain.ModePredefined
		s.startFetchLocked()
	} else {
		s.mode = domain.ModeUnset
	}
}

// Reset clears all state, including any pinned mode
func (s *QuestionSource) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	s.variant = ""
	s.mode = domain.ModeUnset
	s.state = PoolIdle
	s.pool = nil
	s.selected = nil
}

// ChoosePoolMode switches to the candidate pool, fetching it if it has not
// been loaded for this turn
func (s *QuestionSource) ChoosePoolMode() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mode = domain.ModePredefined
	if s.state == PoolIdle || s.state == PoolUnavailable {
		s.startFetchLocked()
	}
}

// ChooseCustomMode switches to freely authored text, discarding any prior
// selection. Rejected when the variant forces the pool mode.
func (s *QuestionSource) ChooseCustomMode() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.variant.ForcesPool() {
		return domain.ErrPoolModeRequired
	}
	s.mode = domain.ModeCustom
	s.selected = nil
	return nil
}

// RetryFetch re-issues the pool fetch after an unavailable result
func (s *QuestionSource) RetryFetch() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != domain.ModePredefined {
		return
	}
	s.startFetchLocked()
}

// Select records the chosen candidate as the provisional submission. It
// does not submit anything; submission is a separate explicit intent.
func (s *QuestionSource) Select(id string) (domain.CandidateQuestion, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.mode != domain.ModePredefined {
		return domain.CandidateQuestion{}, domain.ErrPoolModeRequired
	}
	for i := range s.pool {
		if s.pool[i].ID == id {
			candidate := s.pool[i]
			s.selected = &candidate
			return candidate, nil
		}
	}
	return domain.CandidateQuestion{}, domain.ErrCandidateNotFound
}

// Selected returns the provisionally chosen candidate, if any
func (s *QuestionSource) Selected() (domain.CandidateQuestion, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.selected == nil {
		return domain.CandidateQuestion{}, false
	}
	return *s.selected, true
}

// Mode returns the current question mode
func (s *QuestionSource) Mode() domain.QuestionMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// State returns the current pool state
func (s *QuestionSource) State() PoolState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Pool returns a copy of the current candidate pool
func (s *QuestionSource) Pool() []domain.CandidateQuestion {
	s.mu.Lock()
	defer s.mu.Unlock()
	pool := make([]domain.CandidateQuestion, len(s.pool))
	copy(pool, s.pool)
	return pool
}

// startFetchLocked issues an asynchronous pool fetch for the current turn.
// Caller must hold the lock.
func (s *QuestionSource) startFetchLocked() {
	s.state = PoolLoading
	gen := s.gen
	variant := s.variant

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()

		pool, err := s.fetcher.RandomQuestions(ctx, variant, s.poolSize)

		s.mu.Lock()
		defer s.mu.Unlock()

		if gen != s.gen {
			// The turn this fetch was issued for is no longer current
			s.logger.Debug().Uint64("gen", gen).Msg("discarding stale pool fetch")
			return
		}
		if err != nil {
			s.logger.Warn().Err(err).Str("variant", variant.String()).Msg("pool fetch failed")
			s.state = PoolUnavailable
			return
		}
		s.pool = pool
		s.state = PoolReady
		s.logger.Debug().Int("count", len(pool)).Str("variant", variant.String()).Msg("pool loaded")
	}()
}
