// Package matcher finds the candidate word whose digest equals a target.
package matcher

import (
	"bytes"
	"context"
	"encoding/hex"
	"sync"
	"sync/atomic"

	"github.com/panjf2000/ants"
	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/logging"
)

const (
	// DefaultChunkSize is the number of candidates handed to a worker at once.
	DefaultChunkSize = 1024
	defaultWorkers   = 1
)

// Source supplies candidates in list order.
type Source interface {
	Words() ([]string, error)
}

// Config sizes a Matcher. Zero values pick the defaults.
type Config struct {
	Workers   int
	ChunkSize int
}

// Matcher scans candidate lists. Candidates are split into index-ordered
// chunks run on a shared worker pool; the lowest matching index wins no
// matter which worker finishes first.
type Matcher struct {
	pool      *ants.Pool
	workers   int
	chunkSize int
}

// New creates a Matcher; a worker pool is started only for more than one worker.
func New(cfg Config) (*Matcher, error) {
	if cfg.Workers <= 0 {
		cfg.Workers = defaultWorkers
	}
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = DefaultChunkSize
	}
	m := &Matcher{
		workers:   cfg.Workers,
		chunkSize: cfg.ChunkSize,
	}
	if cfg.Workers > 1 {
		pool, err := ants.NewPool(cfg.Workers)
		if err != nil {
			return nil, err
		}
		m.pool = pool
	}
	logging.CPrint(logging.INFO, "new matcher", logging.LogFormat{"workers": m.workers, "chunk_size": m.chunkSize})
	return m, nil
}

// Close releases the worker pool.
func (m *Matcher) Close() {
	if m.pool != nil {
		m.pool.Release()
	}
}

// Find fetches the candidates from src and returns the first one, in list
// order, whose digest equals target. target is compared as hex without
// regard to case.
//
// It fails with ErrResourceUnavailable if src cannot supply candidates and
// with ErrNotFound if none matches, including when the list is empty.
func (m *Matcher) Find(ctx context.Context, target string, src Source) (string, error) {
	if src == nil {
		return "", errors.Wrap(errors.ErrResourceUnavailable, "no candidate source")
	}
	words, err := src.Words()
	if err != nil {
		if errors.Is(err, errors.ErrResourceUnavailable) {
			return "", err
		}
		return "", errors.Wrap(errors.ErrResourceUnavailable, err.Error())
	}
	return m.FindIn(ctx, target, words)
}

// FindIn is Find over an in-memory candidate list.
func (m *Matcher) FindIn(ctx context.Context, target string, candidates []string) (string, error) {
	idx, err := m.Index(ctx, target, candidates)
	if err != nil {
		return "", err
	}
	return candidates[idx], nil
}

// Index returns the position of the first candidate matching target.
func (m *Matcher) Index(ctx context.Context, target string, candidates []string) (int, error) {
	want, ok := decodeTarget(target)
	if !ok || len(candidates) == 0 {
		// a malformed target cannot equal any rendered digest
		return -1, errors.Wrapf(errors.ErrNotFound, "hash %s", target)
	}

	s := &search{
		want:       want,
		candidates: candidates,
		best:       int64(len(candidates)),
	}
	if m.pool == nil || len(candidates) <= m.chunkSize {
		s.scan(ctx, 0, len(candidates))
	} else if err := m.scanParallel(ctx, s); err != nil {
		return -1, err
	}

	// a cancelled scan may have skipped lower indices
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	if idx := s.found(); idx >= 0 {
		return idx, nil
	}
	return -1, errors.Wrapf(errors.ErrNotFound, "hash %s", target)
}

func (m *Matcher) scanParallel(ctx context.Context, s *search) error {
	var wg sync.WaitGroup
	for start := 0; start < len(s.candidates); start += m.chunkSize {
		if s.abandoned(start) || ctx.Err() != nil {
			break
		}
		end := start + m.chunkSize
		if end > len(s.candidates) {
			end = len(s.candidates)
		}
		wg.Add(1)
		lo, hi := start, end
		if err := m.pool.Submit(func() {
			defer wg.Done()
			s.scan(ctx, lo, hi)
		}); err != nil {
			wg.Done()
			wg.Wait()
			logging.CPrint(logging.ERROR, "fail to submit matcher task", logging.LogFormat{"err": err, "start": lo})
			return err
		}
	}
	wg.Wait()
	return nil
}

func decodeTarget(target string) ([sha256.Size]byte, bool) {
	var want [sha256.Size]byte
	if len(target) != sha256.HexSize {
		return want, false
	}
	// hex decoding accepts either case
	if _, err := hex.Decode(want[:], []byte(target)); err != nil {
		return want, false
	}
	return want, true
}

type search struct {
	want       [sha256.Size]byte
	candidates []string
	// best is the lowest confirmed matching index, len(candidates) if none.
	best int64
}

// abandoned reports whether index i can no longer be the answer.
func (s *search) abandoned(i int) bool {
	return int64(i) > atomic.LoadInt64(&s.best)
}

func (s *search) found() int {
	if best := atomic.LoadInt64(&s.best); best < int64(len(s.candidates)) {
		return int(best)
	}
	return -1
}

func (s *search) scan(ctx context.Context, lo, hi int) {
	for i := lo; i < hi; i++ {
		if s.abandoned(i) {
			return
		}
		if i&0xff == 0 && ctx.Err() != nil {
			return
		}
		sum := sha256.SumString(s.candidates[i])
		if bytes.Equal(sum[:], s.want[:]) {
			s.confirm(int64(i))
			return
		}
	}
}

// confirm lowers best to i unless a lower index is already confirmed.
func (s *search) confirm(i int64) {
	for {
		cur := atomic.LoadInt64(&s.best)
		if i >= cur || atomic.CompareAndSwapInt64(&s.best, cur, i) {
			return
		}
	}
}
