// Package lookup implements the two operations served over HTTP: digest a
// message, and find the library word behind a digest.
package lookup

import (
	"context"
	"sync"

	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/index"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/massutil/ccache"
	"massnet.org/hashlookup/matcher"
	"massnet.org/hashlookup/wordlist"
)

type Service struct {
	mtx       sync.RWMutex
	library   *wordlist.Library
	libraries *wordlist.Registry
	path      string

	matcher *matcher.Matcher
	index   *index.Index
	cache   *ccache.LookupCache
}

// New wires a lookup service. library may be nil, in which case Decrypt
// reports ErrResourceUnavailable; ix and cache are optional.
func New(library *wordlist.Library, m *matcher.Matcher, ix *index.Index, cache *ccache.LookupCache) *Service {
	if cache == nil {
		cache = ccache.NewLookupCache(0)
	}
	return &Service{
		library: library,
		matcher: m,
		index:   ix,
		cache:   cache,
	}
}

// UseRegistry makes Decrypt load the library at path through libraries
// while none is held, so a list that shows up after startup is picked up
// without a restart.
func (s *Service) UseRegistry(libraries *wordlist.Registry, path string) *Service {
	s.libraries = libraries
	s.path = path
	return s
}

// Digest returns the hex digest of message. An empty message is
// ErrInvalidInput.
func (s *Service) Digest(message string) (string, error) {
	if message == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "no message provided")
	}
	return sha256.Compute(message), nil
}

// Decrypt returns the first library word whose digest equals target.
func (s *Service) Decrypt(ctx context.Context, target string) (string, error) {
	if target == "" {
		return "", errors.Wrap(errors.ErrInvalidInput, "no hash provided")
	}
	library, err := s.loadLibrary()
	if err != nil {
		return "", err
	}

	if r, ok := s.cache.Get(target); ok {
		if !r.Found {
			return "", errors.Wrapf(errors.ErrNotFound, "hash %s", target)
		}
		return r.Word, nil
	}

	var word string
	if s.index != nil {
		word, err = s.index.Lookup(target)
	} else {
		word, err = s.matcher.Find(ctx, target, library)
	}

	switch {
	case err == nil:
		s.cache.Add(target, ccache.Result{Word: word, Found: true})
	case errors.Is(err, errors.ErrNotFound):
		s.cache.Add(target, ccache.Result{})
	default:
		logging.CPrint(logging.WARN, "decrypt failed", logging.LogFormat{"hash": target, "err": err})
	}
	return word, err
}

// Library returns the loaded word library, nil if unavailable.
func (s *Service) Library() *wordlist.Library {
	s.mtx.RLock()
	defer s.mtx.RUnlock()
	return s.library
}

func (s *Service) loadLibrary() (*wordlist.Library, error) {
	if lib := s.Library(); lib != nil {
		return lib, nil
	}
	if s.libraries == nil {
		return nil, errors.Wrap(errors.ErrResourceUnavailable, "word library not loaded")
	}

	lib, err := s.libraries.Load(s.path)
	if err != nil {
		return nil, err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()
	if s.library == nil {
		s.library = lib
		logging.CPrint(logging.INFO, "word library loaded on demand", logging.LogFormat{"path": s.path, "words": lib.Len()})
	}
	return s.library, nil
}
