package lookup

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/database/storage"
	"massnet.org/hashlookup/database/storage/ldbstorage"
	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/index"
	"massnet.org/hashlookup/massutil/ccache"
	"massnet.org/hashlookup/matcher"
	"massnet.org/hashlookup/wordlist"
)

func newMatcher(t *testing.T) *matcher.Matcher {
	m, err := matcher.New(matcher.Config{Workers: 2, ChunkSize: 1})
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDigest(t *testing.T) {
	s := New(nil, nil, nil, nil)

	d, err := s.Digest("abc")
	assert.NoError(t, err)
	assert.Equal(t, "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad", d)

	_, err = s.Digest("")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput), "%v", err)
}

func TestDecrypt(t *testing.T) {
	m := newMatcher(t)
	defer m.Close()
	lib := wordlist.FromWords([]string{"hello", "world"})

	db, err := storage.CreateStorage(ldbstorage.DbTypeMemDB, "")
	assert.NoError(t, err)
	defer db.Close()
	ix, err := index.Build(db, lib)
	assert.NoError(t, err)

	services := map[string]*Service{
		"scan":  New(lib, m, nil, ccache.NewLookupCache(16)),
		"index": New(lib, m, ix, nil),
	}
	for name, s := range services {
		ctx := context.Background()

		word, err := s.Decrypt(ctx, sha256.Compute("world"))
		assert.NoError(t, err, name)
		assert.Equal(t, "world", word, name)

		word, err = s.Decrypt(ctx, strings.ToUpper(sha256.Compute("hello")))
		assert.NoError(t, err, name)
		assert.Equal(t, "hello", word, name)

		_, err = s.Decrypt(ctx, sha256.Compute("absent"))
		assert.True(t, errors.Is(err, errors.ErrNotFound), "%s: %v", name, err)

		_, err = s.Decrypt(ctx, "")
		assert.True(t, errors.Is(err, errors.ErrInvalidInput), "%s: %v", name, err)

		assert.Equal(t, lib, s.Library())
	}
}

func TestDecryptCache(t *testing.T) {
	m := newMatcher(t)
	defer m.Close()
	cache := ccache.NewLookupCache(16)
	s := New(wordlist.FromWords([]string{"hello", "world"}), m, nil, cache)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		word, err := s.Decrypt(ctx, sha256.Compute("world"))
		assert.NoError(t, err)
		assert.Equal(t, "world", word)

		_, err = s.Decrypt(ctx, sha256.Compute("absent"))
		assert.True(t, errors.Is(err, errors.ErrNotFound), "%v", err)
	}
	hits, misses := cache.Stats()
	assert.Equal(t, uint64(2), hits)
	assert.Equal(t, uint64(2), misses)
	assert.Equal(t, 2, cache.Len())
}

func TestDecryptUnavailable(t *testing.T) {
	m := newMatcher(t)
	defer m.Close()
	s := New(nil, m, nil, nil)

	_, err := s.Decrypt(context.Background(), sha256.Compute("world"))
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)

	// missing input is reported before the missing library
	_, err = s.Decrypt(context.Background(), "")
	assert.True(t, errors.Is(err, errors.ErrInvalidInput), "%v", err)
}

func TestDecryptCancelledNotCached(t *testing.T) {
	m := newMatcher(t)
	defer m.Close()
	cache := ccache.NewLookupCache(16)
	s := New(wordlist.FromWords([]string{"hello", "world"}), m, nil, cache)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := s.Decrypt(ctx, sha256.Compute("world"))
	assert.Equal(t, context.Canceled, err)
	assert.Equal(t, 0, cache.Len())
}

func TestDecryptLoadsLibraryOnDemand(t *testing.T) {
	m := newMatcher(t)
	defer m.Close()

	dir, err := ioutil.TempDir("", "hashlookup-lookup")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "words.txt")

	libraries := wordlist.NewRegistry(0)
	s := New(nil, m, nil, ccache.NewLookupCache(16)).UseRegistry(libraries, path)
	ctx := context.Background()

	_, err = s.Decrypt(ctx, sha256.Compute("world"))
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)
	assert.Nil(t, s.Library())
	assert.Equal(t, 0, libraries.Count())

	assert.NoError(t, ioutil.WriteFile(path, []byte("hello\nworld\n"), 0644))

	var wg sync.WaitGroup
	words := make([]string, 8)
	errs := make([]error, 8)
	for i := range words {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			words[i], errs[i] = s.Decrypt(ctx, sha256.Compute("world"))
		}(i)
	}
	wg.Wait()
	for i := range words {
		assert.NoError(t, errs[i])
		assert.Equal(t, "world", words[i])
	}

	assert.NotNil(t, s.Library())
	assert.Equal(t, []string{path}, libraries.Paths())

	// the held library stays even if the file goes away
	assert.NoError(t, os.Remove(path))
	word, err := s.Decrypt(ctx, sha256.Compute("hello"))
	assert.NoError(t, err)
	assert.Equal(t, "hello", word)
}
