package wordlist

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/errors"
)

func writeLibrary(t *testing.T, content string) (string, func()) {
	dir, err := ioutil.TempDir("", "wordlist")
	if err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(dir, "word_library.txt")
	if err = ioutil.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	return path, func() { os.RemoveAll(dir) }
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		content string
		words   []string
	}{
		{"plain", "hello\nworld\n", []string{"hello", "world"}},
		{"no trailing newline", "hello\nworld", []string{"hello", "world"}},
		{"crlf and spaces", "  hello \r\n\tworld\r\n", []string{"hello", "world"}},
		{"blank lines kept", "hello\n\nworld\n", []string{"hello", "", "world"}},
		{"empty file", "", []string{}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			path, cleanup := writeLibrary(t, test.content)
			defer cleanup()

			lib, err := Load(path, 0)
			assert.NoError(t, err)
			words, err := lib.Words()
			assert.NoError(t, err)
			assert.Equal(t, test.words, words)
			assert.Equal(t, len(test.words), lib.Len())
			assert.Equal(t, path, lib.Path())
			assert.Equal(t, sha256.Sum256([]byte(test.content)), lib.Fingerprint())
		})
	}
}

func TestLoadUnavailable(t *testing.T) {
	_, err := Load(filepath.Join(os.TempDir(), "no-such-word-library.txt"), 0)
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)

	_, err = Load(os.TempDir(), 0)
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)

	var lib *Library
	_, err = lib.Words()
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)
	assert.Equal(t, 0, lib.Len())
}

func TestLoadMemoryGuard(t *testing.T) {
	path, cleanup := writeLibrary(t, "hello\nworld\n")
	defer cleanup()

	_, err := Load(path, 100)
	assert.NoError(t, err)

	assert.NoError(t, checkMemory(0, 1))
	err = checkMemory(1<<62, 1)
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)
}

func TestFromWords(t *testing.T) {
	src := []string{"a", "b"}
	lib := FromWords(src)
	src[0] = "changed"

	words, err := lib.Words()
	assert.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, words)
	assert.Equal(t, sha256.Sum256([]byte("a\nb")), lib.Fingerprint())
	assert.Len(t, lib.FingerprintHex(), sha256.HexSize)
}

func TestRegistry(t *testing.T) {
	path, cleanup := writeLibrary(t, "hello\nworld\n")
	defer cleanup()

	r := NewRegistry(0)
	_, ok := r.Get(path)
	assert.False(t, ok)

	var wg sync.WaitGroup
	libs := make([]*Library, 8)
	for i := range libs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			lib, err := r.Load(path)
			assert.NoError(t, err)
			libs[i] = lib
		}(i)
	}
	wg.Wait()

	first, ok := r.Get(path)
	assert.True(t, ok)
	for _, lib := range libs {
		assert.True(t, first == lib, "registry returned a second copy")
	}
	assert.Equal(t, 1, r.Count())
	assert.Equal(t, []string{path}, r.Paths())

	_, err := r.Load(path + ".missing")
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable))
	assert.Equal(t, 1, r.Count())
}

func TestLoadFingerprintSpansBlocks(t *testing.T) {
	var sb strings.Builder
	for i := 0; i < 5000; i++ {
		fmt.Fprintf(&sb, "word-%d\n", i)
	}
	path, cleanup := writeLibrary(t, sb.String())
	defer cleanup()

	lib, err := Load(path, 0)
	assert.NoError(t, err)
	assert.Equal(t, 5000, lib.Len())
	assert.Equal(t, sha256.Sum256([]byte(sb.String())), lib.Fingerprint())
}

func TestLoadLineTooLong(t *testing.T) {
	path, cleanup := writeLibrary(t, strings.Repeat("x", maxLineSize+1))
	defer cleanup()

	_, err := Load(path, 0)
	assert.True(t, errors.Is(err, errors.ErrResourceUnavailable), "%v", err)
}
