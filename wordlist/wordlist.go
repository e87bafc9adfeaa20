// Package wordlist loads the candidate words used for reverse lookups.
//
// A Library is read once and never modified afterwards, so a single
// instance is shared by every lookup for the lifetime of the process.
package wordlist

import (
	"bufio"
	"encoding/hex"
	"io"
	"io/ioutil"
	"os"
	"strings"

	"github.com/shirou/gopsutil/mem"
	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/logging"
)

const maxLineSize = 1 << 20

// Library is an immutable, ordered list of candidate words.
type Library struct {
	path        string
	words       []string
	fingerprint [sha256.Size]byte
}

// Load reads the newline separated word list at path. Surrounding
// whitespace is trimmed from every line; blank lines are kept as empty
// candidates so that list positions match the file.
//
// A missing or unreadable file yields ErrResourceUnavailable. When
// maxMemoryPercent is non-zero, a file larger than that share of the
// available memory is refused the same way.
func Load(path string, maxMemoryPercent uint32) (*Library, error) {
	fi, err := os.Stat(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrResourceUnavailable, "stat word library %s: %v", path, err)
	}
	if fi.IsDir() {
		return nil, errors.Wrapf(errors.ErrResourceUnavailable, "word library %s is a directory", path)
	}
	if err = checkMemory(uint64(fi.Size()), maxMemoryPercent); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrResourceUnavailable, "open word library %s: %v", path, err)
	}
	defer f.Close()

	// the fingerprint is taken over the raw bytes while they are split
	h := sha256.New()
	words, err := splitWords(io.TeeReader(f, h), fi.Size())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrResourceUnavailable, "read word library %s: %v", path, err)
	}

	lib := &Library{
		path:  path,
		words: words,
	}
	copy(lib.fingerprint[:], h.Sum(nil))
	logging.CPrint(logging.INFO, "word library loaded", logging.LogFormat{
		"path":        path,
		"words":       len(words),
		"bytes":       fi.Size(),
		"fingerprint": lib.FingerprintHex(),
	})
	return lib, nil
}

// FromWords builds an in-memory library. words is copied.
func FromWords(words []string) *Library {
	cp := make([]string, len(words))
	copy(cp, words)
	return &Library{
		path:        "",
		words:       cp,
		fingerprint: sha256.Sum256([]byte(strings.Join(cp, "\n"))),
	}
}

// splitWords reads r to the end, one trimmed word per line. sizeHint is
// the expected byte count, used only to presize the result.
func splitWords(r io.Reader, sizeHint int64) ([]string, error) {
	words := make([]string, 0, sizeHint/8+1)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 4096), maxLineSize)
	for scanner.Scan() {
		words = append(words, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	// drain what the scanner left so the caller sees every byte
	_, err := io.Copy(ioutil.Discard, r)
	return words, err
}

func checkMemory(size uint64, maxPercent uint32) error {
	if maxPercent == 0 {
		return nil
	}
	vm, err := mem.VirtualMemory()
	if err != nil {
		logging.CPrint(logging.WARN, "fail to read memory stat, skip library size check", logging.LogFormat{"err": err})
		return nil
	}
	// words are stored as strings, roughly twice the file size
	limit := vm.Available / 100 * uint64(maxPercent)
	if size*2 > limit {
		return errors.Wrapf(errors.ErrResourceUnavailable, "word library of %d bytes exceeds %d%% of available memory (%d bytes)",
			size, maxPercent, vm.Available)
	}
	return nil
}

// Words returns the candidates in list order. The slice is shared and
// must not be modified. A nil Library is unavailable.
func (l *Library) Words() ([]string, error) {
	if l == nil {
		return nil, errors.Wrap(errors.ErrResourceUnavailable, "word library not loaded")
	}
	return l.words, nil
}

func (l *Library) Len() int {
	if l == nil {
		return 0
	}
	return len(l.words)
}

func (l *Library) Path() string {
	return l.path
}

// Fingerprint is the SHA-256 of the library contents.
func (l *Library) Fingerprint() [sha256.Size]byte {
	return l.fingerprint
}

func (l *Library) FingerprintHex() string {
	return hex.EncodeToString(l.fingerprint[:])
}
