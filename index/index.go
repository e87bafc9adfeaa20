// Package index keeps a precomputed digest to word table for a word
// library, so lookups against a large list avoid a full scan.
//
// Only the first word of the library producing a digest is stored, which
// keeps the answer identical to an in-order scan of the list.
package index

import (
	"bytes"
	"encoding/hex"

	"massnet.org/hashlookup/crypto/sha256"
	"massnet.org/hashlookup/database/storage"
	"massnet.org/hashlookup/errors"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/wordlist"
)

const batchSize = 10000

var (
	digestPrefix   = []byte("d")
	fingerprintKey = []byte("m/fingerprint")
)

type Index struct {
	db          storage.Storage
	fingerprint [sha256.Size]byte
}

func digestKey(sum [sha256.Size]byte) []byte {
	return append(append(make([]byte, 0, len(digestPrefix)+len(sum)), digestPrefix...), sum[:]...)
}

// Build returns an index of lib stored in db. An index already built for
// the same library contents is reused; otherwise it is rebuilt from
// scratch. The fingerprint is written last so an interrupted build is
// never mistaken for a complete one.
func Build(db storage.Storage, lib *wordlist.Library) (*Index, error) {
	words, err := lib.Words()
	if err != nil {
		return nil, err
	}
	ix := &Index{db: db, fingerprint: lib.Fingerprint()}

	stored, err := db.Get(fingerprintKey)
	if err == nil && bytes.Equal(stored, ix.fingerprint[:]) {
		logging.CPrint(logging.INFO, "digest index up to date", logging.LogFormat{"fingerprint": lib.FingerprintHex()})
		return ix, nil
	}
	if err != nil && err != storage.ErrNotFound {
		return nil, errors.Wrap(err, "read index fingerprint")
	}

	if err = ix.clear(); err != nil {
		return nil, err
	}

	batch := db.NewBatch()
	defer batch.Release()
	pending := make(map[[sha256.Size]byte]struct{}, batchSize)
	entries := 0
	for _, word := range words {
		sum := sha256.SumString(word)
		if _, ok := pending[sum]; ok {
			continue
		}
		key := digestKey(sum)
		if has, err := db.Has(key); err != nil {
			return nil, errors.Wrap(err, "probe digest index")
		} else if has {
			continue
		}
		if err = batch.Put(key, []byte(word)); err != nil {
			return nil, err
		}
		pending[sum] = struct{}{}
		entries++

		if batch.Len() >= batchSize {
			if err = db.Write(batch); err != nil {
				return nil, errors.Wrap(err, "write digest index")
			}
			batch.Reset()
			pending = make(map[[sha256.Size]byte]struct{}, batchSize)
		}
	}
	if err = db.Write(batch); err != nil {
		return nil, errors.Wrap(err, "write digest index")
	}
	if err = db.Put(fingerprintKey, ix.fingerprint[:]); err != nil {
		return nil, errors.Wrap(err, "write index fingerprint")
	}

	logging.CPrint(logging.INFO, "digest index built", logging.LogFormat{
		"words":       len(words),
		"entries":     entries,
		"fingerprint": lib.FingerprintHex(),
	})
	return ix, nil
}

func (ix *Index) clear() error {
	if err := ix.db.Delete(fingerprintKey); err != nil {
		return errors.Wrap(err, "drop index fingerprint")
	}
	it := ix.db.NewIterator(storage.BytesPrefix(digestPrefix))
	defer it.Release()
	for it.Next() {
		if err := ix.db.Delete(it.Key()); err != nil {
			return errors.Wrap(err, "drop digest index")
		}
	}
	return it.Error()
}

// Lookup returns the first library word whose digest is target, given as
// hex in either case. It fails with ErrNotFound if there is none.
func (ix *Index) Lookup(target string) (string, error) {
	var sum [sha256.Size]byte
	if len(target) != sha256.HexSize {
		return "", errors.Wrapf(errors.ErrNotFound, "hash %s", target)
	}
	if _, err := hex.Decode(sum[:], []byte(target)); err != nil {
		return "", errors.Wrapf(errors.ErrNotFound, "hash %s", target)
	}

	word, err := ix.db.Get(digestKey(sum))
	if err == storage.ErrNotFound {
		return "", errors.Wrapf(errors.ErrNotFound, "hash %s", target)
	}
	if err != nil {
		return "", errors.Wrap(err, "read digest index")
	}
	return string(word), nil
}

// Fingerprint identifies the library the index was built from.
func (ix *Index) Fingerprint() [sha256.Size]byte {
	return ix.fingerprint
}
