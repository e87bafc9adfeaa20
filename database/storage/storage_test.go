package storage_test

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"massnet.org/hashlookup/database/storage"
	_ "massnet.org/hashlookup/database/storage/ldbstorage"
)

func TestAll(t *testing.T) {
	types := storage.RegisteredDbTypes()
	assert.ElementsMatch(t, []string{"leveldb", "memdb"}, types)

	for _, tp := range types {
		t.Run(tp, func(t *testing.T) {
			testPutGet(t, tp)
			testBatch(t, tp)
			testIterator(t, tp)
		})
	}
}

func getStorage(t *testing.T, dbtype string) (storage.Storage, func()) {
	dir, err := ioutil.TempDir("", "storage")
	if err != nil {
		t.Fatal(err)
	}
	db, err := storage.CreateStorage(dbtype, filepath.Join(dir, "index.db"))
	if err != nil {
		os.RemoveAll(dir)
		t.Fatal(err)
	}
	return db, func() {
		db.Close()
		os.RemoveAll(dir)
	}
}

func testPutGet(t *testing.T, dbtype string) {
	store, tearDown := getStorage(t, dbtype)
	defer tearDown()

	assert.NoError(t, store.Put([]byte("d/abc"), []byte("abc")))
	assert.NoError(t, store.Put([]byte("d/empty"), []byte("")))
	assert.Equal(t, storage.ErrInvalidKey, store.Put(nil, []byte("v")))

	tests := []struct {
		key    string
		expect string
		err    error
	}{
		{"d/abc", "abc", nil},
		{"d/empty", "", nil},
		{"d/missing", "", storage.ErrNotFound},
		{"", "", storage.ErrNotFound},
	}
	for _, test := range tests {
		actual, err := store.Get([]byte(test.key))
		assert.Equal(t, test.expect, string(actual), test.key)
		assert.Equal(t, test.err, err, test.key)

		has, err := store.Has([]byte(test.key))
		assert.NoError(t, err)
		assert.Equal(t, test.err == nil, has, test.key)
	}

	assert.NoError(t, store.Delete([]byte("d/abc")))
	has, err := store.Has([]byte("d/abc"))
	assert.NoError(t, err)
	assert.False(t, has)
}

func testBatch(t *testing.T, dbtype string) {
	store, tearDown := getStorage(t, dbtype)
	defer tearDown()

	batch := store.NewBatch()
	defer batch.Release()
	assert.NoError(t, batch.Put([]byte("a"), []byte("1")))
	assert.NoError(t, batch.Put([]byte("b"), []byte("2")))
	assert.Equal(t, storage.ErrInvalidKey, batch.Put(nil, []byte("3")))
	assert.Equal(t, 2, batch.Len())

	has, _ := store.Has([]byte("a"))
	assert.False(t, has, "batch must not be visible before Write")

	assert.NoError(t, store.Write(batch))
	v, err := store.Get([]byte("b"))
	assert.NoError(t, err)
	assert.Equal(t, "2", string(v))

	batch.Reset()
	assert.Equal(t, 0, batch.Len())

	type foreignBatch struct{ storage.Batch }
	assert.Equal(t, storage.ErrInvalidBatch, store.Write(foreignBatch{}))
}

func testIterator(t *testing.T, dbtype string) {
	store, tearDown := getStorage(t, dbtype)
	defer tearDown()

	for _, k := range []string{"a1", "b1", "b2", "b3", "c1"} {
		assert.NoError(t, store.Put([]byte(k), []byte("v"+k)))
	}

	collect := func(r *storage.Range) []string {
		it := store.NewIterator(r)
		defer it.Release()
		var keys []string
		for it.Next() {
			keys = append(keys, string(it.Key()))
			assert.Equal(t, "v"+string(it.Key()), string(it.Value()))
		}
		assert.NoError(t, it.Error())
		return keys
	}

	assert.Equal(t, []string{"b1", "b2", "b3"}, collect(storage.BytesPrefix([]byte("b"))))
	assert.Equal(t, []string{"a1", "b1", "b2", "b3", "c1"}, collect(nil))
	assert.Equal(t, []string{"b2", "b3", "c1"}, collect(&storage.Range{Start: []byte("b2")}))
}

func TestBytesPrefix(t *testing.T) {
	assert.Equal(t, []byte("b"), storage.BytesPrefix([]byte("a")).Limit)
	assert.Equal(t, []byte("b"), storage.BytesPrefix([]byte("a\xff")).Limit)
	assert.Nil(t, storage.BytesPrefix([]byte("\xff\xff")).Limit)
}

func TestOpenOrCreate(t *testing.T) {
	dir, err := ioutil.TempDir("", "storage")
	assert.NoError(t, err)
	defer os.RemoveAll(dir)
	path := filepath.Join(dir, "index.db")

	_, err = storage.OpenStorage("leveldb", path)
	assert.Error(t, err)

	db, err := storage.OpenOrCreateStorage("leveldb", path)
	assert.NoError(t, err)
	assert.NoError(t, db.Put([]byte("k"), []byte("v")))
	assert.NoError(t, db.Close())

	db, err = storage.OpenOrCreateStorage("leveldb", path)
	assert.NoError(t, err)
	v, err := db.Get([]byte("k"))
	assert.NoError(t, err)
	assert.Equal(t, "v", string(v))
	assert.NoError(t, db.Close())

	_, err = storage.OpenOrCreateStorage("sqlite", path)
	assert.Equal(t, storage.ErrDbUnknownType, err)
}
