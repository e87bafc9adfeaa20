// Package storage is a small key/value abstraction with pluggable drivers.
// Drivers register themselves from init, see package ldbstorage.
package storage

import (
	"errors"
)

const (
	KiB = 1024
	MiB = KiB * 1024
)

var (
	ErrDbUnknownType = errors.New("non-existent database type")
	ErrInvalidKey    = errors.New("invalid key")
	ErrInvalidBatch  = errors.New("invalid batch")
	ErrNotFound      = errors.New("not found")
)

// Range is a key range.
type Range struct {
	// Start of the key range, include in the range.
	Start []byte

	// Limit of the key range, not include in the range.
	Limit []byte
}

// BytesPrefix returns the range of every key starting with prefix.
func BytesPrefix(prefix []byte) *Range {
	var limit []byte
	for i := len(prefix) - 1; i >= 0; i-- {
		c := prefix[i]
		if c < 0xff {
			limit = make([]byte, i+1)
			copy(limit, prefix)
			limit[i] = c + 1
			break
		}
	}
	return &Range{Start: prefix, Limit: limit}
}

type Iterator interface {
	Release()
	Error() error
	Next() bool
	Key() []byte
	Value() []byte
}

type Batch interface {
	Release()
	Put(key, value []byte) error
	Reset()
	Len() int
}

type Storage interface {
	Close() error
	// Get returns ErrNotFound if key not exist
	Get(key []byte) ([]byte, error)
	Put(key, value []byte) error
	Has(key []byte) (bool, error)
	Delete(key []byte) error
	Write(batch Batch) error
	NewBatch() Batch
	NewIterator(slice *Range) Iterator
}

type StorageDriver struct {
	DbType        string
	CreateStorage func(storPath string) (s Storage, err error)
	OpenStorage   func(storPath string) (s Storage, err error)
}

var drivers []StorageDriver

func RegisterDriver(instance StorageDriver) {
	for _, drv := range drivers {
		if drv.DbType == instance.DbType {
			return
		}
	}
	drivers = append(drivers, instance)
}

// CreateStorage intializes and opens a new database.
func CreateStorage(dbtype, dbpath string) (s Storage, err error) {
	for _, drv := range drivers {
		if drv.DbType == dbtype {
			return drv.CreateStorage(dbpath)
		}
	}
	return nil, ErrDbUnknownType
}

// OpenStorage opens an existing database.
func OpenStorage(dbtype, dbpath string) (s Storage, err error) {
	for _, drv := range drivers {
		if drv.DbType == dbtype {
			return drv.OpenStorage(dbpath)
		}
	}
	return nil, ErrDbUnknownType
}

// OpenOrCreateStorage opens dbpath, creating it when it does not exist yet.
func OpenOrCreateStorage(dbtype, dbpath string) (Storage, error) {
	s, err := OpenStorage(dbtype, dbpath)
	if err == ErrDbUnknownType {
		return nil, err
	}
	if err != nil {
		return CreateStorage(dbtype, dbpath)
	}
	return s, nil
}

func RegisteredDbTypes() []string {
	var types []string
	for _, drv := range drivers {
		types = append(types, drv.DbType)
	}
	return types
}
