// Package server assembles the word library, the matcher, the optional
// digest index and the API into one service.
package server

import (
	"errors"
	"os"
	"sync/atomic"

	"massnet.org/hashlookup/api"
	"massnet.org/hashlookup/config"
	"massnet.org/hashlookup/database/storage"
	_ "massnet.org/hashlookup/database/storage/ldbstorage"
	"massnet.org/hashlookup/index"
	"massnet.org/hashlookup/logging"
	"massnet.org/hashlookup/lookup"
	"massnet.org/hashlookup/massutil/ccache"
	"massnet.org/hashlookup/matcher"
	"massnet.org/hashlookup/wordlist"
)

type Server struct {
	started   int32 // atomic
	shutdown  int32 // atomic
	cfg       *config.Config
	libraries *wordlist.Registry
	matcher   *matcher.Matcher
	db        storage.Storage
	lookup    *lookup.Service
	apiServer *api.Server
}

func (s *Server) Start() error {
	// Already started?
	if atomic.AddInt32(&s.started, 1) != 1 {
		logging.CPrint(logging.INFO, "started exit", logging.LogFormat{"started": s.started})
		return errors.New("server already started")
	}
	logging.CPrint(logging.TRACE, "starting server")
	return s.apiServer.Start()
}

func (s *Server) Stop() error {
	// Make sure this only happens once.
	if atomic.AddInt32(&s.shutdown, 1) != 1 {
		logging.CPrint(logging.INFO, "server is already in the process of shutting down")
		return nil
	}

	var err error
	if s.apiServer.Started() {
		err = s.apiServer.Stop()
	}
	s.matcher.Close()
	if s.db != nil {
		if err := s.db.Close(); err != nil {
			logging.CPrint(logging.ERROR, "fail to close index db", logging.LogFormat{"err": err})
		}
	}
	return err
}

// Lookup exposes the assembled lookup service.
func (s *Server) Lookup() *lookup.Service {
	return s.lookup
}

// API exposes the HTTP server, for its address once started.
func (s *Server) API() *api.Server {
	return s.apiServer
}

// NewServer loads the library and prepares every component. A library that
// cannot be loaded is logged and the server still starts; /decrypt answers
// with ErrResourceUnavailable and retries the load on each request.
func NewServer(cfg *config.Config) (*Server, error) {
	s := &Server{
		cfg:       cfg,
		libraries: wordlist.NewRegistry(cfg.Library.MaxMemoryPercent),
	}

	lib, err := s.libraries.Load(cfg.Library.Path)
	if err != nil {
		logging.CPrint(logging.ERROR, "word library unavailable", logging.LogFormat{"path": cfg.Library.Path, "err": err})
		lib = nil
	}

	s.matcher, err = matcher.New(matcher.Config{Workers: cfg.Matcher.Workers, ChunkSize: cfg.Matcher.ChunkSize})
	if err != nil {
		logging.CPrint(logging.ERROR, "fail on new matcher", logging.LogFormat{"err": err})
		return nil, err
	}

	var ix *index.Index
	if lib != nil && cfg.Datastore.DBType != config.DBTypeNone {
		if s.db, err = setupIndexDB(cfg.Datastore); err != nil {
			s.matcher.Close()
			return nil, err
		}
		if ix, err = index.Build(s.db, lib); err != nil {
			logging.CPrint(logging.ERROR, "fail to build digest index", logging.LogFormat{"err": err})
			s.db.Close()
			s.matcher.Close()
			return nil, err
		}
	}

	s.lookup = lookup.New(lib, s.matcher, ix, ccache.NewLookupCache(cfg.Cache.Entries)).
		UseRegistry(s.libraries, cfg.Library.Path)

	s.apiServer, err = api.NewServer(cfg.API, s.lookup)
	if err != nil {
		logging.CPrint(logging.ERROR, "fail on new api server", logging.LogFormat{"err": err})
		if s.db != nil {
			s.db.Close()
		}
		s.matcher.Close()
		return nil, err
	}
	return s, nil
}

func setupIndexDB(cfg *config.Datastore) (storage.Storage, error) {
	// The memdb backend does not have a file path associated with it.
	if cfg.DBType == config.DBTypeMemDB {
		logging.CPrint(logging.INFO, "creating digest index in memory")
		return storage.CreateStorage(cfg.DBType, "")
	}

	if err := os.MkdirAll(cfg.Dir, 0700); err != nil {
		return nil, err
	}
	db, err := storage.OpenOrCreateStorage(cfg.DBType, cfg.Dir)
	if err != nil {
		logging.CPrint(logging.ERROR, "fail to open digest index", logging.LogFormat{"dir": cfg.Dir, "type": cfg.DBType, "err": err})
		return nil, err
	}
	return db, nil
}
