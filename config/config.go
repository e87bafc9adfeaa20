package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"net"
	"runtime"

	"massnet.org/hashlookup/errors"
)

const (
	DefaultConfigFilename   = "config.json"
	DefaultLoggingFilename  = "hashlookup"
	DefaultLogLevel         = "info"
	defaultLogDirname       = "logs"
	defaultLibraryFilename  = "word_library.txt"
	defaultMaxMemoryPercent = 50
	defaultDataDirname      = "index"
	defaultAPIPortHttp      = 9686
	defaultMaxConcurrent    = 128
	defaultMaxConnections   = 512
	defaultMaxBodyBytes     = 1 << 20
	defaultChunkSize        = 1024
	defaultCacheEntries     = 4096

	DBTypeNone    = ""
	DBTypeLevelDB = "leveldb"
	DBTypeMemDB   = "memdb"
)

type Config struct {
	Log       *Log       `json:"log"`
	API       *API       `json:"api"`
	Library   *Library   `json:"library"`
	Matcher   *Matcher   `json:"matcher"`
	Datastore *Datastore `json:"datastore"`
	Cache     *Cache     `json:"cache"`
}

type Log struct {
	LogDir        string `json:"log_dir"`
	LogLevel      string `json:"log_level"`
	DisableCPrint bool   `json:"disable_cprint"`
}

type API struct {
	PortHttp       uint16   `json:"port_http"`
	Whitelist      []string `json:"whitelist"`
	AllowedLan     []string `json:"allowed_lan"`
	AllowedOrigins []string `json:"allowed_origins"`
	MaxConcurrent  int      `json:"max_concurrent"`
	MaxConnections int      `json:"max_connections"`
	MaxBodyBytes   int64    `json:"max_body_bytes"`
}

// Library locates the word list used by /decrypt.
type Library struct {
	Path string `json:"path"`
	// MaxMemoryPercent refuses to load a list larger than this share of
	// the available memory. 0 disables the check.
	MaxMemoryPercent uint32 `json:"max_memory_percent"`
}

type Matcher struct {
	// Workers is the size of the candidate worker pool, 0 means one per CPU.
	Workers   int `json:"workers"`
	ChunkSize int `json:"chunk_size"`
}

// Datastore configures the optional digest index. An empty DBType
// disables it and every lookup scans the library.
type Datastore struct {
	Dir    string `json:"dir"`
	DBType string `json:"db_type"`
}

type Cache struct {
	Entries int `json:"entries"`
}

func DefaultConfig() *Config {
	return &Config{
		Log:       DefaultLog(),
		API:       DefaultAPI(),
		Library:   DefaultLibrary(),
		Matcher:   DefaultMatcher(),
		Datastore: DefaultDatastore(),
		Cache:     DefaultCache(),
	}
}

func DefaultLog() *Log {
	return &Log{
		LogDir:        defaultLogDirname,
		LogLevel:      DefaultLogLevel,
		DisableCPrint: false,
	}
}

func DefaultAPI() *API {
	return &API{
		PortHttp:       defaultAPIPortHttp,
		Whitelist:      []string{"*"},
		AllowedLan:     []string{},
		AllowedOrigins: []string{"*"},
		MaxConcurrent:  defaultMaxConcurrent,
		MaxConnections: defaultMaxConnections,
		MaxBodyBytes:   defaultMaxBodyBytes,
	}
}

func DefaultLibrary() *Library {
	return &Library{
		Path:             defaultLibraryFilename,
		MaxMemoryPercent: defaultMaxMemoryPercent,
	}
}

func DefaultMatcher() *Matcher {
	return &Matcher{
		Workers:   runtime.NumCPU(),
		ChunkSize: defaultChunkSize,
	}
}

func DefaultDatastore() *Datastore {
	return &Datastore{
		Dir:    defaultDataDirname,
		DBType: DBTypeNone,
	}
}

func DefaultCache() *Cache {
	return &Cache{
		Entries: defaultCacheEntries,
	}
}

func LoadConfig(filename string) (*Config, error) {
	data, err := ioutil.ReadFile(filename)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err = json.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrapf(err, "parse %s", filename)
	}
	return cfg, nil
}

var lanPrefixes = map[string]bool{"10": true, "172": true, "192": true}

func CheckConfig(cfg *Config) error {
	if cfg.Log == nil {
		cfg.Log = DefaultLog()
	}
	if cfg.API == nil {
		cfg.API = DefaultAPI()
	}
	if cfg.Library == nil {
		cfg.Library = DefaultLibrary()
	}
	if cfg.Matcher == nil {
		cfg.Matcher = DefaultMatcher()
	}
	if cfg.Datastore == nil {
		cfg.Datastore = DefaultDatastore()
	}
	if cfg.Cache == nil {
		cfg.Cache = DefaultCache()
	}

	// Checks for API
	if cfg.API.PortHttp == 0 {
		return errors.New("api port_http cannot be 0")
	}
	for i, addr := range cfg.API.Whitelist {
		if addr == "*" {
			continue
		}
		if ip := net.ParseIP(addr); ip == nil {
			return errors.New(fmt.Sprintf("invalid api whitelist, %d, %s", i, addr))
		}
	}
	for i, lan := range cfg.API.AllowedLan {
		if !lanPrefixes[lan] {
			return errors.New(fmt.Sprintf("invalid api allowed_lan, %d, %s", i, lan))
		}
	}
	if cfg.API.MaxConcurrent <= 0 {
		cfg.API.MaxConcurrent = defaultMaxConcurrent
	}
	if cfg.API.MaxConnections < cfg.API.MaxConcurrent {
		cfg.API.MaxConnections = cfg.API.MaxConcurrent
	}
	if cfg.API.MaxBodyBytes <= 0 {
		cfg.API.MaxBodyBytes = defaultMaxBodyBytes
	}

	// Checks for library
	if cfg.Library.Path == "" {
		return errors.New("library path cannot be empty")
	}
	if cfg.Library.MaxMemoryPercent > 100 {
		return errors.New(fmt.Sprintln("library max_memory_percent cannot be more than 100, current", cfg.Library.MaxMemoryPercent))
	}

	// Checks for matcher
	if cfg.Matcher.Workers <= 0 {
		cfg.Matcher.Workers = runtime.NumCPU()
	}
	if cfg.Matcher.ChunkSize <= 0 {
		cfg.Matcher.ChunkSize = defaultChunkSize
	}

	// Checks for datastore
	switch cfg.Datastore.DBType {
	case DBTypeNone, DBTypeMemDB:
	case DBTypeLevelDB:
		if cfg.Datastore.Dir == "" {
			return errors.New("datastore dir cannot be empty for leveldb")
		}
	default:
		return errors.New(fmt.Sprintf("unknown datastore db_type %s", cfg.Datastore.DBType))
	}

	if cfg.Cache.Entries < 0 {
		cfg.Cache.Entries = 0
	}

	return nil
}
