package logging

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

const testLogDir = "testlogs"

func TestPrint(t *testing.T) {
	defer os.RemoveAll(testLogDir)

	tests := []struct {
		name          string
		level         string
		disableCPrint bool
	}{
		{"warn", WarnLevel, false},
		{"debug", DebugLevel, true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			Init(testLogDir, "test-"+test.name, test.level, 1, test.disableCPrint)
			CPrint(WARN, "library reloaded", LogFormat{"words": 122, "path": "words.txt"})
			CPrint(ERROR, "library missing", LogFormat{"path": "words.txt"})
			CPrint(TRACE, "candidate", nil)
			VPrint(WARN, "digest index rebuilt", LogFormat{"entries": 122})
			VPrint(DEBUG, "digest index rebuilt", nil)

			_, err := os.Stat(filepath.Join(testLogDir, "test-"+test.name+".log"))
			assert.NoError(t, err)
			assert.Equal(t, test.disableCPrint, clog == vlog)
		})
	}
}

func TestConvertLevel(t *testing.T) {
	assert.Equal(t, logrus.TraceLevel, convertLevel(TraceLevel))
	assert.Equal(t, logrus.WarnLevel, convertLevel(WarnLevel))
	assert.Equal(t, logrus.InfoLevel, convertLevel("verbose"))
}

func TestMergeLogFormats(t *testing.T) {
	data := mergeLogFormats(LogFormat{"a": 1, "b": 1}, nil, LogFormat{"b": 2})
	assert.Equal(t, 1, data["a"])
	assert.Equal(t, 2, data["b"])
	assert.Equal(t, GetGID(), data["tid"])
}

func TestGid(t *testing.T) {
	defer os.RemoveAll(testLogDir)
	Init(testLogDir, "test-gid", InfoLevel, 1, false)

	var wg sync.WaitGroup
	gids := make(chan uint64, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			CPrint(INFO, "worker started", LogFormat{"index": i})
			gids <- GetGID()
		}(i)
	}
	wg.Wait()
	close(gids)

	seen := make(map[uint64]bool)
	for gid := range gids {
		assert.NotZero(t, gid)
		seen[gid] = true
	}
	assert.Len(t, seen, 10)
}
