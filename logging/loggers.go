package logging

import (
	"bytes"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"

	"github.com/sirupsen/logrus"
)

// const
const (
	PanicLevel = "panic"
	FatalLevel = "fatal"
	ErrorLevel = "error"
	WarnLevel  = "warn"
	InfoLevel  = "info"
	DebugLevel = "debug"
	TraceLevel = "trace"
)

const (
	//PANIC log level
	PANIC uint32 = iota
	//FATAL has list msg
	FATAL
	//ERROR has list msg
	ERROR
	//WARN only log
	WARN
	//INFO only log
	INFO
	//DEBUG only log
	DEBUG
	//TRACE only log
	TRACE
)

const (
	//MsgFormatSingle use info
	MsgFormatSingle uint32 = iota
	//MsgFormatMulti use show all func call relation
	MsgFormatMulti
)

const (
	defaultLogDir  = "/tmp"
	defaultLogName = "tmp-hashlookup"
)

// LogFormat is to log format
type LogFormat = map[string]interface{}

type Logger struct {
	*logrus.Logger
	//CallRelation to show stack list
	CallRelation uint32
}

func NewLogger() *Logger {
	return &Logger{
		Logger: logrus.New(),
	}
}

// SetCallRelation selects how much of the call stack the function hook records.
func (logger *Logger) SetCallRelation(button uint32) {
	logger.CallRelation = button
}

// print writes msg at level; errors and above record the caller chain.
func (logger *Logger) print(level uint32, msg string, data LogFormat) {
	lv, ok := levels[level]
	if !ok {
		lv = logrus.ErrorLevel
	}
	if lv <= logrus.ErrorLevel {
		logger.SetCallRelation(MsgFormatMulti)
	} else {
		logger.SetCallRelation(MsgFormatSingle)
	}
	entry := logger.WithFields(data)
	switch lv {
	case logrus.PanicLevel:
		entry.Panic(msg)
	case logrus.FatalLevel:
		entry.Fatal(msg)
	case logrus.ErrorLevel:
		entry.Error(msg)
	case logrus.WarnLevel:
		entry.Warn(msg)
	case logrus.InfoLevel:
		entry.Info(msg)
	case logrus.DebugLevel:
		entry.Debug(msg)
	default:
		entry.Trace(msg)
	}
}

var levels = map[uint32]logrus.Level{
	PANIC: logrus.PanicLevel,
	FATAL: logrus.FatalLevel,
	ERROR: logrus.ErrorLevel,
	WARN:  logrus.WarnLevel,
	INFO:  logrus.InfoLevel,
	DEBUG: logrus.DebugLevel,
	TRACE: logrus.TraceLevel,
}

// logger pointer must be initialized, else would panic.
var clog *Logger
var vlog *Logger

func convertLevel(level string) logrus.Level {
	lv, err := logrus.ParseLevel(level)
	if err != nil {
		return logrus.InfoLevel
	}
	return lv
}

// Init loggers. vlog only writes files; clog also prints to stdout unless
// disableCPrint is set, in which case both names refer to the same logger.
func Init(path, filename string, level string, age uint32, disableCPrint bool) {
	fileHooker := NewFileRotateHooker(path, filename, age, nil)

	vlog = newHookedLogger(fileHooker, level)
	vlog.Out = ioutil.Discard

	if !disableCPrint {
		clog = newHookedLogger(fileHooker, level)
		clog.Out = os.Stdout
	} else {
		clog = vlog
	}

	vlog.WithFields(logrus.Fields{
		"path":  path,
		"level": level,
	}).Info("Logger Configuration.")
}

func newHookedLogger(fileHooker logrus.Hook, level string) *Logger {
	l := NewLogger()
	LoadFunctionHooker(l)
	l.Hooks.Add(fileHooker)
	l.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	l.Level = convertLevel(level)
	return l
}

// GetGID return gid
func GetGID() uint64 {
	b := make([]byte, 64)
	b = b[:runtime.Stack(b, false)]
	b = bytes.TrimPrefix(b, []byte("goroutine "))
	b = b[:bytes.IndexByte(b, ' ')]
	n, _ := strconv.ParseUint(string(b), 10, 64)
	return n
}

// CPrint into stdout + log
func CPrint(level uint32, msg string, formats ...LogFormat) {
	if clog == nil {
		Init(defaultLogDir, defaultLogName, InfoLevel, 0, false)
	}
	clog.print(level, msg, mergeLogFormats(formats...))
}

// VPrint into log
func VPrint(level uint32, msg string, formats ...LogFormat) {
	if vlog == nil {
		Init(defaultLogDir, defaultLogName, InfoLevel, 0, false)
	}
	vlog.print(level, msg, mergeLogFormats(formats...))
}

// mergeLogFormats merges LogFormats.
// Same key would be covered by later-presented values.
func mergeLogFormats(formats ...LogFormat) LogFormat {
	format := LogFormat{}
	for _, data := range formats {
		for k, v := range data {
			format[k] = v
		}
	}
	format["tid"] = GetGID()
	return format
}
