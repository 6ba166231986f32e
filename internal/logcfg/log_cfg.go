// Package logcfg configures the process-wide logrus logger.
package logcfg

import (
	"fmt"
	"github.com/natefinch/lumberjack"
	"github.com/sirupsen/logrus"
	"io"
	"os"
	"path"
	"runtime"
)

const defaultLogFile = "bot.log"

// RunLoggerConfig sets the logrus level, the caller-aware text format and
// duplicates every record to stdout and a rotated log file.
// Arguments:
//   - envLogsLevel: logrus level name (debug, info, warn...). Unknown values fall back to info.
//   - envLogFileName: path of the rotated log file, bot.log when empty.
func RunLoggerConfig(envLogsLevel, envLogFileName string) {
	logLevel, err := logrus.ParseLevel(envLogsLevel)
	if err != nil {
		logLevel = logrus.InfoLevel
	}
	logrus.SetLevel(logLevel)
	logrus.SetReportCaller(true)

	logrus.SetFormatter(&logrus.TextFormatter{
		CallerPrettyfier: func(f *runtime.Frame) (function string, file string) {
			_, filename := path.Split(f.File)
			filename = fmt.Sprintf("%s.%d.%s", filename, f.Line, f.Function)
			return "", filename
		},
	})

	if envLogFileName == "" {
		envLogFileName = defaultLogFile
	}
	mw := io.MultiWriter(os.Stdout, &lumberjack.Logger{
		Filename:   envLogFileName,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     30,
	})
	logrus.SetOutput(mw)

	if err != nil {
		logrus.WithError(err).Warnf("Unknown log level %q, using info", envLogsLevel)
	}
}
