// Copyright (c) 2024 The Falcon Contributors
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program. If not, see <http://www.gnu.org/licenses/>.

// Package clog is the compiler's structured-logging front door: one
// shared logrus.Logger, tagged per pipeline stage, so stage tracing can
// be turned on at runtime instead of behind compile-time debug
// constants.
package clog

import (
	"os"

	"github.com/sirupsen/logrus"
)

var logger = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(os.Stderr)
	l.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	l.SetLevel(logrus.WarnLevel)
	return l
}

// SetVerbose raises the log level to Debug when verbose is true.
func SetVerbose(verbose bool) {
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	} else {
		logger.SetLevel(logrus.WarnLevel)
	}
}

// Stage returns a logger entry tagged with the pipeline stage name, e.g.
// clog.Stage("const-eval").Debugf("folded %s = %d", name, value).
func Stage(name string) *logrus.Entry {
	return logger.WithField("stage", name)
}

// Errorf logs a pipeline failure at error level before the driver maps it
// to a process exit code.
func Errorf(format string, args ...interface{}) {
	logger.Errorf(format, args...)
}
