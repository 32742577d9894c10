// Copyright 2023 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package logging

import (
	"os"
	"path/filepath"
	"time"

	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rifflock/lfshook"
	"github.com/sirupsen/logrus"
)

var Logger *logrus.Logger

func init() {
	Logger = logrus.New()
	Logger.Out = os.Stderr
	Logger.Formatter = &logrus.TextFormatter{FullTimestamp: true}
	Logger.Level = logrus.InfoLevel
}

// SetLevel parses and applies a logrus level name; unknown names
// leave the level unchanged.
func SetLevel(level string) error {
	l, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	Logger.SetLevel(l)
	return nil
}

// SetColors switches the text formatter's color output, for callers
// that know whether they are on a terminal.
func SetColors(on bool) {
	Logger.Formatter = &logrus.TextFormatter{
		FullTimestamp: true,
		ForceColors:   on,
		DisableColors: !on,
	}
}

// SetFileRotationHooker mirrors kernel logs into hourly-rotated files
// under path, keeping count generations.
func SetFileRotationHooker(path string, count uint) error {
	if !filepath.IsAbs(path) {
		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}
		path = abs
	}
	if err := os.MkdirAll(path, 0o700); err != nil {
		return err
	}
	writer, err := rotatelogs.New(
		filepath.Join(path, "rvos-%Y%m%d-%H.log"),
		rotatelogs.WithLinkName(filepath.Join(path, "rvos.log")),
		rotatelogs.WithRotationCount(count),
		rotatelogs.WithRotationTime(time.Hour),
	)
	if err != nil {
		return err
	}
	Logger.Hooks.Add(lfshook.NewHook(lfshook.WriterMap{
		logrus.TraceLevel: writer,
		logrus.DebugLevel: writer,
		logrus.InfoLevel:  writer,
		logrus.WarnLevel:  writer,
		logrus.ErrorLevel: writer,
		logrus.FatalLevel: writer,
		logrus.PanicLevel: writer,
	}, &logrus.TextFormatter{FullTimestamp: true, DisableColors: true}))
	return nil
}
