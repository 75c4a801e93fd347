// Unless explicitly stated otherwise all files in this repository are licensed
// under the Apache License Version 2.0.

// Package log is a small pluggable logger used by all hoptrace packages.
// Embedders can swap the backend with SetLogger; the default writes to the
// standard library logger.
package log

import "log"

var verbose = false

// SetVerbose controls whether Debugf output is emitted by the default logger.
func SetVerbose(v bool) {
	verbose = v
}

// Logger is the set of logging callbacks hoptrace emits through. Any nil
// field silently drops that level.
type Logger struct {
	Debugf func(format string, args ...interface{})
	Infof  func(format string, args ...interface{})
	Warnf  func(format string, args ...interface{}) error
	Errorf func(format string, args ...interface{}) error
}

var logger = Logger{
	Debugf: defaultDebugf,
	Infof:  defaultInfof,
	Warnf:  defaultWarnf,
	Errorf: defaultErrorf,
}

// SetLogger replaces the logging backend.
func SetLogger(l Logger) {
	logger = l
}

func Debugf(format string, args ...interface{}) {
	if logger.Debugf != nil {
		logger.Debugf(format, args...)
	}
}

func Infof(format string, args ...interface{}) {
	if logger.Infof != nil {
		logger.Infof(format, args...)
	}
}

func Warnf(format string, args ...interface{}) error {
	if logger.Warnf != nil {
		return logger.Warnf(format, args...)
	}
	return nil
}

func Errorf(format string, args ...interface{}) error {
	if logger.Errorf != nil {
		return logger.Errorf(format, args...)
	}
	return nil
}

var (
	defaultDebugf = func(format string, args ...interface{}) {
		if verbose {
			log.Printf("[DEBUG] "+format, args...)
		}
	}

	defaultInfof = func(format string, args ...interface{}) {
		log.Printf("[INFO] "+format, args...)
	}

	defaultWarnf = func(format string, args ...interface{}) error {
		log.Printf("[WARN] "+format, args...)
		return nil
	}

	defaultErrorf = func(format string, args ...interface{}) error {
		log.Printf("[ERROR] "+format, args...)
		return nil
	}
)
