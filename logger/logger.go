package logger

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"
)

var (
	projectLogger *logrus.Logger
	once          sync.Once
)

// GetProjectLogger returns the logger shared by every package in the project.
func GetProjectLogger() *logrus.Logger {
	once.Do(func() {
		projectLogger = logrus.New()
		projectLogger.SetOutput(os.Stderr)
		projectLogger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
		projectLogger.SetLevel(logrus.InfoLevel)
	})
	return projectLogger
}

// SetLevel parses lvl and applies it to the project logger. An empty level leaves the logger untouched.
func SetLevel(lvl string) error {
	if lvl == "" {
		return nil
	}

	level, err := logrus.ParseLevel(lvl)
	if err != nil {
		return err
	}
	GetProjectLogger().SetLevel(level)
	return nil
}
