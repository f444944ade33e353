// Package logger builds the service's zap loggers.
package logger

import "go.uber.org/zap"

// NewNamed creates a named logger: human-readable development output for
// the development environment, JSON production output otherwise.
func NewNamed(appEnv, name string) (*zap.Logger, error) {
	var (
		log *zap.Logger
		err error
	)
	if appEnv == "development" {
		log, err = zap.NewDevelopment()
	} else {
		log, err = zap.NewProduction()
	}
	if err != nil {
		return nil, err
	}
	return log.Named(name), nil
}
