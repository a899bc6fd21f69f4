// Package logging builds the zap logger every service starts with.
package logging

import "go.uber.org/zap"

// New returns a production logger unless env is "development" or "test".
func New(env string) (*zap.Logger, error) {
	switch env {
	case "development", "test":
		return zap.NewDevelopment()
	default:
		return zap.NewProduction()
	}
}

// Must is New for main packages.
func Must(env string) *zap.Logger {
	l, err := New(env)
	if err != nil {
		panic(err)
	}
	return l
}
