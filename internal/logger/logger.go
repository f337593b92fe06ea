package logger

import (
	"go.uber.org/zap"

	"github.com/aliskhannn/ekimei-quiz-bot/internal/config"
)

// New builds the application logger for the configured environment.
func New(cfg *config.Config) (*zap.Logger, error) {
	switch cfg.Env {
	case "production":
		l, err := zap.NewProduction()
		if err != nil {
			return nil, err
		}
		return l.Named("ekimei"), nil
	case "test":
		return zap.NewNop(), nil
	}

	l, err := zap.NewDevelopment()
	if err != nil {
		return nil, err
	}
	return l.Named("ekimei"), nil
}
