package configs

import (
	"os"

	"github.com/sirupsen/logrus"
)

func NewLogger(env ENV) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stdout)

	if env.IsDevelopment() {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	} else {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	level, err := logrus.ParseLevel(env.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	log.SetLevel(level)

	return log
}
