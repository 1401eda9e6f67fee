package observability

import (
	"os"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/kaspa-auth/siwk/internal/conf"
)

// fieldsHook adds the configured static fields to every entry.
type fieldsHook struct {
	fields logrus.Fields
}

func (h *fieldsHook) Levels() []logrus.Level {
	return logrus.AllLevels
}

func (h *fieldsHook) Fire(entry *logrus.Entry) error {
	for k, v := range h.fields {
		if _, ok := entry.Data[k]; !ok {
			entry.Data[k] = v
		}
	}
	return nil
}

var (
	loggingOnce sync.Once
)

// ConfigureLogging sets up the standard logrus logger. Only the first call
// has any effect; later calls return nil without touching the logger.
func ConfigureLogging(config *conf.LoggingConfig) error {
	var err error

	loggingOnce.Do(func() {
		logrus.SetFormatter(&logrus.JSONFormatter{})

		// use a file if you want
		if config.File != "" {
			f, errOpen := os.OpenFile(config.File, os.O_RDWR|os.O_APPEND|os.O_CREATE, 0660) //#nosec G302 -- Log files should be rw-rw-r--
			if errOpen != nil {
				err = errOpen
				return
			}
			logrus.SetOutput(f)
			logrus.Infof("Set output file to %s", config.File)
		}

		if config.Level != "" {
			level, errParse := logrus.ParseLevel(config.Level)
			if errParse != nil {
				err = errParse
				return
			}
			logrus.SetLevel(level)
			logrus.Debug("Set log level to: " + logrus.GetLevel().String())
		}

		if len(config.Fields) > 0 {
			f := logrus.Fields{}
			for k, v := range config.Fields {
				f[k] = v
			}
			logrus.AddHook(&fieldsHook{fields: f})
		}
	})

	return err
}
