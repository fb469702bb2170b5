package logging

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

var Logger = logrus.New()

// EventFormatter renders one event per line with a generated event ID so log
// lines can be referenced individually.
type EventFormatter struct {
	SystemName string
}

func (f *EventFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	var b *bytes.Buffer
	if entry.Buffer != nil {
		b = entry.Buffer
	} else {
		b = &bytes.Buffer{}
	}

	b.WriteString(fmt.Sprintf("Date: %s, Time: %s, ", entry.Time.Format("2006-01-02"), entry.Time.Format("15:04:05")))
	b.WriteString(fmt.Sprintf("Event Source: %s, ", f.SystemName))
	b.WriteString(fmt.Sprintf("Event Type: %s, ", strings.ToUpper(entry.Level.String())))
	b.WriteString(fmt.Sprintf("Event ID: %s, ", uuid.New().String()))
	b.WriteString(fmt.Sprintf("Message: %s", entry.Message))
	b.WriteByte('\n')

	return b.Bytes(), nil
}

// InitLogger wires the shared logger to a rotated file under logs/. Falls back
// to stderr output when the directory cannot be created.
func InitLogger() {
	if _, err := os.Stat("logs"); os.IsNotExist(err) {
		if mkErr := os.Mkdir("logs", 0700); mkErr != nil {
			Logger.SetFormatter(&EventFormatter{SystemName: "projectdesk"})
			Logger.Warnf("Failed to create log directory, logging to stderr: %v", mkErr)
			return
		}
	}

	Logger.SetOutput(&lumberjack.Logger{
		Filename:   "logs/projectdesk.log",
		MaxSize:    10,
		MaxBackups: 3,
		MaxAge:     28,
		Compress:   true,
	})
	Logger.SetFormatter(&EventFormatter{SystemName: "projectdesk"})

	level, err := logrus.ParseLevel(os.Getenv("LOG_LEVEL"))
	if err != nil {
		level = logrus.InfoLevel
	}
	Logger.SetLevel(level)
}
