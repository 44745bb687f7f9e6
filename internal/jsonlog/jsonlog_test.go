package jsonlog

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
)

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer

	t.Run("entry below minimum level is dropped", func(t *testing.T) {
		l := New(&buf, LevelError)
		l.PrintInfo("should not appear", nil)
		if buf.Len() != 0 {
			t.Errorf("expected no output; got %q", buf.String())
		}
		buf.Reset()
	})

	t.Run("info entry carries level, message and properties", func(t *testing.T) {
		l := New(&buf, LevelInfo)
		l.PrintInfo("starting server", map[string]string{"addr": ":4000", "env": "development"})
		var entry struct {
			Level      string            `json:"level"`
			Message    string            `json:"message"`
			Properties map[string]string `json:"properties"`
		}
		err := json.Unmarshal(buf.Bytes(), &entry)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Level != "INFO" {
			t.Errorf("expected level INFO; got %s", entry.Level)
		}
		if entry.Message != "starting server" {
			t.Errorf("expected message %q; got %q", "starting server", entry.Message)
		}
		if entry.Properties["addr"] != ":4000" {
			t.Errorf("expected addr property %q; got %q", ":4000", entry.Properties["addr"])
		}
		buf.Reset()
	})

	t.Run("error entry includes a stack trace", func(t *testing.T) {
		l := New(&buf, LevelInfo)
		l.PrintError(errors.New("boom"), nil)
		var entry struct {
			Level string `json:"level"`
			Trace string `json:"trace"`
		}
		err := json.Unmarshal(buf.Bytes(), &entry)
		if err != nil {
			t.Fatal(err)
		}
		if entry.Level != "ERROR" {
			t.Errorf("expected level ERROR; got %s", entry.Level)
		}
		if entry.Trace == "" {
			t.Error("expected a stack trace in the entry")
		}
		buf.Reset()
	})

	t.Run("each entry is a single line", func(t *testing.T) {
		l := New(&buf, LevelInfo)
		l.PrintInfo("one", nil)
		l.PrintInfo("two", nil)
		lines := bytes.Count(buf.Bytes(), []byte("\n"))
		if lines != 2 {
			t.Errorf("expected 2 log lines; got %d", lines)
		}
	})
}
