package view

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/amishk599/cvcoach/internal/model"
)

func newBufferLogger(buf *bytes.Buffer) *slog.Logger {
	return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func TestLogView_ShowJobs(t *testing.T) {
	var buf bytes.Buffer
	v := NewLogView(newBufferLogger(&buf))

	v.ShowJobs("🔄 Alternatywne ścieżki kariery", []model.JobListing{
		{Position: "Analyst", Company: "Acme"},
		{Position: "Tester", Company: "Beta"},
	})

	out := buf.String()
	assert.Contains(t, out, "count=2")
	assert.Contains(t, out, "position=Analyst")
	assert.Contains(t, out, "position=Tester")
}

func TestLogView_ShowErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	v := NewLogView(slog.New(slog.NewTextHandler(&buf, nil)))

	v.SetBusy(true)
	v.ShowError("Błąd podczas analizy CV")

	out := buf.String()
	assert.Contains(t, out, "level=WARN")
	assert.Contains(t, out, "Błąd podczas analizy CV")
	assert.NotContains(t, out, "busy=true", "debug events are filtered at info level")
}

func TestTee_FansOut(t *testing.T) {
	var out, errOut, logBuf bytes.Buffer
	console := NewConsoleView(&out, &errOut, 80)
	tee := Tee{console, NewLogView(newBufferLogger(&logBuf))}

	tee.ShowError("Proszę wybrać plik PDF")
	tee.HideError()

	assert.Equal(t, "Proszę wybrać plik PDF", console.LastError())
	assert.Contains(t, logBuf.String(), "view: error shown")
	assert.Contains(t, logBuf.String(), "view: error hidden")
}
