// Package output renders engine results to a file or stdout and optionally
// exports them as OTLP log records.
package output

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ark-forge/mcp-eu-ai-act/config"
	"github.com/ark-forge/mcp-eu-ai-act/logger"
)

// SchemaVersion is attached to every exported record.
const SchemaVersion = "1.0"

// Record kinds.
const (
	KindScan       = "scan"
	KindGDPR       = "gdpr"
	KindCompliance = "compliance"
	KindReport     = "report"
	KindCombined   = "combined"
	KindError      = "error"
)

type Writer struct {
	mu     sync.Mutex
	out    io.Writer
	file   *os.File
	buf    *bufio.Writer
	format string
	otel   *otelLogger
}

// New opens cfg.OutputFileName, or stdout when it is empty.
func New(cfg *config.Config) (*Writer, error) {
	return newWriter(cfg, os.Stdout)
}

func newWriter(cfg *config.Config, stdout io.Writer) (*Writer, error) {
	format := strings.ToLower(cfg.OutputFormat)
	if format == "" {
		format = "json"
	}
	w := &Writer{format: format, out: stdout}
	if cfg.OutputFileName != "" {
		f, err := os.OpenFile(cfg.OutputFileName, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
		if err != nil {
			return nil, err
		}
		w.file = f
		w.out = f
	}
	w.buf = bufio.NewWriter(w.out)

	otel, err := newOtelLogger(cfg)
	if err != nil {
		logger.Warnf("OTEL export disabled: %v", err)
	} else {
		w.otel = otel
	}
	return w, nil
}

// Write renders one result and flushes it.
func (w *Writer) Write(kind string, payload any) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	var data []byte
	var err error
	switch w.format {
	case "text":
		data = []byte(renderText(kind, payload))
	default:
		data, err = marshalDocument(payload)
	}
	if err != nil {
		return fmt.Errorf("render %s: %w", kind, err)
	}
	if _, err := w.buf.Write(data); err != nil {
		return err
	}
	if w.otel != nil {
		w.otel.Emit(kind, payload)
	}
	return w.buf.Flush()
}

// Close flushes pending output, closes the file and shuts the exporter down.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.buf.Flush()
	if w.file != nil {
		_ = w.file.Sync()
		if cerr := w.file.Close(); err == nil {
			err = cerr
		}
	}
	if w.otel != nil {
		w.otel.Shutdown()
	}
	return err
}
