package pdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

type WkhtmltopdfConfig struct {
	BinaryPath string
	Timeout    time.Duration
	TempDir    string
	Logger     *zap.Logger
}

// WkhtmltopdfConverter turns HTML into PDF by running the wkhtmltopdf binary
// on temp files.
type WkhtmltopdfConverter struct {
	binaryPath string
	timeout    time.Duration
	tempDir    string
	logger     *zap.Logger
}

func NewWkhtmltopdfConverter(cfg WkhtmltopdfConfig) *WkhtmltopdfConverter {
	c := &WkhtmltopdfConverter{
		binaryPath: cfg.BinaryPath,
		timeout:    cfg.Timeout,
		tempDir:    cfg.TempDir,
		logger:     cfg.Logger,
	}
	if c.binaryPath == "" {
		c.binaryPath = defaultBinaryPath
	}
	if c.timeout <= 0 {
		c.timeout = defaultRenderTimeout
	}
	if c.tempDir == "" {
		c.tempDir = os.TempDir()
	}
	if c.logger == nil {
		c.logger = zap.NewNop()
	}
	return c
}

// Convert renders html and returns the PDF bytes. name only labels the temp
// files.
func (c *WkhtmltopdfConverter) Convert(ctx context.Context, html, name string) ([]byte, error) {
	if strings.TrimSpace(html) == "" {
		return nil, errors.New(errEmptyHTML)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	htmlFile, err := os.CreateTemp(c.tempDir, name+"-*.html")
	if err != nil {
		return nil, errFailedTempFile(err)
	}
	htmlPath := htmlFile.Name()
	defer os.Remove(htmlPath)

	if _, err := htmlFile.WriteString(html); err != nil {
		htmlFile.Close()
		return nil, errFailedTempFile(err)
	}
	htmlFile.Close()

	pdfFile, err := os.CreateTemp(c.tempDir, name+"-*.pdf")
	if err != nil {
		return nil, errFailedTempFile(err)
	}
	pdfPath := pdfFile.Name()
	pdfFile.Close()
	defer os.Remove(pdfPath)

	args := []string{"--quiet", htmlPath, pdfPath}
	c.logger.Debug("executing wkhtmltopdf",
		zap.String("binary", c.binaryPath),
		zap.Strings("args", args))

	start := time.Now()
	cmd := exec.CommandContext(ctx, c.binaryPath, args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = waitDelay

	if err := cmd.Run(); err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf(errRenderTimeoutFmt, c.timeout)
		}
		c.logger.Error("wkhtmltopdf failed",
			zap.Error(err),
			zap.String("stderr", stderr.String()))
		return nil, errFailedRunConverter(err, strings.TrimSpace(stderr.String()))
	}

	data, err := os.ReadFile(pdfPath)
	if err != nil {
		return nil, errFailedReadPDF(err)
	}

	c.logger.Debug("wkhtmltopdf finished",
		zap.Int("bytes", len(data)),
		zap.Duration("duration", time.Since(start)))

	return data, nil
}
