package unrar

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/amaumene/tvrarcleanup/internal/config"
	"github.com/sirupsen/logrus"
)

// maxOutputTail bounds how much tool output is kept in an error
const maxOutputTail = 512

// runFunc runs a command and returns its combined output
type runFunc func(ctx context.Context, name string, args ...string) ([]byte, error)

// Client runs the external unrar tool
type Client struct {
	binary  string
	timeout time.Duration
	preview bool
	logger  *logrus.Logger
	run     runFunc
}

// NewClient creates a new unrar client
func NewClient(cfg config.Config, logger *logrus.Logger) *Client {
	return &Client{
		binary:  cfg.UnrarBinary,
		timeout: cfg.ExtractTimeout,
		preview: cfg.PreviewOnly,
		logger:  logger,
		run:     runCommand,
	}
}

// Args returns the tool arguments extracting archive into dir
func Args(archive, dir string) []string {
	dest := dir
	if !strings.HasSuffix(dest, string(os.PathSeparator)) {
		dest += string(os.PathSeparator)
	}
	return []string{"x", archive, dest}
}

// Extract runs the tool once per archive, each into dir, and waits for every
// run. It returns the number of archives that extracted cleanly and the
// joined failures of the others.
func (c *Client) Extract(ctx context.Context, dir string, archives []string) (int, error) {
	c.logger.WithFields(logrus.Fields{
		"directory": dir,
		"archives":  len(archives),
	}).Info("Extracting")

	if c.preview {
		for _, archive := range archives {
			c.logger.WithField("command", c.binary+" "+strings.Join(Args(archive, dir), " ")).Debug("Would run")
		}
		return 0, nil
	}

	var (
		extracted int
		errs      []error
	)
	for _, archive := range archives {
		if err := c.extractOne(ctx, dir, archive); err != nil {
			errs = append(errs, err)
			if ctx.Err() != nil {
				break
			}
			continue
		}
		extracted++
	}

	return extracted, errors.Join(errs...)
}

func (c *Client) extractOne(ctx context.Context, dir, archive string) error {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	start := time.Now()
	output, err := c.run(ctx, c.binary, Args(archive, dir)...)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return fmt.Errorf("%s: timed out after %s", filepath.Base(archive), c.timeout)
		}
		if tail := outputTail(output); tail != "" {
			return fmt.Errorf("%s: %w: %s", filepath.Base(archive), err, tail)
		}
		return fmt.Errorf("%s: %w", filepath.Base(archive), err)
	}

	c.logger.WithFields(logrus.Fields{
		"archive":  filepath.Base(archive),
		"duration": time.Since(start).Round(time.Millisecond),
	}).Debug("Archive extracted")
	return nil
}

// runCommand runs name with stdin closed, so a tool asking a question fails
// instead of blocking the sweep
func runCommand(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = nil
	return cmd.CombinedOutput()
}

func outputTail(output []byte) string {
	text := strings.TrimSpace(string(output))
	if len(text) > maxOutputTail {
		text = "..." + text[len(text)-maxOutputTail:]
	}
	return text
}
