package core

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// IDGenerator defines the interface for generating unique, sequential
// record IDs such as INT-00001 or SUG-00001.
type IDGenerator interface {
	GenerateID() (string, error)
}

// fileIDGenerator implements IDGenerator by persisting a counter file on
// disk, one file per prefix.
type fileIDGenerator struct {
	basePath string
	prefix   string
	padWidth int
}

// NewIDGenerator creates an IDGenerator that stores its counter in a
// .{prefix}_counter file within basePath. padWidth controls the
// zero-padding width of the numeric portion; 0 disables padding.
func NewIDGenerator(basePath string, prefix string, padWidth int) IDGenerator {
	return &fileIDGenerator{
		basePath: basePath,
		prefix:   prefix,
		padWidth: padWidth,
	}
}

// GenerateID reads the current counter, increments it, writes it back, and
// returns the formatted ID. A missing counter file starts the counter at 1.
func (g *fileIDGenerator) GenerateID() (string, error) {
	counterPath := filepath.Join(g.basePath, fmt.Sprintf(".%s_counter", strings.ToLower(g.prefix)))

	counter := 0
	data, err := os.ReadFile(counterPath)
	if err != nil && !os.IsNotExist(err) {
		return "", fmt.Errorf("reading counter file: %w", err)
	}
	if err == nil {
		trimmed := strings.TrimSpace(string(data))
		counter, err = strconv.Atoi(trimmed)
		if err != nil {
			return "", fmt.Errorf("parsing counter %q: %w", trimmed, err)
		}
	}

	counter++

	if err := os.MkdirAll(g.basePath, 0o750); err != nil {
		return "", fmt.Errorf("creating base path for counter: %w", err)
	}

	if err := os.WriteFile(counterPath, []byte(strconv.Itoa(counter)), 0o600); err != nil {
		return "", fmt.Errorf("writing counter file: %w", err)
	}

	if g.padWidth > 0 {
		return fmt.Sprintf("%s-%0*d", g.prefix, g.padWidth, counter), nil
	}
	return fmt.Sprintf("%s-%d", g.prefix, counter), nil
}
