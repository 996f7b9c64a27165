package projections

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// NameFileSource reads a player name list from a local text file, one
// name per line. Blank lines and lines starting with '#' are skipped.
// It backs the roster and waiver lists for local runs without a
// spreadsheet.
type NameFileSource struct {
	path string
}

// NewNameFileSource creates a name list source for the given path.
func NewNameFileSource(path string) *NameFileSource {
	return &NameFileSource{path: path}
}

// Players returns the names in file order. A missing file yields an
// empty list, matching the degrade-to-empty contract of the other
// player list sources.
func (s *NameFileSource) Players(_ context.Context) ([]string, error) {
	f, err := os.Open(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrReadProjections, err)
	}
	defer f.Close()

	var names []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadProjections, err)
	}
	return names, nil
}
