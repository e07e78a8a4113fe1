package fetch

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/logger"
)

// Fixture is one pre-fetched document for offline mode.
type Fixture struct {
	Doc *domain.Document
	// Identifier is the fixture file name without extension.
	Identifier string
}

// FixtureLoader reads pre-fetched HTML documents from disk, one directory
// per source. Offline runs bypass the network entirely.
type FixtureLoader struct {
	dir    string
	logger logger.Interface
}

// NewFixtureLoader creates a fixture loader rooted at dir.
func NewFixtureLoader(dir string, log logger.Interface) *FixtureLoader {
	return &FixtureLoader{dir: dir, logger: log.WithComponent("fixtures")}
}

// LoadFixtures returns all HTML fixtures for a source, sorted by file name.
// A missing source directory yields an empty slice, not an error.
func (l *FixtureLoader) LoadFixtures(sourceName string) ([]Fixture, error) {
	sourceDir := filepath.Join(l.dir, sourceName)

	entries, err := os.ReadDir(sourceDir)
	if err != nil {
		if os.IsNotExist(err) {
			l.logger.Debug("no fixtures for source", "source", sourceName)
			return nil, nil
		}
		return nil, fmt.Errorf("read fixtures dir: %w", err)
	}

	fixtures := make([]Fixture, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".html") {
			continue
		}

		body, readErr := os.ReadFile(filepath.Join(sourceDir, entry.Name()))
		if readErr != nil {
			return nil, fmt.Errorf("read fixture %s: %w", entry.Name(), readErr)
		}

		identifier := strings.TrimSuffix(entry.Name(), ".html")
		fixtures = append(fixtures, Fixture{
			Doc: &domain.Document{
				Body:       body,
				URL:        fmt.Sprintf("fixture://%s/%s", sourceName, identifier),
				StatusCode: http.StatusOK,
			},
			Identifier: identifier,
		})
	}

	sort.Slice(fixtures, func(i, j int) bool {
		return fixtures[i].Identifier < fixtures[j].Identifier
	})

	return fixtures, nil
}
