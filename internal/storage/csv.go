package storage

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/motscan/motscan/internal/domain"
	"github.com/motscan/motscan/internal/logger"
)

// csvHeader is the daily file layout.
var csvHeader = []string{
	"word", "source", "article_date", "scraped_date", "title", "frequency", "context",
}

const (
	csvFilePattern = "words_%s.csv"
	csvDateLayout  = "2006-01-02"
	backupSuffix   = ".bak"
)

// CSVSink appends word facts to one CSV file per day. Writes are serialized
// by a single lock; an in-memory title:source index prevents rewriting the
// same article twice within a day.
type CSVSink struct {
	dir    string
	logger logger.Interface

	mu       sync.Mutex
	file     *os.File
	writer   *csv.Writer
	fileDate string
	seen     map[string]struct{}

	// now is swappable for tests.
	now func() time.Time
}

// NewCSVSink creates a CSV sink writing daily files under dir.
func NewCSVSink(dir string, log logger.Interface) (*CSVSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create csv dir: %w", err)
	}
	return &CSVSink{
		dir:    dir,
		logger: log.WithComponent("csv_sink"),
		now:    time.Now,
	}, nil
}

// SaveArticle appends one row per word fact. If the append fails midway the
// file is restored from a backup taken before writing, so a partial article
// never lands.
func (s *CSVSink) SaveArticle(_ context.Context, article *domain.RawArticle, words []domain.WordFrequencyRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.ensureFile(); err != nil {
		return err
	}

	dedupKey := article.Title + ":" + article.Site
	if _, dup := s.seen[dedupKey]; dup {
		s.logger.Debug("skipping duplicate article", "title", article.Title, "source", article.Site)
		return nil
	}

	backupPath, err := s.backup()
	if err != nil {
		return fmt.Errorf("backup before append: %w", err)
	}

	if writeErr := s.appendRows(article, words); writeErr != nil {
		s.restore(backupPath)
		return fmt.Errorf("append article rows: %w", writeErr)
	}

	s.removeBackup(backupPath)
	s.seen[dedupKey] = struct{}{}
	return nil
}

// Close flushes and closes the current file.
func (s *CSVSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closeFile()
}

// ensureFile opens today's file, rotating when the date has changed, and
// loads the dedup index from any existing content.
func (s *CSVSink) ensureFile() error {
	today := s.now().Format(csvDateLayout)
	if s.file != nil && s.fileDate == today {
		return nil
	}

	if err := s.closeFile(); err != nil {
		return err
	}

	path := s.filePath(today)
	seen, err := loadDedupIndex(path)
	if err != nil {
		return err
	}

	_, statErr := os.Stat(path)
	writeHeader := os.IsNotExist(statErr)

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv file: %w", err)
	}

	s.file = file
	s.writer = csv.NewWriter(file)
	s.fileDate = today
	s.seen = seen

	if writeHeader {
		if headerErr := s.writer.Write(csvHeader); headerErr != nil {
			return fmt.Errorf("write csv header: %w", headerErr)
		}
		s.writer.Flush()
		if flushErr := s.writer.Error(); flushErr != nil {
			return fmt.Errorf("flush csv header: %w", flushErr)
		}
	}

	return nil
}

// appendRows writes and flushes all word facts for one article.
func (s *CSVSink) appendRows(article *domain.RawArticle, words []domain.WordFrequencyRecord) error {
	for i := range words {
		w := &words[i]
		row := []string{
			w.Word,
			w.Source,
			formatDate(w.ArticleDate),
			w.ScrapedAt.Format(csvDateLayout),
			article.Title,
			strconv.Itoa(w.Frequency),
			w.Context,
		}
		if err := s.writer.Write(row); err != nil {
			return err
		}
	}

	s.writer.Flush()
	return s.writer.Error()
}

// backup copies the current file aside before an append.
func (s *CSVSink) backup() (string, error) {
	path := s.filePath(s.fileDate)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", err
	}

	backupPath := path + backupSuffix
	if writeErr := os.WriteFile(backupPath, data, 0o644); writeErr != nil {
		return "", writeErr
	}
	return backupPath, nil
}

// restore puts the pre-append content back after a failed write.
func (s *CSVSink) restore(backupPath string) {
	if backupPath == "" {
		return
	}

	_ = s.closeFile()

	data, err := os.ReadFile(backupPath)
	if err != nil {
		s.logger.Error("failed to read backup for restore", "path", backupPath, "error", err)
		return
	}
	if writeErr := os.WriteFile(s.filePath(s.fileDate), data, 0o644); writeErr != nil {
		s.logger.Error("failed to restore csv from backup", "path", backupPath, "error", writeErr)
		return
	}
	s.removeBackup(backupPath)
}

func (s *CSVSink) removeBackup(backupPath string) {
	if backupPath != "" {
		_ = os.Remove(backupPath)
	}
}

func (s *CSVSink) filePath(date string) string {
	return filepath.Join(s.dir, fmt.Sprintf(csvFilePattern, date))
}

// closeFile flushes and closes the open file, if any.
func (s *CSVSink) closeFile() error {
	if s.file == nil {
		return nil
	}

	s.writer.Flush()
	flushErr := s.writer.Error()
	closeErr := s.file.Close()
	s.file = nil
	s.writer = nil

	if flushErr != nil {
		return flushErr
	}
	return closeErr
}

// loadDedupIndex reads title:source keys out of an existing daily file so a
// restart within the same day does not duplicate articles.
func loadDedupIndex(path string) (map[string]struct{}, error) {
	seen := make(map[string]struct{})

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return seen, nil
		}
		return nil, fmt.Errorf("open existing csv: %w", err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read existing csv: %w", err)
	}

	const titleCol, sourceCol = 4, 1
	for i, row := range rows {
		if i == 0 || len(row) <= titleCol {
			continue
		}
		seen[row[titleCol]+":"+row[sourceCol]] = struct{}{}
	}

	return seen, nil
}

// formatDate renders a possibly-zero date.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(csvDateLayout)
}
