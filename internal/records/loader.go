package records

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/hyperjump/lupa/internal/models"
)

// Source identifies a record file.
type Source struct {
	Path string
	// Sheet selects the worksheet of an .xlsx file.
	Sheet string
	// Table is read from SQLite files.
	Table string
}

// Loader reads record files.
type Loader struct {
	logger *zap.Logger
}

// NewLoader returns a new Loader.
func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{logger: logger}
}

// Load reads src and returns its documents in file order. Records without a
// title or url are dropped.
func (l *Loader) Load(ctx context.Context, src Source) ([]*models.Document, error) {
	recs, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}

	docs, dropped := Normalize(recs)
	l.logger.Info("Loaded records",
		zap.String("path", src.Path),
		zap.Int("documents", len(docs)),
		zap.Int("dropped", dropped))
	return docs, nil
}

// LoadSettings reads {name, value} records from src and reduces them to a map.
func (l *Loader) LoadSettings(ctx context.Context, src Source) (map[string]interface{}, error) {
	recs, err := l.Read(ctx, src)
	if err != nil {
		return nil, err
	}
	settings := SettingsFromRecords(recs)
	l.logger.Info("Loaded settings", zap.String("path", src.Path), zap.Int("settings", len(settings)))
	return settings, nil
}

// Read returns the raw records of src, choosing the decoder by file extension.
func (l *Loader) Read(ctx context.Context, src Source) ([]Record, error) {
	if src.Path == "" {
		return nil, ErrSourceRequired
	}

	ext := strings.ToLower(filepath.Ext(src.Path))
	switch ext {
	case ".db", ".sqlite", ".sqlite3":
		if _, err := os.Stat(src.Path); err != nil {
			return nil, fmt.Errorf("read records: %w", err)
		}
		table := src.Table
		if table == "" {
			table = "records"
		}
		return readSQLite(ctx, src.Path, table)
	}

	content, err := os.ReadFile(src.Path)
	if err != nil {
		return nil, fmt.Errorf("read records: %w", err)
	}

	recs, err := DecodeBytes(content, ext, src.Sheet)
	if err != nil {
		var fe *FormatError
		if errors.As(err, &fe) {
			fe.Path = src.Path
		}
		var ie *InvalidRecordsError
		if errors.As(err, &ie) {
			ie.Path = src.Path
		}
		return nil, err
	}
	return recs, nil
}

// DecodeBytes decodes in-memory record content. ext includes the leading
// dot (e.g. ".csv"). SQLite content cannot be decoded from bytes.
func DecodeBytes(content []byte, ext, sheet string) ([]Record, error) {
	switch ext {
	case ".json":
		return decodeJSON(cleanText(content))
	case ".csv":
		return decodeCSV(cleanText(content))
	case ".xlsx":
		return decodeExcel(content, sheet)
	default:
		return nil, &FormatError{Ext: ext}
	}
}

// cleanText drops a UTF-8 byte order mark and replaces invalid UTF-8 sequences.
func cleanText(content []byte) []byte {
	content = bytes.TrimPrefix(content, []byte("\xef\xbb\xbf"))
	if !utf8.Valid(content) {
		content = bytes.ToValidUTF8(content, []byte("\ufffd"))
	}
	return content
}
