package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/gyeh/datenorm/internal/config"
	"github.com/gyeh/datenorm/internal/model"
	"github.com/gyeh/datenorm/internal/workbook"
)

// Input holds everything resolved during the read phase.
type Input struct {
	// FilePath is the path given in the config, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file contents.
	FileSHA256 string
	// FileSize is the number of bytes hashed.
	FileSize int64
	// SheetNames lists every sheet in the workbook; a CSV has one, named after the file.
	SheetNames []string
	// Tables are the sheets selected for processing, in workbook order.
	Tables []*model.Table
	// SheetErrors lists selected sheets that could not be read. Only
	// AllSheets runs record them; otherwise a read failure is fatal.
	SheetErrors []model.SheetError
	Duration    time.Duration
}

// sheetReader is the part of *workbook.Workbook the read loop needs.
type sheetReader interface {
	ReadSheet(name string) (*model.Table, error)
}

// ReadInput hashes the input file and loads the sheets the config selects:
// every sheet with AllSheets, the named Sheet, or else the first one.
func ReadInput(ctx context.Context, log zerolog.Logger, cfg *config.Config) (*Input, error) {
	start := time.Now()

	sha, size, err := hashFile(cfg.FilePath)
	if err != nil {
		return nil, err
	}

	in := &Input{FilePath: cfg.FilePath, FileSHA256: sha, FileSize: size}

	if workbook.IsCSV(cfg.FilePath) {
		t, err := workbook.ReadCSV(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		if cfg.Sheet != "" && cfg.Sheet != t.Name {
			return nil, fmt.Errorf("sheet %q not found (csv input has only %q)", cfg.Sheet, t.Name)
		}
		in.SheetNames = []string{t.Name}
		in.Tables = []*model.Table{t}
	} else {
		wb, err := workbook.Open(cfg.FilePath)
		if err != nil {
			return nil, err
		}
		defer wb.Close()

		in.SheetNames = wb.SheetNames()
		selected, err := selectSheets(in.SheetNames, cfg)
		if err != nil {
			return nil, err
		}
		in.Tables, in.SheetErrors, err = readSheets(ctx, log, wb, selected, cfg.AllSheets)
		if err != nil {
			return nil, err
		}
	}

	in.Duration = time.Since(start)
	log.Info().
		Str("file", filepath.Base(cfg.FilePath)).
		Str("sha256", sha).
		Int64("bytes", in.FileSize).
		Int("sheets", len(in.SheetNames)).
		Int("selected", len(in.Tables)).
		Int("unreadable", len(in.SheetErrors)).
		Dur("duration", in.Duration).
		Msg("input read")
	return in, nil
}

// readSheets loads the named sheets in order. With isolate set, a sheet
// that fails to read is recorded and skipped; otherwise the first failure
// is returned.
func readSheets(ctx context.Context, log zerolog.Logger, r sheetReader, names []string, isolate bool) ([]*model.Table, []model.SheetError, error) {
	var (
		tables []*model.Table
		errs   []model.SheetError
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		t, err := r.ReadSheet(name)
		if err != nil {
			if !isolate {
				return nil, nil, err
			}
			log.Warn().Err(err).Str("sheet", name).Msg("sheet unreadable, skipped")
			errs = append(errs, model.SheetError{Sheet: name, Reason: err.Error()})
			continue
		}
		tables = append(tables, t)
	}
	return tables, errs, nil
}

func selectSheets(names []string, cfg *config.Config) ([]string, error) {
	if len(names) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}
	if cfg.AllSheets {
		return names, nil
	}
	if cfg.Sheet == "" {
		return names[:1], nil
	}
	for _, n := range names {
		if n == cfg.Sheet {
			return []string{n}, nil
		}
	}
	return nil, fmt.Errorf("sheet %q not found", cfg.Sheet)
}

// hashFile returns the hex SHA-256 of the file at path and its length.
func hashFile(path string) (string, int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("open input for hash: %w", err)
	}
	defer f.Close()

	h := sha256.New()
	n, err := io.Copy(h, f)
	if err != nil {
		return "", 0, fmt.Errorf("hash input: %w", err)
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}
