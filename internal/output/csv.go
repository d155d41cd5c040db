package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/MichalMitros/pdsa-generator/internal/platform/models"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrBadEncoding is returned when read table is not UTF-16 encoded.
var ErrBadEncoding = errors.New("table is not UTF-16 encoded")

// UTF16 is encoding of campaign and customizer tables.
var UTF16 encoding.Encoding = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// WriteTable writes table as csv using enc. Nil enc writes UTF-8.
func WriteTable(w io.Writer, table *models.Table, enc encoding.Encoding) error {
	var tw io.WriteCloser = nopWriteCloser{w}
	if enc != nil {
		tw = transform.NewWriter(w, enc.NewEncoder())
	}

	cw := csv.NewWriter(tw)
	if err := cw.Write(table.Header); err != nil {
		return fmt.Errorf("can't write table header: %w", err)
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return fmt.Errorf("can't write table rows: %w", err)
	}

	return tw.Close()
}

// WriteFile writes table into file at path creating missing directories.
// Table is written into temporary file renamed to path, so failed writing leaves no partial file.
func WriteFile(path string, table *models.Table, enc encoding.Encoding) error {
	staged, err := StageFile(path, table, enc)
	if err != nil {
		return err
	}
	defer staged.Discard()

	return staged.Commit()
}

// Staged is table written into temporary file, it replaces file at its path on Commit.
type Staged struct {
	path string
	temp string
}

// StageFile writes table into temporary file next to path creating missing directories.
func StageFile(path string, table *models.Table, enc encoding.Encoding) (*Staged, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("can't create output directory: %w", err)
	}

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return nil, fmt.Errorf("can't create output file: %w", err)
	}

	if err = WriteTable(f, table, enc); err != nil {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return nil, err
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return nil, fmt.Errorf("can't close output file: %w", err)
	}

	return &Staged{path: path, temp: f.Name()}, nil
}

// Commit renames staged file to its path.
func (s *Staged) Commit() error {
	if err := os.Rename(s.temp, s.path); err != nil {
		return fmt.Errorf("can't rename output file: %w", err)
	}

	return nil
}

// Discard removes staged file. It is no-op after Commit.
func (s *Staged) Discard() {
	_ = os.Remove(s.temp)
}

// ReadTable reads UTF-16 csv table with byte order mark.
// Returns ErrBadEncoding when r is not UTF-16 encoded.
func ReadTable(r io.Reader) (*models.Table, error) {
	decoded := transform.NewReader(r, unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder())

	cr := csv.NewReader(decoded)
	cr.FieldsPerRecord = -1

	records, err := cr.ReadAll()
	if errors.Is(err, unicode.ErrMissingBOM) {
		return nil, fmt.Errorf("can't read table: %w", ErrBadEncoding)
	}
	var parseErr *csv.ParseError
	if errors.As(err, &parseErr) {
		return nil, fmt.Errorf("can't read table: %w (%v)", ErrBadEncoding, err)
	}
	if err != nil {
		return nil, fmt.Errorf("can't read table: %w", err)
	}

	table := &models.Table{}
	if len(records) > 0 {
		table.Header = records[0]
		table.Rows = records[1:]
	}

	return table, nil
}

type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
