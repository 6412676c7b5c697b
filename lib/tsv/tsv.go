// Package tsv reads and writes the tab separated, UTF-16 encoded files
// spreadsheet applications open without an import dialog.
package tsv

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var encoding = unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)

// Encode writes `header` followed by `rows` to `w`.
func Encode(w io.Writer, header []string, rows [][]string) error {
	encoded := transform.NewWriter(w, encoding.NewEncoder())

	writer := csv.NewWriter(encoded)
	writer.Comma = '\t'
	if header != nil {
		err := writer.Write(header)
		if err != nil {
			return err
		}
	}
	err := writer.WriteAll(rows)
	if err != nil {
		return err
	}
	return encoded.Close()
}

// WriteFile replaces the file at `path` with a full snapshot. The snapshot
// is written next to the destination and renamed over it, so readers
// only ever see a complete file.
func WriteFile(path string, header []string, rows [][]string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create snapshot: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	err = Encode(tmp, header, rows)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	err = tmp.Close()
	if err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	err = os.Chmod(tmpPath, 0644)
	if err != nil {
		return err
	}
	err = os.Rename(tmpPath, path)
	if err != nil {
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

// Decode reads a file produced by Encode, the first row is the header.
func Decode(r io.Reader) (header []string, rows [][]string, err error) {
	reader := csv.NewReader(transform.NewReader(r, encoding.NewDecoder()))
	reader.Comma = '\t'
	reader.FieldsPerRecord = -1

	all, err := reader.ReadAll()
	if err != nil {
		return nil, nil, err
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func ReadFile(path string) (header []string, rows [][]string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	return Decode(f)
}
