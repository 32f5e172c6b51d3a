// Package fasta reads and writes FASTA sequence files.
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Errors returned by FASTA parsing.
var (
	// ErrNoRecords indicates input with no FASTA records.
	ErrNoRecords = errors.New("no FASTA records found")

	// ErrMissingHeader indicates sequence data before any ">" header.
	ErrMissingHeader = errors.New("sequence data before FASTA header")
)

// DefaultLineWidth is the sequence wrap width used by Write.
const DefaultLineWidth = 60

// Record is one FASTA entry. Name is the first word of the header line;
// Description is the remainder.
type Record struct {
	Name        string
	Description string
	Sequence    string
}

// Parse reads every record from r. Blank lines are skipped; whitespace
// inside sequence lines is removed. Residue validation is left to the
// sequence layer so files with unusual codes still load.
func Parse(r io.Reader) ([]Record, error) {
	var records []Record
	var current *Record
	var seq strings.Builder

	flush := func() {
		if current != nil {
			current.Sequence = seq.String()
			records = append(records, *current)
			seq.Reset()
		}
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}
		if strings.HasPrefix(line, ">") {
			flush()
			name, desc, _ := strings.Cut(strings.TrimSpace(line[1:]), " ")
			current = &Record{Name: name, Description: strings.TrimSpace(desc)}
			continue
		}
		if current == nil {
			return nil, fmt.Errorf("%w at line %d", ErrMissingHeader, lineNo)
		}
		seq.WriteString(strings.Join(strings.Fields(line), ""))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading FASTA: %w", err)
	}
	flush()

	if len(records) == 0 {
		return nil, ErrNoRecords
	}
	return records, nil
}

// ReadFile parses every record in the file at path.
func ReadFile(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening FASTA file: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// ReadOne parses the file at path and returns its single record.
func ReadOne(path string) (Record, error) {
	records, err := ReadFile(path)
	if err != nil {
		return Record{}, err
	}
	if len(records) > 1 {
		return Record{}, fmt.Errorf("%s holds %d records, expected one", path, len(records))
	}
	return records[0], nil
}

// Write serializes records to w, wrapping sequence lines at width
// (DefaultLineWidth when width <= 0).
func Write(w io.Writer, records []Record, width int) error {
	if width <= 0 {
		width = DefaultLineWidth
	}
	bw := bufio.NewWriter(w)
	for _, rec := range records {
		header := rec.Name
		if rec.Description != "" {
			header += " " + rec.Description
		}
		if _, err := fmt.Fprintf(bw, ">%s\n", header); err != nil {
			return err
		}
		for start := 0; start < len(rec.Sequence); start += width {
			end := start + width
			if end > len(rec.Sequence) {
				end = len(rec.Sequence)
			}
			if _, err := fmt.Fprintln(bw, rec.Sequence[start:end]); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}

// WriteFile serializes records to the file at path.
func WriteFile(path string, records []Record, width int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating FASTA file: %w", err)
	}
	if err := Write(f, records, width); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
