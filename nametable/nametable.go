// Package nametable reads and writes the sidecar name table: the plain text
// file that maps each archive's 32-bit name hashes back to their original
// strings.
//
// Each non-empty line holds one entry: the decimal hash, a space, and the
// name in double quotes (`123456 "some_name"`). Reading stops at the first
// empty line or a line beginning with a NUL byte, since some archives pad
// their name table with trailing zero bytes to a block boundary.
package nametable

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Table maps name hashes to their original strings.
type Table map[int32]string

// ReadFrom parses a name table from r.
func ReadFrom(r io.Reader) (Table, error) {
	names := make(Table)
	scanner := bufio.NewScanner(r)
	// name-table lines can be long if a filename list is embedded in quotes;
	// grow the scanner buffer past bufio's default 64KiB cap.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 16*1024*1024)

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), "\r")
		if line == "" || strings.HasPrefix(line, "\x00") {
			break
		}

		pos := strings.IndexFunc(line, isSpace)
		if pos < 0 {
			return nil, fmt.Errorf("nametable: malformed line %q: no separator", line)
		}

		idStr := line[:pos]
		rest := line[pos+1:]
		if len(rest) < 2 || rest[0] != '"' || rest[len(rest)-1] != '"' {
			return nil, fmt.Errorf("nametable: malformed line %q: name not quoted", line)
		}

		id, err := strconv.ParseInt(idStr, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("nametable: malformed line %q: %w", line, err)
		}

		names[int32(id)] = rest[1 : len(rest)-1]
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return names, nil
}

func isSpace(r rune) bool {
	return r == ' ' || r == '\t'
}

// WriteTo writes the table to w, one `<hash> "<name>"` line per entry.
func (t Table) WriteTo(w io.Writer) error {
	bw := bufio.NewWriter(w)
	for id, name := range t {
		if _, err := fmt.Fprintf(bw, "%d \"%s\"\n", id, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}
