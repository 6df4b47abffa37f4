package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// ErrUnsupportedEncoding is returned for character encodings the reader cannot decode.
var ErrUnsupportedEncoding = errors.New("unsupported encoding")

// CSVOptions controls how delimited text is decoded.
type CSVOptions struct {
	// Delimiter separates fields. Zero means comma.
	Delimiter rune
	// Encoding names the input character set (utf-8, latin-1, windows-1252). Empty means utf-8.
	Encoding string
}

// nullTokens are cell texts read as missing values.
var nullTokens = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// ReadCSV decodes a header-first delimited file into a dataset named name.
// Column types are inferred per column: all integers, all numbers, all booleans, else text.
func ReadCSV(r io.Reader, name string, opts CSVOptions) (*Dataset, error) {
	dec, err := decoderFor(opts.Encoding)
	if err != nil {
		return nil, err
	}
	r = dec.Reader(r)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}

	header, err := reader.Read()
	if err == io.EOF {
		return New(name, nil, nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header of %s: %w", name, err)
	}
	columns := dedupeHeader(header)

	var cells [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}
		if len(row) > len(columns) {
			line, _ := reader.FieldPos(0)
			return nil, fmt.Errorf("%s line %d: expected %d fields, saw %d", name, line, len(columns), len(row))
		}
		cells = append(cells, row)
	}

	kinds := make([]columnKind, len(columns))
	for i := range columns {
		kinds[i] = inferKind(cells, i)
	}

	records := make([]Record, 0, len(cells))
	for _, row := range cells {
		rec := make(Record, len(columns))
		for i, col := range columns {
			raw := ""
			if i < len(row) {
				raw = row[i]
			}
			rec[col] = kinds[i].parse(raw)
		}
		records = append(records, rec)
	}

	return New(name, columns, records), nil
}

func decoderFor(name string) (*encoding.Decoder, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8", "utf-8-sig":
		return unicode.UTF8BOM.NewDecoder(), nil
	case "latin-1", "latin1", "iso-8859-1":
		return charmap.ISO8859_1.NewDecoder(), nil
	case "cp1252", "windows-1252":
		return charmap.Windows1252.NewDecoder(), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedEncoding, name)
	}
}

// dedupeHeader suffixes repeated column names with ".1", ".2" and so on.
func dedupeHeader(header []string) []string {
	seen := make(map[string]int, len(header))
	out := make([]string, len(header))
	for i, h := range header {
		name := h
		if n, ok := seen[h]; ok {
			for {
				n++
				name = h + "." + strconv.Itoa(n)
				if _, taken := seen[name]; !taken {
					break
				}
			}
			seen[h] = n
		}
		seen[name] = 0
		out[i] = name
	}
	return out
}

type columnKind int

const (
	kindText columnKind = iota
	kindInt
	kindFloat
	kindBool
)

func isNullToken(s string) bool {
	_, ok := nullTokens[s]
	return ok
}

func inferKind(rows [][]string, col int) columnKind {
	allInt, allFloat, allBool, seenValue := true, true, true, false
	for _, row := range rows {
		if col >= len(row) || isNullToken(row[col]) {
			continue
		}
		seenValue = true
		s := strings.TrimSpace(row[col])
		if _, err := strconv.ParseInt(s, 10, 64); err != nil {
			allInt = false
		}
		if _, err := strconv.ParseFloat(s, 64); err != nil {
			allFloat = false
		}
		if _, ok := parseBool(s); !ok {
			allBool = false
		}
		if !allInt && !allFloat && !allBool {
			return kindText
		}
	}
	switch {
	case !seenValue:
		return kindText
	case allInt:
		return kindInt
	case allFloat:
		return kindFloat
	case allBool:
		return kindBool
	default:
		return kindText
	}
}

func parseBool(s string) (bool, bool) {
	switch s {
	case "True", "TRUE", "true":
		return true, true
	case "False", "FALSE", "false":
		return false, true
	}
	return false, false
}

func (k columnKind) parse(raw string) Value {
	if isNullToken(raw) {
		return nil
	}
	s := strings.TrimSpace(raw)
	switch k {
	case kindInt:
		n, _ := strconv.ParseInt(s, 10, 64)
		return n
	case kindFloat:
		f, _ := strconv.ParseFloat(s, 64)
		return f
	case kindBool:
		b, _ := parseBool(s)
		return b
	default:
		return raw
	}
}
