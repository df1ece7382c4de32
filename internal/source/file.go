package source

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ledgerline/mfin/internal/datatable"
	"github.com/ledgerline/mfin/internal/util"
)

type fileSource struct {
	path string
}

// File reads records from a .json, .yaml/.yml or .csv file.
func File(path string) Source {
	return fileSource{path: path}
}

func (f fileSource) Describe() string { return "file " + f.path }

func (f fileSource) Load(ctx context.Context) ([]datatable.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, util.NewError("Cannot read data file").WithContext(f.path).Wrap(err)
	}

	var records []datatable.Record
	switch strings.ToLower(filepath.Ext(f.path)) {
	case ".json":
		records, err = decodeJSON(data)
	case ".yaml", ".yml":
		records, err = decodeYAML(data)
	case ".csv":
		records, err = decodeCSV(bytes.NewReader(data))
	default:
		return nil, util.UnsupportedFormatError(f.path)
	}
	if err != nil {
		return nil, util.NewError("Cannot parse data file").WithContext(f.path).Wrap(err)
	}
	return records, nil
}

// decodeJSON accepts an array of objects, or an object wrapping one under
// "data" or "records".
func decodeJSON(data []byte) ([]datatable.Record, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, err
	}

	if obj, ok := doc.(map[string]any); ok {
		for _, k := range []string{"data", "records"} {
			if inner, ok := obj[k]; ok {
				doc = inner
				break
			}
		}
	}

	items, ok := doc.([]any)
	if !ok {
		return nil, errors.New("expected an array of objects")
	}

	records := make([]datatable.Record, 0, len(items))
	for i, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("item %d is not an object", i)
		}
		r := make(datatable.Record, len(obj))
		for k, v := range obj {
			r[k] = jsonValue(v)
		}
		records = append(records, r)
	}
	return records, nil
}

func jsonValue(v any) any {
	n, ok := v.(json.Number)
	if !ok {
		return v
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}

func decodeYAML(data []byte) ([]datatable.Record, error) {
	var items []map[string]any
	if err := yaml.Unmarshal(data, &items); err != nil {
		return nil, err
	}
	records := make([]datatable.Record, 0, len(items))
	for _, item := range items {
		records = append(records, datatable.Record(item))
	}
	return records, nil
}

// decodeCSV reads a header row followed by data rows. Short rows leave the
// missing keys unset; cells are typed by csvValue.
func decodeCSV(r io.Reader) ([]datatable.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	for i, h := range header {
		if i == 0 {
			h = util.TrimBOM(h)
		}
		header[i] = strings.TrimSpace(util.ToValidUTF8(h))
	}

	var records []datatable.Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rec := make(datatable.Record, len(header))
		for i, cell := range row {
			if i < len(header) {
				rec[header[i]] = csvValue(util.ToValidUTF8(cell))
			}
		}
		records = append(records, rec)
	}
	return records, nil
}

// groupedNumber matches thousands (12,500.50) and lakh (12,50,000) digit
// grouping. Any other comma-containing cell is text.
var groupedNumber = regexp.MustCompile(`^-?(\d{1,3}(,\d{3})+|\d{1,2}(,\d{2})*,\d{3})(\.\d+)?$`)

// csvValue types a CSV cell: empty cells become nil, numbers float64 and
// dates time.Time. Numbers with a leading zero (pincodes, account numbers)
// stay text.
func csvValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if looksNumeric(s) {
		if strings.Contains(s, ",") {
			if !groupedNumber.MatchString(s) {
				return s
			}
			s = strings.ReplaceAll(s, ",", "")
		}
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	if len(s) == 10 && (s[2] == '-' || s[4] == '-') {
		if t, err := util.ParseDate(s); err == nil {
			return t
		}
	}
	return s
}

func looksNumeric(s string) bool {
	s = strings.TrimPrefix(s, "-")
	if s == "" || strings.ContainsAny(s, "eEnNiI") {
		return false
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return false
	}
	return s[0] >= '0' && s[0] <= '9'
}
