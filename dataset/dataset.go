package dataset

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/pivolan/go_utils"

	"github.com/pivolan/campaign_analyzer/domain/models"
)

var (
	ErrEmptyFile     = errors.New("empty file")
	ErrMissingColumn = errors.New("missing column")
	ErrNotNumeric    = errors.New("column is not numeric")
	ErrBadDate       = errors.New("unparseable date")
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// DefaultNaNValues are the cell values loaded as missing.
var DefaultNaNValues = []string{"", "NA", "NaN", "N/A", "null", "<nil>"}

type loadConfig struct {
	delimiter rune
	nanValues []string
}

type Option func(*loadConfig)

func WithDelimiter(d rune) Option {
	return func(c *loadConfig) {
		c.delimiter = d
	}
}

func WithNaNValues(values []string) Option {
	return func(c *loadConfig) {
		c.nanValues = values
	}
}

// Dataset is a typed view of one delimited file. Only ParseDates changes it.
type Dataset struct {
	Source string

	frame   dataframe.DataFrame
	names   []string
	dtypes  map[string]string
	dates   map[string][]time.Time
	noDates map[string][]bool
}

// Load reads filePath (optionally compressed) into a Dataset.
func Load(filePath string, opts ...Option) (*Dataset, error) {
	rc, err := openInput(filePath)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", filePath, err)
	}
	defer rc.Close()

	ds, err := Read(rc, opts...)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", filePath, err)
	}
	ds.Source = filePath
	return ds, nil
}

// Read parses delimited text from r.
func Read(r io.Reader, opts ...Option) (*Dataset, error) {
	cfg := loadConfig{delimiter: ',', nanValues: DefaultNaNValues}
	for _, opt := range opts {
		opt(&cfg)
	}

	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.Comma = cfg.delimiter
	reader.LazyQuotes = true
	records, err := reader.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	headers := AnalyzeHeaders(records[0])
	if headers == nil {
		return nil, ErrEmptyFile
	}
	if headers.FirstRowIsData {
		records = append([][]string{headers.Headers}, records...)
	} else {
		records[0] = headers.Headers
	}
	if len(records) < 2 {
		return nil, ErrEmptyFile
	}

	frame := dataframe.LoadRecords(records,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(true),
		dataframe.NaNValues(cfg.nanValues),
		dataframe.WithTypes(emptyColumnTypes(records, cfg.nanValues)),
	)
	if frame.Err != nil {
		return nil, frame.Err
	}
	frame = promoteSparseInts(frame)
	if frame.Err != nil {
		return nil, frame.Err
	}

	ds := &Dataset{
		frame:   frame,
		names:   frame.Names(),
		dtypes:  make(map[string]string),
		dates:   make(map[string][]time.Time),
		noDates: make(map[string][]bool),
	}
	for i, t := range frame.Types() {
		ds.dtypes[ds.names[i]] = dtypeName(t)
	}
	return ds, nil
}

// emptyColumnTypes loads columns without a single value as floats, so they
// stay numeric instead of falling back to strings.
func emptyColumnTypes(records [][]string, nanValues []string) map[string]series.Type {
	types := make(map[string]series.Type)
	for c, name := range records[0] {
		empty := true
		for _, record := range records[1:] {
			if !go_utils.InArray(record[c], nanValues) {
				empty = false
				break
			}
		}
		if empty {
			types[name] = series.Float
		}
	}
	return types
}

// promoteSparseInts turns int columns with missing cells into floats.
func promoteSparseInts(frame dataframe.DataFrame) dataframe.DataFrame {
	for i, t := range frame.Types() {
		if t != series.Int {
			continue
		}
		s := frame.Col(frame.Names()[i])
		for _, missing := range s.IsNaN() {
			if missing {
				frame = frame.Mutate(series.New(s.Float(), series.Float, s.Name))
				break
			}
		}
	}
	return frame
}

func dtypeName(t series.Type) string {
	switch t {
	case series.Int:
		return models.DTypeInt
	case series.Float:
		return models.DTypeFloat
	case series.Bool:
		return models.DTypeBool
	default:
		return models.DTypeObject
	}
}

func (d *Dataset) Shape() (rows, cols int) {
	return d.frame.Dims()
}

func (d *Dataset) Names() []string {
	return append([]string(nil), d.names...)
}

func (d *Dataset) Has(col string) bool {
	return go_utils.InArray(col, d.names)
}

// Require reports the first of cols that is not present.
func (d *Dataset) Require(cols ...string) error {
	for _, col := range cols {
		if !d.Has(col) {
			return fmt.Errorf("%w: %s", ErrMissingColumn, col)
		}
	}
	return nil
}

// DTypes lists every column with its dtype, in file order.
func (d *Dataset) DTypes() []models.ColumnInfo {
	result := make([]models.ColumnInfo, len(d.names))
	for i, name := range d.names {
		result[i] = models.ColumnInfo{Name: name, DType: d.dtypes[name]}
	}
	return result
}

func (d *Dataset) DType(col string) string {
	return d.dtypes[col]
}

func isNumeric(dtype string) bool {
	return dtype == models.DTypeInt || dtype == models.DTypeFloat || dtype == models.DTypeBool
}

// NumericColumns returns the int, float and bool columns in file order.
func (d *Dataset) NumericColumns() []string {
	var result []string
	for _, name := range d.names {
		if isNumeric(d.dtypes[name]) {
			result = append(result, name)
		}
	}
	return result
}

// NumberColumns is NumericColumns without the bool columns.
func (d *Dataset) NumberColumns() []string {
	var result []string
	for _, name := range d.names {
		if dtype := d.dtypes[name]; dtype == models.DTypeInt || dtype == models.DTypeFloat {
			result = append(result, name)
		}
	}
	return result
}

// Float returns a numeric column with NaN in place of missing cells.
func (d *Dataset) Float(col string) ([]float64, error) {
	if err := d.Require(col); err != nil {
		return nil, err
	}
	if !isNumeric(d.dtypes[col]) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotNumeric, col, d.dtypes[col])
	}
	return d.frame.Col(col).Float(), nil
}

// Strings returns a column as text plus a per-row missing flag.
func (d *Dataset) Strings(col string) ([]string, []bool, error) {
	if err := d.Require(col); err != nil {
		return nil, nil, err
	}
	s := d.frame.Col(col)
	return s.Records(), s.IsNaN(), nil
}

// Missing flags the missing cells of col.
func (d *Dataset) Missing(col string) ([]bool, error) {
	if err := d.Require(col); err != nil {
		return nil, err
	}
	if missing, ok := d.noDates[col]; ok {
		return append([]bool(nil), missing...), nil
	}
	return d.frame.Col(col).IsNaN(), nil
}

// Head returns the first n rows rendered as text.
func (d *Dataset) Head(n int) [][]string {
	rows, _ := d.Shape()
	if n > rows {
		n = rows
	}
	if n <= 0 {
		return nil
	}

	columns := make([][]string, len(d.names))
	for i, name := range d.names {
		columns[i] = d.renderColumn(name, n)
	}

	result := make([][]string, n)
	for r := 0; r < n; r++ {
		row := make([]string, len(d.names))
		for c := range d.names {
			row[c] = columns[c][r]
		}
		result[r] = row
	}
	return result
}

func (d *Dataset) renderColumn(name string, n int) []string {
	out := make([]string, n)
	if dates, ok := d.dates[name]; ok {
		for i := 0; i < n; i++ {
			out[i] = FormatDate(dates[i], d.noDates[name][i])
		}
		return out
	}

	s := d.frame.Col(name)
	if d.dtypes[name] != models.DTypeFloat {
		copy(out, s.Records()[:n])
		return out
	}
	values := s.Float()
	for i := 0; i < n; i++ {
		if math.IsNaN(values[i]) {
			out[i] = "NaN"
			continue
		}
		out[i] = strconv.FormatFloat(values[i], 'f', -1, 64)
	}
	return out
}
