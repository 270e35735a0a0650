package excel

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/example/wordquiz/pkg/models"
	"github.com/xuri/excelize/v2"
)

// Header aliases accepted for each language column, matched case-insensitively.
// Earlier aliases win when a sheet carries more than one of them.
var (
	EnglishAliases = []string{"english", "英文", "term", "英文名", "en", "english term"}
	ChineseAliases = []string{"chinese", "中文", "名稱", "name", "cn", "chinese name", "中文名"}
)

var (
	// ErrSourceUnreadable is returned when the file cannot be opened or parsed
	ErrSourceUnreadable = errors.New("term bank source is unreadable")
	// ErrMissingColumn is matched by *MissingColumnError
	ErrMissingColumn = errors.New("term bank is missing a required column")
	// ErrEmptyBank is returned when no row has both fields filled in
	ErrEmptyBank = errors.New("term bank has no usable rows")
)

// MissingColumnError reports which language column could not be matched,
// together with what the sheet actually contains.
type MissingColumnError struct {
	Found          []string
	MissingEnglish bool
	MissingChinese bool
}

func (e *MissingColumnError) Error() string {
	var missing []string
	if e.MissingEnglish {
		missing = append(missing, "english")
	}
	if e.MissingChinese {
		missing = append(missing, "chinese")
	}
	return fmt.Sprintf("%v: %s (found columns %q; english aliases %q; chinese aliases %q)",
		ErrMissingColumn, strings.Join(missing, ", "), e.Found, EnglishAliases, ChineseAliases)
}

// Is lets errors.Is(err, ErrMissingColumn) match.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrMissingColumn
}

// ImportConfig defines the import configuration
type ImportConfig struct {
	FilePath  string // Path to the Excel or CSV file
	SheetName string // Name of the sheet to import, first sheet when empty
}

// ImportResult holds the result of an import operation
type ImportResult struct {
	Bank           []models.TermPair
	Columns        []string // Header row as read from the file
	EnglishColumn  string
	ChineseColumn  string
	TotalProcessed int
	Skipped        int
}

// ImportTerms reads a term bank from an Excel or CSV file
func ImportTerms(config ImportConfig) (*ImportResult, error) {
	var (
		rows [][]string
		err  error
	)

	ext := strings.ToLower(filepath.Ext(config.FilePath))
	if ext == ".csv" {
		rows, err = readCSV(config)
	} else {
		rows, err = readExcel(config)
	}
	if err != nil {
		return nil, err
	}

	return buildBank(rows)
}

// readExcel returns every row of the configured sheet
func readExcel(config ImportConfig) ([][]string, error) {
	f, err := excelize.OpenFile(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open Excel file %s: %v", ErrSourceUnreadable, config.FilePath, err)
	}
	defer f.Close()

	sheet := config.SheetName
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%w: %s has no sheets", ErrSourceUnreadable, config.FilePath)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rows from sheet %q: %v", ErrSourceUnreadable, sheet, err)
	}
	return rows, nil
}

// readCSV returns every record of a CSV file
func readCSV(config ImportConfig) ([][]string, error) {
	file, err := os.Open(config.FilePath)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open CSV file %s: %v", ErrSourceUnreadable, config.FilePath, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1 // Allow variable number of fields
	reader.LazyQuotes = true

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: error reading CSV: %v", ErrSourceUnreadable, err)
		}
		rows = append(rows, row)
	}

	// Spreadsheet exports often start with a byte order mark.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}
	return rows, nil
}

// buildBank matches the header row and keeps every row with both fields filled in
func buildBank(rows [][]string) (*ImportResult, error) {
	if len(rows) == 0 {
		return nil, &MissingColumnError{MissingEnglish: true, MissingChinese: true}
	}

	header := rows[0]
	engIdx, chiIdx, err := MatchColumns(header)
	if err != nil {
		return nil, err
	}

	result := &ImportResult{
		Columns:       append([]string(nil), header...),
		EnglishColumn: header[engIdx],
		ChineseColumn: header[chiIdx],
	}

	for _, row := range rows[1:] {
		result.TotalProcessed++

		en := cellAt(row, engIdx)
		ch := cellAt(row, chiIdx)
		if en == "" || ch == "" {
			result.Skipped++
			continue
		}
		result.Bank = append(result.Bank, models.TermPair{English: en, Chinese: ch})
	}

	if len(result.Bank) == 0 {
		return nil, fmt.Errorf("%w: %d rows read, all had a blank field", ErrEmptyBank, result.TotalProcessed)
	}
	return result, nil
}

// MatchColumns finds the english and chinese columns of a header row
func MatchColumns(header []string) (int, int, error) {
	positions := make(map[string]int, len(header))
	for i, col := range header {
		key := normalizeHeader(col)
		if _, dup := positions[key]; !dup {
			positions[key] = i
		}
	}

	engIdx, engOK := pickColumn(positions, EnglishAliases)
	chiIdx, chiOK := pickColumn(positions, ChineseAliases)
	if !engOK || !chiOK {
		return -1, -1, &MissingColumnError{
			Found:          append([]string(nil), header...),
			MissingEnglish: !engOK,
			MissingChinese: !chiOK,
		}
	}
	return engIdx, chiIdx, nil
}

func pickColumn(positions map[string]int, aliases []string) (int, bool) {
	for _, alias := range aliases {
		if idx, ok := positions[alias]; ok {
			return idx, true
		}
	}
	return -1, false
}

func normalizeHeader(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func cellAt(row []string, idx int) string {
	if idx < len(row) {
		return strings.TrimSpace(row[idx])
	}
	return ""
}

// Source loads the term bank once and hands out the same result for the
// lifetime of the process. It is safe for concurrent use.
type Source struct {
	config ImportConfig
	load   func(ImportConfig) (*ImportResult, error)

	once   sync.Once
	result *ImportResult
	err    error
}

// NewSource creates a memoizing term bank source
func NewSource(config ImportConfig) *Source {
	return &Source{config: config, load: ImportTerms}
}

// Load imports the bank on first call and returns the cached outcome afterwards
func (s *Source) Load() (*ImportResult, error) {
	s.once.Do(func() {
		s.result, s.err = s.load(s.config)
	})
	return s.result, s.err
}
