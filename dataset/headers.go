package dataset

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/mozillazg/go-unidecode"
)

type HeaderAnalysis struct {
	Headers        []string
	FirstRowIsData bool
	FirstDataRow   []string
}

var (
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`),
		regexp.MustCompile(`^\d{2}/\d{2}/\d{4}$`),
		regexp.MustCompile(`^\d{2}\.\d{2}\.\d{4}$`),
		regexp.MustCompile(`^\d{4}-\d{2}-\d{2}[\sT]\d{2}:\d{2}:\d{2}`),
	}
	nonAlnum = regexp.MustCompile(`[^a-zA-Z0-9]+`)
)

// AnalyzeHeaders decides whether firstRow is a header and returns cleaned,
// unique column names. A row that mostly looks like data gets column_N names.
func AnalyzeHeaders(firstRow []string) *HeaderAnalysis {
	if len(firstRow) == 0 {
		return nil
	}

	result := &HeaderAnalysis{
		Headers:      make([]string, len(firstRow)),
		FirstDataRow: firstRow,
	}

	headerLikeCount := 0
	for _, field := range firstRow {
		if isLikelyHeader(field) {
			headerLikeCount++
		}
	}

	if float64(headerLikeCount)/float64(len(firstRow)) > 0.5 {
		for i, header := range firstRow {
			result.Headers[i] = cleanHeaderName(header, i)
		}
	} else {
		result.FirstRowIsData = true
		for i := range firstRow {
			result.Headers[i] = generateColumnName(i)
		}
	}

	result.Headers = uniqueHeaders(result.Headers)
	return result
}

func isLikelyHeader(text string) bool {
	text = strings.TrimSpace(text)
	if text == "" {
		return false
	}
	if _, err := strconv.ParseFloat(text, 64); err == nil {
		return false
	}
	for _, re := range datePatterns {
		if re.MatchString(text) {
			return false
		}
	}

	letters, others := 0, 0
	for _, r := range text {
		switch {
		case unicode.IsLetter(r):
			letters++
		case unicode.IsSpace(r):
		default:
			others++
		}
	}
	total := letters + others
	return letters > 0 && float64(letters)/float64(total) >= 0.3
}

func generateColumnName(index int) string {
	return fmt.Sprintf("column_%d", index+1)
}

// uniqueHeaders suffixes repeated names with _1, _2, ...
func uniqueHeaders(headers []string) []string {
	seen := make(map[string]bool, len(headers))
	result := make([]string, len(headers))

	for i, header := range headers {
		name := header
		for counter := 1; seen[name]; counter++ {
			name = fmt.Sprintf("%s_%d", header, counter)
		}
		seen[name] = true
		result[i] = name
	}
	return result
}

// cleanHeaderName transliterates to ASCII, lower-cases and collapses any
// run of special characters into a single underscore.
func cleanHeaderName(header string, index int) string {
	header = strings.TrimSpace(header)
	if !isLikelyHeader(header) {
		return generateColumnName(index)
	}
	cleaned := strings.Trim(nonAlnum.ReplaceAllString(unidecode.Unidecode(header), "_"), "_")
	if cleaned == "" {
		return generateColumnName(index)
	}
	return strings.ToLower(cleaned)
}
