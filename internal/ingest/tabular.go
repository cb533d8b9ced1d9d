package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/studycards/backend/internal/domain/studyset"
)

// Tabular uploads share one column layout:
//
//	id | question | type | explanation | difficulty | domain | correct | option 1..n
//
// correct lists 1-based option numbers separated by commas. The first row is
// a header.
const (
	colID = iota
	colQuestion
	colType
	colExplanation
	colDifficulty
	colDomain
	colCorrect
	colFirstOption
)

// ParseXLSX reads the first sheet of a workbook.
func ParseXLSX(r io.Reader, title string) (*studyset.StudySet, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open workbook: %v", ErrInvalidDocument, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrInvalidDocument)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("%w: failed to get rows: %v", ErrInvalidDocument, err)
	}
	return buildTabular(rows, title)
}

// ParseCSV reads the same layout from comma-separated text.
func ParseCSV(r io.Reader, title string) (*studyset.StudySet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // option count varies per row
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: error reading CSV: %v", ErrInvalidDocument, err)
	}
	return buildTabular(rows, title)
}

func buildTabular(rows [][]string, title string) (*studyset.StudySet, error) {
	doc := Document{Certification: title}

	for i, row := range rows {
		if i == 0 || blankRow(row) {
			continue
		}
		qd, err := rowToDoc(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %v", ErrInvalidDocument, i+1, err)
		}
		doc.Questions = append(doc.Questions, qd)
	}
	return doc.Build()
}

func rowToDoc(row []string) (QuestionDoc, error) {
	cell := func(i int) string {
		if i < len(row) {
			return strings.TrimSpace(row[i])
		}
		return ""
	}

	var options []string
	for i := colFirstOption; i < len(row); i++ {
		options = append(options, cell(i))
	}
	// trailing empty cells are not options
	for len(options) > 0 && options[len(options)-1] == "" {
		options = options[:len(options)-1]
	}

	correct, err := parseCorrect(cell(colCorrect))
	if err != nil {
		return QuestionDoc{}, err
	}

	qd := QuestionDoc{
		ID:          cell(colID),
		Question:    cell(colQuestion),
		Type:        cell(colType),
		Options:     options,
		Explanation: cell(colExplanation),
		Difficulty:  cell(colDifficulty),
		Domain:      cell(colDomain),
	}
	if len(correct) > 1 {
		qd.CorrectAnswers = correct
	} else if len(correct) == 1 {
		qd.CorrectAnswer = &correct[0]
	}
	return qd, nil
}

// parseCorrect converts "1, 3" into 0-based indices.
func parseCorrect(raw string) ([]int, error) {
	if raw == "" {
		return nil, nil
	}
	var out []int
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("correct column: %q is not an option number", part)
		}
		out = append(out, n-1)
	}
	return out, nil
}

func blankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
