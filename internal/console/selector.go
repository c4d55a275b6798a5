package console

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pixil98/go-questkeep/internal/display"
)

const (
	defaultSelectorRowLength = 80
	defaultSelectorRowCount  = 5
	selectorMaxTries         = 3
)

// Selector presents a numbered list of options laid out in columns.
type Selector struct {
	options []string
	output  []string
}

func NewSelector(options []string) *Selector {
	s := &Selector{options: append([]string(nil), options...)}
	s.build()
	return s
}

func (s *Selector) build() {
	colWidth := 1
	for _, v := range s.options {
		l := len(display.Title(v)) + 7 // number and spacing: "nn. <val>  "
		if l > colWidth {
			colWidth = l
		}
	}

	// Fill columns first, left to right, adding rows when the options do not
	// fit in the default count.
	numCols := max(defaultSelectorRowLength/colWidth, 1)
	numRows := max((len(s.options)+numCols-1)/numCols, defaultSelectorRowCount)

	rows := make([]string, numRows)
	for i, v := range s.options {
		rows[i%numRows] += fmt.Sprintf("%2d. %-*s  ", i+1, colWidth-5, display.Title(v))
	}
	for i := range rows {
		rows[i] = strings.TrimRight(rows[i], " ")
	}

	s.output = rows
}

// Prompt shows the options and returns the chosen one.
func (s *Selector) Prompt(br *bufio.Reader, w io.Writer, prompt string) (string, error) {
	if _, err := fmt.Fprintf(w, "%s\n", prompt); err != nil {
		return "", err
	}

	for _, str := range s.output {
		if len(str) > 0 {
			if _, err := fmt.Fprintf(w, "%s\n", str); err != nil {
				return "", err
			}
		}
	}

	selection, err := Prompt(br, w, "Make your selection: ", WithMaxTries(selectorMaxTries), WithValidator(
		func(str string) (bool, string) {
			if s.Select(s.index(str)) == "" {
				return false, "Invalid selection!\n"
			}
			return true, ""
		},
	))
	if err != nil {
		return "", err
	}

	return s.Select(s.index(selection)), nil
}

// index accepts a number or an option name.
func (s *Selector) index(str string) int {
	str = strings.TrimSpace(str)
	if i, err := strconv.Atoi(str); err == nil {
		return i
	}
	for i, v := range s.options {
		if strings.EqualFold(v, str) || strings.EqualFold(display.Title(v), str) {
			return i + 1
		}
	}
	return 0
}

// Select returns option i, counting from 1, or "" when out of range.
func (s *Selector) Select(i int) string {
	if i < 1 || i > len(s.options) {
		return ""
	}
	return s.options[i-1]
}
