package roster

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/agenthands/followgraph/internal/core/model"
)

var ErrMalformedInputLine = errors.New("malformed input line")

// MalformedLineError reports the 1-based line that did not parse as "<identifier> <cohort>".
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("%s %d: %q (%s)", ErrMalformedInputLine, e.Line, e.Text, e.Reason)
}

func (e *MalformedLineError) Unwrap() error {
	return ErrMalformedInputLine
}

type Option func(*reader)

// WithCohorts restricts accepted cohort labels to the given set.
func WithCohorts(cohorts ...model.Cohort) Option {
	return func(r *reader) {
		r.allowed = make(map[model.Cohort]bool, len(cohorts))
		for _, c := range cohorts {
			r.allowed[c] = true
		}
	}
}

type reader struct {
	allowed map[model.Cohort]bool
}

// Read parses the candidates list. Blank lines and lines starting with '#' are skipped.
// The first malformed line aborts the read.
func Read(in io.Reader, opts ...Option) (model.Roster, error) {
	r := &reader{}
	for _, opt := range opts {
		opt(r)
	}

	var entities []model.Entity
	scanner := bufio.NewScanner(in)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Fields(line)
		if len(fields) != 2 {
			return model.Roster{}, &MalformedLineError{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("expected 2 fields, got %d", len(fields)),
			}
		}

		cohort := model.Cohort(fields[1])
		if r.allowed != nil && !r.allowed[cohort] {
			return model.Roster{}, &MalformedLineError{
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("unknown cohort %q", cohort),
			}
		}
		entities = append(entities, model.Entity{ID: fields[0], Cohort: cohort})
	}
	if err := scanner.Err(); err != nil {
		return model.Roster{}, fmt.Errorf("failed to read candidates: %w", err)
	}

	return model.NewRoster(entities), nil
}

func ReadFile(path string, opts ...Option) (model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return model.Roster{}, fmt.Errorf("failed to open candidates file '%s': %w", path, err)
	}
	defer f.Close()

	return Read(f, opts...)
}
