package ingest

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/hudsonmp/project-finder/internal/domain"
)

// Regex for valid subreddit names
var subNameRegex = regexp.MustCompile(`^[A-Za-z0-9_]{3,21}$`)

// LoadTargets reads subreddit overrides from a CSV with a header row and
// subreddit,min_score columns. Rows that fail validation are skipped.
func LoadTargets(path string) ([]domain.Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open targets: %w", err)
	}
	defer f.Close()
	return ParseTargets(f)
}

func ParseTargets(src io.Reader) ([]domain.Target, error) {
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var targets []domain.Target
	header := true
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if header {
			header = false
			continue
		}
		if len(record) == 0 {
			continue
		}

		// Validation (fail-soft)
		sub := strings.TrimSpace(record[0])
		if !subNameRegex.MatchString(sub) {
			continue
		}

		score := 0
		if len(record) > 1 {
			score, _ = strconv.Atoi(strings.TrimSpace(record[1]))
		}

		targets = append(targets, domain.Target{
			Subreddit: sub,
			MinScore:  score,
		})
	}
	return targets, nil
}

// LoadKeywords reads classification keyword overrides, one per row below
// a header.
func LoadKeywords(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open keywords: %w", err)
	}
	defer f.Close()
	return ParseKeywords(f)
}

func ParseKeywords(src io.Reader) ([]string, error) {
	r := csv.NewReader(stripBOM(src))
	r.FieldsPerRecord = -1

	var kws []string
	header := true
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if header {
			header = false
			continue
		}
		if len(rec) == 0 {
			continue
		}
		if kw := strings.ToLower(strings.TrimSpace(rec[0])); kw != "" {
			kws = append(kws, kw)
		}
	}
	return kws, nil
}

func stripBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	rdr, _, err := br.ReadRune()
	if err != nil {
		return br
	}
	if rdr != '\uFEFF' {
		br.UnreadRune()
	}
	return br
}
