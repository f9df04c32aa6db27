// Package backup converts answers to and from the JSON interchange format used
// for full backups and single-answer exports: a top-level array of answer
// objects with the same schema as the durable answers entry.
package backup

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
	"unicode"
	"unicode/utf16"

	"github.com/dmitrijs2005/answerbook/internal/common"
	"github.com/dmitrijs2005/answerbook/internal/models"
)

// Export renders answers as an indented JSON array.
func Export(answers []models.Answer) ([]byte, error) {
	if answers == nil {
		answers = []models.Answer{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(answers); err != nil {
		return nil, fmt.Errorf("encode answers: %w", err)
	}
	return buf.Bytes(), nil
}

// Decode parses an uploaded document. Invalid JSON yields common.ErrParse; a
// valid document that is not an array of answer objects yields
// common.ErrFormat. Decoded answers are migrated like stored ones.
func Decode(document []byte) ([]models.Answer, error) {
	if !json.Valid(document) {
		return nil, fmt.Errorf("%w: document is not valid JSON", common.ErrParse)
	}
	if !startsWith(document, '[') {
		return nil, fmt.Errorf("%w: expected an array of answers", common.ErrFormat)
	}

	var elems []json.RawMessage
	if err := json.Unmarshal(document, &elems); err != nil {
		return nil, fmt.Errorf("%w: %w", common.ErrFormat, err)
	}

	out := make([]models.Answer, 0, len(elems))
	for i, raw := range elems {
		if !startsWith(raw, '{') {
			return nil, fmt.Errorf("%w: element %d is not an answer object", common.ErrFormat, i)
		}
		var a models.Answer
		if err := json.Unmarshal(raw, &a); err != nil {
			return nil, fmt.Errorf("%w: element %d: %w", common.ErrFormat, i, err)
		}
		a.Migrate()
		out = append(out, a)
	}
	return out, nil
}

// MergeStats counts what Merge did.
type MergeStats struct {
	Added    int
	Replaced int
}

// Merge applies imported answers to current and returns the new collection.
// An imported answer whose id matches one already in the result replaces it
// wholesale; anything else is appended. A zero id means "no id": such answers
// never match and are always appended. Replaced only counts answers that
// existed in current. current is not modified.
func Merge(current, imported []models.Answer) ([]models.Answer, MergeStats) {
	out := models.Clone(current)
	existing := make(map[int64]struct{}, len(current))
	for _, a := range current {
		existing[a.Id] = struct{}{}
	}

	var st MergeStats
	for _, a := range imported {
		if a.Id != 0 {
			if idx := models.IndexOf(out, a.Id); idx >= 0 {
				out[idx] = a
				if _, ok := existing[a.Id]; ok {
					st.Replaced++
					delete(existing, a.Id)
				}
				continue
			}
		}
		out = append(out, a)
		st.Added++
	}
	return out, st
}

// AnswerFileName derives the file name for a single-answer export:
// every character outside [a-z0-9] (case-insensitive) becomes '_' and the
// result is lowercased. Characters outside the Basic Multilingual Plane
// count as two UTF-16 units and become "__", so names match files exported
// by the browser version.
func AnswerFileName(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)):
			b.WriteRune(unicode.ToLower(r))
		case utf16.RuneLen(r) == 2:
			b.WriteString("__")
		default:
			b.WriteByte('_')
		}
	}
	return "answer-" + b.String() + ".json"
}

// BackupFileName derives the file name for a full backup taken on day t.
func BackupFileName(t time.Time) string {
	return "customer-support-answers-backup-" + t.Format(time.DateOnly) + ".json"
}

func startsWith(b []byte, c byte) bool {
	b = bytes.TrimLeft(b, " \t\r\n")
	return len(b) > 0 && b[0] == c
}
