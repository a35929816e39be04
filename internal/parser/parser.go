// Package parser extracts structured data (to-do items, quiz questions) from
// free-text model replies.
//
// Two policies coexist. To-do parsing is lenient: every array element becomes
// a TodoItem and absent fields are filled with defaults. Quiz parsing is
// strict: a single malformed element discards the whole result.
package parser

import (
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"plearn/backend/internal/model"
)

// Defaults applied to to-do items whose fields are absent.
const (
	DefaultCategory = "Lainnya"
	DefaultPriority = model.PriorityMedium
	// DefaultDeadlineDays is added to the current date.
	DefaultDeadlineDays = 7
)

// DateLayout is the ISO date format used for deadlines.
const DateLayout = "2006-01-02"

var (
	openingFence = regexp.MustCompile("^```(?i:json)?")
	closingFence = regexp.MustCompile("```$")
)

// Parser converts raw replies into typed data. It holds no mutable state, so
// parsing the same input twice yields equal results.
type Parser struct {
	now func() time.Time
}

// New returns a Parser that uses now for date defaults. A nil now uses
// time.Now.
func New(now func() time.Time) *Parser {
	if now == nil {
		now = time.Now
	}
	return &Parser{now: now}
}

// StripFences trims raw and removes a surrounding markdown code fence,
// optionally tagged json.
func StripFences(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = openingFence.ReplaceAllString(s, "")
	s = closingFence.ReplaceAllString(strings.TrimSpace(s), "")
	return strings.TrimSpace(s)
}

// decodeArray returns the raw elements of a JSON array, or false if raw is
// not an array.
func decodeArray(raw string) ([]json.RawMessage, bool) {
	var elems []json.RawMessage
	if err := json.Unmarshal([]byte(StripFences(raw)), &elems); err != nil {
		return nil, false
	}
	// A JSON null unmarshals into a nil slice without error.
	if len(elems) == 0 {
		return nil, false
	}
	return elems, true
}

// TodoItems parses raw as an array of to-do items. Missing fields are filled
// with defaults; elements are never rejected. It returns false when raw does
// not hold a non-empty JSON array.
func (p *Parser) TodoItems(raw string) ([]model.TodoItem, bool) {
	elems, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}

	deadline := p.now().AddDate(0, 0, DefaultDeadlineDays).Format(DateLayout)
	items := make([]model.TodoItem, 0, len(elems))
	for _, elem := range elems {
		var fields map[string]any
		// Non-object elements simply have no fields.
		_ = json.Unmarshal(elem, &fields)

		items = append(items, model.TodoItem{
			Title:       field(fields, "title", ""),
			Description: field(fields, "description", ""),
			Category:    field(fields, "category", DefaultCategory),
			Priority:    field(fields, "priority", DefaultPriority),
			Deadline:    field(fields, "deadline", deadline),
		})
	}
	return items, true
}

// field returns fields[key] as a string, or def when it is absent, null or
// empty. Present values of another type are kept in their printed form.
func field(fields map[string]any, key, def string) string {
	v, ok := fields[key]
	if !ok || v == nil {
		return def
	}
	switch val := v.(type) {
	case string:
		if val == "" {
			return def
		}
		return val
	case float64:
		return fmt.Sprintf("%v", val)
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return def
		}
		return string(b)
	}
}

type rawQuestion struct {
	Question      *string  `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *float64 `json:"correctAnswer"`
}

// MinQuizOptions is the fewest options a playable question may have.
const MinQuizOptions = 2

// QuizQuestions parses raw as an array of quiz questions. Every element must
// carry a string question, at least MinQuizOptions string options and an
// integer correctAnswer indexing one of them; otherwise the whole result is
// rejected.
func (p *Parser) QuizQuestions(raw string) ([]model.QuizQuestion, bool) {
	elems, ok := decodeArray(raw)
	if !ok {
		return nil, false
	}

	questions := make([]model.QuizQuestion, 0, len(elems))
	for _, elem := range elems {
		var q rawQuestion
		if err := json.Unmarshal(elem, &q); err != nil {
			return nil, false
		}
		if q.Question == nil || q.Options == nil || q.CorrectAnswer == nil {
			return nil, false
		}
		if len(q.Options) < MinQuizOptions || *q.CorrectAnswer != math.Trunc(*q.CorrectAnswer) {
			return nil, false
		}
		if *q.CorrectAnswer < 0 || int(*q.CorrectAnswer) >= len(q.Options) {
			return nil, false
		}
		questions = append(questions, model.QuizQuestion{
			Question:      *q.Question,
			Options:       q.Options,
			CorrectAnswer: int(*q.CorrectAnswer),
		})
	}
	return questions, true
}
