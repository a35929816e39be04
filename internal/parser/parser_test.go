package parser_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plearn/backend/internal/model"
	"plearn/backend/internal/parser"
)

var fixedNow = time.Date(2025, time.March, 10, 15, 4, 5, 0, time.UTC)

func newParser() *parser.Parser {
	return parser.New(func() time.Time { return fixedNow })
}

func TestStripFences(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
		want string
	}{
		{name: "Plain", raw: `  [1, 2]  `, want: `[1, 2]`},
		{name: "Fenced", raw: "```\n[1, 2]\n```", want: `[1, 2]`},
		{name: "Fenced json tag", raw: "```json\n[1, 2]\n```", want: `[1, 2]`},
		{name: "Fenced upper-case tag", raw: "```JSON\n[1]\n```\n", want: `[1]`},
		{name: "Inner fence kept", raw: "text ```json [1]```", want: "text ```json [1]```"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, parser.StripFences(tc.raw))
		})
	}
}

func TestParser_TodoItems(t *testing.T) {
	p := newParser()

	t.Run("Fills defaults for missing fields", func(t *testing.T) {
		raw := `[
			{"title": "Belajar Go", "description": "bab 1", "category": "Belajar", "priority": "high", "deadline": "2025-03-12"},
			{"title": "Lari pagi"},
			{"title": "Minum air", "category": "", "priority": null}
		]`

		items, ok := p.TodoItems(raw)
		require.True(t, ok)
		require.Len(t, items, 3)

		assert.Equal(t, model.TodoItem{
			Title: "Belajar Go", Description: "bab 1", Category: "Belajar", Priority: "high", Deadline: "2025-03-12",
		}, items[0])
		for _, item := range items[1:] {
			assert.Equal(t, parser.DefaultCategory, item.Category)
			assert.Equal(t, parser.DefaultPriority, item.Priority)
			assert.Equal(t, "2025-03-17", item.Deadline)
		}
	})

	t.Run("Fenced and unfenced parse identically", func(t *testing.T) {
		body := `[{"title": "A"}, {"title": "B", "priority": "low"}]`

		plain, ok := p.TodoItems(body)
		require.True(t, ok)
		fenced, ok := p.TodoItems("```json\n" + body + "\n```")
		require.True(t, ok)
		bare, ok := p.TodoItems("```\n" + body + "\n```")
		require.True(t, ok)

		assert.Equal(t, plain, fenced)
		assert.Equal(t, plain, bare)
	})

	t.Run("Wrong typed fields are kept, not validated", func(t *testing.T) {
		items, ok := p.TodoItems(`[{"title": "X", "priority": 3}, "not an object"]`)
		require.True(t, ok)
		require.Len(t, items, 2)
		assert.Equal(t, "3", items[0].Priority)
		assert.Equal(t, "", items[1].Title)
		assert.Equal(t, parser.DefaultCategory, items[1].Category)
	})

	t.Run("No structured data", func(t *testing.T) {
		for _, raw := range []string{
			"Berikut daftar tugasmu!",
			`{"title": "object, not array"}`,
			`[]`,
			`null`,
			"```json\n[{\"title\": \n```",
		} {
			items, ok := p.TodoItems(raw)
			assert.False(t, ok, raw)
			assert.Nil(t, items, raw)
		}
	})

	t.Run("Idempotent", func(t *testing.T) {
		raw := "```json\n[{\"title\": \"A\"}]\n```"
		first, ok1 := p.TodoItems(raw)
		second, ok2 := p.TodoItems(raw)
		assert.Equal(t, ok1, ok2)
		assert.Equal(t, first, second)
	})
}

func TestParser_QuizQuestions(t *testing.T) {
	p := newParser()
	valid := `[
		{"question": "2+2?", "options": ["3", "4", "5", "6"], "correctAnswer": 1},
		{"question": "Ibu kota Indonesia?", "options": ["Jakarta", "Bandung", "Medan", "Surabaya"], "correctAnswer": 0}
	]`

	t.Run("Valid", func(t *testing.T) {
		questions, ok := p.QuizQuestions(valid)
		require.True(t, ok)
		require.Len(t, questions, 2)
		assert.Equal(t, model.QuizQuestion{Question: "2+2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: 1}, questions[0])
	})

	t.Run("Fenced", func(t *testing.T) {
		plain, _ := p.QuizQuestions(valid)
		fenced, ok := p.QuizQuestions("```json\n" + valid + "\n```")
		require.True(t, ok)
		assert.Equal(t, plain, fenced)
	})

	testCases := []struct {
		name string
		raw  string
	}{
		{name: "Missing options", raw: `[{"question": "a", "options": ["1","2","3","4"], "correctAnswer": 0}, {"question": "b", "correctAnswer": 1}]`},
		{name: "String correctAnswer", raw: `[{"question": "a", "options": ["1","2","3","4"], "correctAnswer": "0"}]`},
		{name: "Missing question", raw: `[{"options": ["1","2","3","4"], "correctAnswer": 0}]`},
		{name: "Options not an array", raw: `[{"question": "a", "options": "1,2,3,4", "correctAnswer": 0}]`},
		{name: "Fractional correctAnswer", raw: `[{"question": "a", "options": ["1","2","3","4"], "correctAnswer": 1.5}]`},
		{name: "Empty options", raw: `[{"question": "q", "options": [], "correctAnswer": 7}]`},
		{name: "Single option", raw: `[{"question": "q", "options": ["1"], "correctAnswer": 0}]`},
		{name: "correctAnswer past options", raw: `[{"question": "a", "options": ["1","2","3","4"], "correctAnswer": 4}]`},
		{name: "Negative correctAnswer", raw: `[{"question": "a", "options": ["1","2","3","4"], "correctAnswer": -1}]`},
		{name: "Null element", raw: `[null]`},
		{name: "Not an array", raw: `{"question": "a"}`},
		{name: "Not JSON", raw: `Ini kuismu`},
	}

	for _, tc := range testCases {
		t.Run("Rejects - "+tc.name, func(t *testing.T) {
			questions, ok := p.QuizQuestions(tc.raw)
			assert.False(t, ok)
			assert.Nil(t, questions)
		})
	}
}

func TestPrompts(t *testing.T) {
	list := parser.ListPrompt("jadwal belajar UTS", fixedNow)
	assert.Contains(t, list, "2025-03-10")
	assert.Contains(t, list, "jadwal belajar UTS")
	assert.Contains(t, list, `"deadline"`)

	quiz := parser.QuizPrompt("Sistem tata surya", "")
	assert.Contains(t, quiz, "Sistem tata surya")
	assert.Contains(t, quiz, parser.DefaultLocale)
	assert.Contains(t, quiz, `"correctAnswer"`)
}
