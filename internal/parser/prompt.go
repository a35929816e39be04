package parser

import (
	"fmt"
	"time"
)

// DefaultLocale is the language quiz questions are requested in.
const DefaultLocale = "Bahasa Indonesia"

// QuizQuestionCount is the number of questions the quiz prompt asks for.
const QuizQuestionCount = 5

// ListPrompt asks the model for a to-do list as a JSON array matching
// TodoItems. Relative deadlines are resolved against now.
func ListPrompt(request string, now time.Time) string {
	today := now.Format(DateLayout)
	return fmt.Sprintf(`Hari ini adalah %s.
Buatkan daftar tugas berdasarkan permintaan berikut: "%s"

Balas HANYA dengan array JSON tanpa teks lain, dengan format:
[
  {
    "title": "judul singkat tugas",
    "description": "penjelasan singkat",
    "category": "Belajar | Kesehatan | Pekerjaan | Pribadi | Lainnya",
    "priority": "low | medium | high",
    "deadline": "YYYY-MM-DD"
  }
]
Gunakan tanggal setelah %s untuk deadline.`, today, request, today)
}

// QuizPrompt appends the quiz instruction template to request.
func QuizPrompt(request, locale string) string {
	if locale == "" {
		locale = DefaultLocale
	}
	return fmt.Sprintf(`%s

Buat %d soal pilihan ganda tentang topik di atas dalam %s.
Balas HANYA dengan array JSON tanpa teks lain, dengan format:
[
  {
    "question": "pertanyaan",
    "options": ["pilihan A", "pilihan B", "pilihan C", "pilihan D"],
    "correctAnswer": 0
  }
]
"correctAnswer" adalah indeks (0-3) dari pilihan yang benar.`, request, QuizQuestionCount, locale)
}
