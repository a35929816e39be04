package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"plearn/backend/internal/client"
	"plearn/backend/internal/conversation"
	"plearn/backend/internal/model"
	"plearn/backend/internal/quiz"
	"plearn/backend/internal/speech"
	"plearn/backend/internal/todo"
)

const chatHelp = `Commands:
  /mode <fluent|creative|precise|balanced|list|quiz>  switch AI mode
  /image <path>   attach an image to the next message
  /retry          resend the last failed prompt
  /save           add the last suggested to-do list to your tasks
  /quiz           stage the last generated quiz for "plearn quiz"
  /speak          read the last reply aloud
  /mic            start voice input
  /clear          clear the conversation
  /quit           leave`

type printNotifier struct {
	w io.Writer
}

func (n printNotifier) Notify(level conversation.Level, message string) {
	mark := "*"
	if level == conversation.LevelError {
		mark = "!"
	}
	fmt.Fprintf(n.w, "%s %s\n", mark, message)
}

// filePlayer "plays" audio by writing it to a file.
type filePlayer struct {
	dir  string
	urls *speech.ObjectURLs
	out  io.Writer
	now  func() time.Time
}

func (p *filePlayer) Play(_ context.Context, url string, onEnded func()) error {
	a, ok := p.urls.Lookup(url)
	if !ok {
		return fmt.Errorf("unknown audio url %s", url)
	}
	ext := ".mp3"
	if a.MimeType != "audio/mpeg" {
		ext = ".audio"
	}
	path := filepath.Join(p.dir, fmt.Sprintf("plearn-%d%s", p.now().UnixNano(), ext))
	if err := os.WriteFile(path, a.Data, 0o644); err != nil {
		return err
	}
	fmt.Fprintf(p.out, "* Audio disimpan di %s\n", path)
	onEnded()
	return nil
}

type chatSession struct {
	ctx        context.Context
	out        io.Writer
	ctrl       *conversation.Controller
	tasks      *todo.List
	store      quiz.Storage
	recognizer *speech.Recognizer
}

func runChat(ctx context.Context, cfg *Config, logger *slog.Logger, api *client.Client, store quiz.Storage, userID string, args cmdChat) error {
	dir := args.AudioDir
	if dir == "" {
		dir = os.TempDir()
	}
	urls := speech.NewObjectURLs()
	player := &filePlayer{dir: dir, urls: urls, out: cfg.Stdout, now: time.Now}

	ctrl := conversation.New(conversation.Config{
		Backend:  api,
		Notifier: printNotifier{w: cfg.Stderr},
		Speaker:  speech.NewSynthesizer(api, player, urls),
		Logger:   logger,
	})
	if err := ctrl.SetMode(model.AIMode(args.Mode)); err != nil {
		return err
	}

	s := &chatSession{
		ctx:   ctx,
		out:   cfg.Stdout,
		ctrl:  ctrl,
		tasks: todo.NewList(api, userID),
		store: store,
		// Terminals have no recognition engine.
		recognizer: speech.NewRecognizer(speech.Unsupported()),
	}
	defer s.recognizer.Close()

	fmt.Fprintf(s.out, "PLEARN chat (%s). Ketik /help untuk perintah.\n", ctrl.Mode())
	scanner := bufio.NewScanner(cfg.Stdin)
	for {
		fmt.Fprint(s.out, "> ")
		if !scanner.Scan() {
			fmt.Fprintln(s.out)
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if !strings.HasPrefix(line, "/") {
			s.send(line)
			continue
		}
		if quit := s.command(line); quit {
			return nil
		}
		if ctx.Err() != nil {
			return nil
		}
	}
}

func (s *chatSession) command(line string) bool {
	name, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case "/quit", "/exit":
		return true
	case "/help":
		fmt.Fprintln(s.out, chatHelp)
	case "/mode":
		if err := s.ctrl.SetMode(model.AIMode(arg)); err != nil {
			fmt.Fprintf(s.out, "! Mode tidak dikenal: %s\n", arg)
			return false
		}
		fmt.Fprintf(s.out, "* Mode: %s\n", arg)
	case "/image":
		s.stageImage(arg)
	case "/retry":
		msg, ok := s.last(func(m model.Message) bool { return m.Error })
		if !ok {
			fmt.Fprintln(s.out, "* Tidak ada pesan gagal.")
			return false
		}
		if s.ctrl.Retry(s.ctx, msg.RetryText) {
			s.printLastReply()
		}
	case "/save":
		s.saveTodos()
	case "/quiz":
		s.stageQuiz()
	case "/speak":
		msg, ok := s.last(func(m model.Message) bool { return m.Sender == model.SenderBot && !m.Error })
		if !ok {
			fmt.Fprintln(s.out, "* Belum ada balasan.")
			return false
		}
		if err := s.ctrl.Speak(s.ctx, msg.ID); err != nil {
			fmt.Fprintf(s.out, "! %v\n", err)
		}
	case "/mic":
		s.recognizer.Start()
		if e := s.recognizer.Err(); e != "" {
			fmt.Fprintf(s.out, "! %s\n", e)
		}
	case "/clear":
		s.ctrl.Clear()
		fmt.Fprintln(s.out, "* Percakapan dihapus.")
	default:
		fmt.Fprintf(s.out, "! Perintah tidak dikenal: %s\n", name)
	}
	return false
}

func (s *chatSession) send(text string) {
	s.ctrl.SetInput(text)
	if s.ctrl.Send(s.ctx) {
		s.printLastReply()
	}
}

func (s *chatSession) stageImage(path string) {
	if path == "" {
		fmt.Fprintln(s.out, "! Gunakan /image <path>")
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(s.out, "! Tidak dapat membaca gambar: %v\n", err)
		return
	}
	s.ctrl.StageImage(&model.Image{
		Name:     filepath.Base(path),
		MimeType: http.DetectContentType(data),
		Data:     data,
	})
	fmt.Fprintf(s.out, "* Gambar %s dilampirkan ke pesan berikutnya.\n", filepath.Base(path))
}

func (s *chatSession) saveTodos() {
	msg, ok := s.last(func(m model.Message) bool {
		return m.Payload != nil && m.Payload.Kind == model.PayloadTodo
	})
	if !ok {
		fmt.Fprintln(s.out, "* Belum ada daftar tugas. Coba /mode list.")
		return
	}
	n, err := s.tasks.AddItems(s.ctx, msg.Payload.TodoItems)
	if err != nil {
		fmt.Fprintf(s.out, "! %d dari %d tugas tersimpan: %v\n", n, len(msg.Payload.TodoItems), err)
		return
	}
	fmt.Fprintf(s.out, "* %d tugas ditambahkan.\n", n)
}

func (s *chatSession) stageQuiz() {
	msg, ok := s.last(func(m model.Message) bool {
		return m.Payload != nil && m.Payload.Kind == model.PayloadQuiz
	})
	if !ok {
		fmt.Fprintln(s.out, "* Belum ada kuis. Coba /mode quiz.")
		return
	}
	if err := quiz.Stage(s.store, msg.Payload.QuizQuestions); err != nil {
		fmt.Fprintf(s.out, "! Gagal menyimpan kuis: %v\n", err)
		return
	}
	fmt.Fprintf(s.out, "* Kuis %d soal siap. Jalankan \"plearn quiz\".\n", len(msg.Payload.QuizQuestions))
}

// last returns the newest message matching keep.
func (s *chatSession) last(keep func(model.Message) bool) (model.Message, bool) {
	msgs := s.ctrl.Messages()
	for i := len(msgs) - 1; i >= 0; i-- {
		if keep(msgs[i]) {
			return msgs[i], true
		}
	}
	return model.Message{}, false
}

func (s *chatSession) printLastReply() {
	msg, ok := s.last(func(m model.Message) bool { return m.Sender == model.SenderBot })
	if !ok {
		return
	}
	// Structured replies are raw JSON; show the parsed form instead.
	if msg.Payload == nil {
		fmt.Fprintln(s.out, msg.Text)
		if msg.Error {
			fmt.Fprintln(s.out, "* Ketik /retry untuk mencoba lagi.")
		}
		return
	}
	switch msg.Payload.Kind {
	case model.PayloadTodo:
		fmt.Fprintln(s.out, "* Daftar tugas:")
		for i, item := range msg.Payload.TodoItems {
			fmt.Fprintf(s.out, "  %d. %s [%s, %s, %s]\n", i+1, item.Title, item.Category, item.Priority, item.Deadline)
		}
		fmt.Fprintln(s.out, "* Ketik /save untuk menyimpannya.")
	case model.PayloadQuiz:
		fmt.Fprintf(s.out, "* %d soal kuis dibuat. Ketik /quiz untuk menyimpannya.\n", len(msg.Payload.QuizQuestions))
	}
}
