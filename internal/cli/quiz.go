package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"plearn/backend/internal/quiz"
)

// advancePoll is how often the player checks for the auto-advance.
const advancePoll = 20 * time.Millisecond

func runQuiz(cfg *Config, store quiz.Storage) error {
	rt := quiz.NewRuntime(store, cfg.Scheduler)
	defer rt.Close()

	ok, err := rt.Load()
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(cfg.Stdout, "Tidak ada kuis tersimpan. Buat kuis lewat \"plearn chat -m quiz\" lalu /quiz.")
		return nil
	}

	out := cfg.Stdout
	scanner := bufio.NewScanner(cfg.Stdin)
	for rt.State() == quiz.StateQuiz {
		snap := rt.Snapshot()
		printQuestion(out, snap)

		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			// The quiz stays staged and can be resumed.
			fmt.Fprintln(out)
			return scanner.Err()
		}
		input := strings.TrimSpace(scanner.Text())
		cmd, arg, _ := strings.Cut(input, " ")

		switch strings.ToLower(cmd) {
		case "f", "finish":
			if err := rt.Finish(); err != nil {
				return err
			}
		case "u", "ragu":
			if err := rt.ToggleUncertain(snap.Index); err != nil {
				return err
			}
		case "g", "go":
			n, convErr := strconv.Atoi(strings.TrimSpace(arg))
			if convErr != nil {
				fmt.Fprintln(out, "! Gunakan: g <nomor soal>")
				continue
			}
			if err := rt.GoTo(n - 1); err != nil {
				reportQuizErr(out, err)
			}
		default:
			n, convErr := strconv.Atoi(cmd)
			if convErr != nil {
				fmt.Fprintln(out, "! Jawab dengan nomor pilihan, u (ragu), g <n> (ke soal) atau f (selesai).")
				continue
			}
			if err := rt.Answer(n - 1); err != nil {
				reportQuizErr(out, err)
				continue
			}
			q := snap.Questions[snap.Index]
			if n-1 == q.CorrectAnswer {
				fmt.Fprintln(out, "Benar!")
			} else {
				fmt.Fprintf(out, "Salah. Jawaban: %s\n", option(q.Options, q.CorrectAnswer))
			}
			waitAdvance(rt, snap.Index)
		}
	}

	printResult(out, rt.Snapshot())
	rt.Reset()
	return nil
}

// waitAdvance blocks until the runtime leaves question idx.
func waitAdvance(rt *quiz.Runtime, idx int) {
	deadline := time.Now().Add(2 * quiz.AdvanceDelay)
	for time.Now().Before(deadline) {
		snap := rt.Snapshot()
		if snap.State != quiz.StateQuiz || snap.Index != idx {
			return
		}
		time.Sleep(advancePoll)
	}
}

func reportQuizErr(out io.Writer, err error) {
	switch {
	case errors.Is(err, quiz.ErrAnswered):
		fmt.Fprintln(out, "! Soal ini sudah dijawab. Ketik f untuk menyelesaikan kuis.")
	case errors.Is(err, quiz.ErrOutOfRange):
		fmt.Fprintln(out, "! Nomor di luar jangkauan.")
	default:
		fmt.Fprintf(out, "! %v\n", err)
	}
}

func printQuestion(out io.Writer, snap quiz.Snapshot) {
	q := snap.Questions[snap.Index]
	mark := ""
	for _, i := range snap.Uncertain {
		if i == snap.Index {
			mark = " (ragu)"
		}
	}
	fmt.Fprintf(out, "\nSoal %d/%d%s  [%s]\n%s\n", snap.Index+1, len(snap.Questions), mark, formatElapsed(snap.Elapsed), q.Question)
	for i, opt := range q.Options {
		fmt.Fprintf(out, "  %d) %s\n", i+1, opt)
	}
	if snap.Answered {
		fmt.Fprintln(out, "(sudah dijawab)")
	}
}

func printResult(out io.Writer, snap quiz.Snapshot) {
	fmt.Fprintf(out, "\nSkor: %d/%d  Waktu: %s\n", snap.Score, len(snap.Questions), formatElapsed(snap.Elapsed))
	for i, q := range snap.Questions {
		answer := "-"
		if a := snap.Answers[i]; a != nil && *a != quiz.Skipped {
			answer = option(q.Options, *a)
		}
		status := "x"
		if a := snap.Answers[i]; a != nil && *a == q.CorrectAnswer {
			status = "v"
		}
		fmt.Fprintf(out, "  [%s] %d. %s  jawaban: %s\n", status, i+1, q.Question, answer)
	}
}

// option returns options[i], tolerating a correct index the model got wrong.
func option(options []string, i int) string {
	if i < 0 || i >= len(options) {
		return "?"
	}
	return options[i]
}

func formatElapsed(d time.Duration) string {
	s := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", s/60, s%60)
}
