package quiz_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"plearn/backend/internal/model"
	"plearn/backend/internal/quiz"
	"plearn/backend/internal/storage"
)

// fakeScheduler queues callbacks until the test fires them.
type fakeScheduler struct {
	after []*fakeTimer
	every []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (t *fakeTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

func (s *fakeScheduler) AfterFunc(d time.Duration, f func()) quiz.Timer {
	t := &fakeTimer{d: d, f: f}
	s.after = append(s.after, t)
	return t
}

func (s *fakeScheduler) Every(d time.Duration, f func()) quiz.Timer {
	t := &fakeTimer{d: d, f: f}
	s.every = append(s.every, t)
	return t
}

// fireAfter runs the most recent one-shot callback.
func (s *fakeScheduler) fireAfter(t *testing.T) {
	t.Helper()
	require.NotEmpty(t, s.after)
	timer := s.after[len(s.after)-1]
	require.Equal(t, quiz.AdvanceDelay, timer.d)
	timer.f()
}

func (s *fakeScheduler) tick(t *testing.T, n int) {
	t.Helper()
	require.NotEmpty(t, s.every)
	timer := s.every[len(s.every)-1]
	for i := 0; i < n; i++ {
		timer.f()
	}
}

func questions(n int) []model.QuizQuestion {
	qs := make([]model.QuizQuestion, n)
	for i := range qs {
		qs[i] = model.QuizQuestion{
			Question:      "Pertanyaan",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: 1,
		}
	}
	return qs
}

func setupRuntime(t *testing.T, n int) (*quiz.Runtime, *storage.Memory, *fakeScheduler) {
	t.Helper()
	store := storage.NewMemory()
	require.NoError(t, quiz.Stage(store, questions(n)))
	sched := &fakeScheduler{}
	r := quiz.NewRuntime(store, sched)
	loaded, err := r.Load()
	require.NoError(t, err)
	require.True(t, loaded)
	return r, store, sched
}

func TestRuntime_Load(t *testing.T) {
	t.Run("Success - keeps payload", func(t *testing.T) {
		r, store, sched := setupRuntime(t, 3)

		snap := r.Snapshot()
		assert.Equal(t, quiz.StateQuiz, snap.State)
		assert.Len(t, snap.Questions, 3)
		assert.Equal(t, []*int{nil, nil, nil}, snap.Answers)
		require.Len(t, sched.every, 1)
		assert.Equal(t, quiz.TickInterval, sched.every[0].d)

		_, ok, _ := store.Get(quiz.StorageKey)
		assert.True(t, ok)
	})

	t.Run("Failure - Nothing stored", func(t *testing.T) {
		r := quiz.NewRuntime(storage.NewMemory(), &fakeScheduler{})
		loaded, err := r.Load()
		require.NoError(t, err)
		assert.False(t, loaded)
		assert.Equal(t, quiz.StateIdle, r.State())
	})

	t.Run("Failure - Malformed payload", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(quiz.StorageKey, `[{"question":"q"}]`))
		r := quiz.NewRuntime(store, &fakeScheduler{})
		loaded, err := r.Load()
		require.NoError(t, err)
		assert.False(t, loaded)
		assert.Equal(t, quiz.StateIdle, r.State())
	})

	t.Run("Failure - Unplayable question", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(quiz.StorageKey, `[{"question":"q","options":[],"correctAnswer":7}]`))
		r := quiz.NewRuntime(store, &fakeScheduler{})
		loaded, err := r.Load()
		require.NoError(t, err)
		assert.False(t, loaded)
		assert.Equal(t, quiz.StateIdle, r.State())
	})

	t.Run("Failure - Empty array", func(t *testing.T) {
		store := storage.NewMemory()
		require.NoError(t, store.Set(quiz.StorageKey, `[]`))
		r := quiz.NewRuntime(store, &fakeScheduler{})
		loaded, err := r.Load()
		require.NoError(t, err)
		assert.False(t, loaded)
	})
}

func TestRuntime_AnswerToResult(t *testing.T) {
	r, store, sched := setupRuntime(t, 2)

	// ACT: correct first answer
	require.NoError(t, r.Answer(1))
	snap := r.Snapshot()
	assert.Equal(t, 1, snap.Score)
	assert.True(t, snap.Answered)
	assert.Equal(t, 0, snap.Index)
	assert.ErrorIs(t, r.Answer(2), quiz.ErrAnswered)

	sched.fireAfter(t)
	snap = r.Snapshot()
	assert.Equal(t, 1, snap.Index)
	assert.False(t, snap.Answered)

	// ACT: wrong second answer
	require.NoError(t, r.Answer(3))
	assert.Equal(t, quiz.StateQuiz, r.State())
	sched.fireAfter(t)

	// ASSERT
	snap = r.Snapshot()
	assert.Equal(t, quiz.StateResult, snap.State)
	assert.Equal(t, 1, snap.Score)
	assert.Len(t, snap.Questions, 2)
	require.Len(t, snap.Answers, 2)
	assert.Equal(t, 1, *snap.Answers[0])
	assert.Equal(t, 3, *snap.Answers[1])

	_, ok, _ := store.Get(quiz.StorageKey)
	assert.False(t, ok)
	assert.True(t, sched.every[0].stopped)
}

func TestRuntime_Finish(t *testing.T) {
	r, store, _ := setupRuntime(t, 5)

	require.NoError(t, r.Finish())

	snap := r.Snapshot()
	assert.Equal(t, quiz.StateResult, snap.State)
	assert.Equal(t, 0, snap.Score)
	require.Len(t, snap.Answers, 5)
	for _, a := range snap.Answers {
		require.NotNil(t, a)
		assert.Equal(t, quiz.Skipped, *a)
	}
	_, ok, _ := store.Get(quiz.StorageKey)
	assert.False(t, ok)

	assert.ErrorIs(t, r.Finish(), quiz.ErrNotRunning)
}

func TestRuntime_FinishKeepsAnswers(t *testing.T) {
	r, _, sched := setupRuntime(t, 3)
	require.NoError(t, r.Answer(1))
	require.NoError(t, r.Finish())

	snap := r.Snapshot()
	assert.Equal(t, 1, snap.Score)
	assert.Equal(t, 1, *snap.Answers[0])
	assert.Equal(t, quiz.Skipped, *snap.Answers[1])
	assert.Equal(t, quiz.Skipped, *snap.Answers[2])

	// The pending advance was scheduled before Finish and must not fire.
	sched.after[0].f()
	assert.Equal(t, quiz.StateResult, r.State())
	assert.Equal(t, 0, r.Snapshot().Index)
}

func TestRuntime_GoTo(t *testing.T) {
	r, _, _ := setupRuntime(t, 3)

	require.NoError(t, r.GoTo(2))
	assert.Equal(t, 2, r.Snapshot().Index)

	require.NoError(t, r.Answer(0))
	assert.ErrorIs(t, r.GoTo(0), quiz.ErrAnswered)
	assert.Equal(t, 2, r.Snapshot().Index)

	assert.True(t, errors.Is(quiz.NewRuntime(storage.NewMemory(), nil).GoTo(0), quiz.ErrNotRunning))
}

func TestRuntime_AnswerOutOfRange(t *testing.T) {
	r, _, _ := setupRuntime(t, 1)
	assert.ErrorIs(t, r.Answer(4), quiz.ErrOutOfRange)
	assert.ErrorIs(t, r.Answer(-1), quiz.ErrOutOfRange)
	assert.False(t, r.Snapshot().Answered)
}

func TestRuntime_Uncertain(t *testing.T) {
	r, _, _ := setupRuntime(t, 3)

	require.NoError(t, r.ToggleUncertain(0))
	require.NoError(t, r.ToggleUncertain(2))
	assert.Equal(t, []int{0, 2}, r.Snapshot().Uncertain)

	require.NoError(t, r.ToggleUncertain(0))
	assert.Equal(t, []int{2}, r.Snapshot().Uncertain)
	assert.ErrorIs(t, r.ToggleUncertain(5), quiz.ErrOutOfRange)

	require.NoError(t, r.Answer(1))
	assert.Equal(t, 1, r.Snapshot().Score)
}

func TestRuntime_Elapsed(t *testing.T) {
	r, _, sched := setupRuntime(t, 2)

	sched.tick(t, 3)
	assert.Equal(t, 3*time.Second, r.Snapshot().Elapsed)

	require.NoError(t, r.Finish())
	sched.tick(t, 2)
	assert.Equal(t, 3*time.Second, r.Snapshot().Elapsed)
}

func TestRuntime_Reset(t *testing.T) {
	r, _, sched := setupRuntime(t, 2)
	require.NoError(t, r.ToggleUncertain(1))
	require.NoError(t, r.Answer(1))
	sched.tick(t, 4)
	require.NoError(t, r.Finish())

	r.Reset()

	snap := r.Snapshot()
	assert.Equal(t, quiz.StateIdle, snap.State)
	assert.Empty(t, snap.Questions)
	assert.Empty(t, snap.Answers)
	assert.Empty(t, snap.Uncertain)
	assert.Zero(t, snap.Score)
	assert.Zero(t, snap.Index)
	assert.Zero(t, snap.Elapsed)
}

func TestStage(t *testing.T) {
	assert.ErrorIs(t, quiz.Stage(storage.NewMemory(), nil), quiz.ErrOutOfRange)
}
