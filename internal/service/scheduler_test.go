package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"triviabot/internal/domain/entities"
)

type fakeScheduleStore struct {
	mu          sync.Mutex
	subscribed  map[int64]bool
	subscribers []entities.User
}

func (s *fakeScheduleStore) SetDailyQuiz(_ context.Context, userID int64, enabled bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.subscribed == nil {
		s.subscribed = map[int64]bool{}
	}
	s.subscribed[userID] = enabled
	return nil
}

func (s *fakeScheduleStore) DailySubscribers(_ context.Context) ([]entities.User, error) {
	return s.subscribers, nil
}

type fakeNotifier struct {
	mu    sync.Mutex
	sent  []int64
	fails map[int64]bool
}

func (n *fakeNotifier) SendQuiz(chatID int64, _ *entities.QuestionView) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fails[chatID] {
		return errors.New("chat unreachable")
	}
	n.sent = append(n.sent, chatID)
	return nil
}

func TestSchedulerSubscribe(t *testing.T) {
	store := &fakeScheduleStore{}
	sched := NewScheduler(nil, store, time.Minute, 9, zap.NewNop())

	if err := sched.Subscribe(context.Background(), 1, true); err != nil {
		t.Fatalf("subscribe: %v", err)
	}
	if !store.subscribed[1] {
		t.Fatalf("expected user 1 subscribed")
	}

	if err := sched.Subscribe(context.Background(), 1, false); err != nil {
		t.Fatalf("unsubscribe: %v", err)
	}
	if store.subscribed[1] {
		t.Fatalf("expected user 1 unsubscribed")
	}
}

func TestSendDailyQuizzesSkipsFailures(t *testing.T) {
	ctx := context.Background()
	userStore := newFakeStore()
	ensureUser(t, userStore, 1)
	ensureUser(t, userStore, 2)
	ensureUser(t, userStore, 3)
	engine := newTestEngine(t, &fakeProvider{q: parisQuestion()}, userStore)

	schedStore := &fakeScheduleStore{
		subscribers: []entities.User{
			{ID: 1, ChatID: 101},
			{ID: 2, ChatID: 102},
			{ID: 3, ChatID: 103},
		},
	}
	notifier := &fakeNotifier{fails: map[int64]bool{102: true}}

	sched := NewScheduler(engine, schedStore, time.Minute, 9, zap.NewNop())
	sched.SetNotifier(notifier)

	if err := sched.sendDailyQuizzes(ctx); err != nil {
		t.Fatalf("send daily quizzes: %v", err)
	}

	// A failed send skips the user but not the batch.
	if len(notifier.sent) != 2 {
		t.Fatalf("expected 2 deliveries, got %v", notifier.sent)
	}
	for _, chat := range notifier.sent {
		if chat != 101 && chat != 103 {
			t.Fatalf("unexpected chat %d", chat)
		}
	}
}

func TestSendDailyQuizzesRequiresNotifier(t *testing.T) {
	sched := NewScheduler(nil, &fakeScheduleStore{}, time.Minute, 9, zap.NewNop())
	if err := sched.sendDailyQuizzes(context.Background()); err == nil {
		t.Fatalf("expected error without notifier")
	}
}
