package service

import (
	"careerai/internal/cache"
	"careerai/internal/events"
	"careerai/internal/metrics"
	"careerai/internal/model"
	"careerai/internal/repository"
	"careerai/internal/store"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type fakeModel struct {
	mu       sync.Mutex
	reply    string
	err      error
	block    bool
	calls    int
	lastUser string
	lastSys  string
}

func (f *fakeModel) Complete(ctx context.Context, system, user string) (string, error) {
	f.mu.Lock()
	f.calls++
	f.lastSys = system
	f.lastUser = user
	block, reply, err := f.block, f.reply, f.err
	f.mu.Unlock()

	if block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return reply, err
}

func (f *fakeModel) Name() string { return "fake:test" }

type recordedMessage struct {
	UserID  string
	Type    string
	Payload interface{}
}

type recordingBroadcaster struct {
	mu           sync.Mutex
	messages     []recordedMessage
	disconnected []string
}

func (b *recordingBroadcaster) BroadcastToUser(userID, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.messages = append(b.messages, recordedMessage{UserID: userID, Type: msgType, Payload: payload})
}

func (b *recordingBroadcaster) DisconnectUser(userID string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disconnected = append(b.disconnected, userID)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.SubmissionEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.SubmissionEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) statuses() []events.Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]events.Status, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Status)
	}
	return out
}

type memoryResultRepo struct {
	mu      sync.Mutex
	records []*model.ResultRecord
}

func (r *memoryResultRepo) Archive(_ context.Context, record *model.ResultRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, record)
	return nil
}

func (r *memoryResultRepo) ListByUser(_ context.Context, userID string, limit int64) ([]*model.ResultRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*model.ResultRecord{}
	for i := len(r.records) - 1; i >= 0; i-- {
		if r.records[i].UserID == userID {
			out = append(out, r.records[i])
		}
		if limit > 0 && int64(len(out)) == limit {
			break
		}
	}
	return out, nil
}

type memoryUserRepo struct {
	mu    sync.Mutex
	users map[string]*model.User
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: map[string]*model.User{}}
}

func (r *memoryUserRepo) EnsureIndexes(context.Context) error { return nil }

func (r *memoryUserRepo) Create(_ context.Context, user *model.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.Email]; ok {
		return repository.ErrEmailTaken
	}
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	r.users[user.Email] = user
	return nil
}

func (r *memoryUserRepo) GetByID(_ context.Context, id string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (r *memoryUserRepo) GetByEmail(_ context.Context, email string) (*model.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.users[email], nil
}

type harness struct {
	model       *fakeModel
	redis       *redis.Client
	wizards     cache.WizardCache
	results     *store.ResultStore
	checklist   *store.ChecklistStore
	history     *memoryResultRepo
	publisher   *recordingPublisher
	broadcaster *recordingBroadcaster
	summarizer  *SummarizeService
	wizard      *WizardService
	progress    *ProgressService
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	logger := zap.NewNop()
	backend := store.NewMemoryBackend()
	h := &harness{
		model:       &fakeModel{},
		redis:       client,
		wizards:     cache.NewWizardCache(client),
		results:     store.NewResultStore(backend),
		checklist:   store.NewChecklistStore(backend),
		history:     &memoryResultRepo{},
		publisher:   &recordingPublisher{},
		broadcaster: &recordingBroadcaster{},
	}
	mt := metrics.New()
	h.summarizer = NewSummarizeService(h.model, time.Second, mt, logger)
	h.wizard = NewWizardService(h.wizards, h.results, h.checklist, h.history, h.summarizer, h.publisher, mt, logger)
	h.wizard.SetBroadcaster(h.broadcaster)
	h.progress = NewProgressService(h.results, h.checklist, h.history, logger)
	return h
}
