package biz

import (
	"context"
	"sync"
	"sync/atomic"

	providertypes "github.com/lk2023060901/ai-learning-backend/internal/ai/provider/types"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
)

type fakeProvider struct {
	text    string
	err     error
	noReply bool
	calls   atomic.Int32
	lastReq providertypes.ChatCompletionRequest
	mu      sync.Mutex
	gate    chan struct{}
}

func (p *fakeProvider) CreateChatCompletion(ctx context.Context, req providertypes.ChatCompletionRequest) (*providertypes.ChatCompletionResponse, error) {
	p.calls.Add(1)
	p.mu.Lock()
	p.lastReq = req
	p.mu.Unlock()

	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if p.err != nil {
		return nil, p.err
	}
	if p.noReply {
		return &providertypes.ChatCompletionResponse{}, nil
	}
	return &providertypes.ChatCompletionResponse{
		Choices: []providertypes.Choice{{Message: providertypes.Message{Role: providertypes.RoleAssistant, Content: p.text}}},
	}, nil
}

func (p *fakeProvider) Name() string { return "fake" }

func (p *fakeProvider) Close() error { return nil }

type memTopicRepo struct {
	mu        sync.Mutex
	rows      map[string]*types.Topic
	findErr   error
	upsertErr error
	upserts   int
}

func newMemTopicRepo() *memTopicRepo {
	return &memTopicRepo{rows: make(map[string]*types.Topic)}
}

func (r *memTopicRepo) FindByKey(_ context.Context, moduleID, title string) (*types.Topic, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.findErr != nil {
		return nil, r.findErr
	}
	row, ok := r.rows[flightKey(moduleID, title)]
	if !ok {
		return nil, nil
	}
	cp := *row
	return &cp, nil
}

func (r *memTopicRepo) Upsert(_ context.Context, topic *types.Topic) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.upserts++
	if r.upsertErr != nil {
		return false, r.upsertErr
	}
	key := flightKey(topic.ModuleID, topic.Title)
	if existing, ok := r.rows[key]; ok && existing.HasContent() {
		return false, nil
	}
	cp := *topic
	r.rows[key] = &cp
	return true, nil
}

func (r *memTopicRepo) put(topic *types.Topic) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[flightKey(topic.ModuleID, topic.Title)] = topic
}
