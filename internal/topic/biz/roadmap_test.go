package biz

import (
	"context"
	"errors"
	"testing"

	apperrors "github.com/lk2023060901/ai-learning-backend/internal/pkg/errors"
	"github.com/lk2023060901/ai-learning-backend/internal/pkg/logger"
	"github.com/lk2023060901/ai-learning-backend/internal/topic/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRoadmapRepo struct {
	roadmap *types.Roadmap
	err     error
}

func (r *stubRoadmapRepo) LatestByUser(context.Context, string) (*types.Roadmap, error) {
	return r.roadmap, r.err
}

type stubKV struct {
	values map[string]string
	err    error
}

func (s *stubKV) Get(_ context.Context, key string) ([]byte, bool, error) {
	if s.err != nil {
		return nil, false, s.err
	}
	v, ok := s.values[key]
	return []byte(v), ok, nil
}

func TestRoadmapLatest(t *testing.T) {
	relational := &types.Roadmap{
		ID:     "r1",
		UserID: "u1",
		Title:  "Go",
		Modules: []*types.Module{
			{ID: "m1", RoadmapID: "r1", Title: "Basics", Order: 1, Topics: []*types.Topic{}},
		},
	}

	tests := []struct {
		name    string
		repo    *stubRoadmapRepo
		kv      KVStore
		want    string
		wantErr bool
	}{
		{
			name: "relational roadmap wins",
			repo: &stubRoadmapRepo{roadmap: relational},
			kv:   &stubKV{values: map[string]string{"roadmap:u1": `{"title":"kv"}`}},
			want: `"title":"Go"`,
		},
		{
			name: "kv fallback",
			repo: &stubRoadmapRepo{},
			kv:   &stubKV{values: map[string]string{"roadmap:u1": `{"title":"kv"}`}},
			want: `{"title":"kv"}`,
		},
		{name: "nothing anywhere", repo: &stubRoadmapRepo{}, kv: &stubKV{values: map[string]string{}}},
		{name: "no kv configured", repo: &stubRoadmapRepo{}},
		{name: "malformed kv value", repo: &stubRoadmapRepo{}, kv: &stubKV{values: map[string]string{"roadmap:u1": `{oops`}}},
		{name: "db error", repo: &stubRoadmapRepo{err: errors.New("db down")}, wantErr: true},
		{name: "kv error", repo: &stubRoadmapRepo{}, kv: &stubKV{err: errors.New("redis down")}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := NewRoadmapUseCase(tt.repo, tt.kv, logger.NewNop())

			got, err := uc.Latest(context.Background(), "u1")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
				return
			}
			require.NoError(t, err)
			if tt.want == "" {
				assert.Nil(t, got)
				return
			}
			assert.Contains(t, string(got), tt.want)
		})
	}
}

func TestRoadmapLatestRequiresUser(t *testing.T) {
	uc := NewRoadmapUseCase(&stubRoadmapRepo{}, nil, logger.NewNop())
	_, err := uc.Latest(context.Background(), "")
	assert.True(t, apperrors.IsKind(err, apperrors.KindAuth))
}
