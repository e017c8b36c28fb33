package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/simos/service/dao"
)

type record struct {
	ID    string
	Group string
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string, record](func(r *record) string { return r.ID })

	assert.ErrorIs(t, s.Save(ctx, nil), dao.ErrNilEntity)
	for _, id := range []string{"c", "a", "b"} {
		assert.NoError(t, s.Save(ctx, &record{ID: id}))
	}
	assert.NoError(t, s.Save(ctx, &record{ID: "a", Group: "x"}))
	assert.Equal(t, 3, s.Len())

	loaded, err := s.Load(ctx, "a")
	assert.NoError(t, err)
	assert.Equal(t, "x", loaded.Group)

	_, err = s.Load(ctx, "z")
	assert.ErrorIs(t, err, dao.ErrNotFound)

	list, _ := s.List(ctx)
	assert.Equal(t, []string{"c", "a", "b"}, ids(list))

	assert.NoError(t, s.Delete(ctx, "a"))
	assert.ErrorIs(t, s.Delete(ctx, "a"), dao.ErrNotFound)
	list, _ = s.List(ctx)
	assert.Equal(t, []string{"c", "b"}, ids(list))
}

func TestMemoryStoreFilter(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore[string, record](func(r *record) string { return r.ID }).
		WithFilter(func(r *record, parameters []*dao.Parameter) bool {
			for _, p := range parameters {
				if p.Name == "Group" && p.Value != r.Group {
					return false
				}
			}
			return true
		})
	_ = s.Save(ctx, &record{ID: "1", Group: "x"})
	_ = s.Save(ctx, &record{ID: "2", Group: "y"})
	_ = s.Save(ctx, &record{ID: "3", Group: "x"})

	list, _ := s.List(ctx, dao.NewParameter("Group", "x"))
	assert.Equal(t, []string{"1", "3"}, ids(list))
}

func ids(records []*record) []string {
	var out []string
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}
