package cachekeys

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/models"
	"github.com/pribylovaa/go-news-aggregator/read-api/internal/tree"
	"github.com/stretchr/testify/require"
)

func rec(t models.ResourceType, id int64) models.Record {
	return models.Record{Type: t, ID: id, Fields: []models.Field{{Name: "id", Value: id}}}
}

func TestForRecords_CollectionKeyThenRecordKeys(t *testing.T) {
	t.Parallel()

	got := ForRecords([]models.Record{
		rec(models.Articles, 3),
		rec(models.Articles, 1),
		rec(models.Articles, 3),
	})

	want := []string{"articles", "articles/3", "articles/1"}
	if diff := cmp.Diff(want, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestForRecords_Deterministic(t *testing.T) {
	t.Parallel()

	in := []models.Record{rec(models.Tags, 5), rec(models.Tags, 2), rec(models.Tags, 9)}
	require.Equal(t, ForRecords(in).Keys(), ForRecords(in).Keys())
}

func TestForRecords_Empty(t *testing.T) {
	t.Parallel()

	require.Equal(t, 0, ForRecords(nil).Len())
}

// TestForForest_ThreeLevelsFiveNodes — дерево глубиной 3 из 5 узлов:
// 5 ключей записей + 1 коллекционный, в прямом порядке обхода.
func TestForForest_ThreeLevelsFiveNodes(t *testing.T) {
	t.Parallel()

	parents := map[int64]int64{10: 0, 11: 10, 12: 11, 13: 10, 14: 0}
	records := []models.Record{
		rec(models.Comments, 10),
		rec(models.Comments, 11),
		rec(models.Comments, 12),
		rec(models.Comments, 13),
		rec(models.Comments, 14),
	}
	f := tree.Build(records,
		func(r models.Record) int64 { return r.ID },
		func(r models.Record) (int64, bool) { p := parents[r.ID]; return p, p != 0 },
	)

	got := ForForest(models.Comments, f)

	want := []string{"comments", "comments/10", "comments/11", "comments/12", "comments/13", "comments/14"}
	if diff := cmp.Diff(want, got.Keys()); diff != "" {
		t.Fatalf("keys mismatch (-want +got):\n%s", diff)
	}
}

func TestSet_AddKeepsFirstPosition(t *testing.T) {
	t.Parallel()

	var s Set
	s.Add("x")
	s.Add("y")
	s.Add("x")

	require.Equal(t, []string{"x", "y"}, s.Keys())
	require.Equal(t, 2, s.Len())
}

func TestHeaders_Apply(t *testing.T) {
	t.Parallel()

	h := Headers{MaxAge: 10 * time.Minute, StaleWhileRevalidate: 30 * time.Second, StaleIfError: 24 * time.Hour}
	keys := ForRecords([]models.Record{rec(models.Tags, 1), rec(models.Tags, 2)})

	w := httptest.NewRecorder()
	h.Apply(w, keys, true)
	require.Equal(t, "public, no-cache", w.Header().Get("Cache-Control"))
	require.Equal(t, "max-age=600, stale-while-revalidate=30, stale-if-error=86400", w.Header().Get("Surrogate-Control"))
	require.Equal(t, "600", w.Header().Get("X-Accel-Expires"))
	require.Equal(t, "tags tags/1 tags/2", w.Header().Get("Surrogate-Key"))

	w = httptest.NewRecorder()
	h.Apply(w, keys, false)
	require.Equal(t, "private, no-store", w.Header().Get("Cache-Control"))
	require.Empty(t, w.Header().Get("Surrogate-Key"))
}
