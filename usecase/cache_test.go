package usecase

import (
	"testing"
	"time"

	"main/model"
)

func TestListCache(t *testing.T) {
	records := []*model.Experience{{Title: "cached"}}

	t.Run("EmptyCacheMisses", func(t *testing.T) {
		c := newListCache(time.Second)
		if _, ok := c.Get(); ok {
			t.Fatal("expected a miss on a fresh cache")
		}
	})

	t.Run("SetThenGet", func(t *testing.T) {
		c := newListCache(time.Second)
		c.Set(records)
		got, ok := c.Get()
		if !ok || len(got) != 1 || got[0].Title != "cached" {
			t.Fatalf("got %v, %v", got, ok)
		}
	})

	t.Run("ExpiresAfterTTL", func(t *testing.T) {
		c := newListCache(10 * time.Millisecond)
		c.Set(records)
		time.Sleep(20 * time.Millisecond)
		if _, ok := c.Get(); ok {
			t.Fatal("expected a miss after the TTL elapsed")
		}
	})

	t.Run("InvalidateIsImmediate", func(t *testing.T) {
		c := newListCache(time.Hour)
		c.Set(records)
		c.Invalidate()
		if _, ok := c.Get(); ok {
			t.Fatal("expected a miss right after invalidation")
		}
	})
}
