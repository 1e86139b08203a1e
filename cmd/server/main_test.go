package main

import (
	"context"
	"testing"

	"github.com/soaringjerry/Quiz/internal/api"
	"github.com/soaringjerry/Quiz/internal/config"
	"github.com/soaringjerry/Quiz/internal/models"
)

func TestOpenStoreBackends(t *testing.T) {
	cases := []struct {
		name string
		cfg  config.Config
	}{
		{"memory", config.Config{Store: config.Store{Backend: config.BackendMemory}}},
		{"sqlite", config.Config{Store: config.Store{Backend: config.BackendSQLite, SQLiteDSN: "file:open_store_test?mode=memory&cache=shared"}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			store, closeStore, err := openStore(context.Background(), &c.cfg, api.DefaultQuestions())
			if err != nil {
				t.Fatalf("openStore: %v", err)
			}
			defer closeStore()
			if got := len(store.ListQuestions()); got != 3 {
				t.Fatalf("questions = %d, want 3", got)
			}
			if err := store.UpsertScore("u1", models.ScoreRecord{Score: 1, Total: 1}); err != nil {
				t.Fatalf("upsert: %v", err)
			}
			rec, err := store.GetScore("u1")
			if err != nil || rec == nil || rec.Total != 1 {
				t.Fatalf("GetScore = %+v, %v", rec, err)
			}
		})
	}
}
