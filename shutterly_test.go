package shutterly_test

import (
	"context"
	"testing"

	"github.com/joestump/shutterly"
)

func memoryConfig(t *testing.T) *shutterly.Config {
	t.Helper()
	cfg := &shutterly.Config{}
	cfg.DB.Driver = "sqlite3"
	// Shared cache keeps the in-memory database alive across pool
	// connections; the test name keeps tests isolated from each other.
	cfg.DB.DSN = "file:" + t.Name() + "?mode=memory&cache=shared&_busy_timeout=5000"
	cfg.Theme.Default = shutterly.ThemeLight
	return cfg
}

func TestOpenWith(t *testing.T) {
	ctx := context.Background()

	a, err := shutterly.OpenWith(ctx, memoryConfig(t))
	if err != nil {
		t.Fatalf("OpenWith: %v", err)
	}

	if _, err := a.Login(ctx, "Ann", "ann@x.io", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
	p, err := a.Upload(ctx, shutterly.PhotoDraft{
		Title:    "Dawn",
		Category: shutterly.CategoryNature,
		Image:    "data:image/jpeg;base64,ZGF3bg==",
	})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	got := shutterly.Search(a.Feed(), "dawn")
	if len(got) != 1 || got[0].ID != p.ID {
		t.Fatalf("search over the feed = %+v", got)
	}

	// Reopening the same database lands in the same state; migrations are
	// idempotent across opens.
	b, err := shutterly.OpenWith(ctx, memoryConfig(t))
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	if feed := b.Feed(); len(feed) != 1 || feed[0].Title != "Dawn" {
		t.Errorf("state lost across reopen: %+v", feed)
	}
}

func TestOpenWithRejectsUnknownDriver(t *testing.T) {
	cfg := memoryConfig(t)
	cfg.DB.Driver = "oracle"
	if _, err := shutterly.OpenWith(context.Background(), cfg); err == nil {
		t.Fatal("expected an error for an unsupported driver")
	}
}

func TestOpenReadsEnvironment(t *testing.T) {
	t.Setenv("SHUTTERLY_DB_DRIVER", "sqlite3")
	t.Setenv("SHUTTERLY_DB_DSN", "file:"+t.Name()+"?mode=memory&cache=shared&_busy_timeout=5000")

	a, err := shutterly.Open(context.Background())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, err := a.Login(context.Background(), "Ann", "ann@x.io", ""); err != nil {
		t.Fatalf("login: %v", err)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := shutterly.LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.DB.Driver != "sqlite3" {
		t.Errorf("default driver = %q, want sqlite3", cfg.DB.Driver)
	}
	if cfg.DB.DSN != "shutterly.db" {
		t.Errorf("default DSN = %q, want shutterly.db", cfg.DB.DSN)
	}
	if cfg.Theme.Default != shutterly.ThemeLight {
		t.Errorf("default theme = %q, want light", cfg.Theme.Default)
	}
}
