package save

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/redshift-arcade/ascent/internal/game"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "ascent-save.json"))
}

func TestLoadMissingFileStartsFresh(t *testing.T) {
	store := testStore(t)
	p, err := store.Load()
	if err != nil {
		t.Fatalf("missing save file must not be an error: %v", err)
	}
	if p != nil {
		t.Fatalf("missing save file should yield nil progress")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	store := testStore(t)

	p := game.NewProgress()
	p.AdvanceTo(12, game.ChapterSky)
	for _, lvl := range []int{3, 1, 2} {
		p.CompleteLevel(lvl)
	}
	p.RecordScore(420)
	p.AddTimePlayed(90.5)
	p.UpdateSettings(game.Settings{MusicVolume: 0.3, SfxVolume: 0.9, ControlScheme: "gamepad", Fullscreen: true})
	p.MarkSaved(time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC))

	if err := store.Save(p); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got == nil {
		t.Fatalf("expected saved progress back")
	}

	if got.CurrentChapter != game.ChapterSky || got.CurrentLevel != 12 {
		t.Fatalf("position did not round-trip: %s level %d", got.CurrentChapter, got.CurrentLevel)
	}
	want := []int{1, 2, 3}
	if len(got.CompletedLevels) != len(want) {
		t.Fatalf("completed levels did not round-trip sorted: %v", got.CompletedLevels)
	}
	for i, lvl := range want {
		if got.CompletedLevels[i] != lvl {
			t.Fatalf("completed levels did not round-trip sorted: %v", got.CompletedLevels)
		}
	}
	if got.HighScore != 420 || got.TotalScore != 420 || got.TotalTimePlayed != 90.5 {
		t.Fatalf("scores did not round-trip: %+v", got)
	}
	if got.Settings != p.Settings {
		t.Fatalf("settings did not round-trip: %+v", got.Settings)
	}
	if got.Stats != p.Stats {
		t.Fatalf("stats did not round-trip: %+v", got.Stats)
	}
	if !got.LastSaveTime.Equal(p.LastSaveTime) {
		t.Fatalf("save stamp did not round-trip: %v", got.LastSaveTime)
	}
}

func TestLoadUnsortedCompletedLevelsComesBackSorted(t *testing.T) {
	store := testStore(t)
	raw := `{
	  "format_version": 1,
	  "progress": {
	    "current_chapter": "earth-chapter",
	    "current_level": 4,
	    "completed_levels": [3, 1, 2]
	  }
	}`
	if err := os.WriteFile(store.Path(), []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p, err := store.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	want := []int{1, 2, 3}
	for i, lvl := range want {
		if p.CompletedLevels[i] != lvl {
			t.Fatalf("expected %v, got %v", want, p.CompletedLevels)
		}
	}
}

func TestLoadIgnoresUnknownAndDefaultsMissingFields(t *testing.T) {
	store := testStore(t)
	raw := `{
	  "format_version": 7,
	  "some_future_field": {"nested": true},
	  "progress": {
	    "current_level": 2,
	    "shiny_new_stat": 9
	  }
	}`
	if err := os.WriteFile(store.Path(), []byte(raw), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	p, err := store.Load()
	if err != nil {
		t.Fatalf("unknown fields must be ignored: %v", err)
	}
	if p.CurrentLevel != 2 {
		t.Fatalf("present fields should load, got level %d", p.CurrentLevel)
	}
	if p.CurrentChapter != game.ChapterEarth {
		t.Fatalf("missing chapter should default from the level, got %s", p.CurrentChapter)
	}
	if p.Stats.MaxHealth != 100 || p.Settings.MusicVolume != 0.7 {
		t.Fatalf("missing fields should take fresh defaults: %+v %+v", p.Stats, p.Settings)
	}
}

func TestLoadCorruptFileFails(t *testing.T) {
	store := testStore(t)
	if err := os.WriteFile(store.Path(), []byte("{not json"), 0o600); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	if _, err := store.Load(); err == nil {
		t.Fatalf("corrupt save should surface an error for the caller to fall back on")
	}
}
