package game

import (
	"sort"
	"time"
)

// PlayerStats is the persisted slice of the player's condition.
type PlayerStats struct {
	Health    float64 `json:"health"`
	MaxHealth float64 `json:"max_health"`
	Fuel      float64 `json:"fuel"`
	MaxFuel   float64 `json:"max_fuel"`
	Score     float64 `json:"score"`
}

// Settings holds player-tunable options.
type Settings struct {
	MusicVolume   float64 `json:"music_volume"`
	SfxVolume     float64 `json:"sfx_volume"`
	ControlScheme string  `json:"control_scheme"`
	Fullscreen    bool    `json:"fullscreen"`
}

// Progress is the persisted player-progress record. It has a single owner
// (the engine); everything else reads it and mutates only through the named
// operations below so the invariants stay in one place.
type Progress struct {
	CurrentChapter  ChapterID   `json:"current_chapter"`
	CurrentLevel    int         `json:"current_level"`
	CompletedLevels []int       `json:"completed_levels,omitempty"`
	HighScore       float64     `json:"high_score"`
	TotalScore      float64     `json:"total_score"`
	TotalTimePlayed float64     `json:"total_time_played_seconds"`
	Stats           PlayerStats `json:"player_stats"`
	Settings        Settings    `json:"settings"`
	LastSaveTime    time.Time   `json:"last_save_time"`
}

// NewProgress returns a fresh record at the start of the climb.
func NewProgress() *Progress {
	return &Progress{
		CurrentChapter: ChapterEarth,
		CurrentLevel:   1,
		Stats: PlayerStats{
			Health:    100,
			MaxHealth: 100,
			Fuel:      100,
			MaxFuel:   100,
		},
		Settings: Settings{
			MusicVolume:   0.7,
			SfxVolume:     0.8,
			ControlScheme: "keyboard",
		},
	}
}

// CompleteLevel records a finished level. The set stays deduplicated and
// sorted ascending.
func (p *Progress) CompleteLevel(level int) {
	for _, done := range p.CompletedLevels {
		if done == level {
			return
		}
	}
	p.CompletedLevels = append(p.CompletedLevels, level)
	sort.Ints(p.CompletedLevels)
}

// AdvanceTo moves the current position. Only the completion path (and its
// rollback when a scene load fails) may call it; everything else goes through
// Reset.
func (p *Progress) AdvanceTo(level int, chapter ChapterID) {
	p.CurrentLevel = level
	if chapter != "" {
		p.CurrentChapter = chapter
	}
}

// AddToTotalScore folds points into the running total.
func (p *Progress) AddToTotalScore(points float64) {
	if points <= 0 {
		return
	}
	p.TotalScore += points
}

// RecordScore records a finished level's score: it joins the total and raises
// the high score when beaten.
func (p *Progress) RecordScore(score float64) {
	p.AddToTotalScore(score)
	if score > p.HighScore {
		p.HighScore = score
	}
}

// ClearLevelScore zeroes the per-level score once it has been folded into
// the totals.
func (p *Progress) ClearLevelScore() {
	p.Stats.Score = 0
}

// AddTimePlayed advances the simulated play clock by seconds.
func (p *Progress) AddTimePlayed(seconds float64) {
	if seconds <= 0 {
		return
	}
	p.TotalTimePlayed += seconds
}

// UpdateSettings replaces the settings, clamping volumes to [0,1].
func (p *Progress) UpdateSettings(s Settings) {
	s.MusicVolume = clampFloat(s.MusicVolume, 0, 1)
	s.SfxVolume = clampFloat(s.SfxVolume, 0, 1)
	if s.ControlScheme == "" {
		s.ControlScheme = p.Settings.ControlScheme
	}
	p.Settings = s
}

// ApplyStats replaces the player stats, enforcing the non-negative and
// current-below-max invariants.
func (p *Progress) ApplyStats(st PlayerStats) {
	st.MaxHealth = maxFloat(st.MaxHealth, 0)
	st.MaxFuel = maxFloat(st.MaxFuel, 0)
	st.Health = clampFloat(st.Health, 0, st.MaxHealth)
	st.Fuel = clampFloat(st.Fuel, 0, st.MaxFuel)
	st.Score = maxFloat(st.Score, 0)
	p.Stats = st
}

// Respawn restores the player for a retry of the current level.
func (p *Progress) Respawn() {
	p.Stats.Health = p.Stats.MaxHealth
	p.Stats.Fuel = p.Stats.MaxFuel
	p.Stats.Score = 0
}

// MarkSaved stamps the record just before it is persisted.
func (p *Progress) MarkSaved(at time.Time) {
	p.LastSaveTime = at
}

// Reset returns the record to the start of the climb. Settings and the
// all-time high score survive; everything run-scoped is discarded.
func (p *Progress) Reset() {
	settings := p.Settings
	highScore := p.HighScore
	*p = *NewProgress()
	p.Settings = settings
	p.HighScore = highScore
}

// Normalize repairs a record restored from disk: completed levels are
// deduplicated and sorted, volumes and stats re-clamped, and an unset
// position falls back to the start.
func (p *Progress) Normalize() {
	if p.CurrentLevel < 1 {
		p.CurrentLevel = 1
	}
	if p.CurrentChapter == "" {
		if chapter, ok := ChapterFor(p.CurrentLevel); ok {
			p.CurrentChapter = chapter
		} else {
			p.CurrentChapter = ChapterMars
		}
	}
	if len(p.CompletedLevels) > 0 {
		seen := make(map[int]bool, len(p.CompletedLevels))
		levels := p.CompletedLevels[:0]
		for _, lvl := range p.CompletedLevels {
			if lvl < 1 || seen[lvl] {
				continue
			}
			seen[lvl] = true
			levels = append(levels, lvl)
		}
		p.CompletedLevels = levels
		sort.Ints(p.CompletedLevels)
	}
	p.UpdateSettings(p.Settings)
	p.ApplyStats(p.Stats)
	if p.TotalTimePlayed < 0 {
		p.TotalTimePlayed = 0
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func maxFloat(v, lo float64) float64 {
	if v < lo {
		return lo
	}
	return v
}
