package game

// ChapterID names one of the five chapters of the climb.
type ChapterID string

const (
	ChapterEarth        ChapterID = "earth-chapter"
	ChapterSky          ChapterID = "sky-chapter"
	ChapterStratosphere ChapterID = "stratosphere-chapter"
	ChapterOrbit        ChapterID = "orbit-chapter"
	ChapterMars         ChapterID = "mars-chapter"
)

// ChapterSpan maps an inclusive level range onto a chapter.
type ChapterSpan struct {
	First   int
	Last    int
	Chapter ChapterID
}

// MaxLevel is the last playable level; finishing it completes the game.
const MaxLevel = 100

// ChapterTable covers levels 1..MaxLevel with no gaps and no overlaps.
var ChapterTable = []ChapterSpan{
	{First: 1, Last: 10, Chapter: ChapterEarth},
	{First: 11, Last: 25, Chapter: ChapterSky},
	{First: 26, Last: 45, Chapter: ChapterStratosphere},
	{First: 46, Last: 65, Chapter: ChapterOrbit},
	{First: 66, Last: 100, Chapter: ChapterMars},
}

// ChapterFor returns the chapter containing level. ok is false for levels
// beyond MaxLevel, which means the climb is finished, not that the lookup
// failed.
func ChapterFor(level int) (ChapterID, bool) {
	for _, span := range ChapterTable {
		if level >= span.First && level <= span.Last {
			return span.Chapter, true
		}
	}
	return "", false
}

// SpanFor returns the full span containing level, for title cards and HUDs.
func SpanFor(level int) (ChapterSpan, bool) {
	for _, span := range ChapterTable {
		if level >= span.First && level <= span.Last {
			return span, true
		}
	}
	return ChapterSpan{}, false
}

// IsChapterBoundary reports whether moving from prev to next crosses into a
// new chapter. Both sides must be defined for a boundary to exist.
func IsChapterBoundary(prev, next ChapterID) bool {
	return prev != "" && next != "" && prev != next
}

// Title returns the display name for a chapter.
func (c ChapterID) Title() string {
	switch c {
	case ChapterEarth:
		return "Earth"
	case ChapterSky:
		return "Open Sky"
	case ChapterStratosphere:
		return "Stratosphere"
	case ChapterOrbit:
		return "Low Orbit"
	case ChapterMars:
		return "Mars Approach"
	default:
		return string(c)
	}
}
