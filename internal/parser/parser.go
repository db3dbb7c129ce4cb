// Package parser maps free-typed console input onto engine commands. Typos
// are tolerated: unmatched verbs fall back to a levenshtein comparison
// against the registered commands and their aliases.
package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Kind is the command a line of input resolved to.
type Kind int

const (
	KindUnknown Kind = iota
	KindHelp
	KindPause
	KindResume
	KindRestart
	KindSave
	KindStats
	KindVolume
	KindLevel
	KindReset
	KindQuit
)

// Intent is the parse result handed to the front end.
type Intent struct {
	Raw        string
	Normalised string
	Kind       Kind
	Verb       string
	Args       []string
	Confidence float64
	// Clarify is a prompt for the player when the line could not be
	// resolved with enough confidence.
	Clarify string
}

type command struct {
	canonical string
	kind      Kind
	aliases   []string
	usage     string
	help      string
}

var commands = []command{
	{"help", KindHelp, []string{"commands", "?"}, "help", "list console commands"},
	{"pause", KindPause, []string{"freeze"}, "pause", "pause the climb"},
	{"resume", KindResume, []string{"unpause", "continue"}, "resume", "resume the climb"},
	{"restart", KindRestart, []string{"retry", "again"}, "restart", "restart the current level"},
	{"save", KindSave, nil, "save", "persist progress now"},
	{"stats", KindStats, []string{"progress", "status"}, "stats", "show progress and scores"},
	{"volume", KindVolume, []string{"vol"}, "volume <music|sfx> <0..1>", "set a mixer volume"},
	{"level", KindLevel, []string{"goto", "jump"}, "level <n>", "jump to a level"},
	{"reset", KindReset, []string{"wipe"}, "reset", "discard run progress"},
	{"quit", KindQuit, []string{"exit"}, "quit", "leave the game"},
}

const fuzzyFloor = 0.6

// Parse resolves one console line.
func Parse(raw string) Intent {
	intent := Intent{Raw: raw, Normalised: normalise(raw), Kind: KindUnknown}
	if intent.Normalised == "" {
		intent.Clarify = "Type a command; 'help' lists them."
		return intent
	}
	tokens := strings.Fields(intent.Normalised)
	verb, args := tokens[0], tokens[1:]

	best, score := matchVerb(verb)
	if best == nil || score < fuzzyFloor {
		intent.Clarify = fmt.Sprintf("Unknown command %q; 'help' lists them.", verb)
		return intent
	}

	intent.Kind = best.kind
	intent.Verb = best.canonical
	intent.Args = args
	intent.Confidence = score
	return intent
}

// matchVerb scores verb against every canonical name and alias: exact, then
// unambiguous prefix, then edit distance.
func matchVerb(verb string) (*command, float64) {
	var best *command
	bestScore := 0.0
	for i := range commands {
		cmd := &commands[i]
		for _, name := range append([]string{cmd.canonical}, cmd.aliases...) {
			score := scoreName(verb, name, name == cmd.canonical)
			if score > bestScore {
				best = cmd
				bestScore = score
			}
		}
	}
	return best, bestScore
}

func scoreName(verb, name string, canonical bool) float64 {
	if verb == name {
		if canonical {
			return 1.0
		}
		return 0.97
	}
	if len(verb) >= 2 && strings.HasPrefix(name, verb) {
		return 0.9
	}
	if len(verb) < 3 {
		return 0
	}
	dist := levenshtein.ComputeDistance(verb, name)
	longest := len(name)
	if len(verb) > longest {
		longest = len(verb)
	}
	return 1.0 - float64(dist)/float64(longest)
}

// VolumeArgs interprets a volume intent's arguments.
func VolumeArgs(in Intent) (channel string, value float64, err error) {
	if len(in.Args) != 2 {
		return "", 0, fmt.Errorf("usage: volume <music|sfx> <0..1>")
	}
	channel = in.Args[0]
	if channel != "music" && channel != "sfx" {
		return "", 0, fmt.Errorf("unknown channel %q; use music or sfx", channel)
	}
	value, convErr := strconv.ParseFloat(in.Args[1], 64)
	if convErr != nil || value < 0 || value > 1 {
		return "", 0, fmt.Errorf("volume must be a number in [0,1], got %q", in.Args[1])
	}
	return channel, value, nil
}

// LevelArg interprets a level-jump intent's argument.
func LevelArg(in Intent) (int, error) {
	if len(in.Args) != 1 {
		return 0, fmt.Errorf("usage: level <n>")
	}
	n, err := strconv.Atoi(in.Args[0])
	if err != nil || n < 1 {
		return 0, fmt.Errorf("level must be a positive number, got %q", in.Args[0])
	}
	return n, nil
}

// HelpLines returns one usage line per command for the console.
func HelpLines() []string {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, fmt.Sprintf("%-28s %s", cmd.usage, cmd.help))
	}
	return lines
}

func normalise(raw string) string {
	raw = strings.TrimSpace(strings.ToLower(raw))
	var b strings.Builder
	lastSpace := true
	for _, r := range raw {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '.' || r == '?':
			b.WriteRune(r)
			lastSpace = false
		case r == ' ' || r == '\t' || r == '-' || r == '_':
			if !lastSpace {
				b.WriteByte(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}
