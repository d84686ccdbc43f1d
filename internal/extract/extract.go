// Package extract recognizes a fixed vocabulary of in-game event phrases
// (death messages) inside raw server log lines.
package extract

import (
	"regexp"
	"strings"
)

// Record is a single extracted event. It carries the full message text
// after the bracketed log prefix, not just the matched phrase, so the
// notification preserves the whole sentence.
type Record struct {
	Text string
}

// vocabulary lists the phrase fragments that identify a death message.
// Matching is case-insensitive and anchored after the log prefix and the
// victim's name, so editing this table never touches control flow.
// Order is irrelevant; the set covers the vanilla Java Edition messages.
var vocabulary = []string{
	"was pricked to death",
	"walked into a cactus",
	"drowned",
	"died from dehydration",
	"experienced kinetic energy",
	"blew up",
	"was blown up",
	"was killed by [Intentional Game Design]",
	"hit the ground too hard",
	"fell from a high place",
	"fell off a ladder",
	"fell off some vines",
	"fell off some weeping vines",
	"fell off some twisting vines",
	"fell off scaffolding",
	"fell while climbing",
	"was doomed to fall",
	"was impaled on a stalagmite",
	"was squashed by a falling anvil",
	"was squashed by a falling block",
	"was skewered by a falling stalactite",
	"went up in flames",
	"walked into fire",
	"burned to death",
	"was burned to a crisp",
	"went off with a bang",
	"tried to swim in lava",
	"was struck by lightning",
	"discovered the floor was lava",
	"walked into the danger zone",
	"was killed by magic",
	"froze to death",
	"was frozen to death",
	"was slain by",
	"was stung to death",
	"was obliterated by a sonically-charged shriek",
	"was smashed by",
	"was shot by",
	"was pummeled by",
	"was fireballed by",
	"was shot by a skull from",
	"starved to death",
	"suffocated in a wall",
	"was squished too much",
	"was squashed by",
	"left the confines of this world",
	"was poked to death by a sweet berry bush",
	"was killed while trying to hurt",
	"was impaled by",
	"fell out of the world",
	"didn't want to live in the same world as",
	"withered away",
	"died",
	"was killed",
	"was roasted in dragon",
	"was sniped by",
	"was spitballed by",
}

// pattern anchors a vocabulary phrase after a bracketed log prefix and the
// victim's name. Server logs use both "[12:00:00] Steve ..." and
// "[12:00:00] [Server thread/INFO]: Steve ..." shapes, so the colon after
// the closing bracket is optional. The prefix submatch marks where the
// message body begins.
var pattern = compilePattern(vocabulary)

func compilePattern(phrases []string) *regexp.Regexp {
	quoted := make([]string, len(phrases))
	for i, p := range phrases {
		quoted[i] = regexp.QuoteMeta(p)
	}
	return regexp.MustCompile(`(?i)(\[[^\]]*\]:? )\w+ (?:` + strings.Join(quoted, "|") + `)`)
}

// Extract scans lines for known event phrases and returns one Record per
// matching line, in input order. The record text is everything after the
// last bracketed prefix, trimmed, so the full sentence survives.
// Exact-duplicate texts within a single call are collapsed (first
// occurrence wins); dedup never spans calls because the tailer only ever
// hands over bytes it has not seen before. Lines matching nothing are
// silently skipped.
func Extract(lines []string) []Record {
	var records []Record
	seen := make(map[string]bool)

	for _, line := range lines {
		m := pattern.FindStringSubmatchIndex(line)
		if m == nil {
			continue
		}
		// m[3] is the end of the bracketed prefix submatch.
		text := strings.TrimSpace(line[m[3]:])
		if text == "" || seen[text] {
			continue
		}
		seen[text] = true
		records = append(records, Record{Text: text})
	}
	return records
}
