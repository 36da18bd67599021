package parser

import (
	"regexp"
	"strings"
)

// Block is a contiguous run of statement lines belonging to one candidate
// transaction: the anchor line that matched the provider's date pattern
// plus every following line up to the next anchor.
type Block struct {
	Anchor string
	Lines  []string
}

type segmentState int

const (
	scanning segmentState = iota
	inBlock
)

// Segment walks the lines once and cuts them into blocks at every anchor
// match. Lines before the first anchor are pre-anchor noise and dropped;
// blank lines are ignored rather than treated as boundaries. Block length
// is whatever the forward scan finds, not a fixed offset.
func Segment(lines []string, anchor *regexp.Regexp) []Block {
	var blocks []Block
	var current Block
	state := scanning

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		if anchor.MatchString(line) {
			if state == inBlock {
				blocks = append(blocks, current)
			}
			current = Block{Anchor: line}
			state = inBlock
			continue
		}

		if state == inBlock {
			current.Lines = append(current.Lines, line)
		}
	}

	if state == inBlock {
		blocks = append(blocks, current)
	}
	return blocks
}
