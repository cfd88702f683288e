package numbering

import (
	"strconv"
	"strings"
)

// Counters tracks the live state of every numbered list across one pass
// over the document body. It is not safe for concurrent use; a pass owns
// its Counters instance.
type Counters struct {
	defs   map[int]Definition
	byNum  map[int][]int
	global []int
}

// NewCounters builds counter state over parsed definitions. A nil map is
// valid and makes every list fall back to dot-joined decimals.
func NewCounters(defs map[int]Definition) *Counters {
	if defs == nil {
		defs = make(map[int]Definition)
	}
	return &Counters{
		defs:   defs,
		byNum:  make(map[int][]int),
		global: make([]int, maxLevels),
	}
}

// Next advances the counter of the given list at the given depth and
// returns the formatted section number. Advancing a level resets every
// deeper level to its start value, so a later visit at that depth counts
// from the beginning again.
func (c *Counters) Next(numID string, ilvl int) string {
	id, err := strconv.Atoi(numID)
	if err != nil || ilvl < 0 || ilvl >= maxLevels {
		return ""
	}
	def, known := c.defs[id]

	state, ok := c.byNum[id]
	if !ok {
		state = make([]int, maxLevels)
		for i := 0; i < maxLevels; i++ {
			state[i] = def.Level(i).Start - 1
		}
		c.byNum[id] = state
	}

	state[ilvl]++
	for i := ilvl + 1; i < maxLevels; i++ {
		state[i] = def.Level(i).Start - 1
	}

	if !known {
		return dotJoined(state, ilvl)
	}

	lvl := def.Level(ilvl)
	if lvl.Format == FormatBullet {
		return ""
	}
	if !strings.Contains(lvl.Template, "%") {
		return dotJoined(state, ilvl)
	}

	// Deepest placeholder first, so %10 is not consumed by %1.
	number := lvl.Template
	for i := ilvl; i >= 0; i-- {
		placeholder := "%" + strconv.Itoa(i+1)
		rendered := FormatLevel(def.Level(i).Format, state[i])
		number = strings.ReplaceAll(number, placeholder, rendered)
	}
	number = strings.TrimSpace(number)
	number = strings.TrimRight(number, ".)")
	return number
}

// NextGlobal advances the document-wide synthetic counter used for
// headings that carry no list reference of their own. Levels are 1-based
// and the result is always dot-joined decimal.
func (c *Counters) NextGlobal(level int) string {
	if level < 1 || level > maxLevels {
		return ""
	}
	idx := level - 1
	c.global[idx]++
	for i := idx + 1; i < maxLevels; i++ {
		c.global[i] = 0
	}
	parts := make([]string, 0, level)
	for i := 0; i <= idx; i++ {
		if c.global[i] == 0 {
			c.global[i] = 1
		}
		parts = append(parts, strconv.Itoa(c.global[i]))
	}
	return strings.Join(parts, ".")
}

// SyncGlobal overwrites the synthetic counter with an explicit number so
// that list-driven and synthetic headings interleave without jumping back.
func (c *Counters) SyncGlobal(number string) {
	parts := strings.Split(number, ".")
	idx := 0
	for _, part := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(part))
		if err != nil || idx >= maxLevels {
			return
		}
		c.global[idx] = v
		idx++
	}
	for i := idx; i < maxLevels; i++ {
		c.global[i] = 0
	}
}

func dotJoined(state []int, ilvl int) string {
	parts := make([]string, 0, ilvl+1)
	for i := 0; i <= ilvl; i++ {
		v := state[i]
		if v < 1 {
			v = 1
		}
		parts = append(parts, strconv.Itoa(v))
	}
	return strings.Join(parts, ".")
}
