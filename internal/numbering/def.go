package numbering

import (
	"strconv"

	"github.com/beevik/etree"
)

// maxLevels caps the per-list counter depth. OOXML defines levels 0-8.
const maxLevels = 10

// Level describes one depth of a multi-level list template.
type Level struct {
	ILvl     int
	Start    int
	Format   string // decimal, upperRoman, lowerLetter, bullet, ...
	Template string // text template with positional %N placeholders
	Restart  int    // restart-at level, -1 when unset
}

// DefaultLevel returns the level used when a definition does not cover a
// requested depth: decimal with no template.
func DefaultLevel(ilvl int) Level {
	return Level{ILvl: ilvl, Start: 1, Format: FormatDecimal, Restart: -1}
}

// Definition binds a concrete numbering instance to its abstract level
// table. Definitions are immutable after parse.
type Definition struct {
	NumID      int
	AbstractID int
	Levels     map[int]Level
}

// Level returns the record for the given depth, defaulting when absent.
func (d Definition) Level(ilvl int) Level {
	if lvl, ok := d.Levels[ilvl]; ok {
		return lvl
	}
	return DefaultLevel(ilvl)
}

// ParseDefinitions reads the numbering part into a numId-keyed definition
// map. A concrete id referencing an unknown abstract id gets an empty level
// table, which makes every level fall back to decimal.
func ParseDefinitions(numberingXML []byte) map[int]Definition {
	defs := make(map[int]Definition)
	if len(numberingXML) == 0 {
		return defs
	}
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(numberingXML); err != nil {
		return defs
	}
	root := doc.Root()
	if root == nil {
		return defs
	}

	abstract := make(map[int]map[int]Level)
	for _, an := range root.FindElements("//w:abstractNum") {
		anID, err := strconv.Atoi(an.SelectAttrValue("w:abstractNumId", ""))
		if err != nil {
			continue
		}
		levels := make(map[int]Level)
		for _, lvlEl := range an.FindElements("w:lvl") {
			ilvl, err := strconv.Atoi(lvlEl.SelectAttrValue("w:ilvl", ""))
			if err != nil || ilvl < 0 || ilvl >= maxLevels {
				continue
			}
			lvl := DefaultLevel(ilvl)
			lvl.Template = "%1."
			if el := lvlEl.FindElement("w:start"); el != nil {
				if v, err := strconv.Atoi(el.SelectAttrValue("w:val", "")); err == nil {
					lvl.Start = v
				}
			}
			if el := lvlEl.FindElement("w:numFmt"); el != nil {
				lvl.Format = el.SelectAttrValue("w:val", FormatDecimal)
			}
			if el := lvlEl.FindElement("w:lvlText"); el != nil {
				lvl.Template = el.SelectAttrValue("w:val", "%1.")
			}
			if el := lvlEl.FindElement("w:lvlRestart"); el != nil {
				if v, err := strconv.Atoi(el.SelectAttrValue("w:val", "")); err == nil {
					lvl.Restart = v
				}
			}
			levels[ilvl] = lvl
		}
		abstract[anID] = levels
	}

	for _, num := range root.FindElements("//w:num") {
		numID, err := strconv.Atoi(num.SelectAttrValue("w:numId", ""))
		if err != nil {
			continue
		}
		ref := num.FindElement("w:abstractNumId")
		if ref == nil {
			continue
		}
		anID, err := strconv.Atoi(ref.SelectAttrValue("w:val", ""))
		if err != nil {
			continue
		}
		levels := abstract[anID]
		if levels == nil {
			levels = make(map[int]Level)
		}
		defs[numID] = Definition{NumID: numID, AbstractID: anID, Levels: levels}
	}
	return defs
}
