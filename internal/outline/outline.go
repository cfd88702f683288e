// Package outline turns the flat block list into a section tree keyed by
// heading numbers, and projects that tree into the flattened
// chapter-directory layout used by the hierarchy exporter.
package outline

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/docfold/docx2md/internal/ir"
)

// FrontMatterTitle names the synthetic root holding blocks that precede
// the first heading.
const FrontMatterTitle = "front-matter"

var (
	headingDotRe  = regexp.MustCompile(`^(\d+(?:\.\d+)*)\.\s+(.+)$`)
	headingDashRe = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s*[-–—]\s*(.+)$`)
	headingRe     = regexp.MustCompile(`^(\d+(?:\.\d+)*)\s+(.+)$`)
)

// Section is a node of the document outline. Blocks holds the section's
// own content, heading included; nested content lives in Children.
type Section struct {
	Level    int
	Number   []int
	Title    string
	Blocks   []ir.Block
	Children []*Section
}

// SplitNumberAndTitle parses heading text into its dotted number path and
// bare title. Returns a nil path when the text carries no number.
func SplitNumberAndTitle(text string) ([]int, string) {
	s := strings.TrimSpace(text)
	for _, re := range []*regexp.Regexp{headingDotRe, headingDashRe, headingRe} {
		m := re.FindStringSubmatch(s)
		if m == nil {
			continue
		}
		parts := strings.Split(m[1], ".")
		nums := make([]int, 0, len(parts))
		for _, part := range parts {
			n, err := strconv.Atoi(part)
			if err != nil {
				return nil, s
			}
			nums = append(nums, n)
		}
		return nums, strings.TrimSpace(m[2])
	}
	return nil, s
}

// Build converts the ordered block list into a forest of sections using a
// level stack. Non-heading blocks attach to the deepest open section;
// blocks before the first heading collect under a synthetic front-matter
// root. An unnumbered level-1 heading continues the sequence of the last
// numbered one, so its synthetic number never collides with a real
// section number. A deeper heading whose numeric prefix does not match
// the open top-level section is promoted to its own root instead of
// mis-attached.
func Build(blocks []ir.Block) []*Section {
	var (
		roots    []*Section
		stack    []*Section
		preamble *Section
		h1Seq    int
	)

	for _, block := range blocks {
		if block.Type != ir.BlockTypeHeading {
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				top.Blocks = append(top.Blocks, block)
				continue
			}
			if preamble == nil {
				preamble = &Section{Level: 1, Title: FrontMatterTitle}
				roots = append(roots, preamble)
			}
			preamble.Blocks = append(preamble.Blocks, block)
			continue
		}

		h := block.Heading
		nums, title := SplitNumberAndTitle(h.Text)
		if h.Level == 1 {
			if len(nums) > 0 {
				h1Seq = nums[0]
			} else {
				h1Seq++
				nums = []int{h1Seq}
				title = strings.TrimSpace(h.Text)
			}
		}

		sec := &Section{Level: h.Level, Number: nums, Title: title, Blocks: []ir.Block{block}}

		if h.Level >= 2 && len(nums) > 0 && isOrphan(stack, nums) {
			stack = stack[:0]
		}
		for len(stack) > 0 && stack[len(stack)-1].Level >= h.Level {
			stack = stack[:len(stack)-1]
		}
		if len(stack) == 0 {
			roots = append(roots, sec)
		} else {
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, sec)
		}
		stack = append(stack, sec)
	}
	return roots
}

// isOrphan reports whether a numbered deep heading disagrees with the
// open top-level section about its first number component.
func isOrphan(stack []*Section, nums []int) bool {
	if len(stack) == 0 {
		return false
	}
	root := stack[0]
	if root.Level != 1 || len(root.Number) == 0 {
		return false
	}
	return root.Number[0] != nums[0]
}

// Walk visits every section of the forest depth-first in document order.
func Walk(roots []*Section, visit func(*Section)) {
	for _, sec := range roots {
		visit(sec)
		Walk(sec.Children, visit)
	}
}

// CountSections returns the total number of sections in the forest.
func CountSections(roots []*Section) int {
	n := 0
	Walk(roots, func(*Section) { n++ })
	return n
}
