package classify

import (
	"regexp"
	"strings"

	"github.com/beevik/etree"

	"github.com/docfold/docx2md/internal/docx"
)

// DefaultCodeStylePatterns matches paragraph style display names used for
// command listings and code fragments.
var DefaultCodeStylePatterns = []string{
	`.*Команда.*`,
	`.*Листинг.*`,
	`.*Code.*`,
	`.*Код.*`,
	`ROSA_ТКом`,
	`ROSA_Команда_Таблица`,
}

// DefaultMonoFonts are the monospaced font names that mark a shaded
// paragraph as code.
var DefaultMonoFonts = []string{
	"courier new", "consolas", "roboto mono", "menlo", "monaco", "lucida console",
}

var (
	bashLineRe      = regexp.MustCompile(`^(?:sudo\s+)?(docker|wget|curl|psql|createdb|apt|apt-get|dnf|systemctl|sh\b|touch|chmod|chown|echo|ls|cat|kubectl|helm)\b`)
	sqlLineRe       = regexp.MustCompile(`(?i)^(CREATE|GRANT|ALTER|INSERT|UPDATE|DELETE|DROP|TRUNCATE)\b`)
	yamlKeyRe       = regexp.MustCompile(`^(?:-\s+.*|\s*[\w\./\[\]-]+\s*:\s*.*)$`)
	yamlHintRe      = regexp.MustCompile(`(?i)\.(ya?ml)\b`)
	yamlFileNameRe  = regexp.MustCompile(`(?i)([\w\./-]+\.(?:ya?ml))`)
	yamlFirstLineRe = regexp.MustCompile(`(?i)^(version|services|tls)\s*:\s*|^-\s+`)
	shellPrefixRe   = regexp.MustCompile(`^\s*#\s+(.*)$`)
)

// CodeDetector recognizes code paragraphs by style and infers the language
// of accumulated listings from line shape.
type CodeDetector struct {
	styles    map[string]string
	styleRes  []*regexp.Regexp
	monoFonts map[string]struct{}
}

// NewCodeDetector builds a detector over the document's style table.
// Empty pattern or font lists select the defaults.
func NewCodeDetector(styles map[string]string, stylePatterns, monoFonts []string) *CodeDetector {
	if len(stylePatterns) == 0 {
		stylePatterns = DefaultCodeStylePatterns
	}
	if len(monoFonts) == 0 {
		monoFonts = DefaultMonoFonts
	}
	d := &CodeDetector{
		styles:    styles,
		monoFonts: make(map[string]struct{}, len(monoFonts)),
	}
	for _, pat := range stylePatterns {
		if re, err := regexp.Compile("(?i)" + pat); err == nil {
			d.styleRes = append(d.styleRes, re)
		}
	}
	for _, f := range monoFonts {
		d.monoFonts[strings.ToLower(f)] = struct{}{}
	}
	return d
}

// IsCodeParagraph reports whether a paragraph is code: either its style
// name matches a code pattern, or it combines a shading fill with a
// monospaced font.
func (d *CodeDetector) IsCodeParagraph(p *etree.Element) bool {
	if name := d.StyleName(p); name != "" && d.MatchesCodeStyle(name) {
		return true
	}
	return len(docx.ShadingFills(p)) > 0 && d.usesMonoFont(p)
}

// MatchesCodeStyle reports whether a style display name alone marks code.
func (d *CodeDetector) MatchesCodeStyle(name string) bool {
	for _, re := range d.styleRes {
		if loc := re.FindStringIndex(name); loc != nil && loc[0] == 0 {
			return true
		}
	}
	return false
}

// StyleName resolves the display name of the paragraph's style, falling
// back to the raw style id.
func (d *CodeDetector) StyleName(p *etree.Element) string {
	id := docx.StyleID(p)
	if id == "" {
		return ""
	}
	if name, ok := d.styles[id]; ok && name != "" {
		return name
	}
	return id
}

func (d *CodeDetector) usesMonoFont(p *etree.Element) bool {
	for _, font := range docx.RunFonts(p) {
		if _, ok := d.monoFonts[font]; ok {
			return true
		}
	}
	return false
}

// IsBashLine reports whether a line starts with a known shell command,
// optionally prefixed with sudo.
func IsBashLine(line string) bool { return bashLineRe.MatchString(line) }

// IsSQLLine reports whether a line starts with a SQL statement keyword.
func IsSQLLine(line string) bool { return sqlLineRe.MatchString(line) }

// IsYAMLLine reports whether a line has the shape of a YAML mapping entry
// or list item.
func IsYAMLLine(line string) bool { return yamlKeyRe.MatchString(line) }

// IsYAMLFirstLine reports whether a line looks like the opening of a YAML
// document (version/services/tls key or a list item).
func IsYAMLFirstLine(line string) bool { return yamlFirstLineRe.MatchString(line) }

// HasYAMLHint reports whether text mentions a .yml/.yaml file, which marks
// the following paragraphs as a likely YAML listing.
func HasYAMLHint(text string) bool { return yamlHintRe.MatchString(text) }

// YAMLFileName extracts the mentioned YAML file name, for the code block
// title. Empty when none is mentioned.
func YAMLFileName(text string) string {
	if m := yamlFileNameRe.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return ""
}

// CleanShellPrefix removes the leading "# " documents put before commands.
func CleanShellPrefix(line string) string {
	if m := shellPrefixRe.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	return line
}

// SniffLanguage infers the language of a fresh code listing from its first
// line. Returns the language and the block title ("Terminal" for shell).
func SniffLanguage(line string) (lang, title string) {
	trimmed := strings.TrimSpace(line)
	switch {
	case strings.HasPrefix(trimmed, "#!/") || IsBashLine(trimmed):
		return "bash", "Terminal"
	case IsYAMLLine(trimmed):
		return "yaml", ""
	case IsSQLLine(trimmed):
		return "sql", ""
	default:
		// Command listings default to shell.
		return "bash", "Terminal"
	}
}
