// Package pipeline orchestrates a full conversion: parse, assemble, split
// into chapters, export assets and write the markdown output tree.
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/docfold/docx2md/internal/assemble"
	"github.com/docfold/docx2md/internal/config"
	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/ir"
	"github.com/docfold/docx2md/internal/llm"
	"github.com/docfold/docx2md/internal/outline"
	"github.com/docfold/docx2md/internal/render"
)

// Pipeline converts documents according to the configuration.
type Pipeline struct {
	cfg      *config.Config
	log      *zap.Logger
	polisher llm.Provider
}

// New creates a pipeline. A nil config uses the defaults; a nil logger
// discards log output.
func New(cfg *config.Config, log *zap.Logger) *Pipeline {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Pipeline{cfg: cfg, log: log}
}

// SetPolisher enables the LLM polish pass for rendered chapters.
func (p *Pipeline) SetPolisher(provider llm.Provider) {
	p.polisher = provider
}

// Result describes a completed conversion.
type Result struct {
	OutputDir    string
	IndexPath    string
	ManifestPath string
	Chapters     []ChapterInfo
	AssetCount   int
}

// Process converts one document into the chapter tree under the configured
// output directory.
func (p *Pipeline) Process(ctx context.Context, inputPath string) (*Result, error) {
	pkg, err := docx.Open(inputPath)
	if err != nil {
		return nil, err
	}

	doc := assemble.Assemble(pkg, p.assembleOptions(), p.log)
	p.log.Info("document assembled",
		zap.String("input", inputPath),
		zap.Int("blocks", len(doc.Blocks)),
		zap.Int("resources", len(pkg.Resources)))

	baseName := strings.ToLower(strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath)))
	outputDir := filepath.Join(p.cfg.Pipeline.OutputDir, baseName)

	assetsDir := p.cfg.Pipeline.AssetsDirName
	if assetsDir == "" {
		assetsDir = "assets"
	}
	assetMap, exportErr := render.ExportAssets(pkg.Resources, filepath.Join(outputDir, assetsDir))
	if exportErr != nil {
		p.log.Warn("some assets failed to export", zap.Error(exportErr))
	}

	chapters := outline.SplitChapters(doc, p.chapterRules())
	if len(chapters) == 0 {
		return nil, fmt.Errorf("document produced no content: %s", inputPath)
	}

	// Chapter files live one level below the output root, so asset links
	// need a parent-relative prefix.
	chapterAssets := make(map[string]string, len(assetMap))
	for id, path := range assetMap {
		chapterAssets[id] = "../" + path
	}

	infos, err := p.writeChapters(ctx, chapters, outputDir, chapterAssets)
	if err != nil {
		return nil, multierr.Append(err, exportErr)
	}

	title := baseName
	indexPath := filepath.Join(outputDir, "0.index.md")
	if err := WriteText(indexPath, BuildIndex(title, infos)); err != nil {
		return nil, err
	}

	manifest := BuildManifest(filepath.Base(inputPath), title, infos, assetMap)
	manifestData, err := manifest.MarshalIndent()
	if err != nil {
		return nil, err
	}
	manifestPath := filepath.Join(outputDir, "manifest.json")
	if err := WriteBinary(manifestPath, manifestData); err != nil {
		return nil, err
	}

	if p.cfg.Pipeline.HierarchyLayout {
		flat := outline.Flatten(outline.Build(doc.Blocks))
		sectionsAssets := make(map[string]string, len(assetMap))
		for id, path := range assetMap {
			sectionsAssets[id] = "../../" + path
		}
		if err := ExportHierarchy(flat, filepath.Join(outputDir, "sections"), sectionsAssets); err != nil {
			return nil, err
		}
	}

	return &Result{
		OutputDir:    outputDir,
		IndexPath:    indexPath,
		ManifestPath: manifestPath,
		Chapters:     infos,
		AssetCount:   len(manifest.Assets),
	}, nil
}

// writeChapters renders and writes every chapter, returning the infos in
// written order.
func (p *Pipeline) writeChapters(ctx context.Context, chapters []*ir.Document, outputDir string, assetMap map[string]string) ([]ChapterInfo, error) {
	useH1Index := len(chapters) > 1
	infos := make([]ChapterInfo, 0, len(chapters))
	for i, chapter := range chapters {
		index := i
		if useH1Index {
			if n, ok := ChapterIndexFromH1(chapter); ok {
				index = n
			}
		}

		title := ChapterTitle(chapter, index)
		filename := ChapterFilename(index, title, p.cfg.Pipeline.SlugMaxLength)
		markdown := render.Render(chapter, assetMap)

		if p.polisher != nil && p.cfg.Polish.Enabled {
			polished, err := p.polisher.Polish(ctx, markdown, llm.PolishOptions{
				Language:    p.cfg.Polish.Language,
				Temperature: p.cfg.Polish.Temperature,
			})
			if err != nil {
				p.log.Warn("polish pass failed, keeping raw markdown",
					zap.String("chapter", filename), zap.Error(err))
			} else {
				markdown = polished.Markdown
				p.log.Debug("chapter polished",
					zap.String("chapter", filename),
					zap.Int("tokens", polished.Usage.TotalTokens))
			}
		}

		path := filepath.Join(outputDir, "chapters", filename)
		if err := WriteText(path, markdown); err != nil {
			return nil, err
		}
		infos = append(infos, ChapterInfo{Index: index, Title: title, File: filename})
	}
	return infos, nil
}

func (p *Pipeline) assembleOptions() assemble.Options {
	h := p.cfg.Heuristics
	return assemble.Options{
		HeadingPatterns:   h.HeadingPatterns,
		ServiceHeadings:   h.ServiceHeadings,
		CodeStylePatterns: h.CodeStylePatterns,
		MonoFonts:         h.MonoFonts,
	}
}

func (p *Pipeline) chapterRules() outline.ChapterRules {
	rules := outline.DefaultChapterRules()
	if p.cfg.Pipeline.SplitLevel > 0 {
		rules.Level = p.cfg.Pipeline.SplitLevel
	}
	if len(p.cfg.Heuristics.ZeroChapterSections) > 0 {
		rules.ZeroChapterSections = p.cfg.Heuristics.ZeroChapterSections
	}
	return rules
}
