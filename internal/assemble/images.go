package assemble

import (
	"github.com/beevik/etree"
	"go.uber.org/zap"

	"github.com/docfold/docx2md/internal/docx"
	"github.com/docfold/docx2md/internal/ir"
)

// imagesFor resolves every image embedded in a paragraph, in order. The
// caption paragraph of each image, when found, is marked for suppression
// so it does not reappear as body text.
func (a *assembler) imagesFor(p *etree.Element) []*ir.ImageBlock {
	var images []*ir.ImageBlock
	for _, drawing := range docx.Drawings(p) {
		name := docx.DrawingName(drawing)
		for _, embedID := range docx.BlipEmbedIDs(drawing) {
			res, ok := a.pkg.MediaTarget(embedID)
			if !ok {
				a.log.Warn("image relationship not resolved, dropping image",
					zap.String("rel_id", embedID))
				continue
			}

			caption, captionPara := a.captions.FindCaption(p, name)
			if captionPara != nil {
				a.usedCaptions[captionPara] = true
			}

			img := ir.NewImage(res.ID)
			img.Alt = "Image " + res.ID
			img.Caption = caption
			images = append(images, img)
		}
	}
	return images
}
