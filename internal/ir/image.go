package ir

// ImageBlock references a binary resource extracted from the source package.
type ImageBlock struct {
	ResourceID string `json:"resource_id"`
	Alt        string `json:"alt,omitempty"`
	Caption    string `json:"caption,omitempty"`
}

// NewImage creates an image block for the given resource id.
func NewImage(resourceID string) *ImageBlock {
	return &ImageBlock{ResourceID: resourceID}
}
