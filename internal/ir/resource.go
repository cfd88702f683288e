package ir

// ResourceRef is a binary resource extracted from the source package,
// addressed by image blocks through its ID. SHA256 is the hex digest of
// Content and drives deduplication on export.
type ResourceRef struct {
	ID       string `json:"id"`
	MimeType string `json:"mime_type"`
	Content  []byte `json:"-"`
	SHA256   string `json:"sha256"`
}
