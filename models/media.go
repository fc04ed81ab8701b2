package models

// ContentWarning is a media-pipeline flagged issue on an uploaded asset.
type ContentWarning struct {
	Category   string `json:"category"`
	Message    string `json:"message"`
	IsCritical bool   `json:"is_critical"`
}

// MediaAsset is a single processed media result. Once merged into a
// draft the coordinator holds no reference to it.
type MediaAsset struct {
	OptimizedURL   string           `json:"optimized_url"`
	ThumbnailURL   string           `json:"thumbnail_url,omitempty"`
	PreviewClipURL string           `json:"preview_clip_url,omitempty"`
	Warnings       []ContentWarning `json:"warnings,omitempty"`
	AltText        string           `json:"alt_text,omitempty"`
}

// ImageBatchResult is the outcome of one processImages call.
type ImageBatchResult struct {
	OptimizedURLs []string          `json:"optimized_urls"`
	Warnings      []ContentWarning  `json:"warnings,omitempty"`
	AltTexts      map[string]string `json:"alt_texts,omitempty"`
}

// VideoResult is the outcome of one processVideo call.
type VideoResult struct {
	OptimizedURL   string           `json:"optimized_url"`
	ThumbnailURL   string           `json:"thumbnail_url"`
	PreviewClipURL string           `json:"preview_clip_url,omitempty"`
	Warnings       []ContentWarning `json:"warnings,omitempty"`
}
