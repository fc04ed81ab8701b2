package models

// PublishPhase is the authoritative authoring state. It is distinct from
// the media and content coordinator states, which may run concurrently.
type PublishPhase int

const (
	PublishIdle PublishPhase = iota
	PublishLoading
	PublishSuccess
	PublishError
	PublishOptimizationsApplied
	PublishAutoGenerated
)

func (p PublishPhase) String() string {
	switch p {
	case PublishIdle:
		return "idle"
	case PublishLoading:
		return "loading"
	case PublishSuccess:
		return "success"
	case PublishError:
		return "error"
	case PublishOptimizationsApplied:
		return "optimizations_applied"
	case PublishAutoGenerated:
		return "auto_generated"
	default:
		return "unknown"
	}
}

type PublishState struct {
	Phase   PublishPhase    `json:"phase"`
	Event   *PublishedEvent `json:"event,omitempty"`
	Message string          `json:"message,omitempty"`
}

// MediaPhase is the per-call transient status of the media coordinator.
type MediaPhase int

const (
	MediaIdle MediaPhase = iota
	MediaLoading
	MediaImagesProcessed
	MediaVideoProcessed
	MediaError
)

func (p MediaPhase) String() string {
	switch p {
	case MediaIdle:
		return "idle"
	case MediaLoading:
		return "loading"
	case MediaImagesProcessed:
		return "images_processed"
	case MediaVideoProcessed:
		return "video_processed"
	case MediaError:
		return "error"
	default:
		return "unknown"
	}
}

type MediaState struct {
	Phase   MediaPhase        `json:"phase"`
	Images  *ImageBatchResult `json:"images,omitempty"`
	Video   *VideoResult      `json:"video,omitempty"`
	Message string            `json:"message,omitempty"`
}

// ContentPhase is the per-call transient status of the content coordinator.
type ContentPhase int

const (
	ContentIdle ContentPhase = iota
	ContentLoading
	ContentDescriptionReady
	ContentOptimizationsReady
	ContentAutoGenerated
	ContentError
)

func (p ContentPhase) String() string {
	switch p {
	case ContentIdle:
		return "idle"
	case ContentLoading:
		return "loading"
	case ContentDescriptionReady:
		return "description_ready"
	case ContentOptimizationsReady:
		return "optimizations_ready"
	case ContentAutoGenerated:
		return "auto_generated"
	case ContentError:
		return "error"
	default:
		return "unknown"
	}
}

type ContentState struct {
	Phase   ContentPhase `json:"phase"`
	Message string       `json:"message,omitempty"`
}
