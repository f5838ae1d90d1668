package domain

import "sync"

// AttachmentDraft is a locally-selected file staged for upload alongside a
// record. The draft owns a preview handle that must be released exactly once,
// when the draft is removed or the owning form is discarded.
type AttachmentDraft struct {
	AttachmentID string // Generated identifier (UUID)
	FileName     string
	ContentType  string
	SizeBytes    int64
	Content      []byte
	Preview      *PreviewHandle
}

// PreviewHandle is a scoped preview resource tied to one AttachmentDraft.
// URL points at the preview (an object URL in the source dashboard, a
// temp-file path or data URL here); Release frees it and is safe to call
// more than once, but frees at most once.
type PreviewHandle struct {
	URL string

	once    sync.Once
	release func()
}

// NewPreviewHandle wraps a preview URL and its cleanup function.
func NewPreviewHandle(url string, release func()) *PreviewHandle {
	return &PreviewHandle{URL: url, release: release}
}

// Release frees the underlying preview resource. Subsequent calls are no-ops.
func (p *PreviewHandle) Release() {
	if p == nil {
		return
	}
	p.once.Do(func() {
		if p.release != nil {
			p.release()
		}
	})
}
