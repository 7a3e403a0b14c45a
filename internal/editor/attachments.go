package editor

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"
)

const megabyte = 1024 * 1024

// File describes an upload offered to an asset slot. Ref is the local
// reference produced by the picker; when empty a blob: ref is minted.
type File struct {
	Name     string `json:"name"`
	Size     int64  `json:"size"`
	MIMEType string `json:"mimeType"`
	Ref      string `json:"ref,omitempty"`
}

// Rule is the allow-list applied to one slot.
type Rule struct {
	MaxBytes   int64
	MIMETypes  []string
	Extensions []string
}

// Accepts reports whether the file type is allowed. A file passes when its
// MIME type or its extension is listed. MIME entries ending in /* match the
// whole family.
func (r Rule) Accepts(file File) bool {
	mime := strings.ToLower(strings.TrimSpace(file.MIMEType))
	if mime != "" {
		for _, allowed := range r.MIMETypes {
			if family, ok := strings.CutSuffix(allowed, "/*"); ok {
				if strings.HasPrefix(mime, family+"/") {
					return true
				}
				continue
			}
			if mime == allowed {
				return true
			}
		}
	}
	ext := strings.ToLower(filepath.Ext(file.Name))
	return ext != "" && slices.Contains(r.Extensions, ext)
}

// Limits maps slots to their rules. Step resources use the Downloads rule.
type Limits map[Slot]Rule

// DefaultLimits returns the document, video and audio allow-lists.
func DefaultLimits() Limits {
	return Limits{
		SlotDownloads: {
			MaxBytes: 10 * megabyte,
			MIMETypes: []string{
				"application/pdf",
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document",
				"application/vnd.openxmlformats-officedocument.presentationml.presentation",
			},
			Extensions: []string{".pdf", ".docx", ".pptx"},
		},
		SlotVideo: {
			MaxBytes:   100 * megabyte,
			MIMETypes:  []string{"video/*"},
			Extensions: []string{".mp4", ".mov", ".avi"},
		},
		SlotAudio: {
			MaxBytes:   50 * megabyte,
			MIMETypes:  []string{"audio/*"},
			Extensions: []string{".mp3", ".wav", ".m4a"},
		},
	}
}

// WithMaxBytes returns a copy of the limits with the slot size cap replaced.
func (l Limits) WithMaxBytes(slot Slot, max int64) Limits {
	out := make(Limits, len(l))
	for k, v := range l {
		out[k] = v
	}
	rule := out[slot]
	rule.MaxBytes = max
	out[slot] = rule
	return out
}

// RejectReason explains why an attachment was refused.
type RejectReason string

const (
	ReasonUnsupportedType RejectReason = "unsupported_type"
	ReasonTooLarge        RejectReason = "too_large"
)

// AttachmentRejectedError is returned when a file fails the slot allow-list.
type AttachmentRejectedError struct {
	Slot   Slot
	Name   string
	Reason RejectReason
	Limit  int64
}

func (e *AttachmentRejectedError) Error() string {
	switch e.Reason {
	case ReasonTooLarge:
		return fmt.Sprintf("editor: %s exceeds the %d MB limit for %s", e.Name, e.Limit/megabyte, e.Slot)
	default:
		return fmt.Sprintf("editor: %s is not an accepted %s file type", e.Name, e.Slot)
	}
}

func (l Limits) check(slot Slot, file File) error {
	rule, ok := l[slot]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSlot, slot)
	}
	if !rule.Accepts(file) {
		return &AttachmentRejectedError{Slot: slot, Name: file.Name, Reason: ReasonUnsupportedType}
	}
	if rule.MaxBytes > 0 && file.Size > rule.MaxBytes {
		return &AttachmentRejectedError{Slot: slot, Name: file.Name, Reason: ReasonTooLarge, Limit: rule.MaxBytes}
	}
	return nil
}

func defaultURLLabel(slot Slot) string {
	switch slot {
	case SlotVideo:
		return "Video from URL"
	case SlotAudio:
		return "Audio from URL"
	default:
		return "Document from URL"
	}
}
