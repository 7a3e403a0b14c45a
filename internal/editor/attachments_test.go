package editor_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-methodlib/internal/editor"
	"github.com/goliatone/go-methodlib/method"
)

func TestRuleAcceptsByMIMEOrExtension(t *testing.T) {
	limits := editor.DefaultLimits()
	cases := []struct {
		slot editor.Slot
		file editor.File
		want bool
	}{
		{editor.SlotDownloads, editor.File{Name: "guide.pdf", MIMEType: "application/pdf"}, true},
		{editor.SlotDownloads, editor.File{Name: "guide.PDF"}, true},
		{editor.SlotDownloads, editor.File{Name: "notes.txt", MIMEType: "text/plain"}, false},
		{editor.SlotVideo, editor.File{Name: "clip", MIMEType: "video/webm"}, true},
		{editor.SlotVideo, editor.File{Name: "clip.mov"}, true},
		{editor.SlotAudio, editor.File{Name: "clip.mp4", MIMEType: "video/mp4"}, false},
	}
	for _, tc := range cases {
		if got := limits[tc.slot].Accepts(tc.file); got != tc.want {
			t.Fatalf("%s %+v: got %v want %v", tc.slot, tc.file, got, tc.want)
		}
	}
}

func TestAttachAssetRejectsTypeBeforeSize(t *testing.T) {
	ctx := context.Background()
	s, _ := editor.Open(ctx, newFixture().options())

	_, err := s.AttachAsset(editor.SlotDownloads, editor.File{Name: "huge.exe", Size: 1 << 40})
	var rejected *editor.AttachmentRejectedError
	if !errors.As(err, &rejected) || rejected.Reason != editor.ReasonUnsupportedType {
		t.Fatalf("expected unsupported type, got %v", err)
	}

	_, err = s.AttachAsset(editor.SlotAudio, editor.File{Name: "talk.mp3", MIMEType: "audio/mpeg", Size: 51 * 1024 * 1024})
	if !errors.As(err, &rejected) || rejected.Reason != editor.ReasonTooLarge {
		t.Fatalf("expected too large, got %v", err)
	}
	if rejected.Error() != "editor: talk.mp3 exceeds the 50 MB limit for audio" {
		t.Fatalf("unexpected message %q", rejected.Error())
	}
	if d := s.Draft(); d.Audio != nil || len(d.Downloads) != 0 {
		t.Fatalf("expected no attachments, got %+v", d)
	}
}

func TestAttachAssetSlots(t *testing.T) {
	ctx := context.Background()
	opts := newFixture().options()
	opts.Limits = editor.DefaultLimits().WithMaxBytes(editor.SlotVideo, 10)
	s, _ := editor.Open(ctx, opts)

	for _, name := range []string{"a.pdf", "b.docx"} {
		if _, err := s.AttachAsset(editor.SlotDownloads, editor.File{Name: name, Size: 1}); err != nil {
			t.Fatalf("attach %s: %v", name, err)
		}
	}
	first, _ := s.AttachAsset(editor.SlotVideo, editor.File{Name: "one.mp4", Size: 5})
	second, _ := s.AttachAsset(editor.SlotVideo, editor.File{Name: "two.mp4", Size: 5, Ref: "file:///tmp/two.mp4"})
	if _, err := s.AttachAsset(editor.SlotVideo, editor.File{Name: "big.mp4", Size: 11}); err == nil {
		t.Fatal("expected custom size cap to apply")
	}

	d := s.Draft()
	if len(d.Downloads) != 2 || d.Downloads[1].Name != "b.docx" || d.Downloads[0].Kind != method.KindDocument {
		t.Fatalf("expected downloads to accumulate, got %+v", d.Downloads)
	}
	if first.URL != "blob:"+first.ID {
		t.Fatalf("expected minted blob ref, got %q", first.URL)
	}
	if d.Video == nil || d.Video.ID != second.ID || d.Video.URL != "file:///tmp/two.mp4" {
		t.Fatalf("expected second video to replace first, got %+v", d.Video)
	}

	if !s.RemoveAsset(editor.SlotDownloads, d.Downloads[0].ID) || len(s.Draft().Downloads) != 1 {
		t.Fatal("expected download removed")
	}
	if !s.RemoveAsset(editor.SlotVideo, "") || s.Draft().Video != nil {
		t.Fatal("expected video cleared")
	}
	if s.RemoveAsset(editor.SlotVideo, "") {
		t.Fatal("expected empty video slot to report nothing removed")
	}
}

func TestAttachAssetFromURL(t *testing.T) {
	ctx := context.Background()
	s, _ := editor.Open(ctx, newFixture().options())

	asset, err := s.AttachAssetFromURL(editor.SlotAudio, "   ", "ignored")
	if err != nil || asset != nil {
		t.Fatalf("expected blank url to be ignored, got %+v %v", asset, err)
	}
	asset, err = s.AttachAssetFromURL(editor.SlotAudio, "https://example.org/ep1.mp3", "")
	if err != nil || asset.Name != "Audio from URL" || asset.Kind != method.KindAudio {
		t.Fatalf("unexpected asset %+v %v", asset, err)
	}
	asset, _ = s.AttachAssetFromURL(editor.SlotDownloads, "https://example.org/plan", "Plan")
	if asset.Name != "Plan" || len(s.Draft().Downloads) != 1 {
		t.Fatalf("unexpected download %+v", asset)
	}
	if _, err := s.AttachAssetFromURL("poster", "https://x", ""); !errors.Is(err, editor.ErrUnknownSlot) {
		t.Fatalf("expected unknown slot, got %v", err)
	}
}

func TestStepResources(t *testing.T) {
	ctx := context.Background()
	s, _ := editor.Open(ctx, newFixture().options())
	step := s.AddStep()

	if _, err := s.AttachStepResource("missing", editor.File{Name: "a.pdf"}); !errors.Is(err, editor.ErrStepNotFound) {
		t.Fatalf("expected step not found, got %v", err)
	}
	if _, err := s.AttachStepResource(step.ID, editor.File{Name: "a.mp3"}); err == nil {
		t.Fatal("expected downloads allow-list to apply to step resources")
	}
	asset, err := s.AttachStepResource(step.ID, editor.File{Name: "worksheet.pdf", Size: 10})
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if res := s.Draft().Approach[0].Resources; len(res) != 1 || res[0].ID != asset.ID {
		t.Fatalf("unexpected resources %+v", res)
	}
	if !s.RemoveStepResource(step.ID, asset.ID) || len(s.Draft().Approach[0].Resources) != 0 {
		t.Fatal("expected resource removed")
	}
}
