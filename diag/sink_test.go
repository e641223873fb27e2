package diag

import (
	"image"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFileSinkWritesSequencedImages(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFileSink(root, nil)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	defer sink.Close()

	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	sink.Image("tooltip-raw", img)
	sink.Image("tooltip-prepared", img)

	entries, err := os.ReadDir(root)
	if err != nil || len(entries) != 1 {
		t.Fatalf("expected one run dir, got %v err=%v", entries, err)
	}
	runDir := filepath.Join(root, entries[0].Name())
	files, err := os.ReadDir(runDir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}

	var pngs []string
	for _, f := range files {
		if strings.HasSuffix(f.Name(), ".png") {
			pngs = append(pngs, f.Name())
		}
	}
	if len(pngs) != 2 {
		t.Fatalf("expected 2 pngs, got %v", pngs)
	}
	if !strings.HasPrefix(pngs[0], "0001-") || !strings.HasPrefix(pngs[1], "0002-") {
		t.Fatalf("expected sequenced names, got %v", pngs)
	}
}

func TestFileSinkTrace(t *testing.T) {
	root := t.TempDir()
	sink, err := NewFileSink(root, nil)
	if err != nil {
		t.Fatalf("NewFileSink: %v", err)
	}
	sink.Trace("tooltip", "label: GUN OIL")
	if err := sink.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	entries, _ := os.ReadDir(root)
	data, err := os.ReadFile(filepath.Join(root, entries[0].Name(), "trace.log"))
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "tooltip: label: GUN OIL") {
		t.Fatalf("unexpected trace contents %q", data)
	}
}

func TestNopSinkIsDisabled(t *testing.T) {
	s := Nop()
	if s.Enabled() {
		t.Fatal("nop sink must report disabled")
	}
	s.Image("stage", image.NewRGBA(image.Rect(0, 0, 1, 1)))
	s.Trace("stage", "msg")
}
