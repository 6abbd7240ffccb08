// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package local

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/pano/panorama"
)

const testManifest = `
collections:
  - id: site-1
    panoramas:
      - id: lobby
        label: Lobby
        translation: [1, 0, 2]
        rotation: {axis: [0, 1, 0], angle: 1.5}
        faces:
          left: lobby/left.png
          right: lobby/right.png
          top: lobby/top.png
          bottom: lobby/bottom.png
          front: lobby/front.png
          back: lobby/back.png
  - id: site-2
    panoramas:
      - id: "cafe\u0301"
        faces:
          front: cafe/front.png
`

func writePNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	for i := range img.Pix {
		img.Pix[i] = 0xff
	}
	img.SetRGBA(0, 0, color.RGBA{255, 0, 0, 255})
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeSet creates the manifest and every face it names.
func writeSet(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, tag := range panorama.FaceOrder {
		writePNG(t, filepath.Join(dir, "lobby", tag.String()+".png"))
	}
	writePNG(t, filepath.Join(dir, "cafe", "front.png"))
	path := filepath.Join(dir, "manifest.yaml")
	if err := os.WriteFile(path, []byte(testManifest), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestOpen(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	descs, err := p.Descriptors(context.Background(), panorama.Filter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(descs) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(descs))
	}

	lobby := descs[0]
	if lobby.ID != "lobby" || lobby.Label != "Lobby" || lobby.CollectionID != "site-1" {
		t.Errorf("lobby = %+v", lobby)
	}
	if lobby.Translation != (mgl32.Vec3{1, 0, 2}) {
		t.Errorf("translation = %v", lobby.Translation)
	}
	if lobby.Rotation.Axis != (mgl32.Vec3{0, 1, 0}) || lobby.Rotation.Angle != 1.5 {
		t.Errorf("rotation = %+v", lobby.Rotation)
	}
	if len(lobby.Faces) != 6 {
		t.Fatalf("faces = %v", lobby.Faces)
	}
	for i, ref := range lobby.Faces {
		if ref.Tag != panorama.FaceOrder[i] {
			t.Errorf("face %d = %v, want %v", i, ref.Tag, panorama.FaceOrder[i])
		}
	}
}

func TestDescriptorsNormalizeIDs(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{CollectionID: "site-2"})
	if len(descs) != 1 {
		t.Fatalf("got %d descriptors, want 1", len(descs))
	}
	if descs[0].ID != "caf\u00e9" {
		t.Errorf("id = %q, want NFC form", descs[0].ID)
	}
	if descs[0].Label != descs[0].ID {
		t.Errorf("label should default to the id, got %q", descs[0].Label)
	}
}

func TestDescriptorsFilter(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		collection string
		want       int
	}{
		{"", 2},
		{"site-1", 1},
		{"site-2", 1},
		{"nowhere", 0},
	}
	for _, tt := range tests {
		descs, err := p.Descriptors(context.Background(), panorama.Filter{CollectionID: tt.collection})
		if err != nil {
			t.Fatal(err)
		}
		if len(descs) != tt.want {
			t.Errorf("collection %q: %d descriptors, want %d", tt.collection, len(descs), tt.want)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := p.Descriptors(ctx, panorama.Filter{}); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}

func TestFaces(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{CollectionID: "site-1"})
	faces, err := p.Faces(context.Background(), descs[0])
	if err != nil {
		t.Fatalf("Faces: %v", err)
	}
	if len(faces) != 6 {
		t.Fatalf("got %d faces, want 6", len(faces))
	}
	for _, f := range faces {
		if _, err := png.Decode(bytes.NewReader(f.Data)); err != nil {
			t.Errorf("face %s: %v", f.Tag, err)
		}
	}
}

func TestFacesMissingFile(t *testing.T) {
	path := writeSet(t)
	if err := os.Remove(filepath.Join(filepath.Dir(path), "lobby", "top.png")); err != nil {
		t.Fatal(err)
	}
	p, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{CollectionID: "site-1"})
	if _, err := p.Faces(context.Background(), descs[0]); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestFacesConcurrent(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{CollectionID: "site-1"})

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			faces, err := p.Faces(context.Background(), descs[0])
			if err != nil || len(faces) != 6 {
				t.Errorf("Faces = %d, %v", len(faces), err)
			}
		}()
	}
	wg.Wait()
}

func TestFacesCanceledCaller(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{CollectionID: "site-1"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var wg sync.WaitGroup
	for i := range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if i%2 == 0 {
				if _, err := p.Faces(ctx, descs[0]); !errors.Is(err, context.Canceled) {
					t.Errorf("canceled caller err = %v, want context.Canceled", err)
				}
				return
			}
			faces, err := p.Faces(context.Background(), descs[0])
			if err != nil || len(faces) != 6 {
				t.Errorf("live caller Faces = %d, %v", len(faces), err)
			}
		}()
	}
	wg.Wait()
}

func TestParseManifestErrors(t *testing.T) {
	tests := []struct {
		name     string
		manifest string
		invalid  bool
	}{
		{"unknown field", "collections:\n  - id: a\n    color: red\n", false},
		{"unknown face", "collections:\n  - id: a\n    panoramas:\n      - id: p\n        faces: {up: x.png}\n", true},
		{"escaping path", "collections:\n  - id: a\n    panoramas:\n      - id: p\n        faces: {left: ../x.png}\n", true},
		{"bad translation", "collections:\n  - id: a\n    panoramas:\n      - id: p\n        translation: [1, 2]\n", true},
		{"missing id", "collections:\n  - id: a\n    panoramas:\n      - label: nameless\n", true},
		{"duplicate id", "collections:\n  - id: a\n    panoramas:\n      - id: \"caf\\u00e9\"\n      - id: \"cafe\\u0301\"\n", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := ParseManifest(strings.NewReader(tt.manifest))
			if err == nil {
				_, err = New(m, t.TempDir())
			}
			if err == nil {
				t.Fatal("expected an error")
			}
			if tt.invalid && !errors.Is(err, ErrInvalidManifest) {
				t.Errorf("err = %v, want ErrInvalidManifest", err)
			}
		})
	}
}

func TestParseManifestEmpty(t *testing.T) {
	m, err := ParseManifest(strings.NewReader(""))
	if err != nil {
		t.Fatal(err)
	}
	p, err := New(m, t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	descs, _ := p.Descriptors(context.Background(), panorama.Filter{})
	if len(descs) != 0 {
		t.Errorf("got %d descriptors", len(descs))
	}
}

func TestOpenMissing(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "none.yaml")); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("err = %v, want fs.ErrNotExist", err)
	}
}

func TestProviderWithFactory(t *testing.T) {
	p, err := Open(writeSet(t))
	if err != nil {
		t.Fatal(err)
	}
	coll, err := panorama.NewFactory(p, nil, nil).Create(context.Background(), panorama.Filter{}, mgl32.Ident4(), false)
	if err != nil {
		t.Fatal(err)
	}
	lobby, ok := coll.Find("lobby")
	if !ok {
		t.Fatal("lobby not found")
	}
	if err := lobby.Load(context.Background()); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !lobby.Visualization().Loaded() {
		t.Error("lobby should be loaded")
	}

	// The second panorama only has a front face.
	cafe, _ := coll.Find("caf\u00e9")
	if err := cafe.Load(context.Background()); !errors.Is(err, panorama.ErrMissingFace) {
		t.Errorf("err = %v, want ErrMissingFace", err)
	}
	coll.Dispose()
}
