// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import (
	"image"
	"image/color"
	"testing"
)

func rgbaAt(img image.Image, x, y int) color.RGBA {
	return color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
}

func TestCompositorDraw(t *testing.T) {
	c, err := NewCompositor(nil)
	if err != nil {
		t.Fatalf("NewCompositor: %v", err)
	}

	s := Snapshot{
		Visible: true,
		Nodes: []NodeView{
			{ID: 1, X: 32, Y: 32, Size: 40, Label: "7", Opacity: 1},
			{ID: 2, X: 96, Y: 32, Size: 40, Label: "12", Opacity: 1, Hovered: true},
			{ID: 3, X: 32, Y: 96, Size: 40, Label: "1", Opacity: 1, Hidden: true},
			{ID: 4, X: 96, Y: 96, Size: 40, Label: "2", Opacity: 0, State: StateReleasing},
		},
	}
	img, err := c.Draw(s, 128, 128)
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 128, 128) {
		t.Fatalf("bounds = %v", img.Bounds())
	}

	// Inside the badge, left of the label.
	if px := rgbaAt(img, 18, 32); px.A == 0 || px.B <= px.R {
		t.Errorf("badge pixel = %v, want opaque blue", px)
	}
	if px := rgbaAt(img, 82, 32); px.A == 0 || px.R <= px.B {
		t.Errorf("hovered pixel = %v, want orange", px)
	}
	if px := rgbaAt(img, 0, 0); px.A != 0 {
		t.Errorf("background pixel = %v, want transparent", px)
	}
	if px := rgbaAt(img, 18, 96); px.A != 0 {
		t.Errorf("hidden node drawn: %v", px)
	}
	if px := rgbaAt(img, 82, 96); px.A != 0 {
		t.Errorf("faded node drawn: %v", px)
	}
}

func TestCompositorInvisibleSnapshot(t *testing.T) {
	c, err := NewCompositor(nil)
	if err != nil {
		t.Fatal(err)
	}
	s := Snapshot{Nodes: []NodeView{{X: 8, Y: 8, Size: 16, Opacity: 1}}}
	img, err := c.Draw(s, 16, 16)
	if err != nil {
		t.Fatal(err)
	}
	if px := rgbaAt(img, 8, 8); px.A != 0 {
		t.Errorf("invisible layer drawn: %v", px)
	}
}

func TestCompositorErrors(t *testing.T) {
	if _, err := NewCompositor([]byte("not a font")); err == nil {
		t.Error("NewCompositor should reject invalid font data")
	}
	c, err := NewCompositor(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := c.Draw(Snapshot{}, 0, 10); err == nil {
		t.Error("Draw should reject an empty canvas")
	}
}

func TestCompositorFaceCache(t *testing.T) {
	c, err := NewCompositor(nil)
	if err != nil {
		t.Fatal(err)
	}
	f1 := c.face(40)
	f2 := c.face(40.4)
	if f1 != f2 {
		t.Error("faces of the same rounded size should be shared")
	}
	if len(c.faces) != 1 {
		t.Errorf("%d cached faces, want 1", len(c.faces))
	}
}
