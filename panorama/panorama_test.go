// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestFaceTagString(t *testing.T) {
	tests := []struct {
		tag  FaceTag
		want string
	}{
		{FaceLeft, "left"},
		{FaceRight, "right"},
		{FaceTop, "top"},
		{FaceBottom, "bottom"},
		{FaceFront, "front"},
		{FaceBack, "back"},
		{FaceTag(9), "FaceTag(9)"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.tag.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseFaceTag(t *testing.T) {
	for _, tag := range FaceOrder {
		got, err := ParseFaceTag(tag.String())
		if err != nil {
			t.Fatalf("ParseFaceTag(%q): %v", tag, err)
		}
		if got != tag {
			t.Errorf("ParseFaceTag(%q) = %v", tag, got)
		}
	}
	if _, err := ParseFaceTag("up"); err == nil {
		t.Error("ParseFaceTag(\"up\") should fail")
	}
}

func TestFaceOrder(t *testing.T) {
	want := []string{"left", "right", "top", "bottom", "front", "back"}
	for i, tag := range FaceOrder {
		if tag.String() != want[i] {
			t.Errorf("FaceOrder[%d] = %s, want %s", i, tag, want[i])
		}
	}
}

func TestFilterMatch(t *testing.T) {
	d := &Descriptor{ID: "a", CollectionID: "site-1"}
	tests := []struct {
		name   string
		filter Filter
		d      *Descriptor
		want   bool
	}{
		{"empty filter", Filter{}, d, true},
		{"same collection", Filter{CollectionID: "site-1"}, d, true},
		{"other collection", Filter{CollectionID: "site-2"}, d, false},
		{"nil descriptor", Filter{}, nil, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.filter.Match(tt.d); got != tt.want {
				t.Errorf("Match = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestDefaultVisualState(t *testing.T) {
	s := DefaultVisualState()
	if s.Opacity != 1 || !s.Visible || s.Scale != (mgl32.Vec3{1, 1, 1}) || s.RenderOrder != 0 {
		t.Errorf("DefaultVisualState() = %+v", s)
	}
}

func TestClampOpacity(t *testing.T) {
	nan := float32(math.NaN())
	tests := []struct {
		in, want float32
	}{
		{-1, 0},
		{0, 0},
		{0.25, 0.25},
		{1, 1},
		{7, 1},
		{nan, 0},
	}
	for _, tt := range tests {
		if got := clampOpacity(tt.in); got != tt.want {
			t.Errorf("clampOpacity(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRotationMat4(t *testing.T) {
	if got := (Rotation{}).Mat4(); got != mgl32.Ident4() {
		t.Errorf("zero rotation = %v, want identity", got)
	}
	r := Rotation{Axis: mgl32.Vec3{0, 2, 0}, Angle: math.Pi / 2}
	want := mgl32.HomogRotate3DY(math.Pi / 2)
	if !r.Mat4().ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("Mat4() = %v, want %v", r.Mat4(), want)
	}
}

func transformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec3 {
	return m.Mul4x1(p.Vec4(1)).Vec3()
}

func TestWorldTransform(t *testing.T) {
	d := &Descriptor{
		ID:          "p",
		Translation: mgl32.Vec3{1, 2, 3},
	}
	yaw := &Descriptor{
		ID:          "q",
		Translation: mgl32.Vec3{1, 2, 3},
		Rotation:    Rotation{Axis: mgl32.Vec3{0, 1, 0}, Angle: math.Pi / 2},
	}

	tests := []struct {
		name          string
		d             *Descriptor
		post          mgl32.Mat4
		preMultiplied bool
		in            mgl32.Vec3
		want          mgl32.Vec3
	}{
		{"pre-multiplied half turn", d, mgl32.Ident4(), true, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 2, 3}},
		{"pre-multiplied ignores rotation", yaw, mgl32.Ident4(), true, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 2, 3}},
		{"raw quarter turn", d, mgl32.Ident4(), false, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{1, 2, 2}},
		{"raw rotation then quarter turn", yaw, mgl32.Ident4(), false, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 2, 3}},
		{"post applied last", d, mgl32.Translate3D(10, 0, 0), true, mgl32.Vec3{}, mgl32.Vec3{11, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := WorldTransform(tt.d, tt.post, tt.preMultiplied)
			got := transformPoint(m, tt.in)
			if !got.ApproxEqualThreshold(tt.want, 1e-5) {
				t.Errorf("transform(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestOrigin(t *testing.T) {
	m := mgl32.Translate3D(4, 5, 6).Mul4(mgl32.HomogRotate3DY(1))
	if got := Origin(m); !got.ApproxEqualThreshold(mgl32.Vec3{4, 5, 6}, 1e-6) {
		t.Errorf("Origin = %v", got)
	}
}

// gradient returns a w x h image whose pixel (x, y) is (x, y, 0, 255).
func gradient(w, h int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, color.RGBA{uint8(x), uint8(y), 0, 255})
		}
	}
	return img
}

func TestMirror(t *testing.T) {
	src := gradient(5, 3)
	dst := mirror(src, 0)
	if dst.Bounds() != image.Rect(0, 0, 5, 3) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	for y := range 3 {
		for x := range 5 {
			got := dst.RGBAAt(x, y)
			want := src.RGBAAt(4-x, y)
			if got != want {
				t.Errorf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestMirrorSubImage(t *testing.T) {
	src := gradient(8, 8).SubImage(image.Rect(2, 3, 6, 5)).(*image.RGBA)
	dst := mirror(src, 0)
	if dst.Bounds() != image.Rect(0, 0, 4, 2) {
		t.Fatalf("bounds = %v", dst.Bounds())
	}
	// Leftmost output column is the rightmost source column (x = 5).
	if got := dst.RGBAAt(0, 0); got != (color.RGBA{5, 3, 0, 255}) {
		t.Errorf("pixel (0,0) = %v", got)
	}
	if got := dst.RGBAAt(3, 1); got != (color.RGBA{2, 4, 0, 255}) {
		t.Errorf("pixel (3,1) = %v", got)
	}
}

func TestMirrorDownscale(t *testing.T) {
	tests := []struct {
		name    string
		w, h    int
		maxSize int
		want    image.Rectangle
	}{
		{"fits", 4, 4, 8, image.Rect(0, 0, 4, 4)},
		{"square", 16, 16, 4, image.Rect(0, 0, 4, 4)},
		{"wide", 16, 8, 4, image.Rect(0, 0, 4, 2)},
		{"tall", 2, 64, 8, image.Rect(0, 0, 1, 8)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dst := mirror(gradient(tt.w, tt.h), tt.maxSize)
			if dst.Bounds() != tt.want {
				t.Errorf("bounds = %v, want %v", dst.Bounds(), tt.want)
			}
		})
	}
}

func TestBoxGeometry(t *testing.T) {
	g := NewBoxGeometry()
	if len(g.Positions) != 24 || len(g.Normals) != 24 || len(g.UVs) != 24 {
		t.Fatalf("vertices = %d/%d/%d, want 24", len(g.Positions), len(g.Normals), len(g.UVs))
	}
	if len(g.Indices) != 36 {
		t.Fatalf("indices = %d, want 36", len(g.Indices))
	}
	if len(g.Groups) != 6 {
		t.Fatalf("groups = %d, want 6", len(g.Groups))
	}
	for i, grp := range g.Groups {
		if grp.MaterialIndex != i || grp.Count != 6 || grp.Start != 6*i {
			t.Errorf("group %d = %+v", i, grp)
		}
	}
	for i, p := range g.Positions {
		for _, c := range p {
			if c != 0.5 && c != -0.5 {
				t.Fatalf("position %d = %v, not a unit cube corner", i, p)
			}
		}
		// Every vertex lies on the plane of its face.
		if n := g.Normals[i]; p.Dot(n) != 0.5 {
			t.Errorf("vertex %d %v not on face with normal %v", i, p, n)
		}
	}
	for _, idx := range g.Indices {
		if int(idx) >= len(g.Positions) {
			t.Fatalf("index %d out of range", idx)
		}
	}
	if n := g.Normals[4*int(FaceLeft)]; n != (mgl32.Vec3{1, 0, 0}) {
		t.Errorf("left normal = %v", n)
	}

	g.Dispose()
	g.Dispose()
	if !g.Disposed() || g.Positions != nil || g.Indices != nil {
		t.Error("Dispose should drop vertex data")
	}
}
