// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"

	"github.com/gogpu/naga"
)

// panoramaShaderSource draws one face of a panorama cube. Face images are
// mirrored when uploaded, so UVs are used as-is.
const panoramaShaderSource = `
struct Uniforms {
    view_proj: mat4x4<f32>,
    model: mat4x4<f32>,
    opacity: f32,
    _pad0: f32,
    _pad1: f32,
    _pad2: f32,
}

@group(0) @binding(0) var<uniform> uniforms: Uniforms;
@group(0) @binding(1) var face_texture: texture_2d<f32>;
@group(0) @binding(2) var face_sampler: sampler;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) uv: vec2<f32>,
}

struct VertexOutput {
    @builtin(position) clip: vec4<f32>,
    @location(0) uv: vec2<f32>,
}

@vertex
fn vs_main(in: VertexInput) -> VertexOutput {
    var out: VertexOutput;
    out.clip = uniforms.view_proj * uniforms.model * vec4<f32>(in.position, 1.0);
    out.uv = in.uv;
    return out;
}

@fragment
fn fs_main(in: VertexOutput) -> @location(0) vec4<f32> {
    let color = textureSample(face_texture, face_sampler, in.uv);
    return vec4<f32>(color.rgb, color.a * uniforms.opacity);
}
`

// PanoramaShaderSource returns the WGSL source of the panorama cube shader.
func PanoramaShaderSource() string {
	return panoramaShaderSource
}

// CompilePanoramaShader compiles the panorama shader to SPIR-V words.
func CompilePanoramaShader() ([]uint32, error) {
	spirvBytes, err := naga.Compile(panoramaShaderSource)
	if err != nil {
		return nil, fmt.Errorf("render: compile panorama shader: %w", err)
	}

	// SPIR-V is little-endian 32-bit words
	spirv := make([]uint32, len(spirvBytes)/4)
	for i := range spirv {
		spirv[i] = uint32(spirvBytes[i*4]) |
			uint32(spirvBytes[i*4+1])<<8 |
			uint32(spirvBytes[i*4+2])<<16 |
			uint32(spirvBytes[i*4+3])<<24
	}
	return spirv, nil
}
