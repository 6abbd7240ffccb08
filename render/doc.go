// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides the GPU integration layer for panorama textures.
//
// # Key Principle
//
// pano RECEIVES a GPU device from the host viewer, it does NOT create one.
// The host passes a DeviceHandle (gpucontext.DeviceProvider) and a
// gpucontext.TextureCreator; pano uploads face images through them and
// hands the resulting textures to the host scene.
//
// # Core Types
//
//   - Device: uploads face textures and owns the panorama shader module
//   - FaceMaterial: per-face texture plus the fixed pipeline state used for
//     panoramas (back faces, no depth test, alpha blending)
//   - PixmapTexture: CPU-backed texture used by NewSoftwareDevice
//
// # Usage
//
//	dev := render.NewDevice(host, host.TextureCreator())
//	defer dev.Destroy()
//
//	tex, err := dev.CreateTexture(rgba, "pano/st-1/left")
//
// Headless callers and tests use the software device:
//
//	dev := render.NewSoftwareDevice()
package render
