// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"image/draw"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// DeviceHandle is an alias for gpucontext.DeviceProvider, so any host that
// already integrates with the gpucontext ecosystem can be passed directly.
type DeviceHandle = gpucontext.DeviceProvider

// Device errors.
var (
	// ErrNoTextureCreator is returned when a Device has no texture creator.
	ErrNoTextureCreator = errors.New("render: device has no texture creator")

	// ErrEmptyImage is returned when uploading an image with no pixels.
	ErrEmptyImage = errors.New("render: image is empty")

	// ErrDeviceDestroyed is returned when using a destroyed device.
	ErrDeviceDestroyed = errors.New("render: device has been destroyed")
)

// Device uploads panorama face textures and owns the panorama shader
// module when the host exposes a HAL device.
//
// Device is safe for concurrent use.
type Device struct {
	provider DeviceHandle
	creator  gpucontext.TextureCreator
	format   gputypes.TextureFormat

	mu        sync.Mutex
	halDevice hal.Device
	shader    hal.ShaderModule
	shaderErr error
	compiled  bool
	destroyed bool
}

// NewDevice creates a Device backed by the host's texture creator.
// provider may be nil when the host does not expose a device.
func NewDevice(provider DeviceHandle, creator gpucontext.TextureCreator) *Device {
	return &Device{
		provider: provider,
		creator:  creator,
		format:   gputypes.TextureFormatRGBA8Unorm,
	}
}

// NewSoftwareDevice creates a Device that keeps textures in CPU memory.
// Used by headless tools and tests.
func NewSoftwareDevice() *Device {
	return NewDevice(nil, SoftwareTextureCreator{})
}

// Format returns the pixel format of textures created by this device.
func (d *Device) Format() gputypes.TextureFormat {
	return d.format
}

// CreateTexture uploads img as an RGBA8 texture.
// The label is only used in error messages.
func (d *Device) CreateTexture(img *image.RGBA, label string) (gpucontext.Texture, error) {
	if d.creator == nil {
		return nil, ErrNoTextureCreator
	}
	d.mu.Lock()
	destroyed := d.destroyed
	d.mu.Unlock()
	if destroyed {
		return nil, ErrDeviceDestroyed
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("render: %s: %w", label, ErrEmptyImage)
	}
	tex, err := d.creator.NewTextureFromRGBA(b.Dx(), b.Dy(), tightPixels(img))
	if err != nil {
		return nil, fmt.Errorf("render: create texture %s: %w", label, err)
	}
	return tex, nil
}

// PanoramaShader returns the shader module used to draw panorama cubes.
// The module is compiled on first use and shared by every panorama.
// Returns nil and no error when the host does not expose a HAL device;
// the host then draws with its own pipeline.
func (d *Device) PanoramaShader() (hal.ShaderModule, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.destroyed {
		return nil, ErrDeviceDestroyed
	}
	if d.compiled {
		return d.shader, d.shaderErr
	}
	d.compiled = true

	device := halDeviceOf(d.provider)
	if device == nil {
		return nil, nil
	}
	spirv, err := CompilePanoramaShader()
	if err != nil {
		d.shaderErr = err
		return nil, err
	}
	module, err := device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  "pano-cube",
		Source: hal.ShaderSource{SPIRV: spirv},
	})
	if err != nil {
		d.shaderErr = fmt.Errorf("render: create panorama shader module: %w", err)
		return nil, d.shaderErr
	}
	d.halDevice = device
	d.shader = module
	return module, nil
}

// Destroy releases the shader module. Textures are owned by the
// visualizations that created them and are not affected.
func (d *Device) Destroy() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.destroyed {
		return
	}
	d.destroyed = true
	if d.shader != nil && d.halDevice != nil {
		d.halDevice.DestroyShaderModule(d.shader)
	}
	d.shader = nil
	d.halDevice = nil
}

// halDeviceOf extracts the HAL device from providers that expose one.
func halDeviceOf(provider DeviceHandle) hal.Device {
	type halProvider interface {
		HalDevice() any
	}
	if provider == nil {
		return nil
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok {
		return nil
	}
	return device
}

// tightPixels returns img's pixels with a stride of exactly 4*width,
// copying only when img is a sub-image or padded.
func tightPixels(img *image.RGBA) []byte {
	b := img.Bounds()
	if b.Min == (image.Point{}) && img.Stride == 4*b.Dx() && len(img.Pix) == 4*b.Dx()*b.Dy() {
		return img.Pix
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	return dst.Pix
}
