// SPDX-License-Identifier: Unlicense OR MIT

// Package hal defines the contracts between rendering code and a
// graphics backend: immutable pipelines, descriptor sets, typed formats
// and framebuffer layouts, created by a Device and bound through a
// Context.
//
// Backends register themselves with the API registry; see NewDevice.
package hal

import (
	"image"

	"gioui.org/shader"
	"github.com/gogpu/gputypes"
)

// Device creates resources and reports driver capabilities. Every
// resource it creates becomes invalid when the Device is released.
type Device interface {
	Caps() Caps
	// Lookup returns the live resource for h. Handles of released
	// resources fail with ErrStaleHandle.
	Lookup(h Handle) (Resource, error)

	NewShader(desc ShaderDesc) (Shader, error)
	NewProgram(desc ProgramDesc) (Program, error)
	NewTexture(desc TextureDesc) (Texture, error)
	NewSampler(desc SamplerDesc) (Sampler, error)
	NewBuffer(desc BufferDesc) (Buffer, error)
	NewFramebufferLayout(desc FramebufferLayoutDesc) (FramebufferLayout, error)
	NewFramebuffer(desc FramebufferDesc) (Framebuffer, error)
	NewRenderState(desc RenderState) (RenderStateObject, error)
	NewInputLayout(desc InputLayoutDesc) (InputLayout, error)
	NewDescriptorSetLayout(desc DescriptorSetLayoutDesc) (DescriptorSetLayout, error)
	NewDescriptorSet(desc DescriptorSetDesc) (DescriptorSet, error)
	NewPipeline(desc PipelineDesc) (Pipeline, error)
	NewSwapchain(desc SwapchainDesc) (Swapchain, error)
	NewContext(desc ContextDesc) (Context, error)

	Release()
}

// Resource is implemented by every object a Device creates.
type Resource interface {
	Kind() Kind
	Handle() Handle
	// Release frees the native object. Releasing twice is a no-op.
	Release()
}

type Shader interface {
	Resource
	Desc() ShaderDesc
}

// Program is a linked set of shaders together with the attributes and
// uniforms recovered from the driver.
type Program interface {
	Resource
	Desc() ProgramDesc
	Attributes() []Attribute
	Uniforms() []*Uniform
}

type Texture interface {
	Resource
	Desc() TextureDesc
	// Upload replaces the pixels of rect in the given mip level and
	// cube face. Face is ignored for 2D textures.
	Upload(level, face int, rect image.Rectangle, pixels []byte) error
}

type Sampler interface {
	Resource
	Desc() SamplerDesc
}

type Buffer interface {
	Resource
	Desc() BufferDesc
	Upload(offset int, data []byte) error
	// Download copies the buffer contents starting at offset into data.
	Download(offset int, data []byte) error
}

type FramebufferLayout interface {
	Resource
	Desc() FramebufferLayoutDesc
}

type Framebuffer interface {
	Resource
	Desc() FramebufferDesc
}

type RenderStateObject interface {
	Resource
	State() RenderState
}

type InputLayout interface {
	Resource
	Desc() InputLayoutDesc
}

type DescriptorSetLayout interface {
	Resource
	Desc() DescriptorSetLayoutDesc
}

// DescriptorSet holds one value slot per uniform of its layout. The
// number and types of the slots never change.
type DescriptorSet interface {
	Resource
	Desc() DescriptorSetDesc
	Slots() []*Slot
	// Slot returns the slot of the named uniform, or nil.
	Slot(name string) *Slot
	// Copy copies slot values from each of the sets in turn, matching
	// slots by uniform identity.
	Copy(sets ...DescriptorSet)
}

type Pipeline interface {
	Resource
	Desc() PipelineDesc
}

type Swapchain interface {
	Resource
	Desc() SwapchainDesc
	// Resize changes the size of the default framebuffer.
	Resize(width, height int) error
	SetSwapInterval(interval SwapInterval) error
	Present() error
}

// Context issues state changes and draws. All methods execute on the
// calling thread, which must have the context's surface locked.
type Context interface {
	Resource
	Desc() ContextDesc
	// State returns a copy of the captured state.
	State() ContextState

	SetViewport(r image.Rectangle)
	Viewport() image.Rectangle
	// SetScissor sets the scissor rectangle in top-left origin
	// coordinates.
	SetScissor(r image.Rectangle)
	Scissor() image.Rectangle

	SetStencilCompareMask(face Face, mask uint32)
	StencilCompareMask(face Face) uint32
	SetStencilReference(face Face, ref uint32)
	StencilReference(face Face) uint32
	SetStencilWriteMask(face Face, mask uint32)
	StencilWriteMask(face Face) uint32

	SetRenderPipeline(p Pipeline)
	RenderPipeline() Pipeline
	SetDescriptorSet(s DescriptorSet)
	DescriptorSet() DescriptorSet
	SetVertexBuffer(slot int, b Buffer, offset int)
	VertexBuffer(slot int) Buffer
	SetIndexBuffer(b Buffer, offset int, f gputypes.IndexFormat)
	IndexBuffer() Buffer

	// SetFramebuffer binds fb for rendering. A nil fb selects the
	// default framebuffer of the swapchain.
	SetFramebuffer(fb Framebuffer)
	Framebuffer() Framebuffer
	ClearFramebuffer(flags ClearFlags, color gputypes.Color, depth float32, stencil int)
	// BlitFramebuffer copies color from src to dst with nearest
	// filtering. A nil framebuffer names the default framebuffer.
	BlitFramebuffer(src Framebuffer, srcRect image.Rectangle, dst Framebuffer, dstRect image.Rectangle) error
	// ReadFramebuffer reads back rect of the bound framebuffer.
	ReadFramebuffer(rect image.Rectangle) (*image.RGBA, error)
	GenerateMipmap(t Texture)

	Draw(vertexCount, firstVertex int)
	DrawIndexed(indexCount, firstIndex int)
	Present() error
}

// Attribute is a vertex shader input recovered by reflection.
type Attribute struct {
	Name          string
	Semantic      string
	SemanticIndex int
	Format        gputypes.VertexFormat
	Location      int
}

type ShaderDesc struct {
	Stage gputypes.ShaderStage
	// Source carries the GLSL variants and input annotations of the
	// stage.
	Source shader.Sources
}

type ProgramDesc struct {
	Shaders []Shader
}

type TextureDesc struct {
	Label     string
	Width     int
	Height    int
	Dimension gputypes.TextureViewDimension
	Format    gputypes.TextureFormat
	// MipLevels is the number of levels to allocate. Zero and one
	// allocate a single level.
	MipLevels int
	// Sampler is the sampler state stored with the texture until a
	// descriptor set binds another sampler.
	Sampler SamplerDesc
	// Data holds the initial pixels, face major: for each face, one
	// entry per mip level. Missing entries leave the level undefined.
	Data [][]byte
	// GenerateMipmaps fills levels beyond the supplied data.
	GenerateMipmaps bool
}

// Levels returns the number of allocated mip levels.
func (d TextureDesc) Levels() int {
	if d.MipLevels < 1 {
		return 1
	}
	return d.MipLevels
}

// Faces returns 6 for cube textures and 1 otherwise.
func (d TextureDesc) Faces() int {
	if d.Dimension == gputypes.TextureViewDimensionCube {
		return 6
	}
	return 1
}

type SamplerDesc = gputypes.SamplerDescriptor

type BufferHint uint8

const (
	HintStatic BufferHint = iota
	HintDynamic
	HintStream
)

type BufferDesc struct {
	Label string
	// Usage must contain exactly one of BufferUsageVertex and
	// BufferUsageIndex.
	Usage gputypes.BufferUsage
	Hint  BufferHint
	Size  int
	// Data, if not nil, initializes the buffer. It must be Size bytes.
	Data []byte
}

type FramebufferLayoutDesc struct {
	Color []gputypes.TextureFormat
	// DepthStencil is TextureFormatUndefined for layouts without a
	// depth or stencil attachment.
	DepthStencil gputypes.TextureFormat
}

type Attachment struct {
	Texture Texture
	Level   int
	// Face selects the cube face of cube textures.
	Face int
}

type FramebufferDesc struct {
	Layout FramebufferLayout
	Width  int
	Height int
	Color  []Attachment
	// DepthStencil is optional; when nil and the layout has a depth
	// format, a renderbuffer is allocated.
	DepthStencil *Attachment
}

type VertexAttribute struct {
	Semantic      string
	SemanticIndex int
	Format        gputypes.VertexFormat
	Offset        int
	Slot          int
}

type VertexBinding struct {
	Slot int
	// Stride is the distance between vertices. Zero means tightly
	// packed.
	Stride   int
	StepMode gputypes.VertexStepMode
}

type InputLayoutDesc struct {
	Attributes []VertexAttribute
	Bindings   []VertexBinding
}

type DescriptorSetLayoutDesc struct {
	Uniforms []*Uniform
}

type DescriptorSetDesc struct {
	Layout DescriptorSetLayout
}

type PipelineDesc struct {
	State               RenderStateObject
	Program             Program
	InputLayout         InputLayout
	DescriptorSetLayout DescriptorSetLayout
}

type SwapInterval uint8

const (
	IntervalFree SwapInterval = iota
	IntervalVsync
	IntervalVsync2
)

// Frames returns the swap interval in display frames.
func (i SwapInterval) Frames() int {
	return int(i)
}

type SwapchainDesc struct {
	Surface      Surface
	Width        int
	Height       int
	Interval     SwapInterval
	ColorFormat  gputypes.TextureFormat
	DepthStencil gputypes.TextureFormat
	ImageCount   int
	SampleCount  int
}

type ContextDesc struct {
	Swapchain Swapchain
}

// Surface is the platform presentation surface a Swapchain draws to.
type Surface interface {
	// Lock makes the surface's driver context current on the calling
	// thread.
	Lock() error
	Unlock()
	Present() error
	// Refresh recreates the surface after a resize.
	Refresh() error
	SetSwapInterval(frames int) error
	Release()
}

// Face selects stencil faces.
type Face uint8

const (
	FaceFront Face = 1 << iota
	FaceBack

	FaceFrontAndBack = FaceFront | FaceBack
)

type ClearFlags uint8

const (
	ClearColor ClearFlags = 1 << iota
	ClearDepth
	ClearStencil

	ClearAll = ClearColor | ClearDepth | ClearStencil
)
