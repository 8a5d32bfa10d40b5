// SPDX-License-Identifier: Unlicense OR MIT

package hal

import (
	"image"

	"github.com/gogpu/gputypes"
)

// RenderState is an immutable snapshot of the fixed function state a
// pipeline draws with.
type RenderState struct {
	Blend     BlendState
	ColorMask gputypes.ColorWriteMask

	CullMode  gputypes.CullMode
	FrontFace gputypes.FrontFace
	Topology  gputypes.PrimitiveTopology
	LineWidth float32

	ScissorTest bool
	// SRGB enables linear to sRGB conversion on write. Only desktop
	// drivers with sRGB framebuffers honor it.
	SRGB bool

	DepthTest  bool
	DepthWrite bool
	DepthFunc  gputypes.CompareFunction
	DepthBias  DepthBias

	Stencil StencilState
}

type BlendState struct {
	Enable bool
	Color  gputypes.BlendComponent
	Alpha  gputypes.BlendComponent
}

// DepthBias is applied through polygon offset.
type DepthBias struct {
	Enable     bool
	Constant   float32
	SlopeScale float32
}

type StencilState struct {
	Enable bool
	Front  StencilFaceState
	Back   StencilFaceState
}

type StencilFaceState struct {
	Compare     gputypes.CompareFunction
	FailOp      gputypes.StencilOperation
	DepthFailOp gputypes.StencilOperation
	PassOp      gputypes.StencilOperation
	Reference   uint32
	ReadMask    uint32
	WriteMask   uint32
}

// DefaultRenderState returns the state a driver context starts in,
// after the backend has initialized it.
func DefaultRenderState() RenderState {
	face := StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      gputypes.StencilOperationKeep,
		DepthFailOp: gputypes.StencilOperationKeep,
		PassOp:      gputypes.StencilOperationKeep,
		ReadMask:    0xFFFFFFFF,
		WriteMask:   0xFFFFFFFF,
	}
	blend := gputypes.BlendComponent{
		SrcFactor: gputypes.BlendFactorSrcAlpha,
		DstFactor: gputypes.BlendFactorOneMinusSrcAlpha,
		Operation: gputypes.BlendOperationAdd,
	}
	return RenderState{
		Blend:      BlendState{Color: blend, Alpha: blend},
		ColorMask:  gputypes.ColorWriteMaskAll,
		CullMode:   gputypes.CullModeBack,
		FrontFace:  gputypes.FrontFaceCW,
		Topology:   gputypes.PrimitiveTopologyTriangleList,
		LineWidth:  1,
		DepthTest:  true,
		DepthWrite: true,
		DepthFunc:  gputypes.CompareFunctionLessEqual,
		Stencil:    StencilState{Front: face, Back: face},
	}
}

// StencilFace returns the state of a single face. FaceFrontAndBack
// reports the front face.
func (s *RenderState) StencilFace(f Face) *StencilFaceState {
	if f == FaceBack {
		return &s.Stencil.Back
	}
	return &s.Stencil.Front
}

// ContextState is the driver state a Context believes to be current.
// State changes are computed as differences against it.
type ContextState struct {
	// Render is the captured fixed function state, including the
	// dynamic stencil references and masks.
	Render RenderState

	Viewport image.Rectangle
	// Scissor is in top-left origin coordinates.
	Scissor image.Rectangle

	ClearColor   gputypes.Color
	ClearDepth   float32
	ClearStencil int
}

// DefaultContextState returns the state of a freshly initialized
// context whose default framebuffer is size.
func DefaultContextState(size image.Point) ContextState {
	r := image.Rectangle{Max: size}
	return ContextState{
		Render:     DefaultRenderState(),
		Viewport:   r,
		Scissor:    r,
		ClearDepth: 1,
	}
}
