package raster

import "github.com/gorender/core/container"

// MaxColorAttachments is the slot count spec.md §3 names: "Up to 8 colour
// attachments + optional depth-stencil".
const MaxColorAttachments = 8

// Attachment is one color or depth render target: a blocked 2-D pixel
// array sized to the framebuffer's resolution.
type Attachment struct {
	Width, Height int
	color         *container.BlockedArray2[RGBA]
	depth         *container.BlockedArray2[float64]
}

// NewColorAttachment creates a color render target.
func NewColorAttachment(width, height int) *Attachment {
	return &Attachment{Width: width, Height: height, color: container.NewBlockedArray2[RGBA](width, height, 6)}
}

// NewDepthAttachment creates a depth render target, initialized to +Inf
// (spec.md §4.7's depth compares against a "far" sentinel until written).
func NewDepthAttachment(width, height int) *Attachment {
	a := &Attachment{Width: width, Height: height, depth: container.NewBlockedArray2[float64](width, height, 6)}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			a.depth.Set(x, y, 1) // NDC far plane after perspective divide
		}
	}
	return a
}

// FrameBuffer binds up to MaxColorAttachments color attachments plus one
// optional depth attachment (spec.md §3 "FrameBuffer (rasterizer)").
// attach/detach set a dirty flag; bind/unbind acquire and release the raw
// per-attachment access a draw call observes for its duration (spec.md §6
// "Framebuffer bind/unbind protocol").
type FrameBuffer struct {
	colors [MaxColorAttachments]*Attachment
	depth  *Attachment
	dirty  bool
	bound  bool
}

// Attach binds a color attachment to slot, marking the framebuffer dirty
// so the next Bind re-resolves attachment pointers.
func (fb *FrameBuffer) Attach(slot int, a *Attachment) {
	debugAssertSlot(slot)
	fb.colors[slot] = a
	fb.dirty = true
}

// Detach clears slot.
func (fb *FrameBuffer) Detach(slot int) {
	debugAssertSlot(slot)
	fb.colors[slot] = nil
	fb.dirty = true
}

// AttachDepth binds the depth attachment.
func (fb *FrameBuffer) AttachDepth(a *Attachment) {
	fb.depth = a
	fb.dirty = true
}

// Bind marks the framebuffer as observed by an in-flight draw call. A
// draw between Bind and Unbind sees fixed attachments: attaching or
// detaching while bound is a programmer error (spec.md §7).
func (fb *FrameBuffer) Bind() {
	if fb.bound {
		panic("gorender: framebuffer double-bound")
	}
	fb.bound = true
}

// Unbind releases the framebuffer, allowing Attach/Detach again.
func (fb *FrameBuffer) Unbind() {
	fb.bound = false
}

// Color returns the bound color attachment at slot, or nil.
func (fb *FrameBuffer) Color(slot int) *Attachment {
	debugAssertSlot(slot)
	return fb.colors[slot]
}

// Depth returns the bound depth attachment, or nil.
func (fb *FrameBuffer) Depth() *Attachment { return fb.depth }

func debugAssertSlot(slot int) {
	if slot < 0 || slot >= MaxColorAttachments {
		panic("gorender: color attachment slot out of range")
	}
}

// Get/Set read and write one pixel of a color attachment.
func (a *Attachment) Get(x, y int) RGBA      { return a.color.Get(x, y) }
func (a *Attachment) Set(x, y int, c RGBA)   { a.color.Set(x, y, c) }

// GetDepth/SetDepth read and write one pixel of a depth attachment.
func (a *Attachment) GetDepth(x, y int) float64    { return a.depth.Get(x, y) }
func (a *Attachment) SetDepth(x, y int, z float64) { a.depth.Set(x, y, z) }
