package recording

import (
	"github.com/gogpu/ggui/render"
	"golang.org/x/image/math/f32"
)

// CommandType identifies the type of a command.
type CommandType uint8

const (
	// Frame commands
	CmdBeginFrame CommandType = iota // Start a frame
	CmdEndFrame                      // End a frame

	// Texture commands
	CmdNewTexture     // Create a texture
	CmdUpload         // Upload texture pixels
	CmdBindTexture    // Bind a texture for sampling
	CmdDestroyTexture // Destroy a texture

	// Drawing commands
	CmdSetScissor // Set the scissor rectangle
	CmdDraw       // Draw a triangle list from a ring slot
)

// commandTypeNames maps CommandType values to their string representation.
var commandTypeNames = [...]string{
	CmdBeginFrame:     "BeginFrame",
	CmdEndFrame:       "EndFrame",
	CmdNewTexture:     "NewTexture",
	CmdUpload:         "Upload",
	CmdBindTexture:    "BindTexture",
	CmdDestroyTexture: "DestroyTexture",
	CmdSetScissor:     "SetScissor",
	CmdDraw:           "Draw",
}

// String returns the string representation of a CommandType.
func (c CommandType) String() string {
	if int(c) < len(commandTypeNames) {
		return commandTypeNames[c]
	}
	return "Unknown"
}

// Command is the interface implemented by all command types.
type Command interface {
	// Type returns the CommandType for this command.
	Type() CommandType
}

// TextureID identifies a recorded texture. IDs start at 1; NoTexture means
// unbound.
type TextureID uint32

// NoTexture is the ID recorded when nothing is bound.
const NoTexture TextureID = 0

// BeginFrameCommand starts a frame.
type BeginFrameCommand struct {
	Width, Height int
	Projection    f32.Mat4
}

// Type implements Command.
func (BeginFrameCommand) Type() CommandType { return CmdBeginFrame }

// EndFrameCommand ends a frame.
type EndFrameCommand struct{}

// Type implements Command.
func (EndFrameCommand) Type() CommandType { return CmdEndFrame }

// NewTextureCommand creates a texture.
type NewTextureCommand struct {
	Texture       TextureID
	Width, Height int
}

// Type implements Command.
func (NewTextureCommand) Type() CommandType { return CmdNewTexture }

// UploadCommand replaces the pixels of a texture.
type UploadCommand struct {
	Texture TextureID
	// Pixels is a copy of the uploaded RGBA8 data.
	Pixels []byte
}

// Type implements Command.
func (UploadCommand) Type() CommandType { return CmdUpload }

// BindTextureCommand binds a texture, or unbinds with NoTexture.
type BindTextureCommand struct {
	Texture TextureID
}

// Type implements Command.
func (BindTextureCommand) Type() CommandType { return CmdBindTexture }

// DestroyTextureCommand destroys a texture.
type DestroyTextureCommand struct {
	Texture TextureID
}

// Type implements Command.
func (DestroyTextureCommand) Type() CommandType { return CmdDestroyTexture }

// SetScissorCommand sets the scissor rectangle in the recorder's origin.
type SetScissorCommand struct {
	Rect render.Rect
}

// Type implements Command.
func (SetScissorCommand) Type() CommandType { return CmdSetScissor }

// DrawCommand is one draw call.
type DrawCommand struct {
	// Slot is the vertex buffer ring slot the vertices were written to.
	Slot int
	// Texture is the texture bound at draw time.
	Texture TextureID
	// Vertices is a copy of the drawn vertices.
	Vertices []render.Vertex
}

// Type implements Command.
func (DrawCommand) Type() CommandType { return CmdDraw }
