package status

import "fmt"

// OpenGL error enums as returned by glGetError.
const (
	GLNoError                     uint32 = 0
	GLInvalidEnum                 uint32 = 0x0500
	GLInvalidValue                uint32 = 0x0501
	GLInvalidOperation            uint32 = 0x0502
	GLStackOverflow               uint32 = 0x0503
	GLStackUnderflow              uint32 = 0x0504
	GLOutOfMemory                 uint32 = 0x0505
	GLInvalidFramebufferOperation uint32 = 0x0506
	GLContextLost                 uint32 = 0x0507
)

var glNames = map[uint32]string{
	GLNoError:                     "GL_NO_ERROR",
	GLInvalidEnum:                 "GL_INVALID_ENUM",
	GLInvalidValue:                "GL_INVALID_VALUE",
	GLInvalidOperation:            "GL_INVALID_OPERATION",
	GLStackOverflow:               "GL_STACK_OVERFLOW",
	GLStackUnderflow:              "GL_STACK_UNDERFLOW",
	GLOutOfMemory:                 "GL_OUT_OF_MEMORY",
	GLInvalidFramebufferOperation: "GL_INVALID_FRAMEBUFFER_OPERATION",
	GLContextLost:                 "GL_CONTEXT_LOST",
}

// GLName returns the enum name of a glGetError value.
func GLName(code uint32) string {
	if n, ok := glNames[code]; ok {
		return n
	}
	return fmt.Sprintf("GL_ERROR_%#04x", code)
}

// GLError is a non-zero glGetError result recorded after Op.
type GLError struct {
	Op   string
	Code uint32
}

func (e *GLError) Error() string {
	if e.Op == "" {
		return "gl: " + GLName(e.Code)
	}
	return fmt.Sprintf("gl: %s: %s", e.Op, GLName(e.Code))
}

// GL returns a *GLError for a non-zero code and nil otherwise.
func GL(op string, code uint32) error {
	if code == GLNoError {
		return nil
	}
	return &GLError{Op: op, Code: code}
}
