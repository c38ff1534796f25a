package lisp

import (
	"fmt"
	"io"
)

// CallStack records the functions being applied.
type CallStack struct {
	Frames []CallFrame
}

// CallFrame is one frame in the CallStack
type CallFrame struct {
	Name string
	Type LType // LPrimitive or LClosure
}

func (f CallFrame) String() string {
	return fmt.Sprintf("%s %s", f.Type, f.Name)
}

// Copy creates a copy of the current stack so that it can be attached to an
// error.
func (s *CallStack) Copy() *CallStack {
	frames := make([]CallFrame, len(s.Frames))
	copy(frames, s.Frames)
	return &CallStack{frames}
}

// Top returns the CallFrame at the top of the stack or nil if none exists.
func (s *CallStack) Top() *CallFrame {
	if s == nil || len(s.Frames) == 0 {
		return nil
	}
	return &s.Frames[len(s.Frames)-1]
}

// Len returns the number of frames on the stack.
func (s *CallStack) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Frames)
}

// Push pushes a frame for the callable fn onto s.
func (s *CallStack) Push(fn Callable) {
	s.Frames = append(s.Frames, CallFrame{Name: fn.Name(), Type: fn.Type()})
}

// Pop removes the top CallFrame from the stack and returns it.  Pop panics
// if the stack is empty.
func (s *CallStack) Pop() CallFrame {
	if len(s.Frames) < 1 {
		panic("pop called on an empty stack")
	}
	f := s.Frames[len(s.Frames)-1]
	s.Frames[len(s.Frames)-1] = CallFrame{}
	s.Frames = s.Frames[:len(s.Frames)-1]
	return f
}

// DebugPrint prints s
func (s *CallStack) DebugPrint(w io.Writer) (int, error) {
	n, err := fmt.Fprintf(w, "Stack Trace [%d frames -- entrypoint last]:\n", s.Len())
	if err != nil {
		return n, err
	}
	for i := s.Len() - 1; i >= 0; i-- {
		_n, err := fmt.Fprintf(w, "  height %d: %v\n", i, s.Frames[i])
		n += _n
		if err != nil {
			return n, err
		}
	}
	return n, nil
}
