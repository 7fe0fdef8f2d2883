// Package draw turns planes seen through a camera into an ordered list of
// 2-D path operations, farthest plane first.
package draw

import "fmt"

type Kind uint8

const (
	Begin Kind = iota
	Move
	Line
	Close
	Paint
)

func (k Kind) String() string {
	switch k {
	case Begin:
		return "Begin"
	case Move:
		return "Move"
	case Line:
		return "Line"
	case Close:
		return "Close"
	case Paint:
		return "Paint"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Op is one drawing instruction. X/Y are set for Move and Line; Layer and
// Index address the style for Paint.
type Op struct {
	Kind  Kind
	X, Y  float64
	Layer int
	Index int
}

func (o Op) String() string {
	switch o.Kind {
	case Move, Line:
		return fmt.Sprintf("%s(%g, %g)", o.Kind, o.X, o.Y)
	case Paint:
		return fmt.Sprintf("Paint(%d, %d)", o.Layer, o.Index)
	}
	return o.Kind.String()
}

type OpList []Op

// Kinds returns the kind sequence, mostly useful in tests and logs.
func (l OpList) Kinds() []Kind {
	out := make([]Kind, len(l))
	for i, o := range l {
		out[i] = o.Kind
	}
	return out
}
