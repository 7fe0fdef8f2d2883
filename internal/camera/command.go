package camera

import "cardboard/internal/geom"

// Op names a camera movement.
type Op int

const (
	// Pan translates eye and target sideways along the horizontal axis.
	Pan Op = iota
	// Dolly moves the eye along the view axis; the target stays.
	Dolly
	// OrbitYaw rotates the eye around the vertical axis through the target.
	OrbitYaw
	// OrbitPitch rotates the eye around the horizontal axis through the target.
	OrbitPitch
	// Look swings the target around the eye (mouse look in follow mode).
	Look
	// Push moves the target along the view axis.
	Push
)

func (o Op) String() string {
	switch o {
	case Pan:
		return "pan"
	case Dolly:
		return "dolly"
	case OrbitYaw:
		return "orbit-yaw"
	case OrbitPitch:
		return "orbit-pitch"
	case Look:
		return "look"
	case Push:
		return "push"
	}
	return "unknown"
}

// Key is an abstract navigation key, independent of the input library.
type Key int

const (
	KeyLeft Key = iota
	KeyRight
	KeyUp
	KeyDown
)

type Modifier int

const (
	ModNone Modifier = iota
	ModCtrl
)

const (
	// Step is the translation applied by one key press or wheel notch.
	Step = 1.2 * 2.0
	// StepRot is the rotation applied by one key press, in radians (2°).
	StepRot = 0.0174533 * 2.0
)

// Command is a resolved camera movement. Amount is a distance for Pan, Dolly
// and Push and an angle in radians for the orbits. DX/DY are degrees for Look.
type Command struct {
	Op     Op
	Amount float64
	DX, DY float64
}

// ForKey maps an arrow key to its movement; naked keys translate, ctrl orbits
// the eye around the target.
func ForKey(key Key, mod Modifier) (Command, bool) {
	ctrl := mod == ModCtrl
	switch key {
	case KeyLeft:
		if ctrl {
			return Command{Op: OrbitYaw, Amount: StepRot}, true
		}
		return Command{Op: Pan, Amount: Step}, true
	case KeyRight:
		if ctrl {
			return Command{Op: OrbitYaw, Amount: -StepRot}, true
		}
		return Command{Op: Pan, Amount: -Step}, true
	case KeyUp:
		if ctrl {
			return Command{Op: OrbitPitch, Amount: -StepRot}, true
		}
		return Command{Op: Dolly, Amount: -Step}, true
	case KeyDown:
		if ctrl {
			return Command{Op: OrbitPitch, Amount: StepRot}, true
		}
		return Command{Op: Dolly, Amount: Step}, true
	}
	return Command{}, false
}

// ForMotion turns a relative pointer motion into a Look by that many degrees.
func ForMotion(xrel, yrel int) Command {
	return Command{Op: Look, DX: float64(xrel), DY: float64(yrel)}
}

// ForWheel pushes the target along the view axis by Step per notch.
func ForWheel(y int) Command {
	return Command{Op: Push, Amount: Step * float64(y)}
}

func (c Camera) Apply(cmd Command) Camera {
	switch cmd.Op {
	case Pan:
		return c.MoveCam(c.SideMov(cmd.Amount))
	case Dolly:
		return c.MoveEye(c.AxisMov(cmd.Amount))
	case OrbitYaw:
		return c.RotateEye(geom.VerticalAxis(), cmd.Amount)
	case OrbitPitch:
		return c.RotateEye(c.HorizontalAxis(), cmd.Amount)
	case Look:
		return c.RotateTarget(cmd.DX, cmd.DY)
	case Push:
		return c.MoveTarget(c.AxisMov(cmd.Amount))
	}
	return c
}
