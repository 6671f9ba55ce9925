package flightpath

import "fmt"

// Transform is the position, rotation, and scale of something in the world, plus its visibility.
// Rotation is a set of Euler angles in radians (see NewMatrix4RotateEuler).
type Transform struct {
	Position Vector3
	Rotation Vector3
	Scale    Vector3
	Visible  bool
	Alpha    float32 // Opacity, for actors that fade in and out; 1 is fully opaque
}

// NewTransform returns an identity Transform that's visible and opaque.
func NewTransform() Transform {
	return Transform{Scale: Vector3{1, 1, 1}, Visible: true, Alpha: 1}
}

// Matrix returns the Transform as a Matrix4 (scale, then rotate, then translate).
func (t Transform) Matrix() Matrix4 {
	return NewMatrix4Scale(t.Scale.X, t.Scale.Y, t.Scale.Z).
		Mult(NewMatrix4RotateEuler(t.Rotation)).
		Mult(NewMatrix4Translate(t.Position.X, t.Position.Y, t.Position.Z))
}

// Forward returns the direction the Transform's local +Z faces in world space.
func (t Transform) Forward() Vector3 {
	return NewMatrix4RotateEuler(t.Rotation).Forward()
}

// Actor is a handle to something the Stage writes transforms to. When Ready returns false (for example,
// because the model behind it is still loading), the Stage skips writing to it for that frame.
type Actor interface {
	Name() string
	Ready() bool
	Transform() Transform
	SetTransform(Transform)
}

// Node represents a minimal struct that fully implements the Actor interface. Camera embeds Node.
type Node struct {
	name      string
	transform Transform
	ready     bool
}

// NewNode returns a new Node, ready to be written to.
func NewNode(name string) *Node {
	return &Node{
		name:      name,
		transform: NewTransform(),
		ready:     true,
	}
}

// Name returns the object's name.
func (node *Node) Name() string {
	return node.name
}

// SetName sets the object's name.
func (node *Node) SetName(name string) {
	node.name = name
}

// Ready returns if the Node accepts transform writes.
func (node *Node) Ready() bool {
	return node.ready
}

// SetReady sets if the Node accepts transform writes.
func (node *Node) SetReady(ready bool) {
	node.ready = ready
}

// Transform returns a copy of the Node's Transform.
func (node *Node) Transform() Transform {
	return node.transform
}

// SetTransform sets the Node's Transform.
func (node *Node) SetTransform(transform Transform) {
	node.transform = transform
}

// Position returns the Node's position.
func (node *Node) Position() Vector3 {
	return node.transform.Position
}

// SetPosition sets the Node's position.
func (node *Node) SetPosition(position Vector3) {
	node.transform.Position = position
}

// Visible returns if the Node is visible.
func (node *Node) Visible() bool {
	return node.transform.Visible
}

// SetVisible sets the Node's visibility.
func (node *Node) SetVisible(visible bool) {
	node.transform.Visible = visible
}

func (node *Node) String() string {
	return fmt.Sprintf("%s %v", node.name, node.transform.Position)
}

var _ Actor = &Node{} // Sanity check to ensure Node implements Actor.
