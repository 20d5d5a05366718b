package posy

import "github.com/go-gl/mathgl/mgl64"

// computeLocalTransform computes the node's local matrix.
//
// Composition order:
//
//	Translate(X, Y, Z) * RotX * RotY * RotZ * Scale
func computeLocalTransform(n *Node) mgl64.Mat4 {
	m := mgl64.Translate3D(n.X, n.Y, n.Z)
	if n.RotX != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(n.RotX))
	}
	if n.RotY != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(n.RotY))
	}
	if n.RotZ != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(n.RotZ))
	}
	if n.ScaleX != 1 || n.ScaleY != 1 || n.ScaleZ != 1 {
		m = m.Mul4(mgl64.Scale3D(n.ScaleX, n.ScaleY, n.ScaleZ))
	}
	return m
}

// updateWorldTransform recomputes world matrices and alphas for n and its
// subtree. Invisible subtrees are skipped.
func updateWorldTransform(n *Node, parent mgl64.Mat4, parentAlpha float64) {
	if !n.Visible {
		return
	}
	n.world = parent.Mul4(computeLocalTransform(n))
	n.worldAlpha = parentAlpha * n.Alpha
	for _, child := range n.children {
		updateWorldTransform(child, n.world, n.worldAlpha)
	}
}

// WorldPosition returns the node origin in world space as of the last
// traversal.
func (n *Node) WorldPosition() mgl64.Vec3 {
	return n.world.Col(3).Vec3()
}

// WorldAlpha returns the accumulated alpha as of the last traversal.
func (n *Node) WorldAlpha() float64 {
	return n.worldAlpha
}

// LocalToWorld transforms a local-space point using the last computed world matrix.
func (n *Node) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return mgl64.TransformCoordinate(p, n.world)
}

// worldScale approximates the uniform world scale from the X basis vector.
func (n *Node) worldScale() float64 {
	return n.world.Col(0).Vec3().Len()
}
