package scene

import "github.com/mncc8337/shrimpy/types"

// A sphere primitive. Spheres are tested exhaustively by the shader and
// are not indexed by the BVH.
type Sphere struct {
	Center     types.Vec3
	Radius     float32
	MaterialID uint32
}

// Create a new sphere primitive.
func NewSphere(center types.Vec3, radius float32, materialID uint32) Sphere {
	return Sphere{
		Center:     center,
		Radius:     radius,
		MaterialID: materialID,
	}
}

// A triangle primitive.
type Triangle struct {
	V0, V1, V2 types.Vec3
	MaterialID uint32
}

// Create a new triangle primitive.
func NewTriangle(vertices [3]types.Vec3, materialID uint32) Triangle {
	return Triangle{
		V0:         vertices[0],
		V1:         vertices[1],
		V2:         vertices[2],
		MaterialID: materialID,
	}
}

// Get the tight axis-aligned bounding box through the three vertices.
// No epsilon inflation is applied at this stage.
func (t Triangle) BBox() [2]types.Vec3 {
	return [2]types.Vec3{
		types.MinVec3(t.V0, types.MinVec3(t.V1, t.V2)),
		types.MaxVec3(t.V0, types.MaxVec3(t.V1, t.V2)),
	}
}

// Get the unweighted triangle centroid. Used purely as an ordering key
// when partitioning triangles.
func (t Triangle) Center() types.Vec3 {
	return t.V0.Add(t.V1).Add(t.V2).Mul(1.0 / 3.0)
}
