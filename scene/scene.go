package scene

import (
	"github.com/mncc8337/shrimpy/log"
	"github.com/mncc8337/shrimpy/scene/bvh"
)

// Scene storage capacities. These mirror the fixed-size arrays declared
// by the shader's uniform buffer; the shader cannot parse variable-length
// data so the capacities are part of the cross-boundary contract.
const (
	MaxMaterials = 64
	MaxSpheres   = 64
	MaxTriangles = 256
	MaxBvhNodes  = 96
)

// Scene owns the fixed-capacity primitive storage that backs the GPU
// uniform buffer. It is mutated only through the append operations and
// Build, and is exclusively owned by the application loop; no internal
// locking is performed.
//
// Materials must be appended before the geometry that references them;
// material indices are not validated on append.
type Scene struct {
	logger log.Logger

	materials [MaxMaterials]Material
	spheres   [MaxSpheres]Sphere
	triangles [MaxTriangles]Triangle
	bvhNodes  [MaxBvhNodes]bvh.Node

	materialCount int
	sphereCount   int
	triangleCount int
	nodeCount     int
}

// Create an empty scene.
func New() *Scene {
	return &Scene{
		logger: log.New("scene"),
	}
}

// Copy a material into the next free slot and return its index.
func (s *Scene) AddMaterial(mat Material) (uint32, error) {
	if s.materialCount == MaxMaterials {
		return 0, ErrMaterialsExceeded
	}
	s.materials[s.materialCount] = mat
	s.materialCount++
	return uint32(s.materialCount - 1), nil
}

// Append a sphere primitive.
func (s *Scene) AddSphere(sphere Sphere) error {
	if s.sphereCount == MaxSpheres {
		return ErrSpheresExceeded
	}
	s.spheres[s.sphereCount] = sphere
	s.sphereCount++
	return nil
}

// Append a triangle primitive.
func (s *Scene) AddTriangle(tri Triangle) error {
	if s.triangleCount == MaxTriangles {
		return ErrTrianglesExceeded
	}
	s.triangles[s.triangleCount] = tri
	s.triangleCount++
	return nil
}

// Append a list of triangle primitives. The append is all-or-nothing: if
// the list does not fit the scene is left unchanged.
func (s *Scene) AddTriangles(list []Triangle) error {
	if s.triangleCount+len(list) > MaxTriangles {
		return ErrTrianglesExceeded
	}
	copy(s.triangles[s.triangleCount:], list)
	s.triangleCount += len(list)
	return nil
}

// Rebuild the BVH over the current triangle set. Every call fully
// discards and regenerates the node array, so Build may be invoked after
// each scene edit. If the builder produces more nodes than the fixed
// storage can hold the previous tree is kept and ErrBvhNodesExceeded is
// returned.
func (s *Scene) Build() error {
	if s.triangleCount == 0 {
		s.nodeCount = 0
		for i := range s.bvhNodes {
			s.bvhNodes[i] = bvh.Node{}
		}
		return nil
	}

	workList := make([]bvh.BoundedVolume, s.triangleCount)
	indices := make([]uint32, s.triangleCount)
	for i := 0; i < s.triangleCount; i++ {
		workList[i] = s.triangles[i]
		indices[i] = uint32(i)
	}

	_, nodes := bvh.Build(workList, indices, bvh.LeafCapacity)
	if len(nodes) > MaxBvhNodes {
		s.logger.Errorf("bvh build produced %d nodes; storage holds %d", len(nodes), MaxBvhNodes)
		return ErrBvhNodesExceeded
	}

	s.nodeCount = copy(s.bvhNodes[:], nodes)

	// Clear stale slots left over from a previous, larger build so the
	// serialized form depends only on the current geometry.
	for i := s.nodeCount; i < MaxBvhNodes; i++ {
		s.bvhNodes[i] = bvh.Node{}
	}
	return nil
}

// Get the number of materials in the scene.
func (s *Scene) MaterialCount() int {
	return s.materialCount
}

// Get the number of spheres in the scene.
func (s *Scene) SphereCount() int {
	return s.sphereCount
}

// Get the number of triangles in the scene.
func (s *Scene) TriangleCount() int {
	return s.triangleCount
}

// Get the live portion of the bvh node list. The slice aliases scene
// storage and is invalidated by the next Build call.
func (s *Scene) BvhNodes() []bvh.Node {
	return s.bvhNodes[:s.nodeCount]
}

// Get the live portion of the triangle list.
func (s *Scene) Triangles() []Triangle {
	return s.triangles[:s.triangleCount]
}

// Get the live portion of the sphere list.
func (s *Scene) Spheres() []Sphere {
	return s.spheres[:s.sphereCount]
}

// Get the live portion of the material list.
func (s *Scene) Materials() []Material {
	return s.materials[:s.materialCount]
}
