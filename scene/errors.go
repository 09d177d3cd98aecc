package scene

import "errors"

var (
	ErrMaterialsExceeded = errors.New("scene: material capacity exceeded")
	ErrSpheresExceeded   = errors.New("scene: sphere capacity exceeded")
	ErrTrianglesExceeded = errors.New("scene: triangle capacity exceeded")
	ErrBvhNodesExceeded  = errors.New("scene: bvh node capacity exceeded")
)
