package bvh

import (
	"sort"
	"time"

	"github.com/mncc8337/shrimpy/log"
	"github.com/mncc8337/shrimpy/types"
)

type Axis uint8

const (
	XAxis Axis = iota
	YAxis
	ZAxis
)

const (
	// The maximum number of triangle indices a leaf can carry. This is
	// also the serialized size of the per-leaf index array so it must
	// match the node layout expected by the shader.
	LeafCapacity = 7

	// Node bbox axes thinner than this threshold are inflated so the
	// shader's slab test never sees a zero-thickness interval.
	minSideLength float32 = 1e-4

	// Padding applied to each side of a degenerate bbox axis.
	degenerateAxisPad float32 = 0.01
)

// The BoundedVolume interface is implemented by all primitives that can
// be partitioned by the bvh builder.
type BoundedVolume interface {
	BBox() [2]types.Vec3
	Center() types.Vec3
}

// A bvh node. The layout mirrors the GPU buffer: TriangleCount == 0 marks
// an internal node whose Child1/Child2 index other node slots; a non-zero
// TriangleCount marks a leaf whose first TriangleCount TriangleIDs index
// the scene triangle list.
type Node struct {
	Min    types.Vec3
	Child1 uint32

	Max    types.Vec3
	Child2 uint32

	TriangleCount uint32
	TriangleIDs   [LeafCapacity]uint32
}

// Set bounding box.
func (n *Node) SetBBox(bbox [2]types.Vec3) {
	n.Min = bbox[0]
	n.Max = bbox[1]
}

// Set left and right child node indices.
func (n *Node) SetChildNodes(left, right uint32) {
	n.Child1 = left
	n.Child2 = right
}

// Set the triangle indices carried by a leaf.
func (n *Node) SetLeafItems(indices []uint32) {
	n.TriangleCount = uint32(len(indices))
	copy(n.TriangleIDs[:], indices)
}

// Check whether this node is a leaf.
func (n *Node) Leaf() bool {
	return n.TriangleCount > 0
}

type stats struct {
	partitionedItems int
	totalItems       int
	nodes            int
	leafs            int
	maxDepth         int
}

type builder struct {
	logger log.Logger

	// The partitioned volumes. Read-only during the build; ordering is
	// expressed through the index permutation instead.
	items []BoundedVolume

	// Bvh nodes stored as a contiguous list.
	nodes []Node

	// The maximum number of items a leaf can hold.
	maxLeafItems int

	// Stats
	stats stats
}

// Construct a BVH from a set of bounded volumes by recursive median
// splits along the dominant bbox axis.
//
// The indices slice is a mutable permutation over items; it is reordered
// in place so that the indices carried by each leaf form contiguous runs.
// Items themselves are never reordered. maxLeafItems bounds the number of
// items per leaf and must not exceed LeafCapacity.
//
// Returns the index of the tree root (always 0) and the node list. The
// node list is laid out depth-first with every parent preceding its
// children, so child references are plain array indices and the list can
// be copied to the GPU without fix-up. The builder assumes a non-empty
// index set and finite geometry.
func Build(items []BoundedVolume, indices []uint32, maxLeafItems int) (uint32, []Node) {
	if maxLeafItems > LeafCapacity {
		maxLeafItems = LeafCapacity
	}

	b := &builder{
		logger:       log.New("bvh builder"),
		items:        items,
		nodes:        make([]Node, 0, 2*len(indices)/maxLeafItems+1),
		maxLeafItems: maxLeafItems,
		stats: stats{
			totalItems: len(indices),
		},
	}

	start := time.Now()
	root := b.partition(indices, 0)
	b.logger.Debugf(
		"BVH tree build time: %d us, maxDepth: %d, nodes: %d, leafs: %d",
		time.Since(start).Nanoseconds()/1e3,
		b.stats.maxDepth, b.stats.nodes, b.stats.leafs,
	)
	return root, b.nodes
}

// Partition an index subset and return the node index of the subtree root.
func (b *builder) partition(indices []uint32, depth int) uint32 {
	if depth > b.stats.maxDepth {
		b.stats.maxDepth = depth
	}

	// Calculate the union bounding box over the subset.
	bbox := b.items[indices[0]].BBox()
	for _, itemIndex := range indices[1:] {
		itemBBox := b.items[itemIndex].BBox()
		bbox[0] = types.MinVec3(bbox[0], itemBBox[0])
		bbox[1] = types.MaxVec3(bbox[1], itemBBox[1])
	}

	// Inflate degenerate axes so the box always has volume.
	for axis := XAxis; axis <= ZAxis; axis++ {
		if bbox[1][axis]-bbox[0][axis] < minSideLength {
			bbox[0][axis] -= degenerateAxisPad
			bbox[1][axis] += degenerateAxisPad
		}
	}

	// Do we have few enough items for a leaf?
	if len(indices) <= b.maxLeafItems {
		return b.createLeaf(bbox, indices)
	}

	// Split along the axis with the greatest extent; ties prefer x, then y.
	side := bbox[1].Sub(bbox[0])
	splitAxis := XAxis
	if side[YAxis] > side[splitAxis] {
		splitAxis = YAxis
	}
	if side[ZAxis] > side[splitAxis] {
		splitAxis = ZAxis
	}

	sort.Slice(indices, func(i, j int) bool {
		return b.items[indices[i]].Center()[splitAxis] < b.items[indices[j]].Center()[splitAxis]
	})

	// Reserve the node slot before recursing so the parent always
	// precedes its children in the flat list.
	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, Node{})
	b.stats.nodes++

	mid := len(indices) / 2
	leftIndex := b.partition(indices[:mid], depth+1)
	rightIndex := b.partition(indices[mid:], depth+1)

	node := &b.nodes[nodeIndex]
	node.SetBBox(bbox)
	node.SetChildNodes(leftIndex, rightIndex)

	return nodeIndex
}

// Emit a leaf node carrying the subset indices verbatim. Returns the
// index of the node in the bvh node list.
func (b *builder) createLeaf(bbox [2]types.Vec3, indices []uint32) uint32 {
	var node Node
	node.SetBBox(bbox)
	node.SetLeafItems(indices)

	nodeIndex := uint32(len(b.nodes))
	b.nodes = append(b.nodes, node)

	b.stats.nodes++
	b.stats.leafs++
	b.stats.partitionedItems += len(indices)

	return nodeIndex
}
