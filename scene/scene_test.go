package scene

import (
	"reflect"
	"testing"

	"github.com/mncc8337/shrimpy/types"
)

func makeTriangles(count int) []Triangle {
	list := make([]Triangle, count)
	for i := 0; i < count; i++ {
		x := float32(i)
		list[i] = NewTriangle([3]types.Vec3{
			{x, 0, 0},
			{x + 1, 0, 0},
			{x, 1, 0},
		}, 0)
	}
	return list
}

func TestMaterialCapacity(t *testing.T) {
	sc := New()
	for i := 0; i < MaxMaterials; i++ {
		id, err := sc.AddMaterial(DiffuseMaterial(types.XYZ(1, 1, 1), 1.0))
		if err != nil {
			t.Fatal(err)
		}
		if id != uint32(i) {
			t.Fatalf("expected material slot %d; got %d", i, id)
		}
	}

	if _, err := sc.AddMaterial(DiffuseMaterial(types.XYZ(1, 1, 1), 1.0)); err != ErrMaterialsExceeded {
		t.Fatalf("expected ErrMaterialsExceeded; got %v", err)
	}
}

func TestSphereCapacity(t *testing.T) {
	sc := New()
	for i := 0; i < MaxSpheres; i++ {
		if err := sc.AddSphere(NewSphere(types.XYZ(0, 0, 0), 1, 0)); err != nil {
			t.Fatal(err)
		}
	}

	if err := sc.AddSphere(NewSphere(types.XYZ(0, 0, 0), 1, 0)); err != ErrSpheresExceeded {
		t.Fatalf("expected ErrSpheresExceeded; got %v", err)
	}
}

func TestTriangleListAppendIsAllOrNothing(t *testing.T) {
	sc := New()
	if err := sc.AddTriangles(makeTriangles(250)); err != nil {
		t.Fatal(err)
	}

	if err := sc.AddTriangles(makeTriangles(7)); err != ErrTrianglesExceeded {
		t.Fatalf("expected ErrTrianglesExceeded; got %v", err)
	}
	if sc.TriangleCount() != 250 {
		t.Fatalf("expected failed append to leave the scene unchanged; got %d triangles", sc.TriangleCount())
	}

	if err := sc.AddTriangles(makeTriangles(6)); err != nil {
		t.Fatal(err)
	}
	if sc.TriangleCount() != 256 {
		t.Fatalf("expected 256 triangles; got %d", sc.TriangleCount())
	}
}

func TestBuildEmptyScene(t *testing.T) {
	sc := New()
	if err := sc.Build(); err != nil {
		t.Fatal(err)
	}
	if len(sc.BvhNodes()) != 0 {
		t.Fatalf("expected empty scene to have no bvh nodes; got %d", len(sc.BvhNodes()))
	}
}

func TestBuildTreeIsValid(t *testing.T) {
	sc := New()
	if err := sc.AddTriangles(makeTriangles(40)); err != nil {
		t.Fatal(err)
	}
	if err := sc.Build(); err != nil {
		t.Fatal(err)
	}

	nodes := sc.BvhNodes()
	if len(nodes) == 0 {
		t.Fatal("expected build to produce bvh nodes")
	}

	// Every node reachable from the root must reference valid node
	// slots or valid triangle indices.
	var walk func(nodeIndex uint32)
	walk = func(nodeIndex uint32) {
		if int(nodeIndex) >= len(nodes) {
			t.Fatalf("node index %d out of bounds (%d nodes)", nodeIndex, len(nodes))
		}
		node := nodes[nodeIndex]
		if node.Leaf() {
			for _, id := range node.TriangleIDs[:node.TriangleCount] {
				if int(id) >= sc.TriangleCount() {
					t.Fatalf("leaf references triangle %d; scene holds %d", id, sc.TriangleCount())
				}
			}
			return
		}
		walk(node.Child1)
		walk(node.Child2)
	}
	walk(0)
}

func TestBuildIsRepeatable(t *testing.T) {
	sc := New()
	if err := sc.AddTriangles(makeTriangles(40)); err != nil {
		t.Fatal(err)
	}

	if err := sc.Build(); err != nil {
		t.Fatal(err)
	}
	first := mustMarshal(t, sc)

	if err := sc.Build(); err != nil {
		t.Fatal(err)
	}
	second := mustMarshal(t, sc)

	if !reflect.DeepEqual(first, second) {
		t.Fatal("expected repeated builds to serialize identically")
	}
}

func TestRebuildDiscardsPreviousTree(t *testing.T) {
	sc := New()
	if err := sc.AddTriangles(makeTriangles(100)); err != nil {
		t.Fatal(err)
	}
	if err := sc.Build(); err != nil {
		t.Fatal(err)
	}
	largeTree := len(sc.BvhNodes())

	empty := New()
	if err := empty.AddTriangles(makeTriangles(5)); err != nil {
		t.Fatal(err)
	}
	if err := empty.Build(); err != nil {
		t.Fatal(err)
	}

	// Shrink the first scene down to the same 5 triangles; the stale
	// node storage beyond the new tree must not leak into the
	// serialized form.
	shrunk := New()
	if err := shrunk.AddTriangles(makeTriangles(5)); err != nil {
		t.Fatal(err)
	}
	copy(shrunk.bvhNodes[:], sc.bvhNodes[:])
	shrunk.nodeCount = sc.nodeCount
	if err := shrunk.Build(); err != nil {
		t.Fatal(err)
	}

	if largeTree <= len(shrunk.BvhNodes()) {
		t.Fatalf("expected the larger build to produce more nodes; got %d vs %d", largeTree, len(shrunk.BvhNodes()))
	}
	if !reflect.DeepEqual(mustMarshal(t, empty), mustMarshal(t, shrunk)) {
		t.Fatal("expected rebuild to fully discard the previous node array")
	}
}

func mustMarshal(t *testing.T, sc *Scene) []byte {
	t.Helper()
	blob, err := sc.MarshalBinary()
	if err != nil {
		t.Fatal(err)
	}
	return blob
}
