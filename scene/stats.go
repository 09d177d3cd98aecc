package scene

import (
	"bytes"
	"fmt"

	"github.com/olekukonko/tablewriter"
)

// Build a tabular representation of scene storage statistics.
func (s *Scene) Stats() string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetAutoFormatHeaders(false)
	table.SetHeader([]string{"Asset Type", "Used", "Capacity", "Size"})
	table.Append([]string{"Materials", fmt.Sprintf("%d", s.materialCount), fmt.Sprintf("%d", MaxMaterials), fmtSize(MaxMaterials * materialBlockSize)})
	table.Append([]string{"Spheres", fmt.Sprintf("%d", s.sphereCount), fmt.Sprintf("%d", MaxSpheres), fmtSize(MaxSpheres * sphereBlockSize)})
	table.Append([]string{"Triangles", fmt.Sprintf("%d", s.triangleCount), fmt.Sprintf("%d", MaxTriangles), fmtSize(MaxTriangles * triangleBlockSize)})
	table.Append([]string{"BVH nodes", fmt.Sprintf("%d", s.nodeCount), fmt.Sprintf("%d", MaxBvhNodes), fmtSize(MaxBvhNodes * bvhNodeBlockSize)})
	table.SetFooter([]string{"Total", "", "", fmtSize(SceneBlockSize)})

	table.Render()
	return buf.String()
}

// Format a byte count with the appropriate byte/kb/mb unit.
func fmtSize(totalBytes int) string {
	if totalBytes < 1e3 {
		return fmt.Sprintf("%3d bytes", totalBytes)
	} else if totalBytes < 1e6 {
		return fmt.Sprintf("%3.1f kb", float32(totalBytes)/1e3)
	}
	return fmt.Sprintf("%5.1f mb", float32(totalBytes)/1e6)
}
