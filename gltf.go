package flightpath

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"github.com/qmuntal/gltf"
)

// LoadWaypointsGLTFFile loads waypoints from a .gltf or .glb file on disk. See LoadWaypointsGLTF.
func LoadWaypointsGLTFFile(filePath, pathNode string) ([]Vector3, error) {

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	return LoadWaypointsGLTF(bytes.NewReader(fileData), pathNode)

}

// LoadWaypointsGLTF reads a .gltf or .glb document and returns the positions of the children of the node named
// pathNode, in the order the document lists them, offset by that node's own translation. This lets a path be laid
// out as a parent empty with one child empty per waypoint in a 3D modeler.
//
// Only translations are read; rotation and scale on the parent are ignored. A child whose translation is
// stored as a matrix has the matrix's translation used instead.
func LoadWaypointsGLTF(r io.Reader, pathNode string) ([]Vector3, error) {

	decoder := gltf.NewDecoder(r)

	doc := gltf.NewDocument()

	if err := decoder.Decode(doc); err != nil {
		return nil, fmt.Errorf("flightpath: decoding glTF: %w", err)
	}

	var parent *gltf.Node

	for _, node := range doc.Nodes {
		if node.Name == pathNode {
			parent = node
			break
		}
	}

	if parent == nil {
		return nil, fmt.Errorf("flightpath: glTF path %q: %w", pathNode, ErrNodeNotFound)
	}

	origin := nodeTranslation(parent)

	waypoints := make([]Vector3, 0, len(parent.Children))

	for _, child := range parent.Children {
		index := int(child)
		if index < 0 || index >= len(doc.Nodes) {
			return nil, fmt.Errorf("flightpath: glTF path %q refers to node %d of %d", pathNode, index, len(doc.Nodes))
		}
		waypoints = append(waypoints, origin.Add(nodeTranslation(doc.Nodes[index])))
	}

	if len(waypoints) < 2 {
		return nil, fmt.Errorf("flightpath: glTF path %q has %d waypoints: %w", pathNode, len(waypoints), ErrTooFewWaypoints)
	}

	return waypoints, nil

}

func nodeTranslation(node *gltf.Node) Vector3 {

	t := Vector3{float32(node.Translation[0]), float32(node.Translation[1]), float32(node.Translation[2])}

	if t.IsZero() {
		t = Vector3{float32(node.Matrix[12]), float32(node.Matrix[13]), float32(node.Matrix[14])}
	}

	return t

}
