package stl

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/philipparndt/gotrim/pkg/geometry"
)

// Format selects the STL encoding
type Format int

const (
	ASCII Format = iota
	Binary
)

// WriteFile writes the model to filename in the given format
func WriteFile(filename string, model *Model, format Format) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	switch format {
	case Binary:
		err = WriteBinary(file, model)
	default:
		err = WriteASCII(file, model)
	}
	if err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// WriteASCII writes the model as an ASCII STL solid
func WriteASCII(writer io.Writer, model *Model) error {
	w := bufio.NewWriter(writer)
	fmt.Fprintf(w, "solid %s\n", model.Name)
	for _, tri := range model.Triangles {
		n := facetNormal(tri)
		fmt.Fprintf(w, "  facet normal %g %g %g\n", n.X, n.Y, n.Z)
		fmt.Fprintln(w, "    outer loop")
		for _, v := range [3]geometry.Vector3{tri.V1, tri.V2, tri.V3} {
			fmt.Fprintf(w, "      vertex %g %g %g\n", v.X, v.Y, v.Z)
		}
		fmt.Fprintln(w, "    endloop")
		fmt.Fprintln(w, "  endfacet")
	}
	fmt.Fprintf(w, "endsolid %s\n", model.Name)

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write ASCII STL: %w", err)
	}
	return nil
}

// WriteBinary writes the model as a binary STL. The name goes into the
// 80-byte header; a leading "solid" is avoided so readers do not mistake the
// file for ASCII.
func WriteBinary(writer io.Writer, model *Model) error {
	w := bufio.NewWriter(writer)

	name := model.Name
	if strings.HasPrefix(name, "solid") {
		name = "binary " + name
	}
	header := make([]byte, 80)
	copy(header, name)
	if _, err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	if err := binary.Write(w, binary.LittleEndian, uint32(len(model.Triangles))); err != nil {
		return fmt.Errorf("failed to write triangle count: %w", err)
	}

	for i, tri := range model.Triangles {
		n := facetNormal(tri)
		record := [12]float32{
			float32(n.X), float32(n.Y), float32(n.Z),
			float32(tri.V1.X), float32(tri.V1.Y), float32(tri.V1.Z),
			float32(tri.V2.X), float32(tri.V2.Y), float32(tri.V2.Z),
			float32(tri.V3.X), float32(tri.V3.Y), float32(tri.V3.Z),
		}
		if err := binary.Write(w, binary.LittleEndian, record); err != nil {
			return fmt.Errorf("failed to write triangle %d: %w", i, err)
		}
		if err := binary.Write(w, binary.LittleEndian, uint16(0)); err != nil {
			return fmt.Errorf("failed to write attribute for triangle %d: %w", i, err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("failed to write binary STL: %w", err)
	}
	return nil
}

// facetNormal falls back to the winding normal when the stored one is unset
func facetNormal(tri geometry.Triangle) geometry.Vector3 {
	if tri.Normal.LengthSquared() > 0 {
		return tri.Normal
	}
	return tri.CalculateNormal()
}
