// Package pointcloud reads, writes and generates the point sets that get
// tetrahedralized and trimmed.
package pointcloud

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/philipparndt/gotrim/pkg/geometry"
	"github.com/philipparndt/gotrim/pkg/stl"
)

// ErrEmptyPointCloud is returned when an input holds no points
var ErrEmptyPointCloud = errors.New("point cloud is empty")

// ReadFile reads an XYZ point cloud file
func ReadFile(filename string) ([]geometry.Vector3, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	points, err := Read(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return points, nil
}

// Read parses whitespace or comma separated "x y z" lines. Columns after the
// third are ignored, as are blank lines and lines starting with '#'.
func Read(reader io.Reader) ([]geometry.Vector3, error) {
	scanner := bufio.NewScanner(reader)
	var points []geometry.Vector3
	line := 0

	for scanner.Scan() {
		line++
		text := strings.TrimSpace(scanner.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}

		fields := strings.FieldsFunc(text, func(r rune) bool {
			return r == ' ' || r == '\t' || r == ','
		})
		if len(fields) < 3 {
			return nil, fmt.Errorf("line %d: expected 3 coordinates, got %d", line, len(fields))
		}

		var c [3]float64
		for i := range c {
			v, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", line, err)
			}
			c[i] = v
		}
		points = append(points, geometry.NewVector3(c[0], c[1], c[2]))
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading point cloud: %w", err)
	}
	if len(points) == 0 {
		return nil, ErrEmptyPointCloud
	}
	return points, nil
}

// WriteFile writes points as an XYZ file
func WriteFile(filename string, points []geometry.Vector3) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	if err := Write(file, points); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// Write emits one "x y z" line per point
func Write(writer io.Writer, points []geometry.Vector3) error {
	w := bufio.NewWriter(writer)
	for _, p := range points {
		if _, err := fmt.Fprintf(w, "%s %s %s\n", formatFloat(p.X), formatFloat(p.Y), formatFloat(p.Z)); err != nil {
			return fmt.Errorf("failed to write point: %w", err)
		}
	}
	return w.Flush()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FromModel collects the distinct triangle vertices of an STL model in
// first-seen order
func FromModel(model *stl.Model) []geometry.Vector3 {
	return model.Vertices()
}
