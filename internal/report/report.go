// Package report writes component metadata artifacts.
package report

import (
	"encoding/json"
	"fmt"
	"os"

	"blockseg/internal/segment"
	"blockseg/pkg/geometry"
)

// ComponentInfo is one entry of components_info.json.
type ComponentInfo struct {
	Component                int               `json:"component"`
	TopLeftCorner            geometry.PointInt `json:"topLeftCorner"`
	Width                    int               `json:"width"`
	Height                   int               `json:"height"`
	BuildingBlockProbability float64           `json:"buildingBlockProbability"`
}

// Build converts components to report entries in discovery order.
func Build(components []segment.Component) []ComponentInfo {
	infos := make([]ComponentInfo, len(components))
	for i, c := range components {
		infos[i] = ComponentInfo{
			Component:                c.ID,
			TopLeftCorner:            c.Bounds.TopLeft(),
			Width:                    c.Bounds.Width,
			Height:                   c.Bounds.Height,
			BuildingBlockProbability: c.AvgProbability,
		}
	}
	return infos
}

// Write saves the component report as a JSON array at path.
func Write(path string, components []segment.Component) error {
	data, err := json.MarshalIndent(Build(components), "", "  ")
	if err != nil {
		return fmt.Errorf("marshal component report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
