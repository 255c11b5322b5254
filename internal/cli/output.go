package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pfrederiksen/kzmaps/internal/globalmap"
	"github.com/pfrederiksen/kzmaps/internal/kz"
	"github.com/pfrederiksen/kzmaps/internal/workshop"
	"gopkg.in/yaml.v3"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
	FormatYAML OutputFormat = "yaml"
)

// MapsResult is the structured form of a map listing
type MapsResult struct {
	Count int                   `json:"count" yaml:"count"`
	Maps  []globalmap.GlobalMap `json:"maps" yaml:"maps"`
}

// WriteMaps writes maps in the specified format
func WriteMaps(w io.Writer, maps []globalmap.GlobalMap, format OutputFormat, verbose bool) error {
	result := &MapsResult{Count: len(maps), Maps: maps}
	if result.Maps == nil {
		result.Maps = []globalmap.GlobalMap{}
	}

	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatYAML:
		return writeYAML(w, result)
	case FormatText:
		return writeMapsText(w, maps, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteWorkshop writes workshop details in the specified format
func WriteWorkshop(w io.Writer, details *workshop.Details, format OutputFormat) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, details)
	case FormatYAML:
		return writeYAML(w, details)
	case FormatText:
		fmt.Fprintf(w, "%s\n", details.Title)
		fmt.Fprintf(w, "  Link: %s\n", details.Link)
		if details.FileSize != "" {
			fmt.Fprintf(w, "  Size: %s\n", details.FileSize)
		}
		if details.PreviewURL != "" {
			fmt.Fprintf(w, "  Preview: %s\n", details.PreviewURL)
		}
		if details.Description != "" {
			fmt.Fprintf(w, "\n%s\n", details.Description)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs v as indented JSON
func writeJSON(w io.Writer, v interface{}) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// writeYAML outputs v as YAML
func writeYAML(w io.Writer, v interface{}) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// writeMapsText outputs maps as human-readable text
func writeMapsText(w io.Writer, maps []globalmap.GlobalMap, verbose bool) error {
	if len(maps) == 0 {
		fmt.Fprintln(w, "No maps found.")
		return nil
	}

	for _, m := range maps {
		fmt.Fprintf(w, "%s (T%d %s)%s\n", m.Name, m.Tier, m.Tier, modeTags(m))
		if !verbose {
			continue
		}

		fmt.Fprintf(w, "     ID: %d\n", m.ID)
		if len(m.Mappers) > 0 {
			names := make([]string, 0, len(m.Mappers))
			for _, mapper := range m.Mappers {
				names = append(names, mapper.Name)
			}
			fmt.Fprintf(w, "     Mappers: %s\n", strings.Join(names, ", "))
		}
		fmt.Fprintf(w, "     Created: %s\n", m.CreatedOn)
		fmt.Fprintf(w, "     KZ:GO: %s\n", m.KZGoLink())
		if m.WorkshopLink != nil {
			fmt.Fprintf(w, "     Workshop: %s\n", *m.WorkshopLink)
		}
	}

	label := "maps"
	if len(maps) == 1 {
		label = "map"
	}
	fmt.Fprintf(w, "\nTotal: %d %s\n", len(maps), label)

	return nil
}

// modeTags renders the modes with a leaderboard, e.g. " [KZT SKZ]"
func modeTags(m globalmap.GlobalMap) string {
	tags := make([]string, 0, len(kz.Modes))
	for _, mode := range kz.Modes {
		if m.HasFilter(mode) {
			tags = append(tags, mode.Short())
		}
	}
	if len(tags) == 0 {
		return ""
	}
	return " [" + strings.Join(tags, " ") + "]"
}
