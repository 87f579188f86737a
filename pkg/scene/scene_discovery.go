package scene

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/stjomd/raytracer/pkg/core"
	"github.com/stjomd/raytracer/pkg/geometry"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by -scene
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Optional description
	Type        string `json:"type"`        // "builtin" or "json"
	FilePath    string `json:"filePath"`    // Path to the scene file (json type only)
	Error       string `json:"error"`       // Metadata read error; empty when the file parsed
}

var builtinScenes = []SceneInfo{
	{
		ID:          "spheres",
		Name:        "Spheres",
		Description: "A hollow glass sphere, a matte sphere and a metal sphere on a matte ground",
		Type:        "builtin",
	},
	{
		ID:          "spheromania",
		Name:        "Spheromania",
		Description: "Three big spheres of different materials among many small random spheres",
		Type:        "builtin",
	},
	{
		ID:          "final",
		Name:        "Final",
		Description: "Alias of spheromania",
		Type:        "builtin",
	},
	{
		ID:          "banner",
		Name:        "Banner",
		Description: "Row of glass, matte and metal spheres from the project banner",
		Type:        "builtin",
	},
}

// BuiltinScenes returns the scenes that are compiled into the program
func BuiltinScenes() []SceneInfo {
	scenes := make([]SceneInfo, len(builtinScenes))
	copy(scenes, builtinScenes)
	return scenes
}

// IsBuiltin reports whether id names a built-in scene
func IsBuiltin(id string) bool {
	for _, info := range builtinScenes {
		if info.ID == id {
			return true
		}
	}
	return false
}

// NewBuiltinScene creates the built-in scene with the given id.
// The seed only affects scenes with random placement.
func NewBuiltinScene(id string, seed int64, cameraOverrides ...geometry.CameraConfig) (*Scene, error) {
	switch id {
	case "spheres":
		return NewSpheresScene(cameraOverrides...)
	case "spheromania", "final":
		return NewSpheromaniaScene(seed, cameraOverrides...)
	case "banner":
		return NewBannerScene(cameraOverrides...)
	default:
		return nil, fmt.Errorf("unknown scene %q: %w", id, core.ErrInvalidConfig)
	}
}

// ListJSONScenes scans dir and returns the JSON scene files it contains.
// A missing directory yields an empty list. Files whose metadata cannot be
// read are still listed under their file name, with Error set.
func ListJSONScenes(dir string) ([]SceneInfo, error) {
	if _, err := os.Stat(dir); err != nil {
		return []SceneInfo{}, nil
	}

	pattern := filepath.Join(dir, "*.json")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	scenes := make([]SceneInfo, 0, len(files))
	for _, filePath := range files {
		sceneInfo, err := ParseJSONMetadata(filePath)
		if err != nil {
			sceneInfo.Error = err.Error()
		}
		scenes = append(scenes, sceneInfo)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})

	return scenes, nil
}

// ParseJSONMetadata reads the optional name and description of a JSON scene file.
// The file name provides the fallback name.
func ParseJSONMetadata(filePath string) (SceneInfo, error) {
	filename := filepath.Base(filePath)
	nameWithoutExt := strings.TrimSuffix(filename, filepath.Ext(filename))

	sceneInfo := SceneInfo{
		ID:       filePath,
		Name:     titleCase(nameWithoutExt),
		Type:     "json",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return sceneInfo, fmt.Errorf("failed to read scene %s: %w", filePath, err)
	}

	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return sceneInfo, fmt.Errorf("failed to parse scene %s: %w", filePath, err)
	}

	if header.Name != "" {
		sceneInfo.Name = header.Name
	}
	sceneInfo.Description = header.Description

	return sceneInfo, nil
}

// ListAllScenes returns the built-in scenes followed by the JSON scenes in dir
func ListAllScenes(dir string) ([]SceneInfo, error) {
	jsonScenes, err := ListJSONScenes(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list JSON scenes: %w", err)
	}
	return append(BuiltinScenes(), jsonScenes...), nil
}

// titleCase converts a filename-style string to title case
// e.g., "glass-row" -> "Glass Row"
func titleCase(s string) string {
	// Replace hyphens and underscores with spaces
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	// Title case each word
	words := strings.Fields(s)
	for i, word := range words {
		if len(word) > 0 {
			words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
		}
	}

	return strings.Join(words, " ")
}
