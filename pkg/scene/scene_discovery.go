package scene

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownScene is returned by Create for a scene ID that is not registered
var ErrUnknownScene = errors.New("unknown scene")

// Options carries the inputs some scenes need besides their own defaults
type Options struct {
	OBJPath     string // Mesh file for the mesh scene (.obj or .ply)
	TexturePath string // Image for the globe in the final scene
	Seed        int64  // Seed for randomly laid out content
}

// SceneInfo describes a built-in scene
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier
	Name        string `json:"name"`        // Display name
	Description string `json:"description"` // Short description
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Scenes []SceneInfo `json:"scenes"`
}

type sceneEntry struct {
	id          string
	description string
	build       func(Options) (*Scene, error)
}

// builtInScenes lists every scene in display order
var builtInScenes = []sceneEntry{
	{
		id:          "spheres",
		description: "Small spheres of every material on a huge ground sphere",
		build:       func(Options) (*Scene, error) { return NewSpheresScene(), nil },
	},
	{
		id:          "cornell",
		description: "Cornell box with a rotated aluminium block and a glass sphere",
		build:       func(Options) (*Scene, error) { return NewCornellScene(), nil },
	},
	{
		id:          "cornell-smoke",
		description: "Cornell box with blocks of dark and light smoke",
		build:       func(Options) (*Scene, error) { return NewCornellSmokeScene(), nil },
	},
	{
		id:          "final",
		description: "Showcase of every primitive, material, texture and medium",
		build:       NewFinalScene,
	},
	{
		id:          "mesh",
		description: "Triangle mesh loaded from an OBJ or PLY file",
		build:       NewMeshScene,
	},
}

// ListScenes returns the built-in scenes in display order
func ListScenes() []SceneInfo {
	scenes := make([]SceneInfo, 0, len(builtInScenes))
	for _, s := range builtInScenes {
		scenes = append(scenes, SceneInfo{
			ID:          s.id,
			Name:        titleCase(s.id),
			Description: s.description,
		})
	}
	return scenes
}

// Create builds the scene with the given ID
func Create(id string, opts Options) (*Scene, error) {
	for _, s := range builtInScenes {
		if s.id == id {
			return s.build(opts)
		}
	}
	return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
}

// titleCase converts a filename-style string to title case
// e.g., "cornell-smoke" -> "Cornell Smoke"
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
