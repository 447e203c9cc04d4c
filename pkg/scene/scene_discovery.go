package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/df07/go-pathtracer/pkg/renderer"
)

// SceneInfo represents a discovered scene with its metadata
type SceneInfo struct {
	ID          string `json:"id"`          // Unique identifier, accepted by Create
	Name        string `json:"name"`        // Scene name
	Description string `json:"description"` // Optional description
	Group       string `json:"group"`       // Grouping category
	Type        string `json:"type"`        // "builtin" or "file"
	FilePath    string `json:"filePath,omitempty"`
}

// SceneGroup represents a group of related scenes
type SceneGroup struct {
	Name   string      `json:"name"`
	Scenes []SceneInfo `json:"scenes"`
}

// ScenesResponse represents the complete response for /api/scenes
type ScenesResponse struct {
	Groups []SceneGroup `json:"groups"`
}

const builtInGroup = "Built-in Scenes"

type builtIn struct {
	info   SceneInfo
	create func(...renderer.CameraConfig) *Scene
}

var builtIns = []builtIn{
	{SceneInfo{ID: "default", Name: "Default Scene", Description: "Metal, glass and diffuse spheres on a green ground"}, NewDefaultScene},
	{SceneInfo{ID: "ground", Name: "Ground", Description: "A single gray sphere resting on a huge ground sphere"}, NewGroundScene},
	{SceneInfo{ID: "spheregrid", Name: "Sphere Grid", Description: "10x10 grid of rainbow-colored metallic spheres"}, NewSphereGridScene},
	{SceneInfo{ID: "cover", Name: "Random Spheres", Description: "Hundreds of small random spheres around three large ones"}, NewCoverScene},
}

// ScenesDir is where JSON scene files are looked up
var ScenesDir = "scenes"

// ErrUnknownScene is returned when a name matches no built-in scene or scene file
var ErrUnknownScene = errors.New("unknown scene")

// Create builds a scene by built-in ID, by JSON file path, or by the name of
// a JSON file in ScenesDir. Camera overrides apply to built-in scenes only.
func Create(name string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	if filepath.Ext(name) != ".json" {
		return CreateByID(name, cameraOverrides...)
	}
	if _, err := os.Stat(name); err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, name)
	}
	return LoadSceneFile(name)
}

// CreateByID builds a scene from a bare ID: a built-in name or the base name of
// a JSON file directly inside ScenesDir. Paths are rejected, so the IDs reported
// by ListScenes are the only scenes it can reach.
func CreateByID(id string, cameraOverrides ...renderer.CameraConfig) (*Scene, error) {
	for _, b := range builtIns {
		if b.info.ID == id {
			return b.create(cameraOverrides...), nil
		}
	}

	if !validSceneID(id) {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}
	path := filepath.Join(ScenesDir, id+".json")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("%w %q", ErrUnknownScene, id)
	}
	return LoadSceneFile(path)
}

// validSceneID accepts plain file base names only
func validSceneID(id string) bool {
	if id == "" || id == "." || id == ".." || strings.HasPrefix(id, ".") {
		return false
	}
	if strings.ContainsAny(id, `/\:`) || strings.ContainsRune(id, 0) {
		return false
	}
	return filepath.Ext(id) != ".json"
}

// ListFileScenes scans ScenesDir and returns the JSON scenes found there
func ListFileScenes() ([]SceneInfo, error) {
	files, err := filepath.Glob(filepath.Join(ScenesDir, "*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan scenes directory: %w", err)
	}

	var scenes []SceneInfo
	for _, filePath := range files {
		info, err := readSceneInfo(filePath)
		if err != nil {
			// Skip unreadable files, keep the rest
			fmt.Printf("Warning: failed to read %s: %v\n", filePath, err)
			continue
		}
		scenes = append(scenes, info)
	}

	sort.Slice(scenes, func(i, j int) bool {
		return scenes[i].Name < scenes[j].Name
	})
	return scenes, nil
}

func readSceneInfo(filePath string) (SceneInfo, error) {
	id := strings.TrimSuffix(filepath.Base(filePath), filepath.Ext(filePath))
	info := SceneInfo{
		ID:       id,
		Name:     titleCase(id),
		Group:    "Scene Files",
		Type:     "file",
		FilePath: filePath,
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return info, err
	}
	var header struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := json.Unmarshal(data, &header); err != nil {
		return info, err
	}
	if header.Name != "" {
		info.Name = header.Name
	}
	info.Description = header.Description
	return info, nil
}

// ListScenes returns the built-in scenes followed by the JSON scene files
func ListScenes() ([]SceneInfo, error) {
	scenes := make([]SceneInfo, 0, len(builtIns))
	for _, b := range builtIns {
		info := b.info
		info.Group = builtInGroup
		info.Type = "builtin"
		scenes = append(scenes, info)
	}

	fileScenes, err := ListFileScenes()
	if err != nil {
		return nil, err
	}
	return append(scenes, fileScenes...), nil
}

// ListAllScenes returns every scene grouped by category, built-ins first
func ListAllScenes() (ScenesResponse, error) {
	var response ScenesResponse

	allScenes, err := ListScenes()
	if err != nil {
		return response, err
	}

	groupMap := make(map[string][]SceneInfo)
	var groupNames []string
	for _, s := range allScenes {
		if _, seen := groupMap[s.Group]; !seen && s.Group != builtInGroup {
			groupNames = append(groupNames, s.Group)
		}
		groupMap[s.Group] = append(groupMap[s.Group], s)
	}
	sort.Strings(groupNames)

	if builtIn, exists := groupMap[builtInGroup]; exists {
		response.Groups = append(response.Groups, SceneGroup{Name: builtInGroup, Scenes: builtIn})
	}
	for _, groupName := range groupNames {
		response.Groups = append(response.Groups, SceneGroup{Name: groupName, Scenes: groupMap[groupName]})
	}

	return response, nil
}

// titleCase converts a filename-style string to title case
// e.g., "two-spheres" -> "Two Spheres"
func titleCase(s string) string {
	s = strings.ReplaceAll(s, "-", " ")
	s = strings.ReplaceAll(s, "_", " ")

	words := strings.Fields(s)
	for i, word := range words {
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}

	return strings.Join(words, " ")
}
