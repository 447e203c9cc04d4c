package scene

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

// useScenesDir points discovery at dir for the duration of the test
func useScenesDir(t *testing.T, dir string) {
	t.Helper()
	old := ScenesDir
	ScenesDir = dir
	t.Cleanup(func() { ScenesDir = old })
}

func TestTitleCase(t *testing.T) {
	testCases := []struct {
		input    string
		expected string
	}{
		{"three-spheres", "Three Spheres"},
		{"glass_ball", "Glass Ball"},
		{"my-custom-scene", "My Custom Scene"},
		{"simple", "Simple"},
		{"UPPER-case", "Upper Case"},
		{"", ""},
	}

	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			result := titleCase(tc.input)
			if result != tc.expected {
				t.Errorf("titleCase(%q) = %q, want %q", tc.input, result, tc.expected)
			}
		})
	}
}

func TestCreate(t *testing.T) {
	dir := t.TempDir()
	useScenesDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name       string
		wantErr    bool
		primitives int
	}{
		{"ground", false, 2},
		{"default", false, 8},
		{"two", false, 2},
		{filepath.Join(dir, "two.json"), false, 2},
		{"nonexistent", true, 0},
		{filepath.Join(dir, "missing.json"), true, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Create(tt.name)
			if tt.wantErr {
				if err == nil {
					t.Error("Expected an error")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create failed: %v", err)
			}
			if got := s.GetPrimitiveCount(); got != tt.primitives {
				t.Errorf("Expected %d primitives, got %d", tt.primitives, got)
			}
		})
	}
}

func TestListScenes(t *testing.T) {
	dir := t.TempDir()
	useScenesDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "two-spheres.json"), []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "plain.json"), []byte(`{"spheres": []}`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.json"), []byte(`{`), 0o644); err != nil {
		t.Fatal(err)
	}

	scenes, err := ListScenes()
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}

	byID := make(map[string]SceneInfo)
	for _, s := range scenes {
		byID[s.ID] = s
	}

	for _, id := range []string{"default", "ground", "spheregrid", "cover"} {
		if info, ok := byID[id]; !ok || info.Type != "builtin" {
			t.Errorf("Missing built-in scene %q", id)
		}
	}
	if info := byID["two-spheres"]; info.Name != "Two Spheres" || info.Type != "file" {
		t.Errorf("Unexpected file scene info %+v", info)
	}
	if info := byID["plain"]; info.Name != "Plain" {
		t.Errorf("File without a name should use the title-cased file name, got %+v", info)
	}
	if _, ok := byID["broken"]; ok {
		t.Error("Unreadable scene files should be skipped")
	}
	if scenes[0].ID != "default" {
		t.Errorf("Built-in scenes should come first, got %q", scenes[0].ID)
	}
}

func TestListAllScenes_GroupsBuiltInsFirst(t *testing.T) {
	dir := t.TempDir()
	useScenesDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	response, err := ListAllScenes()
	if err != nil {
		t.Fatalf("ListAllScenes failed: %v", err)
	}
	if len(response.Groups) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(response.Groups))
	}
	if response.Groups[0].Name != "Built-in Scenes" || len(response.Groups[0].Scenes) != 4 {
		t.Errorf("Unexpected first group %+v", response.Groups[0])
	}
	if response.Groups[1].Name != "Scene Files" || len(response.Groups[1].Scenes) != 1 {
		t.Errorf("Unexpected second group %+v", response.Groups[1])
	}
}

func TestListScenes_MissingDirectory(t *testing.T) {
	useScenesDir(t, filepath.Join(t.TempDir(), "nope"))

	scenes, err := ListScenes()
	if err != nil {
		t.Fatalf("ListScenes failed: %v", err)
	}
	if len(scenes) != len(builtIns) {
		t.Errorf("Expected only the %d built-ins, got %d", len(builtIns), len(scenes))
	}
}

func TestCreateByID_RejectsPaths(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "scenes")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	useScenesDir(t, dir)
	if err := os.WriteFile(filepath.Join(dir, "two.json"), []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatal(err)
	}
	outside := filepath.Join(root, "outside.json")
	if err := os.WriteFile(outside, []byte(twoSpheresJSON), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := CreateByID("two"); err != nil {
		t.Errorf("Expected the listed scene to load, got %v", err)
	}
	if _, err := CreateByID("cover"); err != nil {
		t.Errorf("Expected the built-in scene to load, got %v", err)
	}

	for _, id := range []string{"", "..", "../outside", outside, "two.json", "sub/two", `..\outside`, ".hidden"} {
		if _, err := CreateByID(id); !errors.Is(err, ErrUnknownScene) {
			t.Errorf("CreateByID(%q): expected ErrUnknownScene, got %v", id, err)
		}
	}

	// The CLI entry point still accepts explicit file paths
	if _, err := Create(outside); err != nil {
		t.Errorf("Create should load an explicit path, got %v", err)
	}
	if _, err := Create("nonexistent"); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("Expected ErrUnknownScene, got %v", err)
	}
}
