package scene

import (
	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/geometry"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Scene contains all the elements needed for rendering. Spheres refer to
// materials by handle, so materials may be added at any time.
type Scene struct {
	Materials      *material.Arena
	World          *geometry.Group
	CameraConfig   renderer.CameraConfig
	SamplingConfig SamplingConfig
	TopColor       core.Vec3 // Background color straight up
	BottomColor    core.Vec3 // Background color straight down
}

// SamplingConfig contains the scene's preferred render settings
type SamplingConfig struct {
	Width           int // Image width
	Height          int // Image height
	SamplesPerPixel int // Number of rays per pixel
	MaxDepth        int // Maximum ray bounce depth
}

// Default sky gradient
var (
	DefaultTopColor    = core.NewVec3(0.5, 0.7, 1.0)
	DefaultBottomColor = core.NewVec3(1.0, 1.0, 1.0)
)

// NewScene creates an empty scene with the default sky
func NewScene(cameraConfig renderer.CameraConfig, samplingConfig SamplingConfig) *Scene {
	return &Scene{
		Materials:      material.NewArena(8),
		World:          geometry.NewGroup(),
		CameraConfig:   cameraConfig,
		SamplingConfig: samplingConfig,
		TopColor:       DefaultTopColor,
		BottomColor:    DefaultBottomColor,
	}
}

// AddMaterial stores m and returns its handle
func (s *Scene) AddMaterial(m material.Material) core.MaterialID {
	return s.Materials.Add(m)
}

// AddSphere adds a sphere using the material handle id. core.NoMaterial
// renders with the default diffuse gray.
func (s *Scene) AddSphere(center core.Vec3, radius float64, id core.MaterialID) *geometry.Sphere {
	sphere := geometry.NewSphere(center, radius, id)
	s.World.Add(sphere)
	return sphere
}

// Hit returns the closest intersection with any object in the scene
func (s *Scene) Hit(ray core.Ray, tMin, tMax float64) (*core.HitRecord, bool) {
	return s.World.Hit(ray, tMin, tMax)
}

// Material resolves a material handle
func (s *Scene) Material(id core.MaterialID) material.Material {
	return s.Materials.Resolve(id)
}

// BackgroundColors returns the gradient colors for the background
func (s *Scene) BackgroundColors() (topColor, bottomColor core.Vec3) {
	return s.TopColor, s.BottomColor
}

// GetCamera builds the camera described by CameraConfig
func (s *Scene) GetCamera() *renderer.Camera {
	return renderer.NewCamera(s.CameraConfig)
}

// GetPrimitiveCount returns the total number of primitive objects in the scene
func (s *Scene) GetPrimitiveCount() int {
	return countPrimitives(s.World)
}

func countPrimitives(shape geometry.Shape) int {
	group, ok := shape.(*geometry.Group)
	if !ok {
		return 1
	}
	count := 0
	for _, child := range group.Shapes() {
		count += countPrimitives(child)
	}
	return count
}
