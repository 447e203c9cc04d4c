package scene

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/df07/go-pathtracer/pkg/core"
	"github.com/df07/go-pathtracer/pkg/material"
	"github.com/df07/go-pathtracer/pkg/renderer"
)

// Vec3Cfg is a vector written as a JSON array [x, y, z]
type Vec3Cfg [3]float64

func (v Vec3Cfg) vec() core.Vec3 {
	return core.NewVec3(v[0], v[1], v[2])
}

type CameraCfg struct {
	Center        Vec3Cfg  `json:"center"`
	LookAt        Vec3Cfg  `json:"lookAt"`
	Up            *Vec3Cfg `json:"up,omitempty"` // defaults to +y
	VFov          float64  `json:"vfov"`
	AspectRatio   float64  `json:"aspectRatio,omitempty"` // defaults to width/height
	Aperture      float64  `json:"aperture,omitempty"`
	FocusDistance float64  `json:"focusDistance,omitempty"`
}

type SamplingCfg struct {
	Width           int `json:"width"`
	Height          int `json:"height"`
	SamplesPerPixel int `json:"samplesPerPixel"`
	MaxDepth        int `json:"maxDepth"`
}

type BackgroundCfg struct {
	Top    Vec3Cfg `json:"top"`
	Bottom Vec3Cfg `json:"bottom"`
}

type MaterialCfg struct {
	Type            string  `json:"type"` // lambertian, metal or dielectric
	Albedo          Vec3Cfg `json:"albedo,omitempty"`
	Fuzz            float64 `json:"fuzz,omitempty"`
	RefractiveIndex float64 `json:"ior,omitempty"`
}

type SphereCfg struct {
	Center   Vec3Cfg `json:"center"`
	Radius   float64 `json:"radius"`
	Material string  `json:"material,omitempty"` // empty uses the default material
}

// FileConfig is the on-disk scene description
type FileConfig struct {
	Name        string                 `json:"name,omitempty"`
	Description string                 `json:"description,omitempty"`
	Camera      CameraCfg              `json:"camera"`
	Sampling    SamplingCfg            `json:"sampling"`
	Background  *BackgroundCfg         `json:"background,omitempty"`
	Materials   map[string]MaterialCfg `json:"materials,omitempty"`
	Spheres     []SphereCfg            `json:"spheres"`
}

// Build converts the material description into a material
func (mc MaterialCfg) Build() (material.Material, error) {
	switch mc.Type {
	case "lambertian":
		return material.NewLambertian(mc.Albedo.vec()), nil
	case "metal":
		return material.NewMetal(mc.Albedo.vec(), mc.Fuzz), nil
	case "dielectric":
		if mc.RefractiveIndex <= 0 {
			return material.Material{}, fmt.Errorf("dielectric needs a positive ior, got %g", mc.RefractiveIndex)
		}
		return material.NewDielectric(mc.RefractiveIndex), nil
	default:
		return material.Material{}, fmt.Errorf("unknown material type %q", mc.Type)
	}
}

// LoadSceneFile reads a JSON scene description from path
func LoadSceneFile(path string) (*Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	s, err := ParseScene(data)
	if err != nil {
		return nil, fmt.Errorf("scene file %s: %w", path, err)
	}
	return s, nil
}

// ParseScene builds a scene from its JSON description, filling in defaults
func ParseScene(data []byte) (*Scene, error) {
	var cfg FileConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Defaults / validation
	sampling := SamplingConfig(cfg.Sampling)
	if sampling.Width <= 0 {
		sampling.Width = 400
	}
	if sampling.Height <= 0 {
		sampling.Height = 225
	}
	if sampling.SamplesPerPixel <= 0 {
		sampling.SamplesPerPixel = 100
	}
	if sampling.MaxDepth <= 0 {
		sampling.MaxDepth = 50
	}

	cam := renderer.CameraConfig{
		Center:        cfg.Camera.Center.vec(),
		LookAt:        cfg.Camera.LookAt.vec(),
		Up:            core.NewVec3(0, 1, 0),
		VFov:          cfg.Camera.VFov,
		AspectRatio:   cfg.Camera.AspectRatio,
		Aperture:      cfg.Camera.Aperture,
		FocusDistance: cfg.Camera.FocusDistance,
	}
	if cfg.Camera.Up != nil {
		cam.Up = cfg.Camera.Up.vec()
	}
	if cam.VFov <= 0 {
		cam.VFov = 90
	}
	if cam.AspectRatio <= 0 {
		cam.AspectRatio = float64(sampling.Width) / float64(sampling.Height)
	}
	if cam.Center.Equals(cam.LookAt) {
		return nil, fmt.Errorf("camera center and lookAt must differ")
	}

	s := NewScene(cam, sampling)
	if cfg.Background != nil {
		s.TopColor = cfg.Background.Top.vec()
		s.BottomColor = cfg.Background.Bottom.vec()
	}

	ids := make(map[string]core.MaterialID, len(cfg.Materials))
	for name, mc := range cfg.Materials {
		m, err := mc.Build()
		if err != nil {
			return nil, fmt.Errorf("material %q: %w", name, err)
		}
		ids[name] = s.AddMaterial(m)
	}

	if len(cfg.Spheres) == 0 {
		return nil, fmt.Errorf("scene has no spheres")
	}
	for i, sc := range cfg.Spheres {
		id := core.NoMaterial
		if sc.Material != "" {
			var ok bool
			if id, ok = ids[sc.Material]; !ok {
				return nil, fmt.Errorf("sphere %d: unknown material %q", i, sc.Material)
			}
		}
		s.AddSphere(sc.Center.vec(), sc.Radius, id)
	}

	return s, nil
}
