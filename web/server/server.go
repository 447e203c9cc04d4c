package server

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/df07/go-pathtracer/pkg/imageio"
	"github.com/df07/go-pathtracer/pkg/renderer"
	"github.com/df07/go-pathtracer/pkg/scene"
)

// Parameter limits for /api/render
const (
	minDimension = 1
	maxDimension = 2000
	maxSamples   = 10000
	maxDepth     = 1000
)

// Server handles web requests for the path tracer
type Server struct {
	port    int
	logger  *log.Logger
	renders atomic.Int64
}

// NewServer creates a new web server
func NewServer(port int) *Server {
	return &Server{port: port, logger: log.Default()}
}

// RenderRequest represents a render request from the client
type RenderRequest struct {
	Scene           string `json:"scene"`           // Scene ID, accepted by scene.Create
	Width           int    `json:"width"`           // Image width
	Height          int    `json:"height"`          // Image height
	SamplesPerPixel int    `json:"samplesPerPixel"` // Samples per pixel
	MaxDepth        int    `json:"maxDepth"`        // Maximum bounce depth
	Seed            int64  `json:"seed"`
}

// Handler returns the routes served by the server
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/health", s.handleHealth)
	mux.HandleFunc("/api/scenes", s.handleScenes)
	mux.HandleFunc("/api/scene-config", s.handleSceneConfig)
	mux.HandleFunc("/api/render", s.handleRender)
	return mux
}

// Start starts the web server
func (s *Server) Start() error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Printf("Starting web server on http://localhost%s", addr)
	return http.ListenAndServe(addr, s.Handler())
}

// handleHealth provides a simple health check endpoint
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleScenes(w http.ResponseWriter, r *http.Request) {
	response, err := scene.ListAllScenes()
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, response)
}

// handleSceneConfig returns the default configuration for a scene
func (s *Server) handleSceneConfig(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}

	sceneObj, status, err := s.loadScene(sceneName)
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	config := sceneObj.SamplingConfig
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"scene": sceneName,
		"defaults": map[string]int{
			"width":           config.Width,
			"height":          config.Height,
			"samplesPerPixel": config.SamplesPerPixel,
			"maxDepth":        config.MaxDepth,
		},
		"limits": map[string]map[string]int{
			"width":           {"min": minDimension, "max": maxDimension},
			"height":          {"min": minDimension, "max": maxDimension},
			"samplesPerPixel": {"min": 1, "max": maxSamples},
			"maxDepth":        {"min": 1, "max": maxDepth},
		},
	})
}

// handleRender renders a scene to completion and replies with the PNG
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	sceneName := r.URL.Query().Get("scene")
	if sceneName == "" {
		sceneName = "default"
	}
	sceneObj, status, err := s.loadScene(sceneName)
	if err != nil {
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}

	req, err := parseRenderRequest(r.URL.Query(), sceneName, sceneObj.SamplingConfig)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Invalid request: %v", err)})
		return
	}

	if req.Width*req.Height > 800*600 && req.SamplesPerPixel > 100 {
		s.logger.Printf("Render warning: Large image with high samples may render slowly")
	}

	config := renderer.DefaultConfig()
	config.Width = req.Width
	config.Height = req.Height
	config.SamplesPerPixel = req.SamplesPerPixel
	config.MaxDepth = req.MaxDepth
	config.Seed = req.Seed
	sceneObj.CameraConfig.AspectRatio = float64(req.Width) / float64(req.Height)

	renderID := fmt.Sprintf("render-%d", s.renders.Add(1))
	logger := NewWebLogger(renderID, s.logger)
	logger.Printf("%s %dx%d, %d spp, depth %d", req.Scene, req.Width, req.Height, req.SamplesPerPixel, req.MaxDepth)

	// Use request context to stop rendering when the client disconnects
	raytracer := renderer.NewRaytracer(sceneObj.GetCamera(), sceneObj, config, logger)
	fb, stats, err := raytracer.Render(r.Context())
	if err != nil {
		logger.Printf("Render stopped: %v", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": err.Error()})
		return
	}

	var buf bytes.Buffer
	if err := imageio.Encode(&buf, fb); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": fmt.Sprintf("failed to encode image: %v", err)})
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("X-Render-Samples", strconv.Itoa(stats.TotalSamples))
	w.Header().Set("X-Render-Time-Ms", strconv.FormatInt(stats.Elapsed.Milliseconds(), 10))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(buf.Bytes()); err != nil {
		logger.Printf("Failed to write response: %v", err)
	}
}

// loadScene resolves a client-supplied scene ID. Only built-ins and files listed
// in the scenes directory are reachable; load failures are logged in full but
// reported to the client without file system details.
func (s *Server) loadScene(id string) (*scene.Scene, int, error) {
	sceneObj, err := scene.CreateByID(id)
	if err == nil {
		return sceneObj, http.StatusOK, nil
	}
	if errors.Is(err, scene.ErrUnknownScene) {
		return nil, http.StatusNotFound, fmt.Errorf("unknown scene %q", id)
	}
	s.logger.Printf("Failed to load scene %q: %v", id, err)
	return nil, http.StatusBadRequest, fmt.Errorf("scene %q could not be loaded", id)
}

// parseRenderRequest parses request parameters, falling back to the scene's settings
func parseRenderRequest(values url.Values, sceneName string, defaults scene.SamplingConfig) (*RenderRequest, error) {
	req := &RenderRequest{Scene: sceneName}

	var err error
	if req.Width, err = parseIntParam(values, "width", defaults.Width, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.Height, err = parseIntParam(values, "height", defaults.Height, minDimension, maxDimension); err != nil {
		return nil, err
	}
	if req.SamplesPerPixel, err = parseIntParam(values, "spp", defaults.SamplesPerPixel, 1, maxSamples); err != nil {
		return nil, err
	}
	if req.MaxDepth, err = parseIntParam(values, "depth", defaults.MaxDepth, 1, maxDepth); err != nil {
		return nil, err
	}

	seed, err := parseIntParam(values, "seed", 42, 0, 1<<31-1)
	if err != nil {
		return nil, err
	}
	req.Seed = int64(seed)

	return req, nil
}

// parseIntParam parses an integer parameter from URL query with validation
func parseIntParam(values url.Values, key string, defaultValue, min, max int) (int, error) {
	if value := values.Get(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return 0, fmt.Errorf("invalid %s: %s", key, value)
		}
		if parsed < min || parsed > max {
			return 0, fmt.Errorf("%s must be between %d and %d, got: %d", key, min, max, parsed)
		}
		return parsed, nil
	}
	return defaultValue, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}
