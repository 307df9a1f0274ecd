// Package server hosts the interactive annotation comparison viewer over
// HTTP.  REST endpoints expose datasets, comparison results and rendered
// frames, a WebSocket channel delivers raw pointer/scroll/resize events
// from the browser and returns fresh overlay primitives.
package server

import (
	"net/http"
	"sort"
	"sync"

	annocmp "github.com/annotools/go-annocmp"
	"github.com/annotools/go-annocmp/coco"
	"github.com/annotools/go-annocmp/compare"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Server serves the annotation viewer.  The loaded datasets are immutable
// once set, a completed comparison run is swapped in wholesale under the
// mutex so readers only ever observe a fully built run
type Server struct {
	cfg      Config
	logger   *logrus.Logger
	router   *gin.Engine
	upgrader websocket.Upgrader

	mu             sync.RWMutex
	machine        *coco.Dataset
	human          *coco.Dataset
	machineByImage map[int][]*annocmp.Annotation
	humanByImage   map[int][]*annocmp.Annotation
	run            *compare.Run
	comparing      bool
}

// New creates a viewer server with its routes registered
func New(cfg Config, logger *logrus.Logger) *Server {

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:    cfg,
		logger: logger,
		router: gin.New(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}

	s.router.Use(gin.Recovery())
	s.router.Use(cors.New(cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowMethods: []string{"GET", "POST"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	s.routes()

	return s
}

// SetDatasets installs the machine and human annotation sets
func (s *Server) SetDatasets(machine, human *coco.Dataset) {

	s.mu.Lock()
	defer s.mu.Unlock()

	s.machine = machine
	s.human = human
	s.machineByImage = annocmp.ByImage(machine.Annotations)
	s.humanByImage = annocmp.ByImage(human.Annotations)
	s.run = nil
}

// Run starts listening on the configured address, blocking until the
// server stops
func (s *Server) Run() error {
	s.logger.WithField("addr", s.cfg.Addr()).Info("starting viewer server")
	return s.router.Run(s.cfg.Addr())
}

// Handler exposes the router for tests
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	api := s.router.Group("/api")
	api.GET("/health", s.handleHealth)
	api.GET("/images", s.handleImages)
	api.POST("/compare", s.handleCompare)
	api.GET("/metrics", s.handleMetrics)
	api.GET("/results/:id", s.handleResults)
	api.GET("/frame/:id", s.handleFrame)

	s.router.GET("/ws", s.handleWebSocket)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleImages lists the known image records sorted by id
func (s *Server) handleImages(c *gin.Context) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.machine == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "no datasets loaded"})
		return
	}

	images := make([]*annocmp.ImageRecord, 0, len(s.machine.Images))

	for _, rec := range s.machine.Images {
		images = append(images, rec)
	}

	sort.Slice(images, func(i, j int) bool {
		return images[i].ID < images[j].ID
	})

	c.JSON(http.StatusOK, images)
}

// handleCompare runs a full comparison and atomically swaps the completed
// run into place.  At most one comparison may be in flight, concurrent
// requests are rejected instead of queued
func (s *Server) handleCompare(c *gin.Context) {

	s.mu.Lock()

	if s.machine == nil || s.human == nil {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "both annotation sets must be loaded"})
		return
	}

	if s.comparing {
		s.mu.Unlock()
		c.JSON(http.StatusConflict, gin.H{"error": "comparison already in progress"})
		return
	}

	s.comparing = true
	machine, human := s.machine, s.human
	s.mu.Unlock()

	run := compare.Compare(machine.Annotations, human.Annotations,
		len(machine.Images), s.cfg.IoUThreshold)

	s.mu.Lock()
	s.run = run
	s.comparing = false
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"matches":   run.Metrics.Matches,
		"precision": run.Metrics.Precision,
		"recall":    run.Metrics.Recall,
		"f1":        run.Metrics.F1,
	}).Info("comparison complete")

	c.JSON(http.StatusOK, gin.H{
		"metrics":    run.Metrics,
		"categories": run.Categories,
	})
}

func (s *Server) handleMetrics(c *gin.Context) {

	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comparison run yet"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"metrics":    run.Metrics,
		"categories": run.Categories,
	})
}

// resultView is the wire form of a comparison result
type resultView struct {
	MachineID  *int    `json:"machine_id"`
	HumanID    *int    `json:"human_id"`
	CategoryID int     `json:"category_id"`
	IoU        float64 `json:"iou"`
	Status     string  `json:"status"`
}

func (s *Server) handleResults(c *gin.Context) {

	imageID, err := parseIntParam(c, "id")

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	s.mu.RLock()
	run := s.run
	s.mu.RUnlock()

	if run == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no comparison run yet"})
		return
	}

	results := run.Results[imageID]
	views := make([]resultView, 0, len(results))

	for i := range results {
		views = append(views, toResultView(&results[i]))
	}

	c.JSON(http.StatusOK, views)
}

func toResultView(r *compare.Result) resultView {

	view := resultView{
		IoU:    r.IoU,
		Status: r.Status.String(),
	}

	if r.Machine != nil {
		id := r.Machine.ID
		view.MachineID = &id
		view.CategoryID = r.Machine.CategoryID
	}

	if r.Human != nil {
		id := r.Human.ID
		view.HumanID = &id
		view.CategoryID = r.Human.CategoryID
	}

	return view
}

// handleFrame serves the image file for an image record, optionally
// resized to the width query parameter
func (s *Server) handleFrame(c *gin.Context) {

	imageID, err := parseIntParam(c, "id")

	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid image id"})
		return
	}

	s.mu.RLock()
	var rec *annocmp.ImageRecord
	if s.machine != nil {
		rec = s.machine.Images[imageID]
	}
	s.mu.RUnlock()

	if rec == nil || rec.Path == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "image not resolved"})
		return
	}

	width, _ := parseIntQuery(c, "width")

	if width <= 0 {
		c.File(rec.Path)
		return
	}

	img, err := coco.LoadImage(rec.Path)

	if err != nil {
		s.logger.WithError(err).Warn("failed to load image")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load image"})
		return
	}

	c.Header("Content-Type", "image/jpeg")

	if err := encodeJPEG(c.Writer, coco.Thumbnail(img, width)); err != nil {
		s.logger.WithError(err).Warn("failed to encode frame")
	}
}

// annotationsFor returns the annotation lists for one image
func (s *Server) annotationsFor(imageID int) (machine, human []*annocmp.Annotation) {

	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.machineByImage[imageID], s.humanByImage[imageID]
}

// imageRecord returns the record for an image id, nil when unknown
func (s *Server) imageRecord(imageID int) *annocmp.ImageRecord {

	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.machine == nil {
		return nil
	}

	return s.machine.Images[imageID]
}
