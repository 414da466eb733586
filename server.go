package backend

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/sakanhq/sakan-backend/pkg/models"
	"github.com/sakanhq/sakan-backend/pkg/review"
	"github.com/sakanhq/sakan-backend/pkg/storage/model"
)

var log = logrus.StandardLogger().WithField("package", "backend")

// Server is the portal HTTP API. All document review logic lives in
// pkg/review; the server only loads snapshots, runs the engine and
// writes snapshots back. Writes are serialized with a mutex because
// the stores replace whole snapshots (last-write-wins).
type Server struct {
	e       *gin.Engine
	store   model.Store
	files   model.FileStorage
	writeMu sync.Mutex
}

func New(store model.Store, files model.FileStorage) (*Server, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	if files == nil {
		return nil, fmt.Errorf("file storage is required")
	}
	s := &Server{
		e:     gin.New(),
		store: store,
		files: files,
	}
	s.initRoutes()
	return s, nil
}

func (s *Server) Run(addr string) error {
	return s.e.Run(addr)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.e
}

func (s *Server) initRoutes() {
	s.e.Use(gin.Logger())
	s.e.Use(cors.Default())

	g := s.e.Group("/api/v1")
	g.GET("/catalog", s.handleGetCatalog)
	g.GET("/applications/:id", s.handleGetApplication)
	g.GET("/applications/:id/slots", s.handleGetSlots)
	g.GET("/applications/:id/alerts", s.handleGetAlerts)
	g.POST("/applications/:id/documents", s.handleUploadDocument)
	g.PATCH("/applications/:id/documents/:docId/review", s.handleReviewDocument)
	g.PATCH("/applications/:id/message", s.handleSetMessage)
	g.GET("/files/:appId/:docId", s.handleGetFile)
}

var badRequest = gin.H{
	"error": "bad request",
}

var notFound = gin.H{
	"error": "not found",
}

var internalServerError = gin.H{
	"error": "internal server error",
}

func (s *Server) loadApplication(c *gin.Context, id string) *models.Application {
	app, err := s.store.GetApplication(id)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, notFound)
			return nil
		}
		log.Errorf("unable to load application %s: %v", id, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return nil
	}
	return app
}

func (s *Server) handleGetCatalog(c *gin.Context) {
	entries, err := s.store.Catalog()
	if err != nil {
		log.Errorf("unable to load catalog: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	if entries == nil {
		entries = []models.CatalogEntry{}
	}
	c.JSON(http.StatusOK, entries)
}

func (s *Server) handleGetApplication(c *gin.Context) {
	app := s.loadApplication(c, c.Param("id"))
	if app == nil {
		return
	}
	c.JSON(http.StatusOK, app)
}

// SlotView is one slot with its aggregate status and the single
// representative document shown by compact UIs.
type SlotView struct {
	models.DocumentSlotStatus
	Document *models.DocumentRecord `json:"document,omitempty"`
}

func (s *Server) slotViews(app *models.Application) ([]SlotView, error) {
	catalog, err := s.store.Catalog()
	if err != nil {
		return nil, err
	}
	slots := review.DocumentSlots(catalog, app.AdminMessage)
	views := make([]SlotView, 0, len(slots))
	for _, slot := range slots {
		views = append(views, SlotView{
			DocumentSlotStatus: review.SlotStatus(app.Documents, slot),
			Document:           review.DocForSlot(app.Documents, slot),
		})
	}
	return views, nil
}

func (s *Server) handleGetSlots(c *gin.Context) {
	app := s.loadApplication(c, c.Param("id"))
	if app == nil {
		return
	}
	views, err := s.slotViews(app)
	if err != nil {
		log.Errorf("unable to resolve slots for %s: %v", app.ID, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (s *Server) handleGetAlerts(c *gin.Context) {
	app := s.loadApplication(c, c.Param("id"))
	if app == nil {
		return
	}
	catalog, err := s.store.Catalog()
	if err != nil {
		log.Errorf("unable to load catalog: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	slots := review.DocumentSlots(catalog, app.AdminMessage)
	alerts := review.CalculateAlerts(app.Documents, slots, app.AdminMessage, app.Status, app.ID)
	if alerts == nil {
		alerts = []models.AlertInfo{}
	}
	c.JSON(http.StatusOK, alerts)
}

func (s *Server) handleUploadDocument(c *gin.Context) {
	appID := c.Param("id")
	docType := strings.TrimSpace(c.PostForm("docType"))
	if docType == "" {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	f, err := fileHeader.Open()
	if err != nil {
		log.Errorf("unable to open upload: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		log.Errorf("unable to read upload: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	app := s.loadApplication(c, appID)
	if app == nil {
		return
	}

	now := time.Now()
	record := models.DocumentRecord{
		ID:         uuid.NewString(),
		DocType:    docType,
		FileName:   fileHeader.Filename,
		UploadedAt: now,
		Status:     models.ReviewPending,
	}
	record.URL = fmt.Sprintf("/api/v1/files/%s/%s", app.ID, record.ID)

	err = s.files.StoreFile(models.UploadedFile{
		Reader:        bytes.NewReader(content),
		ApplicationID: app.ID,
		DocumentID:    record.ID,
		UploadTime:    now,
	})
	if err != nil {
		log.Errorf("unable to store file: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	// Uploads append, they never replace: the review history of the
	// slot is retained in full.
	app.Documents = append(app.Documents, record)
	app.UpdatedAt = now
	if err := s.store.PutApplication(*app); err != nil {
		log.Errorf("unable to save application %s: %v", app.ID, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	c.JSON(http.StatusCreated, record)
}

type reviewRequest struct {
	Status          models.ReviewStatus `json:"status"`
	RejectionReason string              `json:"rejectionReason"`
}

func (s *Server) handleReviewDocument(c *gin.Context) {
	var req reviewRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}
	if req.Status != models.ReviewAccepted && req.Status != models.ReviewRejected {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	app := s.loadApplication(c, c.Param("id"))
	if app == nil {
		return
	}

	docID := c.Param("docId")
	var record *models.DocumentRecord
	for i := range app.Documents {
		if app.Documents[i].ID == docID {
			record = &app.Documents[i]
			break
		}
	}
	if record == nil {
		c.JSON(http.StatusNotFound, notFound)
		return
	}

	record.Status = req.Status
	if req.Status == models.ReviewRejected {
		record.RejectionReason = req.RejectionReason
	} else {
		// A new decision supersedes any earlier rejection reason.
		record.RejectionReason = ""
	}
	app.UpdatedAt = time.Now()

	if err := s.store.PutApplication(*app); err != nil {
		log.Errorf("unable to save application %s: %v", app.ID, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}
	c.JSON(http.StatusOK, record)
}

type messageRequest struct {
	Message string `json:"message"`
}

func (s *Server) handleSetMessage(c *gin.Context) {
	var req messageRequest
	if err := c.BindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	app := s.loadApplication(c, c.Param("id"))
	if app == nil {
		return
	}

	app.AdminMessage = req.Message
	app.UpdatedAt = time.Now()
	if err := s.store.PutApplication(*app); err != nil {
		log.Errorf("unable to save application %s: %v", app.ID, err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	c.JSON(http.StatusOK, review.ParseAdminMessage(app.AdminMessage))
}

func (s *Server) handleGetFile(c *gin.Context) {
	appID := c.Param("appId")
	docID := c.Param("docId")
	if appID == "" || docID == "" {
		c.JSON(http.StatusBadRequest, badRequest)
		return
	}

	f, err := s.files.RetrieveFile(appID, docID)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, notFound)
			return
		}
		log.Errorf("unable to retrieve file: %v", err)
		c.JSON(http.StatusInternalServerError, internalServerError)
		return
	}

	c.Header("Content-Type", "application/octet-stream")
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, f.Reader); err != nil {
		log.Errorf("unable to copy: %v", err)
		return
	}
}
