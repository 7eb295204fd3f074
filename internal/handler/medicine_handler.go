package handler

import (
	"errors"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"medicine-service/internal/audit"
	"medicine-service/internal/catalog"
	"medicine-service/internal/middleware"
	"medicine-service/pkg/logger"
	"medicine-service/prometheus"
)

// MedicineHandler exposes the medicine catalog over HTTP. All routes run
// behind the auth middleware, which guarantees a company id in the context.
type MedicineHandler struct {
	catalog *catalog.Service
	audit   audit.Recorder
}

func NewMedicineHandler(svc *catalog.Service, recorder audit.Recorder) *MedicineHandler {
	return &MedicineHandler{catalog: svc, audit: recorder}
}

// Register attaches the catalog routes to a group.
func (h *MedicineHandler) Register(g *echo.Group) {
	g.GET("", h.ListMedicines)
	g.GET("/search", h.SearchMedicines)
	g.GET("/:id", h.GetMedicine)
	g.POST("", h.AddMedicine)
	g.PUT("/:id", h.UpdateMedicine)
	g.DELETE("/:id", h.DeleteMedicine)
	g.POST("/import", h.ImportDataset)
}

func actorFromContext(c echo.Context) (string, uint) {
	email, _ := c.Get("email").(string)
	userID, _ := c.Get("user_id").(uint)
	return email, userID
}

// writeError maps catalog failures onto transport status codes.
func writeError(c echo.Context, err error) error {
	log := logger.FromContext(c)

	var validationErr *catalog.ValidationError
	var ownershipErr *catalog.OwnershipError
	var conflictErr *catalog.ConflictError
	switch {
	case errors.Is(err, catalog.ErrCompanyNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Pharmaceutical company not found."})
	case errors.Is(err, catalog.ErrMedicineNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Medicine not found."})
	case errors.As(err, &validationErr):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": validationErr.Message})
	case errors.As(err, &ownershipErr):
		return c.JSON(http.StatusForbidden, echo.Map{"error": ownershipErr.Message})
	case errors.As(err, &conflictErr):
		prometheus.RecordNameConflict(conflictErr.Verdict.String())
		return c.JSON(http.StatusConflict, echo.Map{"error": conflictErr.Message})
	default:
		log.Error("Catalog operation failed", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal server error"})
	}
}

// ListMedicines returns the medicines owned by the acting company
func (h *MedicineHandler) ListMedicines(c echo.Context) error {
	log := logger.FromContext(c)
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	defer prometheus.TrackDBOperation("select")(time.Now())

	medicines, err := h.catalog.MedicinesByCompany(companyID)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Medicines listed", zap.Uint("company_id", companyID), zap.Int("count", len(medicines)))
	return c.JSON(http.StatusOK, medicines)
}

// GetMedicine returns one of the acting company's medicines by id
func (h *MedicineHandler) GetMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid medicine id"})
	}

	medicine, err := h.catalog.MedicineByCompanyAndID(companyID, uint(id))
	if err != nil {
		log.Warn("Medicine lookup failed",
			zap.Uint("company_id", companyID),
			zap.Uint64("medicine_id", id))
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, medicine)
}

// SearchMedicines finds catalog entries by case-insensitive name prefix
func (h *MedicineHandler) SearchMedicines(c echo.Context) error {
	log := logger.FromContext(c)

	prefix := c.QueryParam("name")
	medicines, err := h.catalog.SearchByNamePrefix(prefix)
	if err != nil {
		return writeError(c, err)
	}

	log.Info("Medicine search", zap.String("prefix", prefix), zap.Int("count", len(medicines)))
	return c.JSON(http.StatusOK, medicines)
}

// AddMedicine creates a new catalog entry owned by the acting company
func (h *MedicineHandler) AddMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("add")

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	var req catalog.AddMedicineRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("insert")(time.Now())

	medicine, err := h.catalog.Add(companyID, req)
	if err != nil {
		log.Warn("Medicine add rejected",
			zap.Uint("company_id", companyID),
			zap.String("name", req.Name),
			zap.Error(err))
		return writeError(c, err)
	}

	email, userID := actorFromContext(c)
	h.audit.Record("medicine.add", medicine.Name, email, userID)

	log.Info("Medicine added",
		zap.Uint("medicine_id", medicine.ID),
		zap.String("name", medicine.Name),
		zap.Uint("company_id", companyID))
	return c.JSON(http.StatusCreated, echo.Map{
		"message":  "Medicine added successfully.",
		"medicine": medicine,
	})
}

// UpdateMedicine replaces the fields of a medicine owned by the acting company
func (h *MedicineHandler) UpdateMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("update")

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid medicine id"})
	}

	var req catalog.UpdateMedicineRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request data"})
	}

	defer prometheus.TrackDBOperation("update")(time.Now())

	medicine, changed, err := h.catalog.Update(companyID, uint(id), req)
	if err != nil {
		log.Warn("Medicine update rejected",
			zap.Uint("company_id", companyID),
			zap.Uint64("medicine_id", id),
			zap.Error(err))
		return writeError(c, err)
	}

	if !changed {
		log.Info("Medicine update was a no-op",
			zap.Uint("medicine_id", medicine.ID),
			zap.Uint("company_id", companyID))
		return c.JSON(http.StatusOK, echo.Map{"message": "You did not change anything."})
	}

	email, userID := actorFromContext(c)
	h.audit.Record("medicine.update", medicine.Name, email, userID)

	log.Info("Medicine updated",
		zap.Uint("medicine_id", medicine.ID),
		zap.String("name", medicine.Name),
		zap.Uint("company_id", companyID))
	return c.JSON(http.StatusOK, echo.Map{
		"message":  "Medicine updated successfully.",
		"medicine": medicine,
	})
}

// DeleteMedicine removes a medicine owned by the acting company. A missing
// record is reported as a plain outcome, not a failure.
func (h *MedicineHandler) DeleteMedicine(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("delete")

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid medicine id"})
	}

	defer prometheus.TrackDBOperation("delete")(time.Now())

	if err := h.catalog.Delete(companyID, uint(id)); err != nil {
		if errors.Is(err, catalog.ErrMedicineNotFound) {
			return c.JSON(http.StatusOK, echo.Map{"message": "Medicine not found."})
		}
		log.Warn("Medicine delete rejected",
			zap.Uint("company_id", companyID),
			zap.Uint64("medicine_id", id),
			zap.Error(err))
		return writeError(c, err)
	}

	email, userID := actorFromContext(c)
	h.audit.Record("medicine.delete", strconv.FormatUint(id, 10), email, userID)

	log.Info("Medicine deleted",
		zap.Uint64("medicine_id", id),
		zap.Uint("company_id", companyID))
	return c.JSON(http.StatusOK, echo.Map{"message": "Medicine deleted successfully."})
}

// ImportDataset bulk-imports a CSV of medicines for the acting company
func (h *MedicineHandler) ImportDataset(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordMedicineOperation("import")

	companyID, ok := middleware.GetCompanyIDFromContext(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "company context required"})
	}

	file, err := c.FormFile("file")
	if err != nil {
		log.Error("Missing dataset file", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "dataset file is required"})
	}

	// Only CSV uploads are accepted
	contentType := file.Header.Get("Content-Type")
	if contentType != "text/csv" && !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
		log.Warn("Rejected dataset upload",
			zap.String("filename", file.Filename),
			zap.String("content_type", contentType))
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid file type. Please upload a CSV file."})
	}

	src, err := file.Open()
	if err != nil {
		log.Error("Failed to open dataset file", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to read dataset file"})
	}
	defer src.Close()

	defer prometheus.TrackDBOperation("bulk_insert")(time.Now())

	report, err := h.catalog.ImportDataset(src, companyID)
	if err != nil {
		log.Error("Dataset import failed",
			zap.Uint("company_id", companyID),
			zap.String("filename", file.Filename),
			zap.Error(err))
		return writeError(c, err)
	}

	prometheus.ImportRowsCounter.WithLabelValues("inserted").Add(float64(report.Inserted))
	prometheus.ImportRowsCounter.WithLabelValues("skipped_system").Add(float64(len(report.SystemNames)))
	prometheus.ImportRowsCounter.WithLabelValues("skipped_other_company").Add(float64(len(report.OtherCompanyNames)))
	prometheus.ImportRowsCounter.WithLabelValues("skipped_own_company").Add(float64(len(report.OwnCompanyNames)))

	email, userID := actorFromContext(c)
	h.audit.Record("medicine.import", report.Summary(), email, userID)

	log.Info("Dataset imported",
		zap.Uint("company_id", companyID),
		zap.String("filename", file.Filename),
		zap.Int("inserted", report.Inserted),
		zap.Int("skipped_system", len(report.SystemNames)),
		zap.Int("skipped_other_company", len(report.OtherCompanyNames)),
		zap.Int("skipped_own_company", len(report.OwnCompanyNames)))
	return c.JSON(http.StatusOK, echo.Map{
		"message": report.Summary(),
		"report":  report,
	})
}
