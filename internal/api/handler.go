// Package api exposes the statement engine over HTTP.
package api

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/financeapp/statement-engine/internal/annotate"
	"github.com/financeapp/statement-engine/internal/engine"
	"github.com/financeapp/statement-engine/internal/models"
	"github.com/financeapp/statement-engine/internal/storage"
)

type Handler struct {
	Engine         *engine.Engine
	Store          *storage.Database
	MaxUploadBytes int64
	Log            zerolog.Logger
}

// Register mounts the API routes on the app.
func (h *Handler) Register(app *fiber.App) {
	app.Get("/api/health", h.HandleHealth)
	app.Post("/api/statements/upload", h.HandleUpload)
	app.Post("/api/statements/import", h.HandleImport)
}

func (h *Handler) HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "ok", "service": "statement-engine"})
}

// HandleUpload parses an uploaded statement and returns the extracted
// transactions for review. Nothing is persisted here.
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult("No file provided"))
	}
	if h.MaxUploadBytes > 0 && fileHeader.Size > h.MaxUploadBytes {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult(
			fmt.Sprintf("File exceeds maximum size of %d bytes", h.MaxUploadBytes)))
	}

	f, err := fileHeader.Open()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult("Failed to read uploaded file"))
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult("Failed to read uploaded file"))
	}

	provider := models.ProviderFromString(c.FormValue("statementType", string(models.ProviderPhonePe)))
	ownerID := c.FormValue("ownerId", "local")
	uploadID := uuid.NewString()

	h.Log.Info().
		Str("upload_id", uploadID).
		Str("file", fileHeader.Filename).
		Int64("size", fileHeader.Size).
		Str("provider", string(provider)).
		Msg("statement upload received")

	var oracle annotate.ExistenceOracle
	if h.Store != nil {
		oracle = h.Store
	}
	result := h.Engine.Parse(c.Context(), engine.Request{
		Data:      data,
		FileName:  fileHeader.Filename,
		Extension: filepath.Ext(fileHeader.Filename),
		Provider:  provider,
		OwnerID:   ownerID,
		Oracle:    oracle,
	})
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(result)
	}
	return c.JSON(result)
}

type importRequest struct {
	OwnerID      string                     `json:"ownerId"`
	Transactions []models.ParsedTransaction `json:"transactions"`
}

type importResponse struct {
	Success  bool   `json:"success"`
	BatchID  string `json:"batchId"`
	Imported int    `json:"imported"`
	Skipped  int    `json:"skipped"`
}

// HandleImport persists reviewed transactions. Rows still flagged as
// duplicates are skipped, not rejected.
func (h *Handler) HandleImport(c *fiber.Ctx) error {
	if h.Store == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(errorResult("Storage is not configured"))
	}
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult("Invalid request body"))
	}
	if len(req.Transactions) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(errorResult("No transactions to import"))
	}
	ownerID := req.OwnerID
	if ownerID == "" {
		ownerID = "local"
	}

	batchID, skipped, err := h.Store.SaveBatch(c.Context(), ownerID, req.Transactions)
	if err != nil {
		h.Log.Error().Err(err).Msg("import failed")
		return c.Status(fiber.StatusInternalServerError).JSON(errorResult("Failed to import transactions"))
	}
	imported := len(req.Transactions) - skipped
	h.Log.Info().
		Str("batch_id", batchID).
		Str("owner_id", ownerID).
		Int("imported", imported).
		Int("skipped", skipped).
		Msg("transactions imported")
	return c.JSON(importResponse{Success: true, BatchID: batchID, Imported: imported, Skipped: skipped})
}

func errorResult(msg string) models.ParseResult {
	return models.ParseResult{
		Success:      false,
		Message:      msg,
		Transactions: []models.ParsedTransaction{},
		Errors:       []string{msg},
	}
}
