package handlers

import (
	"errors"
	"fmt"
	"log"

	"fileshare-api/internal/config"
	"fileshare-api/internal/database"
	"fileshare-api/internal/middleware"
	"fileshare-api/internal/repositories"
	"fileshare-api/internal/requests"
	"fileshare-api/internal/services"
	"fileshare-api/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	pkgConfig "github.com/kerimovok/go-pkg-utils/config"
	"github.com/kerimovok/go-pkg-utils/httpx"
	"github.com/kerimovok/go-pkg-utils/validator"
)

// ShareEmailSender sends share-notification mail.
type ShareEmailSender interface {
	SendShareNotification(to, fromUser, fileName, shareURL string, sizeBytes int64) error
}

// FileHandler handles upload, listing, sharing and download requests.
type FileHandler struct {
	fileService  *services.FileService
	shareService *services.ShareService
	blobStore    *storage.LocalStore
	emailSender  ShareEmailSender
}

// NewFileHandler wires the file handler from the loaded configuration.
func NewFileHandler() *FileHandler {
	storageCfg := config.GetConfig().Storage

	blobStore, err := storage.NewLocalStore(storageCfg.Storage.UploadDir, storageCfg.Storage.CreateDirs)
	if err != nil {
		log.Fatalf("failed to initialize blob store: %v", err)
	}

	fileRepo := repositories.NewFileRepository(database.DB)
	return &FileHandler{
		fileService:  services.NewFileService(),
		shareService: services.NewShareService(fileRepo, blobStore, storageCfg.Sharing.RetentionDays),
		blobStore:    blobStore,
		emailSender:  services.NewEmailService(),
	}
}

// UploadFile handles file upload requests. Bytes are persisted first and the
// metadata record second; a failed record write rolls the blob back.
func (h *FileHandler) UploadFile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	file, err := c.FormFile("file")
	if err != nil {
		response := httpx.BadRequest("No file provided", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.fileService.ValidateFile(file); err != nil {
		response := httpx.BadRequest("File validation failed", err)
		return httpx.SendResponse(c, response)
	}

	blobPath, storedName, err := h.fileService.GenerateBlobPath(file.Filename)
	if err != nil {
		response := httpx.InternalServerError("Failed to generate file path", err)
		return httpx.SendResponse(c, response)
	}

	src, err := file.Open()
	if err != nil {
		response := httpx.InternalServerError("Failed to read uploaded file", err)
		return httpx.SendResponse(c, response)
	}
	defer src.Close()

	if _, err := h.blobStore.Save(src, blobPath); err != nil {
		response := httpx.InternalServerError("Failed to save file", err)
		return httpx.SendResponse(c, response)
	}

	record, err := h.shareService.Issue(user.ID, services.StoredUpload{
		OriginalName: file.Filename,
		StoredName:   storedName,
		BlobPath:     blobPath,
		MimeType:     file.Header.Get("Content-Type"),
		SizeBytes:    file.Size,
	})
	if err != nil {
		log.Printf("Failed to save file record: %v", err)
		response := httpx.InternalServerError("Failed to process file upload", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.Created("File uploaded successfully", record)
	return httpx.SendResponse(c, response)
}

// MyFiles returns one page of the caller's files.
func (h *FileHandler) MyFiles(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input requests.ListFilesRequest
	if err := c.QueryParser(&input); err != nil {
		response := httpx.BadRequest("Invalid query parameters", err)
		return httpx.SendResponse(c, response)
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	if input.Page < 1 {
		input.Page = 1
	}
	if input.Limit < 1 {
		input.Limit = 10
	}

	files, total, err := h.shareService.ListOwned(user.ID, input.Page, input.Limit)
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch files", err)
		return httpx.SendResponse(c, response)
	}

	result := fiber.Map{
		"files": files,
		"pagination": fiber.Map{
			"page":       input.Page,
			"limit":      input.Limit,
			"total":      total,
			"totalPages": (total + int64(input.Limit) - 1) / int64(input.Limit),
		},
	}
	response := httpx.OK("Files retrieved successfully", result)
	return httpx.SendResponse(c, response)
}

// RecentFiles returns the caller's most recent uploads.
func (h *FileHandler) RecentFiles(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input requests.RecentFilesRequest
	if err := c.QueryParser(&input); err != nil {
		response := httpx.BadRequest("Invalid query parameters", err)
		return httpx.SendResponse(c, response)
	}
	if input.Limit < 1 {
		input.Limit = 5
	}

	files, err := h.shareService.Recent(user.ID, input.Limit)
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch files", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Files retrieved successfully", files)
	return httpx.SendResponse(c, response)
}

// Stats returns aggregate statistics over the caller's files.
func (h *FileHandler) Stats(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	stats, err := h.shareService.AggregateStats(user.ID)
	if err != nil {
		response := httpx.InternalServerError("Failed to fetch statistics", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Statistics retrieved successfully", stats)
	return httpx.SendResponse(c, response)
}

// SharedFile returns the public view of a shared file.
func (h *FileHandler) SharedFile(c *fiber.Ctx) error {
	view, err := h.shareService.ResolvePublic(c.Params("shareId"))
	if err != nil {
		return sendShareError(c, err)
	}

	response := httpx.OK("File retrieved successfully", view)
	return httpx.SendResponse(c, response)
}

// DownloadFile streams a shared file as an attachment. The download is
// recorded before the first byte leaves the server.
func (h *FileHandler) DownloadFile(c *fiber.Ctx) error {
	file, err := h.shareService.AuthorizeDownload(c.Params("shareId"))
	if err != nil {
		return sendShareError(c, err)
	}

	// The blob can vanish between the authorization check and the stream.
	if err := c.Download(h.blobStore.FullPath(file.BlobPath), file.OriginalName); err != nil {
		log.Printf("Warning: failed to stream blob for share %s: %v", file.ShareID, err)
		return sendShareError(c, services.ErrNotFound)
	}
	// Download detects Content-Type from the extension; override it after.
	c.Set(fiber.HeaderContentType, file.MimeType)
	return nil
}

// DeleteFile deletes a file on behalf of its owner.
func (h *FileHandler) DeleteFile(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileID, err := uuid.Parse(c.Params("fileId"))
	if err != nil {
		response := httpx.BadRequest("Invalid file ID", err)
		return httpx.SendResponse(c, response)
	}

	if err := h.shareService.Delete(fileID, user.ID); err != nil {
		return sendShareError(c, err)
	}

	response := httpx.OK("File deleted successfully", nil)
	return httpx.SendResponse(c, response)
}

// ShareByEmail mails a share link for one of the caller's files.
func (h *FileHandler) ShareByEmail(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	var input requests.ShareEmailRequest
	if err := c.BodyParser(&input); err != nil {
		response := httpx.BadRequest("Invalid request body", err)
		return httpx.SendResponse(c, response)
	}
	if err := validator.ValidateStruct(&input); err != nil {
		response := httpx.BadRequest("Validation failed", err)
		return httpx.SendResponse(c, response)
	}

	file, err := h.shareService.AuthorizeShare(input.ShareID, user.ID)
	if err != nil {
		return sendShareError(c, err)
	}

	shareURL := fmt.Sprintf("%s/share/%s", pkgConfig.GetEnv("FRONTEND_URL"), file.ShareID)
	if err := h.emailSender.SendShareNotification(input.Email, user.Username, file.OriginalName, shareURL, file.FileSize); err != nil {
		log.Printf("Failed to send share email: %v", err)
		response := httpx.InternalServerError("Failed to send email", err)
		return httpx.SendResponse(c, response)
	}

	response := httpx.OK("Email sent successfully", fiber.Map{
		"email":    input.Email,
		"fileName": file.OriginalName,
		"shareUrl": shareURL,
	})
	return httpx.SendResponse(c, response)
}

// sendShareError maps domain errors to responses. Missing and expired shares
// get the same generic message so callers cannot probe whether a link ever
// existed.
func sendShareError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return httpx.SendResponse(c, httpx.NotFound("File not found or expired"))
	case errors.Is(err, services.ErrExpired):
		return httpx.SendResponse(c, httpx.Gone("File not found or expired"))
	case errors.Is(err, services.ErrForbidden):
		return httpx.SendResponse(c, httpx.Forbidden("You can only manage your own files"))
	default:
		return httpx.SendResponse(c, httpx.InternalServerError("Failed to process request", err))
	}
}
