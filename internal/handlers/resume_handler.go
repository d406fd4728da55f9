package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/stratacloud/careers-backend/internal/dto"
	"github.com/stratacloud/careers-backend/internal/services"
)

type ResumeHandler struct {
	resumes *services.ResumeService
	uploads *services.UploadService
}

func NewResumeHandler(resumes *services.ResumeService, uploads *services.UploadService) *ResumeHandler {
	return &ResumeHandler{resumes: resumes, uploads: uploads}
}

func (h *ResumeHandler) List(c *fiber.Ctx) error {
	list, err := h.resumes.List(c.UserContext(), c.Params("userId"))
	if err != nil {
		return respondError(c, "list_resumes", err)
	}
	return c.JSON(dto.ResumeListResponse{Resumes: list})
}

// Upload takes a multipart form with the file under "file" and an optional
// "isDefault" flag. "fileType" overrides the part's Content-Type.
func (h *ResumeHandler) Upload(c *fiber.Ctx) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "file is required")
	}

	contentType := c.FormValue("fileType")
	if contentType == "" {
		contentType = fh.Header.Get(fiber.HeaderContentType)
	}
	isDefault := false
	if v := c.FormValue("isDefault"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			return badRequest(c, "isDefault must be true or false")
		}
		isDefault = parsed
	}

	f, err := fh.Open()
	if err != nil {
		return badRequest(c, "failed to read file")
	}
	defer f.Close()

	resume, err := h.resumes.Upload(c.UserContext(), c.Params("userId"), &services.ResumeUpload{
		FileName:    fh.Filename,
		ContentType: contentType,
		Size:        fh.Size,
		Body:        f,
		IsDefault:   isDefault,
	})
	if err != nil {
		return respondError(c, "upload_resume", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResumeResponse{Resume: *resume})
}

func (h *ResumeHandler) Confirm(c *fiber.Ctx) error {
	var req dto.ConfirmResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resume, err := h.resumes.Confirm(c.UserContext(), c.Params("userId"), &req)
	if err != nil {
		return respondError(c, "confirm_resume", err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResumeResponse{Resume: *resume})
}

func (h *ResumeHandler) Presign(c *fiber.Ctx) error {
	var req dto.PresignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resp, err := h.uploads.PresignProfile(c.UserContext(), c.Params("userId"), &req)
	if err != nil {
		return respondError(c, "presign_profile_resume", err)
	}
	return c.JSON(resp)
}

func (h *ResumeHandler) Download(c *fiber.Ctx) error {
	resp, err := h.resumes.DownloadURL(c.UserContext(), c.Params("userId"), c.Params("resumeId"))
	if err != nil {
		return respondError(c, "download_resume", err)
	}
	return c.JSON(resp)
}

// File streams the stored résumé through the API.
func (h *ResumeHandler) File(c *fiber.Ctx) error {
	obj, resume, err := h.resumes.Open(c.UserContext(), c.Params("userId"), c.Params("resumeId"))
	if err != nil {
		return respondError(c, "stream_resume", err)
	}

	c.Set(fiber.HeaderContentType, obj.ContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+strings.ReplaceAll(resume.FileName, `"`, "")+`"`)
	return c.SendStream(obj.Body, int(obj.Size))
}

func (h *ResumeHandler) Delete(c *fiber.Ctx) error {
	if err := h.resumes.Delete(c.UserContext(), c.Params("userId"), c.Params("resumeId")); err != nil {
		return respondError(c, "delete_resume", err)
	}
	return c.JSON(fiber.Map{"success": true})
}

func (h *ResumeHandler) Patch(c *fiber.Ctx) error {
	var req dto.PatchResumeRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	resume, err := h.resumes.Patch(c.UserContext(), c.Params("userId"), c.Params("resumeId"), &req)
	if err != nil {
		return respondError(c, "patch_resume", err)
	}
	return c.JSON(dto.ResumeResponse{Resume: *resume})
}
