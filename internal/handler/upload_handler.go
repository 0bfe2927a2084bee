package handler

import (
	"net/http"
	"strconv"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/labstack/echo/v4"
)

type UploadHandler struct {
	uc *usecase.UploadUsecase
}

func NewUploadHandler(uc *usecase.UploadUsecase) *UploadHandler {
	return &UploadHandler{uc: uc}
}

type UploadResponse struct {
	Success  bool   `json:"success"`
	URL      string `json:"url"`
	Path     string `json:"path"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

func (h *UploadHandler) RegisterRoutes(e *echo.Echo) {
	e.POST("/api/upload-proof", h.upload)
	e.DELETE("/api/upload-proof", h.remove)
}

func (h *UploadHandler) upload(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "file is required"})
	}

	//orderIdは任意（注文前のアップロードはフラット領域に保存される）
	var orderID int64
	if v := c.FormValue("orderId"); v != "" {
		orderID, err = strconv.ParseInt(v, 10, 64)
		if err != nil || orderID <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid orderId"})
		}
	}

	f, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "upload failed"})
	}
	defer f.Close()

	out, err := h.uc.UploadProof(c.Request().Context(), usecase.UploadProofInput{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Content:     f,
		OrderID:     orderID,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, UploadResponse{
		Success:  true,
		URL:      out.URL,
		Path:     out.Path,
		FileName: out.FileName,
		Size:     out.Size,
		Type:     out.Type,
	})
}

func (h *UploadHandler) remove(c echo.Context) error {
	path := c.QueryParam("path")

	var orderID int64
	if v := c.QueryParam("orderId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid orderId"})
		}
		orderID = id
	}

	if err := h.uc.DeleteProof(c.Request().Context(), path, orderID); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]bool{"success": true})
}
