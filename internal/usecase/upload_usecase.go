package usecase

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"
)

type ProofStorage interface {
	Put(ctx context.Context, objectPath string, contentType string, size int64, r io.Reader) (string, error)
	Remove(ctx context.Context, objectPath string) error
}

type IDGenerator interface {
	NewID() string
}

// MIME許可リスト（画像＋PDF）と保存時の拡張子
var allowedProofTypes = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"image/webp":      ".webp",
	"image/gif":       ".gif",
	"application/pdf": ".pdf",
}

type UploadUsecase struct {
	storage  ProofStorage // nilならストレージ未構成（503）
	orders   repo.OrderRepository
	idGen    IDGenerator
	clock    Clock
	maxBytes int64
}

func NewUploadUsecase(storage ProofStorage, orders repo.OrderRepository, idGen IDGenerator, clock Clock, maxBytes int64) *UploadUsecase {
	return &UploadUsecase{
		storage:  storage,
		orders:   orders,
		idGen:    idGen,
		clock:    clock,
		maxBytes: maxBytes,
	}
}

type UploadProofInput struct {
	FileName    string
	ContentType string
	Size        int64
	Content     io.Reader

	//0なら注文前アップロード（チェックアウト中）
	OrderID int64
}

type UploadProofOutput struct {
	URL      string `json:"url"`
	Path     string `json:"path"`
	FileName string `json:"fileName"`
	Size     int64  `json:"size"`
	Type     string `json:"type"`
}

func (u *UploadUsecase) UploadProof(ctx context.Context, in UploadProofInput) (UploadProofOutput, error) {
	ext, ok := allowedProofTypes[strings.ToLower(in.ContentType)]
	if !ok {
		return UploadProofOutput{}, NewHTTPError(http.StatusBadRequest, "file type not allowed")
	}
	//上限ちょうどはOK、1バイト超えたらNG
	if in.Size > u.maxBytes {
		return UploadProofOutput{}, NewHTTPError(http.StatusBadRequest,
			fmt.Sprintf("file exceeds %dMB limit", u.maxBytes>>20))
	}
	if in.Size <= 0 {
		return UploadProofOutput{}, NewHTTPError(http.StatusBadRequest, "empty file")
	}

	if u.storage == nil {
		return UploadProofOutput{}, NewHTTPError(http.StatusServiceUnavailable, "storage not configured")
	}

	//注文IDがあればその配下、なければチェックアウト用のフラット領域
	name := u.idGen.NewID() + ext
	objectPath := "checkout/" + name
	if in.OrderID > 0 {
		objectPath = fmt.Sprintf("orders/%d/%s", in.OrderID, name)
	}

	url, err := u.storage.Put(ctx, objectPath, in.ContentType, in.Size, in.Content)
	if err != nil {
		return UploadProofOutput{}, NewHTTPError(http.StatusInternalServerError, "upload failed")
	}

	//注文が既にあるならcomprobanteを紐づけて確定扱いにする
	if in.OrderID > 0 {
		err := u.orders.UpdateProof(ctx, in.OrderID, url, u.clock.Now(), model.OrderStatusConfirmed)
		if errors.Is(err, repo.ErrNotFound) {
			return UploadProofOutput{}, NewHTTPError(http.StatusNotFound, "order not found")
		}
		if err != nil {
			return UploadProofOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return UploadProofOutput{
		URL:      url,
		Path:     objectPath,
		FileName: in.FileName,
		Size:     in.Size,
		Type:     in.ContentType,
	}, nil
}

// DeleteProof はアップロード済みファイルの削除。注文IDがあればproof欄も戻す。
func (u *UploadUsecase) DeleteProof(ctx context.Context, objectPath string, orderID int64) error {
	if strings.TrimSpace(objectPath) == "" {
		return NewHTTPError(http.StatusBadRequest, "missing path")
	}
	if u.storage == nil {
		return NewHTTPError(http.StatusServiceUnavailable, "storage not configured")
	}

	if err := u.storage.Remove(ctx, objectPath); err != nil {
		return NewHTTPError(http.StatusInternalServerError, "delete failed")
	}

	if orderID > 0 {
		err := u.orders.ClearProof(ctx, orderID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
	}

	return nil
}
