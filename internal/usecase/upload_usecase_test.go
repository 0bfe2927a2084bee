package usecase_test

import (
	"context"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const maxUpload = 5 << 20

func newUploadUsecase(storage usecase.ProofStorage, orders *OrderRepoMock) *usecase.UploadUsecase {
	clock := &fixedClock{t: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
	return usecase.NewUploadUsecase(storage, orders, &idGenMock{}, clock, maxUpload)
}

func uploadInput(size int64, contentType string) usecase.UploadProofInput {
	return usecase.UploadProofInput{
		FileName:    "comprobante.jpg",
		ContentType: contentType,
		Size:        size,
		Content:     strings.NewReader("fake bytes"),
	}
}

func TestUploadProof_DisallowedType(t *testing.T) {
	storage := new(StorageMock)
	orders := new(OrderRepoMock)
	uc := newUploadUsecase(storage, orders)

	_, err := uc.UploadProof(context.Background(), uploadInput(1024, "application/zip"))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	//ストレージには一切書かない
	storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestUploadProof_SizeCeiling(t *testing.T) {
	t.Run("exactly at limit", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		storage.On("Put", mock.Anything, mock.Anything, "image/jpeg", int64(maxUpload), mock.Anything).
			Return("https://cdn.example.com/proofs/x.jpg", nil)

		out, err := uc.UploadProof(context.Background(), uploadInput(maxUpload, "image/jpeg"))
		require.NoError(t, err)
		assert.Equal(t, int64(maxUpload), out.Size)
	})

	t.Run("one byte over", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		_, err := uc.UploadProof(context.Background(), uploadInput(maxUpload+1, "image/jpeg"))

		he, ok := usecase.AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
		assert.Contains(t, he.Message, "5MB")
		storage.AssertNotCalled(t, "Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUploadProof_StorageNotConfigured(t *testing.T) {
	orders := new(OrderRepoMock)
	uc := newUploadUsecase(nil, orders)

	_, err := uc.UploadProof(context.Background(), uploadInput(1024, "image/png"))

	he, ok := usecase.AsHTTPError(err)
	require.True(t, ok)
	assert.Equal(t, http.StatusServiceUnavailable, he.Status)
}

func TestUploadProof_PathNamespacing(t *testing.T) {
	t.Run("without order id", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		var gotPath string
		storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Run(func(args mock.Arguments) { gotPath = args.String(1) }).
			Return("https://cdn.example.com/proofs/x.jpg", nil)

		out, err := uc.UploadProof(context.Background(), uploadInput(1024, "image/jpeg"))
		require.NoError(t, err)

		//注文前アップロードはフラット領域
		assert.True(t, strings.HasPrefix(gotPath, "checkout/"))
		assert.Equal(t, gotPath, out.Path)
		orders.AssertNotCalled(t, "UpdateProof", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("with order id", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		storage.On("Put", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
			Return("https://cdn.example.com/proofs/x.jpg", nil)
		//添付は確定シグナルなのでステータスもconfirmedへ
		orders.On("UpdateProof", mock.Anything, int64(7), "https://cdn.example.com/proofs/x.jpg",
			mock.Anything, model.OrderStatusConfirmed).Return(nil)

		in := uploadInput(1024, "application/pdf")
		in.OrderID = 7

		out, err := uc.UploadProof(context.Background(), in)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.Path, "orders/7/"))
		assert.True(t, strings.HasSuffix(out.Path, ".pdf"))

		orders.AssertExpectations(t)
	})
}

func TestDeleteProof(t *testing.T) {
	t.Run("missing path", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		err := uc.DeleteProof(context.Background(), "", 0)

		he, ok := usecase.AsHTTPError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusBadRequest, he.Status)
	})

	t.Run("with order id clears proof fields", func(t *testing.T) {
		storage := new(StorageMock)
		orders := new(OrderRepoMock)
		uc := newUploadUsecase(storage, orders)

		storage.On("Remove", mock.Anything, "orders/7/file-a.jpg").Return(nil)
		orders.On("ClearProof", mock.Anything, int64(7)).Return(nil)

		err := uc.DeleteProof(context.Background(), "orders/7/file-a.jpg", 7)
		require.NoError(t, err)

		storage.AssertExpectations(t)
		orders.AssertExpectations(t)
	})
}
