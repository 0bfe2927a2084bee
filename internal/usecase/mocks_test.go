package usecase_test

import (
	"context"
	"io"
	"sync"
	"time"

	"github.com/RepuestoHoy/RepuestoHoy-sub000/internal/domain/model"
	repo "github.com/RepuestoHoy/RepuestoHoy-sub000/internal/repository"

	"github.com/stretchr/testify/mock"
)

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) UpdateProof(ctx context.Context, orderID int64, proofURL string, uploadedAt time.Time, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, proofURL, uploadedAt, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ClearProof(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type EmailLogRepoMock struct{ mock.Mock }

func (m *EmailLogRepoMock) Create(ctx context.Context, log model.EmailLog) (int64, error) {
	args := m.Called(ctx, log)
	return args.Get(0).(int64), args.Error(1)
}

func (m *EmailLogRepoMock) MarkSent(ctx context.Context, logID int64, sentAt time.Time) error {
	args := m.Called(ctx, logID, sentAt)
	return args.Error(0)
}

func (m *EmailLogRepoMock) MarkFailed(ctx context.Context, logID int64, errDetail string, at time.Time) error {
	args := m.Called(ctx, logID, errDetail, at)
	return args.Error(0)
}

func (m *EmailLogRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.EmailLog, error) {
	args := m.Called(ctx, orderID)
	logs, _ := args.Get(0).([]model.EmailLog)
	return logs, args.Error(1)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) ListAdmin(ctx context.Context, page int, limit int) ([]model.Product, int64, error) {
	args := m.Called(ctx, page, limit)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Get(1).(int64), args.Error(2)
}

func (m *ProductRepoMock) Update(ctx context.Context, p model.Product) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// =====================
// Notifier / storage mocks
// =====================

type NotifierMock struct{ mock.Mock }

func (m *NotifierMock) OrderCreated(ctx context.Context, o model.Order) {
	m.Called(ctx, o)
}

func (m *NotifierMock) ProofAttached(ctx context.Context, o model.Order) {
	m.Called(ctx, o)
}

type StorageMock struct{ mock.Mock }

func (m *StorageMock) Put(ctx context.Context, objectPath string, contentType string, size int64, r io.Reader) (string, error) {
	args := m.Called(ctx, objectPath, contentType, size, r)
	return args.String(0), args.Error(1)
}

func (m *StorageMock) Remove(ctx context.Context, objectPath string) error {
	args := m.Called(ctx, objectPath)
	return args.Error(0)
}

type idGenMock struct{ n int }

func (g *idGenMock) NewID() string {
	g.n++
	return "file-" + string(rune('a'+g.n-1))
}

// =====================
// Clocks
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

// 呼ばれるたびに1ミリ秒進む
type tickingClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *tickingClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.t
	c.t = c.t.Add(time.Millisecond)
	return now
}
