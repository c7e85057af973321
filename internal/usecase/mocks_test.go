package usecase_test

import (
	"context"
	"testing"

	"foh/internal/domain/model"
	repo "foh/internal/repository"
	"foh/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindActiveByTable(ctx context.Context, tableID int64) (model.Order, bool, error) {
	args := m.Called(ctx, tableID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Bool(1), args.Error(2)
}

func (m *OrderRepoMock) ListUnpaidByTable(ctx context.Context, tableID int64) ([]model.Order, error) {
	args := m.Called(ctx, tableID)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) CountUnpaidByTable(ctx context.Context, tableID int64) (int64, error) {
	args := m.Called(ctx, tableID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) ListByStatuses(ctx context.Context, statuses []model.OrderStatus) ([]model.Order, error) {
	args := m.Called(ctx, statuses)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) ListAll(ctx context.Context) ([]model.Order, error) {
	args := m.Called(ctx)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Error(1)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateTotalIfVersion(ctx context.Context, orderID int64, totalCents int64, expectedVersion int) error {
	args := m.Called(ctx, orderID, totalCents, expectedVersion)
	return args.Error(0)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) DeleteByOrderID(ctx context.Context, orderID int64) error {
	args := m.Called(ctx, orderID)
	return args.Error(0)
}

func (m *OrderItemRepoMock) SetPrepared(ctx context.Context, orderID int64, position int, prepared bool) error {
	args := m.Called(ctx, orderID, position, prepared)
	return args.Error(0)
}

func (m *OrderItemRepoMock) CountUnprepared(ctx context.Context, orderID int64) (int64, error) {
	args := m.Called(ctx, orderID)
	return args.Get(0).(int64), args.Error(1)
}

type TableRepoMock struct{ mock.Mock }

func (m *TableRepoMock) List(ctx context.Context) ([]model.Table, error) {
	args := m.Called(ctx)
	tables, _ := args.Get(0).([]model.Table)
	return tables, args.Error(1)
}

func (m *TableRepoMock) ListByOccupancy(ctx context.Context, occupied bool) ([]model.Table, error) {
	args := m.Called(ctx, occupied)
	tables, _ := args.Get(0).([]model.Table)
	return tables, args.Error(1)
}

func (m *TableRepoMock) FindByID(ctx context.Context, tableID int64) (model.Table, error) {
	args := m.Called(ctx, tableID)
	t, _ := args.Get(0).(model.Table)
	return t, args.Error(1)
}

func (m *TableRepoMock) SetOccupied(ctx context.Context, tableID int64, occupied bool) error {
	args := m.Called(ctx, tableID, occupied)
	return args.Error(0)
}

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) ListActive(ctx context.Context) ([]model.Product, error) {
	args := m.Called(ctx)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) ListByCategory(ctx context.Context, categoryID int64) ([]model.Product, error) {
	args := m.Called(ctx, categoryID)
	products, _ := args.Get(0).([]model.Product)
	return products, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	args := m.Called(ctx, productID)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

type CategoryRepoMock struct{ mock.Mock }

func (m *CategoryRepoMock) List(ctx context.Context) ([]model.Category, error) {
	args := m.Called(ctx)
	categories, _ := args.Get(0).([]model.Category)
	return categories, args.Error(1)
}

// =====================
// Txのスタブ（fnをそのまま呼ぶだけ）
// =====================

type txReposMock struct {
	orders   *OrderRepoMock
	items    *OrderItemRepoMock
	tables   *TableRepoMock
	products *ProductRepoMock
}

func (r *txReposMock) Orders() repo.OrderRepository         { return r.orders }
func (r *txReposMock) OrderItems() repo.OrderItemRepository { return r.items }
func (r *txReposMock) Tables() repo.TableRepository         { return r.tables }
func (r *txReposMock) Products() repo.ProductRepository     { return r.products }

type txManagerStub struct{ repos *txReposMock }

func (s *txManagerStub) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return fn(s.repos)
}

func newTxFixture() (*txManagerStub, *txReposMock) {
	repos := &txReposMock{
		orders:   new(OrderRepoMock),
		items:    new(OrderItemRepoMock),
		tables:   new(TableRepoMock),
		products: new(ProductRepoMock),
	}
	return &txManagerStub{repos: repos}, repos
}

// 発行されたイベントを記録する
type eventsRecorder struct {
	orders []usecase.OrderOutput
	tables []model.Table
}

func (e *eventsRecorder) PublishOrder(o usecase.OrderOutput) { e.orders = append(e.orders, o) }
func (e *eventsRecorder) PublishTable(t model.Table)         { e.tables = append(e.tables, t) }

func assertHTTPError(t *testing.T, err error, status int, message string) {
	t.Helper()
	he, ok := usecase.AsHTTPError(err)
	if assert.True(t, ok, "expected HTTPError, got %v", err) {
		assert.Equal(t, status, he.Status)
		assert.Equal(t, message, he.Message)
	}
}
