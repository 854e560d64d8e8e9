package order

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	checkoutapp "github.com/realyassine/SouqFX/application/checkout"
	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/domain/catalog"
	domorder "github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/domain/shared"
	"github.com/realyassine/SouqFX/infrastructure/events"
	"github.com/realyassine/SouqFX/infrastructure/processing"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memLedger struct {
	mu      sync.Mutex
	records []domorder.Record
}

func (m *memLedger) Append(ctx context.Context, o *domorder.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, domorder.RecordOf(o))
	return nil
}

func (m *memLedger) History(ctx context.Context) ([]domorder.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]domorder.Record, len(m.records))
	copy(out, m.records)
	return out, nil
}

func (m *memLedger) size() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.records)
}

type fakeItems map[int]catalog.Item

func (f fakeItems) Item(id int) (catalog.Item, error) {
	item, ok := f[id]
	if !ok {
		return catalog.Item{}, catalog.NewItemNotFoundError(id)
	}
	return item, nil
}

type fixture struct {
	engine  *gin.Engine
	service *checkoutapp.Service
	ledger  *memLedger
}

func fastProcessing() processing.Config {
	return processing.Config{
		PoolSize:      2,
		QueueSize:     16,
		StepDelay:     time.Millisecond,
		ResultDelay:   5 * time.Millisecond,
		ShutdownGrace: 2 * time.Second,
	}
}

func newFixture(t *testing.T, procCfg processing.Config, awaitTimeout time.Duration) *fixture {
	t.Helper()

	djellaba, err := catalog.NewClothing(6, "Djellaba", shared.MustMoney("450.00"), "L", "Cotton")
	require.NoError(t, err)

	ledger := &memLedger{}
	tracker, err := checkoutapp.NewStatusTracker(ledger, events.NewBus())
	require.NoError(t, err)

	proc, err := processing.New(procCfg)
	require.NoError(t, err)
	proc.SetObserver(tracker)
	t.Cleanup(proc.Shutdown)

	svc, err := checkoutapp.NewService(cart.New(), fakeItems{6: djellaba}, proc, tracker, ledger, awaitTimeout)
	require.NoError(t, err)

	engine := gin.New()
	NewController(svc).RegisterRoutes(engine.Group("/api/v1"))
	return &fixture{engine: engine, service: svc, ledger: ledger}
}

func (f *fixture) post(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *fixture) get(path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func (f *fixture) fillCart(t *testing.T, quantity int) {
	t.Helper()
	_, err := f.service.AddToCart(checkoutapp.AddItemRequest{ItemID: 6, Quantity: quantity})
	require.NoError(t, err)
}

type checkoutEnvelope struct {
	Success bool                         `json:"success"`
	Data    checkoutapp.CheckoutResponse `json:"data"`
	Error   string                       `json:"error"`
}

type expressEnvelope struct {
	Success bool                                `json:"success"`
	Data    checkoutapp.ExpressCheckoutResponse `json:"data"`
	Error   string                              `json:"error"`
}

type statusEnvelope struct {
	Success bool                        `json:"success"`
	Data    checkoutapp.OrderStatusView `json:"data"`
	Error   string                      `json:"error"`
}

type listEnvelope struct {
	Success bool                          `json:"success"`
	Data    []checkoutapp.OrderStatusView `json:"data"`
	Error   string                        `json:"error"`
}

type historyEnvelope struct {
	Success bool                           `json:"success"`
	Data    []checkoutapp.HistoryEntryView `json:"data"`
	Error   string                         `json:"error"`
}

func TestCheckoutEmptyCart(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)

	w := f.post("/api/v1/checkout", "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	var resp checkoutEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CART_EMPTY", resp.Error)
}

func TestCheckoutBadBody(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)
	f.fillCart(t, 1)

	w := f.post("/api/v1/checkout", "{not json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutFlow(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)
	f.fillCart(t, 2)

	w := f.post("/api/v1/checkout", `{"customer_name":"Amina"}`)
	require.Equal(t, http.StatusAccepted, w.Code)

	var resp checkoutEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.Greater(t, resp.Data.OrderID, int64(1000))
	assert.Equal(t, "Amina", resp.Data.Customer)
	assert.Equal(t, "900.00", resp.Data.Total)
	assert.Equal(t, "QUEUED", resp.Data.Status)

	// Completion is signalled by the ledger append, the tracker's last
	// step.
	require.Eventually(t, func() bool {
		return f.ledger.size() == 1
	}, 5*time.Second, time.Millisecond)

	orderID := resp.Data.OrderID
	idPath := "/api/v1/orders/" + strconv.FormatInt(orderID, 10)

	statusRec := f.get(idPath + "/status")
	require.Equal(t, http.StatusOK, statusRec.Code)
	var status statusEnvelope
	require.NoError(t, json.Unmarshal(statusRec.Body.Bytes(), &status))
	assert.Equal(t, "COMPLETED", status.Data.Stage)
	assert.Equal(t, 100, status.Data.Progress)
	assert.True(t, status.Data.Success)

	receiptRec := f.get(idPath + "/receipt")
	require.Equal(t, http.StatusOK, receiptRec.Code)
	assert.Contains(t, receiptRec.Body.String(), "ORDER SUMMARY")
	assert.Contains(t, receiptRec.Body.String(), "Customer: Amina")
	assert.Contains(t, receiptRec.Body.String(), "Status: PAID")

	liveRec := f.get("/api/v1/orders")
	require.Equal(t, http.StatusOK, liveRec.Code)
	var live listEnvelope
	require.NoError(t, json.Unmarshal(liveRec.Body.Bytes(), &live))
	require.Len(t, live.Data, 1)
	assert.Equal(t, orderID, live.Data[0].OrderID)

	historyRec := f.get("/api/v1/orders/history")
	require.Equal(t, http.StatusOK, historyRec.Code)
	var history historyEnvelope
	require.NoError(t, json.Unmarshal(historyRec.Body.Bytes(), &history))
	require.Len(t, history.Data, 1)
	assert.Equal(t, orderID, history.Data[0].OrderID)
	assert.True(t, history.Data[0].Paid)
}

func TestExpressCheckout(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)
	f.fillCart(t, 1)

	w := f.post("/api/v1/checkout/express", `{"customer_name":"Yassine"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var resp expressEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.True(t, resp.Success)
	assert.True(t, resp.Data.Paid)
	assert.Contains(t, resp.Data.Message, "confirmed")
	assert.Equal(t, "450.00", resp.Data.Total)
}

func TestExpressCheckoutTimeout(t *testing.T) {
	cfg := fastProcessing()
	cfg.ResultDelay = 500 * time.Millisecond
	f := newFixture(t, cfg, 20*time.Millisecond)
	f.fillCart(t, 1)

	w := f.post("/api/v1/checkout/express", "")
	require.Equal(t, http.StatusGatewayTimeout, w.Code)

	var resp expressEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "CHECKOUT_TIMEOUT", resp.Error)
}

func TestOrderStatusNotFound(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)

	w := f.get("/api/v1/orders/999999/status")
	require.Equal(t, http.StatusNotFound, w.Code)

	var resp statusEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ORDER_NOT_FOUND", resp.Error)
}

func TestOrderStatusBadID(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)

	w := f.get("/api/v1/orders/abc/status")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReceiptNotFound(t *testing.T) {
	f := newFixture(t, fastProcessing(), 2*time.Second)

	w := f.get("/api/v1/orders/999999/receipt")
	assert.Equal(t, http.StatusNotFound, w.Code)
}
