package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/realyassine/SouqFX/domain/cart"
	"github.com/realyassine/SouqFX/domain/catalog"
	"github.com/realyassine/SouqFX/domain/order"
	"github.com/realyassine/SouqFX/infrastructure/processing"
	"github.com/realyassine/SouqFX/pkg/errors"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testContext(t *testing.T) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)
	c.Set(RequestIDKey, "req-1")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestHandleAppErrorMapsStatus(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"empty cart", cart.NewEmptyCartError(), http.StatusBadRequest, "CART_EMPTY"},
		{"item not found", catalog.NewItemNotFoundError(7), http.StatusNotFound, "ITEM_NOT_FOUND"},
		{"order not found", order.NewOrderNotFoundError(1001), http.StatusNotFound, "ORDER_NOT_FOUND"},
		{"processor closed", processing.ErrProcessorClosed, http.StatusServiceUnavailable, "PROCESSOR_CLOSED"},
		{"checkout timeout", errors.CheckoutTimeout(), http.StatusGatewayTimeout, "CHECKOUT_TIMEOUT"},
		{"validation", errors.Validation("min_price is invalid"), http.StatusBadRequest, "VALIDATION_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext(t)

			HandleAppError(c, tc.err)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decode(t, w)
			assert.False(t, resp.Success)
			assert.Equal(t, tc.wantCode, resp.Error)
			assert.Equal(t, tc.wantStatus, resp.Code)
			assert.Equal(t, "req-1", resp.RequestID)
		})
	}
}

func TestHandleAppErrorHidesInternalDetail(t *testing.T) {
	c, w := testContext(t)

	HandleAppError(c, fmt.Errorf("csv writer exploded on line 42"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "INTERNAL_ERROR", resp.Error)
	assert.Equal(t, "internal server error", resp.Message)
	assert.NotContains(t, w.Body.String(), "exploded")
}

func TestHandleError(t *testing.T) {
	c, w := testContext(t)

	HandleError(c, fmt.Errorf("bind: missing field"), "invalid request parameters", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	resp := decode(t, w)
	assert.False(t, resp.Success)
	assert.Equal(t, "BAD_REQUEST", resp.Error)
	assert.Equal(t, "invalid request parameters", resp.Message)
}

func TestSuccessHandlers(t *testing.T) {
	cases := []struct {
		name       string
		handle     func(*gin.Context)
		wantStatus int
	}{
		{"success", func(c *gin.Context) { HandleSuccess(c, gin.H{"k": "v"}, "done") }, http.StatusOK},
		{"created", func(c *gin.Context) { HandleCreated(c, gin.H{"k": "v"}, "done") }, http.StatusCreated},
		{"accepted", func(c *gin.Context) { HandleAccepted(c, gin.H{"k": "v"}, "done") }, http.StatusAccepted},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, w := testContext(t)

			tc.handle(c)

			assert.Equal(t, tc.wantStatus, w.Code)
			resp := decode(t, w)
			assert.True(t, resp.Success)
			assert.Equal(t, "done", resp.Message)
			assert.Equal(t, tc.wantStatus, resp.Code)
			assert.Equal(t, "req-1", resp.RequestID)
			assert.NotNil(t, resp.Data)
		})
	}
}

func TestGetRequestIDMissing(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)

	assert.Equal(t, "", GetRequestID(c))
}
