package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentwheels/car-rental-api/models"
)

func orderBody(vin string) map[string]interface{} {
	return map[string]interface{}{
		"customer": map[string]interface{}{
			"name":                 "Jamie Doe",
			"phoneNumber":          "555-0100",
			"email":                "jamie@example.com",
			"driversLicenseNumber": "D1234567",
		},
		"car": map[string]interface{}{
			"vin": vin,
		},
		"rental": map[string]interface{}{
			"startDate":    "2026-10-01",
			"rentalPeriod": 3,
		},
	}
}

func postJSON(router http.Handler, url string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest("POST", url, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCreateOrder(t *testing.T) {
	tests := []struct {
		name           string
		body           map[string]interface{}
		expectedStatus int
		checkResponse  func(t *testing.T, response map[string]interface{})
	}{
		{
			name:           "successfully create order",
			body:           orderBody("1HGBH41JXMN109186"),
			expectedStatus: http.StatusCreated,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, true, response["success"])
				assert.Equal(t, float64(1), response["id"])
			},
		},
		{
			name: "missing customer name",
			body: func() map[string]interface{} {
				b := orderBody("1HGBH41JXMN109186")
				b["customer"].(map[string]interface{})["name"] = ""
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "VALIDATION_ERROR", response["code"])
			},
		},
		{
			name: "malformed email",
			body: func() map[string]interface{} {
				b := orderBody("1HGBH41JXMN109186")
				b["customer"].(map[string]interface{})["email"] = "not-an-email"
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name: "zero rental period",
			body: func() map[string]interface{} {
				b := orderBody("1HGBH41JXMN109186")
				b["rental"].(map[string]interface{})["rentalPeriod"] = 0
				return b
			}(),
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "unknown car",
			body:           orderBody("0000000000000000"),
			expectedStatus: http.StatusConflict,
			checkResponse: func(t *testing.T, response map[string]interface{}) {
				assert.Equal(t, "Car is not available", response["error"])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router, _ := setupTestRouter(t, testCatalog())
			w := postJSON(router, "/orders", tt.body)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.checkResponse != nil {
				var response map[string]interface{}
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
				tt.checkResponse(t, response)
			}
		})
	}
}

func TestCreateOrderHoldsCar(t *testing.T) {
	router, st := setupTestRouter(t, testCatalog())

	w := postJSON(router, "/orders", orderBody("1HGBH41JXMN109186"))
	require.Equal(t, http.StatusCreated, w.Code)

	car, err := st.GetCarByVin(context.Background(), "1HGBH41JXMN109186")
	require.NoError(t, err)
	assert.False(t, car.Available)

	// Booking the held car again conflicts
	w = postJSON(router, "/orders", orderBody("1HGBH41JXMN109186"))
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestConfirmOrder(t *testing.T) {
	router, _ := setupTestRouter(t, testCatalog())

	w := postJSON(router, "/orders", orderBody("1HGBH41JXMN109186"))
	require.Equal(t, http.StatusCreated, w.Code)

	// Confirm succeeds once
	w = postJSON(router, "/orders/1/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Order 1 confirmed successfully", response["message"])

	// The second confirm fails: the order is no longer pending
	w = postJSON(router, "/orders/1/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	// A confirmed order cannot be cancelled
	w = postJSON(router, "/orders/1/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCancelOrder(t *testing.T) {
	router, st := setupTestRouter(t, testCatalog())

	w := postJSON(router, "/orders", orderBody("1HGBH41JXMN109186"))
	require.Equal(t, http.StatusCreated, w.Code)

	w = postJSON(router, "/orders/1/cancel", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
	assert.Equal(t, true, response["success"])
	assert.Equal(t, "Order 1 cancelled successfully", response["message"])

	// The car is bookable again
	car, err := st.GetCarByVin(context.Background(), "1HGBH41JXMN109186")
	require.NoError(t, err)
	assert.True(t, car.Available)

	// Cancelling twice fails the second time
	w = postJSON(router, "/orders/1/cancel", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestOrderIDValidation(t *testing.T) {
	router, _ := setupTestRouter(t, testCatalog())

	for _, url := range []string{"/orders/abc/confirm", "/orders/abc/cancel"} {
		w := postJSON(router, url, nil)
		assert.Equal(t, http.StatusBadRequest, w.Code, url)

		var response map[string]interface{}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &response))
		assert.Equal(t, "Invalid order ID", response["error"])
	}

	// Well-formed but unknown ids are 404s
	w := postJSON(router, "/orders/42/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListOrders(t *testing.T) {
	router, _ := setupTestRouter(t, testCatalog())

	// Empty order book is an empty array
	req, _ := http.NewRequest("GET", "/orders", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "[]", w.Body.String())

	require.Equal(t, http.StatusCreated, postJSON(router, "/orders", orderBody("1HGBH41JXMN109186")).Code)
	require.Equal(t, http.StatusCreated, postJSON(router, "/orders", orderBody("5YJ3E1EA7KF317528")).Code)

	req, _ = http.NewRequest("GET", "/orders", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var orders []models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &orders))
	require.Len(t, orders, 2)
	assert.Equal(t, 1, orders[0].ID)
	assert.Equal(t, "1HGBH41JXMN109186", orders[0].Car.VIN)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.Equal(t, 150.0, orders[0].Rental.TotalPrice)
}
