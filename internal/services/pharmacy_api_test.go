package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medhive/pharmacy-admin/internal/models"
)

func TestLoginSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, loginPath, r.URL.Path)

		var req models.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "9876543210", req.Phone)

		json.NewEncoder(w).Encode(models.LoginResponse{
			Token: "session-token",
			User:  models.SessionUser{ID: "u1", StoreID: "s1", Role: models.RoleManager},
		})
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second)
	resp, err := client.Login(context.Background(), models.LoginRequest{Phone: "9876543210", Password: "secret"})
	require.NoError(t, err)

	assert.Equal(t, "session-token", resp.Token)
	assert.Equal(t, "s1", resp.User.StoreID)
}

func TestLoginBadCredentials(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second)
	_, err := client.Login(context.Background(), models.LoginRequest{Phone: "9876543210", Password: "wrong"})
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestBulkIngestForwardsTokenAndDecodes(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, bulkIngestPath, r.URL.Path)
		assert.Equal(t, "Bearer session-token", r.Header.Get("Authorization"))

		var req models.BulkIngestRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "store-1", req.StoreID)
		require.Len(t, req.Items, 2)

		json.NewEncoder(w).Encode(models.BulkIngestResponse{
			NewMedicinesAdded:     1,
			InventoryItemsCreated: 2,
		})
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second).ForToken("session-token")
	resp, err := client.BulkIngest(context.Background(), "store-1", []models.InventoryRecord{
		{SerialNo: 1, ProductName: "Dolo 650"},
		{SerialNo: 2, ProductName: "Azithral 500"},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.NewMedicinesAdded)
	assert.Equal(t, 2, resp.InventoryItemsCreated)
}

func TestBulkIngestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second)
	_, err := client.BulkIngest(context.Background(), "store-1", []models.InventoryRecord{{ProductName: "X"}})
	assert.ErrorIs(t, err, ErrAPIError)
}

func TestBulkIngestHonorsContextDeadline(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.BulkIngest(ctx, "store-1", []models.InventoryRecord{{ProductName: "X"}})
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestStoreInventory(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/v1/stores/store-1/inventory", r.URL.Path)
		assert.Equal(t, "50", r.URL.Query().Get("limit"))
		assert.Equal(t, "10", r.URL.Query().Get("offset"))
		assert.Equal(t, "dolo", r.URL.Query().Get("search"))

		json.NewEncoder(w).Encode(models.StoreInventoryPage{
			Items: []models.StoreInventoryItem{{ID: "i1", ProductName: "Dolo 650"}},
			Total: 1,
		})
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second).ForToken("tok")
	page, err := client.StoreInventory(context.Background(), "store-1", "dolo", 50, 10)
	require.NoError(t, err)

	assert.Equal(t, 1, page.Total)
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Dolo 650", page.Items[0].ProductName)
}

func TestStoreInventoryNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewPharmacyAPIClient(srv.URL, time.Second)
	_, err := client.StoreInventory(context.Background(), "missing", "", 50, 0)
	assert.ErrorIs(t, err, ErrStoreNotFound)
}

func TestForTokenDoesNotMutateOriginal(t *testing.T) {
	base := NewPharmacyAPIClient("http://example.invalid", time.Second)
	scoped := base.ForToken("tok")

	assert.Empty(t, base.token)
	assert.Equal(t, "tok", scoped.token)
	assert.Same(t, base.httpClient, scoped.httpClient)
	assert.Same(t, base.bulkClient, scoped.bulkClient)
}
