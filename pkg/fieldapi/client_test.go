package fieldapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateField(t *testing.T) {
	t.Run("bearer token is attached and user_id omitted", func(t *testing.T) {
		var gotAuth string
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]any{"field": map[string]any{"id": 42}})
		}))
		defer srv.Close()

		c := New(srv.URL)
		id, err := c.CreateField(context.Background(), Session{UserID: "7", Token: "tok"}, "12,22")
		require.NoError(t, err)
		assert.Equal(t, "42", id)
		assert.Equal(t, "Bearer tok", gotAuth)
		assert.Equal(t, "12,22", gotBody["location"])
		assert.NotContains(t, gotBody, "user_id")
	})

	t.Run("user_id body fallback without a token", func(t *testing.T) {
		var gotBody map[string]any
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_ = json.NewDecoder(r.Body).Decode(&gotBody)
			_ = json.NewEncoder(w).Encode(map[string]any{"field": map[string]any{"id": 5}})
		}))
		defer srv.Close()

		_, err := New(srv.URL).CreateField(context.Background(), Session{UserID: "7"}, "1,2")
		require.NoError(t, err)
		assert.Equal(t, "7", gotBody["user_id"])
	})

	t.Run("non-OK status is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer srv.Close()

		_, err := New(srv.URL).CreateField(context.Background(), Session{}, "1,2")
		assert.Error(t, err)
	})

	t.Run("missing id in response is an error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{}`))
		}))
		defer srv.Close()

		_, err := New(srv.URL).CreateField(context.Background(), Session{}, "1,2")
		assert.Error(t, err)
	})
}

func TestCreateCrop(t *testing.T) {
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/crops", r.URL.Path)
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	err := New(srv.URL).CreateCrop(context.Background(), Session{UserID: "7"}, "Jasmine Rice", "42", "2025-10-01")
	require.NoError(t, err)
	assert.Equal(t, "Jasmine Rice", gotBody["name"])
	assert.Equal(t, "42", gotBody["field_id"])
	assert.Equal(t, "2025-10-01", gotBody["planting_date"])
}

func TestLists(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "7", r.URL.Query().Get("user_id"))
		switch r.URL.Path {
		case "/fields":
			_, _ = w.Write([]byte(`{"fields":[{"id":1,"name":"North Paddy","location":"1,2"}]}`))
		case "/crops":
			_, _ = w.Write([]byte(`{"crops":[{"name":"Rice","field_id":1}]}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := New(srv.URL)
	sess := Session{UserID: "7"}

	fields, err := c.ListFields(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, fields, 1)
	assert.Equal(t, int64(1), fields[0].ID)
	assert.Equal(t, "North Paddy", fields[0].Name)

	crops, err := c.ListCrops(context.Background(), sess)
	require.NoError(t, err)
	require.Len(t, crops, 1)
	assert.Equal(t, int64(1), crops[0].FieldID)
}
