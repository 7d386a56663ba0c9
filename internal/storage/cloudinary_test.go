package storage

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "atelier/internal/errors"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *CloudinaryClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewCloudinary("demo", "key", "secret")
	require.NoError(t, err)
	return client.WithBaseURL(srv.URL)
}

func TestNewCloudinary_MissingCredentials(t *testing.T) {
	tests := []struct {
		name      string
		cloudName string
		apiKey    string
		apiSecret string
	}{
		{name: "missing cloud name", apiKey: "k", apiSecret: "s"},
		{name: "missing api key", cloudName: "c", apiSecret: "s"},
		{name: "missing api secret", cloudName: "c", apiKey: "k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCloudinary(tt.cloudName, tt.apiKey, tt.apiSecret)
			assert.ErrorIs(t, err, apperrors.ErrMissingSecret)
		})
	}
}

func TestCloudinary_Store(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/demo/image/upload", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(4<<20))

		assert.Equal(t, "key", r.FormValue("api_key"))
		assert.Equal(t, "atelier/projects", r.FormValue("folder"))

		// the signature covers folder and timestamp, sorted, secret appended
		ts := r.FormValue("timestamp")
		sum := sha1.Sum([]byte(fmt.Sprintf("folder=%s&timestamp=%s%s", "atelier/projects", ts, "secret")))
		assert.Equal(t, hex.EncodeToString(sum[:]), r.FormValue("signature"))

		f, fh, err := r.FormFile("file")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "room.png", fh.Filename)

		fmt.Fprint(w, `{"public_id":"atelier/projects/abc","secure_url":"https://res.example/abc.png"}`)
	})

	ref, err := client.Store(context.Background(), strings.NewReader("fake-bytes"), "room.png", "atelier/projects")

	assert.NoError(t, err)
	assert.Equal(t, "atelier/projects/abc", ref.PublicID)
	assert.Equal(t, "https://res.example/abc.png", ref.URL)
}

func TestCloudinary_Store_FallsBackToPlainURL(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"public_id":"atelier/projects/abc","url":"http://res.example/abc.png"}`)
	})

	ref, err := client.Store(context.Background(), strings.NewReader("x"), "room.png", "atelier/projects")

	assert.NoError(t, err)
	assert.Equal(t, "http://res.example/abc.png", ref.URL)
}

func TestCloudinary_Store_Rejected(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"error":{"message":"Invalid image file"}}`)
	})

	_, err := client.Store(context.Background(), strings.NewReader("x"), "room.png", "atelier/projects")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Invalid image file")
}

func TestCloudinary_Delete(t *testing.T) {
	tests := []struct {
		name    string
		result  string
		wantErr bool
	}{
		{name: "deleted", result: "ok"},
		{name: "already gone is success", result: "not found"},
		{name: "provider refusal", result: "error", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/demo/image/destroy", r.URL.Path)
				require.NoError(t, r.ParseForm())
				assert.Equal(t, "atelier/projects/abc", r.FormValue("public_id"))
				assert.NotEmpty(t, r.FormValue("signature"))
				fmt.Fprintf(w, `{"result":%q}`, tt.result)
			})

			err := client.Delete(context.Background(), "atelier/projects/abc")

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
