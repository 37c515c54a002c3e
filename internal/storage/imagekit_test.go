package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestImageKitUpload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		username, _, ok := r.BasicAuth()
		assert.True(t, ok)
		assert.Equal(t, "private_test_key", username)

		assert.NoError(t, r.ParseMultipartForm(32<<20))
		assert.Equal(t, "photo.png", r.FormValue("fileName"))
		assert.Equal(t, "true", r.FormValue("useUniqueFileName"))
		assert.Equal(t, "backend-upload", r.FormValue("tags"))

		file, _, err := r.FormFile("file")
		assert.NoError(t, err)
		payload, err := io.ReadAll(file)
		assert.NoError(t, err)
		assert.Equal(t, "contenu-png", string(payload))

		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"fileId":"ik-123","name":"photo_Ab3xQ.png","url":"https://ik.example.com/photo_Ab3xQ.png"}`)
	}))
	defer srv.Close()

	store := NewImageKitStorage("private_test_key", srv.URL, srv.URL)

	result, err := store.Upload(context.Background(), UploadOptions{
		File:              strings.NewReader("contenu-png"),
		FileName:          "photo.png",
		ContentType:       "image/png",
		UseUniqueFileName: true,
		Tags:              []string{"backend-upload"},
	})

	assert.NoError(t, err)
	assert.Equal(t, "ik-123", result.FileID)
	assert.Equal(t, "photo_Ab3xQ.png", result.FileName)
	assert.Equal(t, "https://ik.example.com/photo_Ab3xQ.png", result.URL)
}

func TestImageKitUploadRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprint(w, `{"message":"File type not allowed"}`)
	}))
	defer srv.Close()

	store := NewImageKitStorage("private_test_key", srv.URL, srv.URL)

	result, err := store.Upload(context.Background(), UploadOptions{
		File:     strings.NewReader("x"),
		FileName: "bad.exe",
	})

	assert.Nil(t, result)
	var uploadErr *UploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Equal(t, "File type not allowed", uploadErr.Reason)
}

func TestImageKitUploadNetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // serveur déjà fermé : échec réseau garanti

	store := NewImageKitStorage("private_test_key", srv.URL, srv.URL)

	result, err := store.Upload(context.Background(), UploadOptions{
		File:     strings.NewReader("x"),
		FileName: "photo.png",
	})

	assert.Nil(t, result)
	var uploadErr *UploadError
	assert.True(t, errors.As(err, &uploadErr))
	assert.Error(t, uploadErr.Err)
}

func TestImageKitDelete(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	store := NewImageKitStorage("private_test_key", srv.URL, srv.URL)

	err := store.Delete(context.Background(), "ik-123")

	assert.NoError(t, err)
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/files/ik-123", gotPath)
}
