package storage

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-resty/resty/v2"
)

const (
	defaultImageKitUploadURL = "https://upload.imagekit.io/api/v1/files/upload"
	defaultImageKitAPIURL    = "https://api.imagekit.io/v1"
)

// ImageKitStorage envoie les médias vers l'API REST ImageKit.
// La clé privée sert d'identifiant en Basic Auth.
type ImageKitStorage struct {
	client     *resty.Client
	uploadURL  string
	apiURL     string
	privateKey string
}

type imageKitUploadResponse struct {
	FileID string `json:"fileId"`
	Name   string `json:"name"`
	URL    string `json:"url"`
}

type imageKitError struct {
	Message string `json:"message"`
}

// NewImageKitStorage construit le client ImageKit. Les URLs vides prennent
// les valeurs par défaut du service.
func NewImageKitStorage(privateKey, uploadURL, apiURL string) *ImageKitStorage {
	if uploadURL == "" {
		uploadURL = defaultImageKitUploadURL
	}
	if apiURL == "" {
		apiURL = defaultImageKitAPIURL
	}
	return &ImageKitStorage{
		client:     resty.New(),
		uploadURL:  uploadURL,
		apiURL:     strings.TrimRight(apiURL, "/"),
		privateKey: privateKey,
	}
}

// Upload envoie le fichier en multipart. Avec UseUniqueFileName, c'est le
// service qui attribue le nom canonique définitif (renvoyé dans le résultat).
func (s *ImageKitStorage) Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error) {
	var result imageKitUploadResponse
	var ikErr imageKitError

	formData := map[string]string{
		"fileName":          opts.FileName,
		"useUniqueFileName": strconv.FormatBool(opts.UseUniqueFileName),
	}
	if len(opts.Tags) > 0 {
		formData["tags"] = strings.Join(opts.Tags, ",")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.privateKey, "").
		SetFileReader("file", opts.FileName, opts.File).
		SetFormData(formData).
		SetResult(&result).
		SetError(&ikErr).
		Post(s.uploadURL)

	if err != nil {
		return nil, &UploadError{Backend: "imagekit", Reason: "appel réseau échoué", Err: err}
	}
	if resp.IsError() {
		reason := ikErr.Message
		if reason == "" {
			reason = resp.Status()
		}
		return nil, &UploadError{Backend: "imagekit", Reason: reason}
	}
	if result.URL == "" {
		return nil, &UploadError{Backend: "imagekit", Reason: "réponse sans URL"}
	}

	return &UploadResult{
		FileID:   result.FileID,
		FileName: result.Name,
		URL:      result.URL,
	}, nil
}

// Delete retire un fichier du service par son identifiant.
func (s *ImageKitStorage) Delete(ctx context.Context, fileID string) error {
	resp, err := s.client.R().
		SetContext(ctx).
		SetBasicAuth(s.privateKey, "").
		Delete(s.apiURL + "/files/" + fileID)

	if err != nil {
		return &UploadError{Backend: "imagekit", Reason: "appel réseau échoué", Err: err}
	}
	if resp.IsError() {
		return &UploadError{Backend: "imagekit", Reason: resp.Status()}
	}
	return nil
}
