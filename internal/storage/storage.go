// Package storage fournit le client du service d'hébergement de médias.
// L'implémentation concrète (ImageKit ou S3) est construite au démarrage
// et injectée dans les handlers.
package storage

import (
	"context"
	"fmt"
	"io"
)

// UploadOptions décrit un envoi de média vers le service distant.
type UploadOptions struct {
	File              io.Reader
	FileName          string
	Size              int64
	ContentType       string
	UseUniqueFileName bool
	Tags              []string
}

// UploadResult est la réponse du service après un envoi réussi.
type UploadResult struct {
	FileID   string
	FileName string // nom canonique attribué par le service
	URL      string
}

// UploadError signale un rejet du service distant ou un échec réseau.
type UploadError struct {
	Backend string
	Reason  string
	Err     error
}

func (e *UploadError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("upload %s: %s: %v", e.Backend, e.Reason, e.Err)
	}
	return fmt.Sprintf("upload %s: %s", e.Backend, e.Reason)
}

func (e *UploadError) Unwrap() error { return e.Err }

// Storage est le contrat du magasin de médias distant.
type Storage interface {
	Upload(ctx context.Context, opts UploadOptions) (*UploadResult, error)
	Delete(ctx context.Context, fileID string) error
}
