package post

import (
	"time"
)

// Post représente un média publié. L'URL et le nom canonique sont attribués
// par le service de stockage ; une ligne n'est jamais insérée sans upload
// confirmé (URL non vide).
type Post struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UserID    string    `json:"user_id"`
	Caption   string    `json:"caption"`
	URL       string    `json:"url"`
	FileType  string    `json:"file_type"` // "image" ou "video"
	FileName  string    `json:"file_name"` // nom canonique côté stockage
}
