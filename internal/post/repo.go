package post

import (
	"github.com/ClementVasseur/SnapFeed-Back/internal/database"
)

func Insert(p *Post) error {
	return database.DB.Create(p).Error
}

// ListNewestFirst renvoie tous les posts du plus récent au plus ancien.
// L'id départage les timestamps identiques pour un ordre déterministe.
func ListNewestFirst() ([]Post, error) {
	var posts []Post
	if err := database.DB.Order("created_at DESC, id DESC").Find(&posts).Error; err != nil {
		return nil, err
	}
	return posts, nil
}

func GetByID(id string) (*Post, error) {
	var p Post
	if err := database.DB.First(&p, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func DeleteByID(id string) error {
	return database.DB.Delete(&Post{}, "id = ?", id).Error
}
