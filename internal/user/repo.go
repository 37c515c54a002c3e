package user

import "github.com/ClementVasseur/SnapFeed-Back/internal/database"

func ExistsByEmail(email string) bool {
	var count int64
	database.DB.Model(&User{}).Where("email = ?", email).Count(&count)
	return count > 0
}

func ExistsByUsername(username string) bool {
	var count int64
	database.DB.Model(&User{}).Where("username = ?", username).Count(&count)
	return count > 0
}

// EmailsByID renvoie la correspondance id → email de TOUS les utilisateurs.
// Le feed s'en sert pour afficher l'auteur de chaque post. Charger la table
// entière est volontairement conservé tel quel ; à revoir si le volume grossit.
func EmailsByID() (map[string]string, error) {
	var users []User
	if err := database.DB.Find(&users).Error; err != nil {
		return nil, err
	}

	emails := make(map[string]string, len(users))
	for _, u := range users {
		emails[u.ID] = u.Email
	}
	return emails, nil
}
