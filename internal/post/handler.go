package post

import (
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ClementVasseur/SnapFeed-Back/internal/logs"
	"github.com/ClementVasseur/SnapFeed-Back/internal/storage"
	"github.com/ClementVasseur/SnapFeed-Back/internal/user"
)

// Handler regroupe les routes des posts. Le client de stockage est injecté
// à la construction, une seule instance pour tout le processus.
type Handler struct {
	store storage.Storage
}

func NewHandler(store storage.Storage) *Handler {
	return &Handler{store: store}
}

// Upload POST /api/upload : reçoit un média en multipart, l'envoie au
// service de stockage puis enregistre le post. Le fichier temporaire est
// supprimé quelle que soit l'issue.
func (h *Handler) Upload(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	caption := c.PostForm("caption")

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Aucun fichier fourni", "details": err.Error()})
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", "upload-*"+filepath.Ext(header.Filename))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi du fichier"})
		logs.LogJSON("ERROR", "Temp file creation failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}
	defer func() {
		tmp.Close()
		os.Remove(tmp.Name())
	}()

	if _, err := io.Copy(tmp, file); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi du fichier"})
		logs.LogJSON("ERROR", "Temp file write failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}
	if _, err := tmp.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'envoi du fichier"})
		logs.LogJSON("ERROR", "Temp file seek failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	// Classification par préfixe MIME : video/* → video, tout le reste → image
	contentType := header.Header.Get("Content-Type")
	fileType := "image"
	if strings.HasPrefix(contentType, "video/") {
		fileType = "video"
	}

	result, err := h.store.Upload(c.Request.Context(), storage.UploadOptions{
		File:              tmp,
		FileName:          header.Filename,
		Size:              header.Size,
		ContentType:       contentType,
		UseUniqueFileName: true,
		Tags:              []string{"backend-upload"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de l'upload du média"})
		logs.LogJSON("ERROR", "Media upload failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	newPost := Post{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
		UserID:    userID,
		Caption:   caption,
		URL:       result.URL,
		FileType:  fileType,
		FileName:  result.FileName,
	}

	if err := Insert(&newPost); err != nil {
		// Le média vient d'être envoyé : on tente de le retirer avant de répondre
		if delErr := h.store.Delete(c.Request.Context(), result.FileID); delErr != nil {
			logs.LogJSON("WARN", "Orphaned media cleanup failed", map[string]interface{}{
				"error":  delErr.Error(),
				"route":  route,
				"userID": userID,
				"fileID": result.FileID,
			})
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du post"})
		logs.LogJSON("ERROR", "Post insertion failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	c.JSON(http.StatusCreated, newPost)
}

// PostView est l'entrée du feed telle que renvoyée au client.
type PostView struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Caption   string  `json:"caption"`
	URL       string  `json:"url"`
	FileType  string  `json:"file_type"`
	FileName  string  `json:"file_name"`
	CreatedAt *string `json:"created_at"`
	IsOwner   bool    `json:"is_owner"`
	Email     string  `json:"email"`
}

// Feed GET /api/feed : tous les posts du plus récent au plus ancien, avec
// l'email de l'auteur et le flag is_owner calculé pour l'appelant.
func (h *Handler) Feed(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")

	posts, err := ListNewestFirst()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des posts"})
		logs.LogJSON("ERROR", "Feed posts query failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	emails, err := user.EmailsByID()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération des utilisateurs"})
		logs.LogJSON("ERROR", "Feed users query failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
		})
		return
	}

	views := make([]PostView, 0, len(posts))
	for _, p := range posts {
		email, ok := emails[p.UserID]
		if !ok {
			email = "Unknown" // auteur supprimé entre-temps
		}

		var createdAt *string
		if !p.CreatedAt.IsZero() {
			formatted := p.CreatedAt.Format(time.RFC3339)
			createdAt = &formatted
		}

		views = append(views, PostView{
			ID:        p.ID,
			UserID:    p.UserID,
			Caption:   p.Caption,
			URL:       p.URL,
			FileType:  p.FileType,
			FileName:  p.FileName,
			CreatedAt: createdAt,
			IsOwner:   p.UserID == userID,
			Email:     email,
		})
	}

	c.JSON(http.StatusOK, gin.H{"posts": views})
}

// Delete DELETE /api/posts/:id : supprime un post dont l'appelant est
// propriétaire. Le média reste sur le stockage distant.
func (h *Handler) Delete(c *gin.Context) {
	route := c.FullPath()
	userID := c.GetString("user_id")
	postID := c.Param("id")

	// Validation du format avant tout accès en base
	if _, err := uuid.Parse(postID); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Identifiant de post invalide"})
		return
	}

	p, err := GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Post non trouvé"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la récupération du post"})
		logs.LogJSON("ERROR", "Post lookup failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if p.UserID != userID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Vous n'avez pas la permission de supprimer ce post"})
		logs.LogJSON("WARN", "Delete attempt by non-owner", map[string]interface{}{
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	if err := DeleteByID(postID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la suppression du post"})
		logs.LogJSON("ERROR", "Post deletion failed", map[string]interface{}{
			"error":  err.Error(),
			"route":  route,
			"userID": userID,
			"postID": postID,
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Post supprimé avec succès"})
}
