package http

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/spotme/spotme-api/internal/application/editor"
	"github.com/spotme/spotme-api/internal/application/service"
	portfolioUC "github.com/spotme/spotme-api/internal/application/usecase/portfolio"
	"github.com/spotme/spotme-api/internal/domain/portfolio"
	"github.com/spotme/spotme-api/internal/render"
	"github.com/spotme/spotme-api/pkg/apperror"
	"github.com/spotme/spotme-api/pkg/logger"
)

const (
	avatarFolder  = "avatars"
	projectFolder = "projects"
)

type EditorHandler struct {
	loadUC   *portfolioUC.LoadPortfolioUseCase
	store    *editor.Store
	uploader service.Uploader
	logger   logger.Logger
}

func NewEditorHandler(loadUC *portfolioUC.LoadPortfolioUseCase, store *editor.Store, uploader service.Uploader, log logger.Logger) *EditorHandler {
	return &EditorHandler{
		loadUC:   loadUC,
		store:    store,
		uploader: uploader,
		logger:   log,
	}
}

// LoadEditor opens the editor session: the stored portfolio if one exists,
// a fresh default otherwise.
func (h *EditorHandler) LoadEditor(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	output, err := h.loadUC.Execute(c.Request.Context(), portfolioUC.LoadPortfolioInput{UserID: userID})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"document":  output.Document,
		"published": output.Published,
		"slug":      output.Slug,
	})
}

func (h *EditorHandler) patchSection(c *gin.Context, apply func(userID uuid.UUID) (portfolio.Document, bool)) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	doc, ok := apply(userID)
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}

	c.JSON(http.StatusOK, gin.H{"document": doc})
}

func (h *EditorHandler) PatchHero(c *gin.Context) {
	var patch editor.HeroPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed hero patch", err))
		return
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateHero(userID, patch)
	})
}

func (h *EditorHandler) PatchAbout(c *gin.Context) {
	var patch editor.AboutPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed about patch", err))
		return
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateAbout(userID, patch)
	})
}

func (h *EditorHandler) PatchSkills(c *gin.Context) {
	var patch editor.SkillsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed skills patch", err))
		return
	}
	if patch.Items != nil {
		for _, s := range *patch.Items {
			if s.Experience != "" && !portfolio.ValidExperience(s.Experience) {
				c.Error(apperror.NewInvalidInput(fmt.Sprintf("unknown experience bracket %q", s.Experience), nil))
				return
			}
		}
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateSkills(userID, patch)
	})
}

func (h *EditorHandler) PatchProjects(c *gin.Context) {
	var patch editor.ProjectsPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed projects patch", err))
		return
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateProjects(userID, patch)
	})
}

func (h *EditorHandler) PatchContact(c *gin.Context) {
	var patch editor.ContactPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed contact patch", err))
		return
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateContact(userID, patch)
	})
}

func (h *EditorHandler) PatchTheme(c *gin.Context) {
	var patch editor.ThemePatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		c.Error(apperror.NewInvalidInput("malformed theme patch", err))
		return
	}
	if patch.Mode != nil && *patch.Mode != portfolio.ModeLight && *patch.Mode != portfolio.ModeDark {
		c.Error(apperror.NewInvalidInput(fmt.Sprintf("unknown theme mode %q", *patch.Mode), nil))
		return
	}
	h.patchSection(c, func(userID uuid.UUID) (portfolio.Document, bool) {
		return h.store.UpdateTheme(userID, patch)
	})
}

// SuggestSkills autocompletes against the skill vocabulary, excluding skills
// already on the document.
func (h *EditorHandler) SuggestSkills(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	query := c.Query("q")

	var existing []portfolio.Skill
	if doc, ok := h.store.Get(userID); ok && doc.Skills != nil {
		existing = doc.Skills.Items
	}

	c.JSON(http.StatusOK, gin.H{"suggestions": portfolio.SuggestSkills(query, existing)})
}

// UploadAvatar stores the image and points the hero section at its URL.
func (h *EditorHandler) UploadAvatar(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	var prior string
	if doc, ok := h.store.Get(userID); ok && doc.Hero != nil {
		prior = doc.Hero.AvatarURL
	}

	folder := fmt.Sprintf("%s/%s", avatarFolder, userID)
	publicID := fmt.Sprintf("%d", time.Now().UnixNano())

	url, err := h.uploader.Upload(c.Request.Context(), file, folder, publicID)
	if err != nil {
		c.Error(apperror.NewInternal("failed to upload avatar", err))
		return
	}

	doc, ok := h.store.UpdateHero(userID, editor.HeroPatch{AvatarURL: &url})
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}

	h.cleanupReplacedAsset(c, prior, url)

	c.JSON(http.StatusCreated, gin.H{"avatar_url": url, "document": doc})
}

// UploadProjectImage stores the image and points the project at the given
// position at its URL. The project must already exist in the document.
func (h *EditorHandler) UploadProjectImage(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		c.Error(apperror.NewInvalidInput("project index must be a non-negative integer", err))
		return
	}

	doc, ok := h.store.Get(userID)
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}
	if doc.Projects == nil || index >= len(doc.Projects.Items) {
		c.Error(apperror.NewInvalidInput("no project at that position", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' is required", err))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open file", err))
		return
	}
	defer file.Close()

	prior := doc.Projects.Items[index].ImageURL

	folder := fmt.Sprintf("%s/%s", projectFolder, userID)
	publicID := fmt.Sprintf("%d-%d", index, time.Now().UnixNano())

	url, err := h.uploader.Upload(c.Request.Context(), file, folder, publicID)
	if err != nil {
		c.Error(apperror.NewInternal("failed to upload project image", err))
		return
	}

	items := make([]portfolio.Project, len(doc.Projects.Items))
	copy(items, doc.Projects.Items)
	items[index].ImageURL = url

	updated, ok := h.store.UpdateProjects(userID, editor.ProjectsPatch{Items: &items})
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}

	h.cleanupReplacedAsset(c, prior, url)

	c.JSON(http.StatusCreated, gin.H{"image_url": url, "document": updated})
}

// cleanupReplacedAsset removes the storage asset behind the previous URL once
// a replacement is live. A failure only leaves a stale asset behind, so the
// request still succeeds.
func (h *EditorHandler) cleanupReplacedAsset(c *gin.Context, prior, current string) {
	if prior == "" || prior == current {
		return
	}
	publicID := publicIDFromURL(prior)
	if publicID == "" {
		return
	}
	if err := h.uploader.Delete(c.Request.Context(), publicID); err != nil {
		h.logger.Error("Failed to delete replaced asset", err, zap.String("public_id", publicID))
	}
}

// publicIDFromURL recovers the storage public ID from a delivery URL: the
// path after the upload segment, minus the optional version segment and the
// file extension. Returns "" for URLs that did not come from our storage.
func publicIDFromURL(rawURL string) string {
	const marker = "/upload/"
	i := strings.Index(rawURL, marker)
	if i < 0 {
		return ""
	}
	segs := strings.Split(rawURL[i+len(marker):], "/")
	if len(segs) > 1 && len(segs[0]) > 1 && segs[0][0] == 'v' {
		if _, err := strconv.Atoi(segs[0][1:]); err == nil {
			segs = segs[1:]
		}
	}
	publicID := strings.Join(segs, "/")
	if dot := strings.LastIndex(publicID, "."); dot > strings.LastIndex(publicID, "/") {
		publicID = publicID[:dot]
	}
	return publicID
}

// Preview renders the current document as the public page would look.
func (h *EditorHandler) Preview(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	doc, ok := h.store.Get(userID)
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}

	html, err := render.Preview(doc, render.Options{Readonly: false, PageTitle: "Preview"})
	if err != nil {
		c.Error(apperror.NewInternal("failed to render preview", err))
		return
	}

	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
}

// PreviewStream pushes a freshly rendered preview over SSE on every edit,
// starting with the current state.
func (h *EditorHandler) PreviewStream(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	doc, ok := h.store.Get(userID)
	if !ok {
		c.Error(apperror.NewInvalidInput("no portfolio loaded in the editor", nil))
		return
	}

	updates, cancel := h.store.Subscribe(userID)
	defer cancel()

	c.Writer.Header().Set("Cache-Control", "no-cache")

	send := func(doc portfolio.Document) bool {
		html, err := render.Preview(doc, render.Options{Readonly: false, PageTitle: "Preview"})
		if err != nil {
			return false
		}
		c.SSEvent("preview", html)
		return true
	}

	if !send(doc) {
		return
	}
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case next, open := <-updates:
			if !open {
				return false
			}
			return send(next)
		case <-c.Request.Context().Done():
			return false
		}
	})
}
