package controllers

import (
	"errors"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/utils"
)

const methodCachePrefix = "cache:methods:explore:"

// MethodController manages earning methods: the owner's catalog plus the
// public explore surface.
type MethodController struct {
	db *gorm.DB
}

// NewMethodController creates a MethodController.
func NewMethodController(db *gorm.DB) *MethodController {
	return &MethodController{db: db}
}

type methodRequest struct {
	Title        string `json:"title" binding:"required,max=255"`
	Description  string `json:"description"`
	Category     string `json:"category"`
	Earnings     string `json:"earnings"`
	Difficulty   string `json:"difficulty"`
	TimeRequired string `json:"time_required"`
	Link         string `json:"link"`
	ReferralCode string `json:"referral_code"`
	IconURL      string `json:"icon_url"`
	IsActive     *bool  `json:"is_active"`
	IsPublic     *bool  `json:"is_public"`
}

// Method categories accepted on create/update. Anything else is stored as
// Other.
var methodCategories = []string{"Survey", "Cashback", "Task", "Referral", "Investment", "Other"}

func normalizeCategory(c string) string {
	c = strings.TrimSpace(c)
	for _, known := range methodCategories {
		if strings.EqualFold(c, known) {
			return known
		}
	}
	return "Other"
}

func normalizeDifficulty(d string) string {
	switch strings.ToLower(strings.TrimSpace(d)) {
	case "easy":
		return models.DifficultyEasy
	case "hard":
		return models.DifficultyHard
	default:
		return models.DifficultyMedium
	}
}

// List returns the authenticated user's methods, active first, newest first.
func (m *MethodController) List(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var methods []models.Method
	q := m.db.Where("user_id = ?", userID)
	if v := strings.TrimSpace(ctx.Query("category")); v != "" {
		q = q.Where("category = ?", normalizeCategory(v))
	}
	if v := strings.TrimSpace(ctx.Query("active")); v != "" {
		q = q.Where("is_active = ?", v == "true")
	}
	if err := q.Order("is_active DESC, created_at DESC").Find(&methods).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to retrieve methods")
		return
	}

	utils.Success(ctx, methods)
}

// Get returns one of the user's methods by ID.
func (m *MethodController) Get(ctx *gin.Context) {
	userID := currentUserID(ctx)
	method, ok := m.ownedMethod(ctx, userID)
	if !ok {
		return
	}
	utils.Success(ctx, method)
}

// Create stores a new method owned by the authenticated user.
func (m *MethodController) Create(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var req methodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	method := models.Method{
		UserID:       userID,
		Title:        strings.TrimSpace(req.Title),
		Description:  utils.Sanitize(req.Description),
		Category:     normalizeCategory(req.Category),
		Earnings:     strings.TrimSpace(req.Earnings),
		Difficulty:   normalizeDifficulty(req.Difficulty),
		TimeRequired: strings.TrimSpace(req.TimeRequired),
		Link:         strings.TrimSpace(req.Link),
		ReferralCode: strings.TrimSpace(req.ReferralCode),
		IconURL:      strings.TrimSpace(req.IconURL),
		IsActive:     true,
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if req.IsPublic != nil && *req.IsPublic {
		if !m.canPublish(userID) {
			utils.Error(ctx, http.StatusForbidden, 40310, "publishing methods requires a premium subscription")
			return
		}
		method.IsPublic = true
	}

	if err := m.db.Create(&method).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50011, "failed to create method")
		return
	}
	m.claimIcon(method.IconURL)

	if method.IsPublic {
		utils.InvalidateByPrefix(methodCachePrefix)
	}
	utils.Success(ctx, method)
}

// Update modifies an owned method. Only provided fields change.
func (m *MethodController) Update(ctx *gin.Context) {
	userID := currentUserID(ctx)
	method, ok := m.ownedMethod(ctx, userID)
	if !ok {
		return
	}

	var req methodRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40010, "invalid request payload")
		return
	}

	wasPublic := method.IsPublic

	method.Title = strings.TrimSpace(req.Title)
	method.Description = utils.Sanitize(req.Description)
	method.Category = normalizeCategory(req.Category)
	method.Earnings = strings.TrimSpace(req.Earnings)
	method.Difficulty = normalizeDifficulty(req.Difficulty)
	method.TimeRequired = strings.TrimSpace(req.TimeRequired)
	method.Link = strings.TrimSpace(req.Link)
	method.ReferralCode = strings.TrimSpace(req.ReferralCode)
	if v := strings.TrimSpace(req.IconURL); v != "" && v != method.IconURL {
		method.IconURL = v
		m.claimIcon(v)
	}
	if req.IsActive != nil {
		method.IsActive = *req.IsActive
	}
	if req.IsPublic != nil {
		if *req.IsPublic && !method.IsPublic && !m.canPublish(userID) {
			utils.Error(ctx, http.StatusForbidden, 40310, "publishing methods requires a premium subscription")
			return
		}
		method.IsPublic = *req.IsPublic
	}

	if err := m.db.Save(&method).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50012, "failed to update method")
		return
	}

	if wasPublic || method.IsPublic {
		utils.InvalidateByPrefix(methodCachePrefix)
	}
	utils.Success(ctx, method)
}

// Delete removes an owned method along with its earnings and completions.
func (m *MethodController) Delete(ctx *gin.Context) {
	userID := currentUserID(ctx)
	method, ok := m.ownedMethod(ctx, userID)
	if !ok {
		return
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("method_id = ?", method.ID).Delete(&models.DailyEarning{}).Error; err != nil {
			return err
		}
		if err := tx.Where("method_id = ?", method.ID).Delete(&models.MethodCompletion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&method).Error
	})
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50013, "failed to delete method")
		return
	}

	if method.IsPublic {
		utils.InvalidateByPrefix(methodCachePrefix)
	}
	utils.Success(ctx, gin.H{"message": "method deleted"})
}

// Explore lists public methods with optional category and search filters.
// Responses are cached per filter combination.
func (m *MethodController) Explore(ctx *gin.Context) {
	category := strings.TrimSpace(ctx.Query("category"))
	search := strings.TrimSpace(ctx.Query("search"))

	cacheKey := methodCachePrefix + url.QueryEscape(category) + ":" + url.QueryEscape(search)
	if b, ok := utils.CacheGetBytes(cacheKey); ok {
		ctx.Data(http.StatusOK, "application/json", b)
		return
	}

	q := m.db.Where("is_public = ? AND is_active = ?", true, true)
	if category != "" {
		q = q.Where("category = ?", normalizeCategory(category))
	}
	if search != "" {
		like := "%" + search + "%"
		q = q.Where("title LIKE ? OR description LIKE ?", like, like)
	}

	var methods []models.Method
	if err := q.Order("created_at DESC").Limit(200).Find(&methods).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50014, "failed to retrieve public methods")
		return
	}

	wrapper := utils.JSONResponse{Code: 0, Message: "success", Data: methods}
	utils.CacheSetJSON(cacheKey, wrapper, 10*time.Minute)
	utils.Success(ctx, methods)
}

// ExploreGet returns one public method's detail.
func (m *MethodController) ExploreGet(ctx *gin.Context) {
	var method models.Method
	if err := m.db.Where("id = ? AND is_public = ? AND is_active = ?", ctx.Param("id"), true, true).
		First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "public method not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to load method")
		return
	}
	utils.Success(ctx, method)
}

// Copy clones a public method into the caller's catalog. Copies of the same
// destination link are deduplicated.
func (m *MethodController) Copy(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var src models.Method
	if err := m.db.Where("id = ? AND is_public = ?", ctx.Param("id"), true).First(&src).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40420, "public method not found")
			return
		}
		utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to load method")
		return
	}
	if src.UserID == userID {
		utils.Error(ctx, http.StatusBadRequest, 40020, "cannot copy your own method")
		return
	}

	if link := normalizeLink(src.Link); link != "" {
		var existing []models.Method
		m.db.Select("link").Where("user_id = ? AND link <> ''", userID).Find(&existing)
		for _, e := range existing {
			if normalizeLink(e.Link) == link {
				utils.Error(ctx, http.StatusConflict, 40910, "you already have a method for this link")
				return
			}
		}
	}

	clone := models.Method{
		UserID:       userID,
		Title:        src.Title,
		Description:  src.Description,
		Category:     src.Category,
		Earnings:     src.Earnings,
		Difficulty:   src.Difficulty,
		TimeRequired: src.TimeRequired,
		Link:         src.Link,
		IconURL:      src.IconURL,
		IsActive:     true,
	}
	if err := m.db.Create(&clone).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50016, "failed to copy method")
		return
	}

	utils.Success(ctx, clone)
}

// UploadIcon stores a method icon image and returns its public URL. The file
// expires and is swept unless a saved method claims it.
func (m *MethodController) UploadIcon(ctx *gin.Context) {
	cfg := config.Get()

	file, err := ctx.FormFile("file")
	if err != nil {
		utils.Error(ctx, http.StatusBadRequest, 40021, "missing file")
		return
	}
	if file.Size > int64(cfg.UploadMaxSizeKB)*1024 {
		utils.Error(ctx, http.StatusBadRequest, 40022, "file too large")
		return
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	switch ext {
	case ".png", ".jpg", ".jpeg", ".gif", ".webp", ".svg":
	default:
		utils.Error(ctx, http.StatusBadRequest, 40023, "unsupported file type")
		return
	}

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50017, "failed to prepare upload directory")
		return
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(cfg.UploadDir, name)
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50018, "failed to store file")
		return
	}

	publicURL := "/static/icons/" + name
	record := models.UploadedFile{
		FilePath: dst,
		URL:      publicURL,
		ExpireAt: time.Now().Add(time.Duration(cfg.IconExpireMinutes) * time.Minute),
	}
	if err := m.db.Create(&record).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50019, "failed to record upload")
		return
	}

	utils.Success(ctx, gin.H{"url": publicURL})
}

// claimIcon marks an uploaded icon as permanent by removing its expiring
// record. Safe to call with external or empty URLs.
func (m *MethodController) claimIcon(iconURL string) {
	if !strings.HasPrefix(iconURL, "/static/icons/") {
		return
	}
	_ = m.db.Where("url = ?", iconURL).Delete(&models.UploadedFile{}).Error
}

// canPublish reports whether a user may mark methods public: premium
// subscribers and admins.
func (m *MethodController) canPublish(userID uint) bool {
	var user models.User
	if err := m.db.First(&user, userID).Error; err == nil && user.IsAdmin {
		return true
	}
	var sub models.Subscription
	if err := m.db.Where("user_id = ?", userID).First(&sub).Error; err != nil {
		return false
	}
	return sub.IsPremiumActive()
}

func (m *MethodController) ownedMethod(ctx *gin.Context, userID uint) (models.Method, bool) {
	var method models.Method
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id <= 0 {
		utils.Error(ctx, http.StatusBadRequest, 40011, "invalid method id")
		return method, false
	}
	if err := m.db.Where("id = ? AND user_id = ?", id, userID).First(&method).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.Error(ctx, http.StatusNotFound, 40421, "method not found")
		} else {
			utils.Error(ctx, http.StatusInternalServerError, 50015, "failed to load method")
		}
		return method, false
	}
	return method, true
}

// normalizeLink lowercases the host and strips tracking noise so duplicate
// detection compares destinations, not raw strings.
func normalizeLink(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return strings.ToLower(raw)
	}
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	u.RawQuery = ""
	return strings.TrimSuffix(u.String(), "/")
}

func currentUserID(ctx *gin.Context) uint {
	if v, ok := ctx.Get("user_id"); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
