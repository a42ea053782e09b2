package routes

import (
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"lostfound-server/config"
	"lostfound-server/database"
	"lostfound-server/middleware"
	"lostfound-server/models"
	"lostfound-server/services"
	"lostfound-server/utils"
)

const (
	defaultPage  = 1
	defaultLimit = 10
)

// Query parameters that drive the listing machinery rather than filters.
var reservedListParams = map[string]bool{
	"select": true, "sort": true, "page": true, "limit": true,
	"search": true, "radius": true, "lat": true, "lng": true,
}

// Fields that may appear in filter predicates, mapped to their columns.
var filterableItemFields = map[string]string{
	"type":     "type",
	"category": "category",
	"status":   "status",
	"reward":   "reward",
	"date":     "date",
	"user":     "user_id",
}

// Comparison operator tokens accepted in bracketed filter keys.
var filterOperators = map[string]string{
	"gt":  ">",
	"gte": ">=",
	"lt":  "<",
	"lte": "<=",
	"in":  "IN",
}

var sortableItemFields = map[string]string{
	"created_at": "created_at",
	"createdAt":  "created_at",
	"date":       "date",
	"reward":     "reward",
	"title":      "title",
}

var selectableItemFields = map[string]string{
	"title": "title", "description": "description", "category": "category",
	"type": "type", "status": "status", "date": "date", "reward": "reward",
	"images": "images", "created_at": "created_at",
	"location_lat": "location_lat", "location_lng": "location_lng",
	"location_address": "location_address", "location_city": "location_city",
}

var bracketKeyRe = regexp.MustCompile(`^([a-zA-Z_]+)\[(gt|gte|lt|lte|in)\]$`)

// RegisterItemRoutes registers all item routes
func RegisterItemRoutes(router *gin.RouterGroup) {
	router.GET("", getItems)
	router.POST("", middleware.AuthMiddleware(), createItem)
	router.GET("/user", middleware.AuthMiddleware(), getUserItems)
	router.GET("/:id", getItem)
	router.PUT("/:id", middleware.AuthMiddleware(), updateItem)
	router.DELETE("/:id", middleware.AuthMiddleware(), deleteItem)
}

// applyItemFilters translates query parameters into WHERE predicates.
// Plain keys become equality checks; keys of the form field[op] use the
// matching comparison operator; field[in] takes a comma-separated list.
// Unknown fields are ignored rather than rejected.
func applyItemFilters(query *gorm.DB, c *gin.Context) *gorm.DB {
	for key, values := range c.Request.URL.Query() {
		if reservedListParams[key] || len(values) == 0 {
			continue
		}
		value := values[0]

		if m := bracketKeyRe.FindStringSubmatch(key); m != nil {
			column, ok := filterableItemFields[m[1]]
			if !ok {
				continue
			}
			if m[2] == "in" {
				parts := strings.Split(value, ",")
				query = query.Where(fmt.Sprintf("%s IN ?", column), parts)
			} else {
				query = query.Where(fmt.Sprintf("%s %s ?", column, filterOperators[m[2]]), value)
			}
			continue
		}

		if column, ok := filterableItemFields[key]; ok {
			query = query.Where(fmt.Sprintf("%s = ?", column), value)
		}
	}
	return query
}

// parseSortSpec turns "field,-other" into an ORDER BY clause over the
// allowlisted columns. Defaults to newest first.
func parseSortSpec(spec string) string {
	if spec == "" {
		return "created_at DESC"
	}

	var clauses []string
	for _, field := range strings.Split(spec, ",") {
		field = strings.TrimSpace(field)
		desc := strings.HasPrefix(field, "-")
		field = strings.TrimPrefix(field, "-")
		column, ok := sortableItemFields[field]
		if !ok {
			continue
		}
		if desc {
			clauses = append(clauses, column+" DESC")
		} else {
			clauses = append(clauses, column+" ASC")
		}
	}

	if len(clauses) == 0 {
		return "created_at DESC"
	}
	return strings.Join(clauses, ", ")
}

// buildPagination produces the prev/next envelope objects.
func buildPagination(page, limit int, total int64) gin.H {
	pagination := gin.H{}
	startIndex := (page - 1) * limit
	endIndex := page * limit

	if int64(endIndex) < total {
		pagination["next"] = gin.H{"page": page + 1, "limit": limit}
	}
	if startIndex > 0 {
		pagination["prev"] = gin.H{"page": page - 1, "limit": limit}
	}
	return pagination
}

// getItems lists items with filtering, text search, geo search, field
// selection, sorting and pagination
func getItems(c *gin.Context) {
	query := database.DB.Model(&models.Item{}).
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		})

	query = applyItemFilters(query, c)

	// Text search over title and description
	if search := c.Query("search"); search != "" {
		pattern := "%" + strings.ToLower(search) + "%"
		query = query.Where("LOWER(title) LIKE ? OR LOWER(description) LIKE ?", pattern, pattern)
	}

	// Field selection. A geo search always scans the coordinate columns,
	// whatever the projection asks for.
	latStr, lngStr, radiusStr := c.Query("lat"), c.Query("lng"), c.Query("radius")
	geoSearch := latStr != "" && lngStr != "" && radiusStr != ""
	if sel := c.Query("select"); sel != "" {
		columns := []string{"id", "user_id"}
		for _, field := range strings.Split(sel, ",") {
			if column, ok := selectableItemFields[strings.TrimSpace(field)]; ok {
				columns = append(columns, column)
			}
		}
		if geoSearch {
			columns = append(columns, "location_lat", "location_lng")
		}
		query = query.Select(columns)
	}

	query = query.Order(parseSortSpec(c.Query("sort")))

	page, _ := strconv.Atoi(c.DefaultQuery("page", strconv.Itoa(defaultPage)))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 || limit > 100 {
		limit = defaultLimit
	}

	// Geo radius search is a spherical containment check over candidate rows,
	// so filtering and pagination happen after the fetch.
	if geoSearch {
		lat, errLat := strconv.ParseFloat(latStr, 64)
		lng, errLng := strconv.ParseFloat(lngStr, 64)
		radius, errRad := strconv.ParseFloat(radiusStr, 64)
		if errLat != nil || errLng != nil || errRad != nil || !utils.IsLocationValid(lat, lng) || radius <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid location search parameters"})
			return
		}

		var candidates []models.Item
		if err := query.Where("location_lat IS NOT NULL AND location_lng IS NOT NULL").
			Find(&candidates).Error; err != nil {
			log.Printf("❌ Error fetching items for geo search: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch items"})
			return
		}

		var within []models.Item
		for _, item := range candidates {
			if utils.WithinRadius(lat, lng, *item.LocationLat, *item.LocationLng, radius) {
				within = append(within, item)
			}
		}

		total := int64(len(within))
		start := (page - 1) * limit
		end := start + limit
		if start > len(within) {
			start = len(within)
		}
		if end > len(within) {
			end = len(within)
		}
		pageItems := within[start:end]

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"count":      len(pageItems),
			"pagination": buildPagination(page, limit, total),
			"data":       pageItems,
		})
		return
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		log.Printf("❌ Error counting items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch items"})
		return
	}

	var items []models.Item
	if err := query.Offset((page - 1) * limit).Limit(limit).Find(&items).Error; err != nil {
		log.Printf("❌ Error fetching items: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"count":      len(items),
		"pagination": buildPagination(page, limit, total),
		"data":       items,
	})
}

// getItem returns a single item with owner contact details populated
func getItem(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := database.DB.
		Preload("User", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email", "phone")
		}).
		First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// parseItemDate accepts ISO8601 timestamps or plain dates
func parseItemDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}

// collectImageUploads validates and stores the multipart image files,
// returning the generated filenames.
func collectImageUploads(c *gin.Context) ([]string, int, string) {
	form, err := c.MultipartForm()
	if err != nil || form == nil {
		return nil, 0, ""
	}

	files := form.File["images"]
	if len(files) == 0 {
		return nil, 0, ""
	}
	if len(files) > config.AppConfig.Upload.MaxImageCount {
		return nil, http.StatusBadRequest,
			fmt.Sprintf("At most %d images are allowed", config.AppConfig.Upload.MaxImageCount)
	}

	var filenames []string
	for _, header := range files {
		if !utils.ValidateImageFile(header) {
			return nil, http.StatusBadRequest, "Images must be jpg, jpeg, png or webp and at most 5MB"
		}
	}
	for _, header := range files {
		filename, err := utils.SaveItemImage(c, header)
		if err != nil {
			log.Printf("❌ Failed to store uploaded image: %v", err)
			return nil, http.StatusInternalServerError, "Failed to store uploaded image"
		}
		filenames = append(filenames, filename)
	}
	return filenames, 0, ""
}

// createItem creates an item report and kicks off match finding
func createItem(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var req models.ItemCreate
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if !models.IsValidCategory(models.ItemCategory(req.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category"})
		return
	}

	date, err := parseItemDate(req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date, expected ISO8601 or YYYY-MM-DD"})
		return
	}

	if !utils.IsLocationValid(*req.LocationLat, *req.LocationLng) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid location coordinates"})
		return
	}

	images, status, msg := collectImageUploads(c)
	if status != 0 {
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}

	item := models.Item{
		Title:           req.Title,
		Description:     req.Description,
		Category:        models.ItemCategory(req.Category),
		Type:            models.ItemType(req.Type),
		Status:          models.ItemStatusOpen,
		Date:            date,
		LocationLat:     req.LocationLat,
		LocationLng:     req.LocationLng,
		LocationAddress: req.LocationAddress,
		LocationCity:    req.LocationCity,
		LocationState:   req.LocationState,
		LocationZipcode: req.LocationZipcode,
		LocationCountry: req.LocationCountry,
		Images:          images,
		Reward:          req.Reward,
		UserID:          user.ID,
	}

	if err := database.DB.Create(&item).Error; err != nil {
		log.Printf("❌ Failed to create item: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to create item"})
		return
	}

	// Fire-and-forget: the create response does not depend on matching.
	go services.FindMatches(item)

	c.JSON(http.StatusCreated, gin.H{"success": true, "data": item})
}

// updateItem edits an item; owner or admin only
func updateItem(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	if item.UserID != user.ID && !user.IsAdmin() {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to update this item"})
		return
	}

	var req models.ItemUpdate
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
		return
	}

	if req.Category != "" && !models.IsValidCategory(models.ItemCategory(req.Category)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid category"})
		return
	}
	if req.Status != "" && !models.IsValidItemStatus(models.ItemStatus(req.Status)) {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid status"})
		return
	}

	// New images replace the old ones; old files are removed from disk first.
	newImages, status, msg := collectImageUploads(c)
	if status != 0 {
		c.JSON(status, gin.H{"success": false, "error": msg})
		return
	}
	if len(newImages) > 0 {
		for _, old := range item.Images {
			utils.DeleteItemImage(old)
		}
		item.Images = newImages
	}

	if req.Title != "" {
		item.Title = req.Title
	}
	if req.Description != "" {
		item.Description = req.Description
	}
	if req.Category != "" {
		item.Category = models.ItemCategory(req.Category)
	}
	if req.Status != "" {
		item.Status = models.ItemStatus(req.Status)
	}
	if req.Date != "" {
		date, err := parseItemDate(req.Date)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid date, expected ISO8601 or YYYY-MM-DD"})
			return
		}
		item.Date = date
	}
	if req.LocationLat != nil && req.LocationLng != nil {
		if !utils.IsLocationValid(*req.LocationLat, *req.LocationLng) {
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid location coordinates"})
			return
		}
		item.LocationLat = req.LocationLat
		item.LocationLng = req.LocationLng
	}
	if req.LocationAddress != nil {
		item.LocationAddress = *req.LocationAddress
	}
	if req.LocationCity != nil {
		item.LocationCity = *req.LocationCity
	}
	if req.LocationState != nil {
		item.LocationState = *req.LocationState
	}
	if req.LocationZipcode != nil {
		item.LocationZipcode = *req.LocationZipcode
	}
	if req.LocationCountry != nil {
		item.LocationCountry = *req.LocationCountry
	}
	if req.Reward != nil {
		item.Reward = *req.Reward
	}

	if err := database.DB.Save(&item).Error; err != nil {
		log.Printf("❌ Failed to update item %d: %v", item.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to update item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": item})
}

// deleteItem removes an item; owner only, admins get no bypass here.
// Image files stay on disk; only update-with-new-images cleans them up.
func deleteItem(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid item ID"})
		return
	}

	var item models.Item
	if err := database.DB.First(&item, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Item not found"})
		return
	}

	if item.UserID != user.ID {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "error": "Not authorized to delete this item"})
		return
	}

	if err := database.DB.Delete(&item).Error; err != nil {
		log.Printf("❌ Failed to delete item %d: %v", item.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to delete item"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "data": gin.H{}})
}

// getUserItems lists the caller's items, newest first
func getUserItems(c *gin.Context) {
	user, _ := middleware.CurrentUser(c)

	var items []models.Item
	if err := database.DB.Where("user_id = ?", user.ID).
		Order("created_at DESC").
		Find(&items).Error; err != nil {
		log.Printf("❌ Error fetching items for user %d: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"count":   len(items),
		"data":    items,
	})
}
