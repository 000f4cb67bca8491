package controllers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/methodshub/backend/config"
	"github.com/methodshub/backend/models"
	"github.com/methodshub/backend/services"
	"github.com/methodshub/backend/utils"
)

const importMaxBytes = 2 << 20 // 2 MiB

// CsvController handles earnings export and batch import.
type CsvController struct {
	db       *gorm.DB
	earnings *EarningController
}

// NewCsvController creates a CsvController.
func NewCsvController(db *gorm.DB) *CsvController {
	return &CsvController{db: db, earnings: NewEarningController(db)}
}

// Export streams the user's full entry history as a CSV attachment.
func (c *CsvController) Export(ctx *gin.Context) {
	userID := currentUserID(ctx)

	var entries []models.DailyEarning
	if err := c.db.Preload("Method").Where("user_id = ?", userID).
		Order("entry_date ASC, id ASC").Find(&entries).Error; err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50026, "failed to retrieve entries")
		return
	}

	filename := fmt.Sprintf("earnings-%s.csv", time.Now().Format("2006-01-02"))
	ctx.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(services.EntriesToCSV(entries)))
}

// Import parses uploaded CSV text and creates entries row by row. One bad row
// never aborts the batch; the result reports per-row errors. Methods resolve
// by exact title against the user's existing methods.
func (c *CsvController) Import(ctx *gin.Context) {
	userID := currentUserID(ctx)

	text, ok := readImportBody(ctx)
	if !ok {
		return
	}

	rows := services.ParseCSV(text)
	if len(rows) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40040, "no importable rows found")
		return
	}

	methods, err := c.methodsByTitle(userID)
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50027, "failed to load methods")
		return
	}

	result := services.ImportResult{Errors: []string{}}

	for i, row := range rows {
		n := i + 1

		if errs := services.ValidateCSVRow(n, row); len(errs) > 0 {
			result.Failed++
			result.Errors = append(result.Errors, errs...)
			continue
		}

		method, ok := methods[strings.TrimSpace(row.Method)]
		if !ok {
			result.Failed++
			result.Errors = append(result.Errors, services.RowError(n, "Method not found"))
			continue
		}

		entryDate, err := time.Parse("2006-01-02", row.Date)
		if err != nil {
			result.Failed++
			result.Errors = append(result.Errors, services.RowError(n, "Invalid date format (use YYYY-MM-DD)"))
			continue
		}
		amount := parseAmount(row.Amount)

		entry := models.DailyEarning{
			UserID:    userID,
			MethodID:  method.ID,
			Amount:    amount,
			EntryDate: entryDate,
			Notes:     utils.Sanitize(row.Notes),
		}
		if err := c.db.Create(&entry).Error; err != nil {
			result.Failed++
			if isDuplicateKey(err) {
				result.Errors = append(result.Errors, services.RowError(n, "Duplicate entry for this method and date"))
			} else {
				result.Errors = append(result.Errors, services.RowError(n, "failed to save entry"))
			}
			continue
		}

		c.earnings.advanceStreak(userID, entryDate)
		result.Success++
	}

	if result.Success > 0 {
		points := config.Get().Points
		if err := awardPoints(c.db, userID, result.Success*points.DailyEarning); err != nil && utils.Sugar != nil {
			utils.Sugar.Warnf("import points award failed user=%d: %v", userID, err)
		}
	}

	utils.Success(ctx, result)
}

// methodsByTitle loads the user's methods keyed by exact title. Import does
// not create methods; a title with no match fails its row.
func (c *CsvController) methodsByTitle(userID uint) (map[string]models.Method, error) {
	var list []models.Method
	if err := c.db.Where("user_id = ?", userID).Find(&list).Error; err != nil {
		return nil, err
	}

	methods := make(map[string]models.Method, len(list))
	for _, m := range list {
		methods[m.Title] = m
	}
	return methods, nil
}

func readImportBody(ctx *gin.Context) (string, bool) {
	// Accept either a multipart "file" field or a raw text body.
	if file, err := ctx.FormFile("file"); err == nil {
		if file.Size > importMaxBytes {
			utils.Error(ctx, http.StatusBadRequest, 40042, "import file too large")
			return "", false
		}
		f, err := file.Open()
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40043, "failed to read file")
			return "", false
		}
		defer f.Close()
		b, err := io.ReadAll(io.LimitReader(f, importMaxBytes))
		if err != nil {
			utils.Error(ctx, http.StatusBadRequest, 40043, "failed to read file")
			return "", false
		}
		return string(b), true
	}

	b, err := io.ReadAll(io.LimitReader(ctx.Request.Body, importMaxBytes))
	if err != nil || len(b) == 0 {
		utils.Error(ctx, http.StatusBadRequest, 40044, "missing import data")
		return "", false
	}
	return string(b), true
}

func parseAmount(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
