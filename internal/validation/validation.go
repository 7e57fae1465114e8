// Package validation checks request input before anything is stored or
// aggregated. Every function is pure: the caller supplies the clock.
package validation

import (
	"bytes"
	"encoding/json"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hongminglow/cost-manager/internal/apperr"
	"github.com/hongminglow/cost-manager/internal/models"
	"github.com/hongminglow/cost-manager/internal/models/dto"
)

const (
	msgMissingCostFields = "Missing required fields. Date must be provided in YYYY-MM-DD format."
	msgInvalidSum        = "Invalid sum value. It must be a positive number."
	msgDateFormat        = "Invalid date format. Use YYYY-MM-DD."
	msgDateNotReal       = "Invalid date. Ensure it is a real calendar date in YYYY-MM-DD format."
	msgInvalidCategory   = "Invalid category. Must be one of Food, Health, Housing, Sport, Education."
	msgMissingParams     = "Missing parameters"
	msgNumericID         = "ID must contain only numbers."
	msgInvalidYear       = "Invalid year. Must be in YYYY format."
	msgInvalidMonth      = "Month must contain only numbers and be a real calendar month."
	msgFutureMonth       = "Requested month is in the future."
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// ReportParams is a validated report query.
type ReportParams struct {
	UserID string
	Year   int
	Month  time.Month
}

// Cost validates a cost submission and returns the entry to store. The date
// is interpreted as midnight in loc.
func Cost(req dto.AddCostRequest, loc *time.Location) (models.Cost, error) {
	userID, userQuoted, userPresent := rawScalar(req.UserID)
	sumText, _, sumPresent := rawScalar(req.Sum)
	if isBlank(req.Description) || !userPresent || !sumPresent || isBlank(req.Date) {
		return models.Cost{}, apperr.Validation(msgMissingCostFields)
	}
	// A numeric userId is stored as its digit string.
	if !userQuoted && !isDigits(userID) {
		return models.Cost{}, apperr.Validation(msgNumericID)
	}

	sum, err := decimal.NewFromString(sumText)
	if err != nil || !sum.IsPositive() {
		return models.Cost{}, apperr.Validation(msgInvalidSum)
	}

	date, err := CalendarDate(req.Date, loc)
	if err != nil {
		return models.Cost{}, err
	}

	if !models.IsCategory(req.Category) {
		return models.Cost{}, apperr.Validation(msgInvalidCategory)
	}

	return models.Cost{
		Description: req.Description,
		Category:    req.Category,
		UserID:      userID,
		Sum:         sum,
		Date:        date,
	}, nil
}

// CalendarDate parses a strict YYYY-MM-DD value and rejects dates that do
// not exist, such as 2025-02-30.
func CalendarDate(value string, loc *time.Location) (time.Time, error) {
	if !dateRe.MatchString(value) {
		return time.Time{}, apperr.Validation(msgDateFormat)
	}
	year, _ := strconv.Atoi(value[0:4])
	month, _ := strconv.Atoi(value[5:7])
	day, _ := strconv.Atoi(value[8:10])

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if date.Year() != year || int(date.Month()) != month || date.Day() != day {
		return time.Time{}, apperr.Validation(msgDateNotReal)
	}
	return date, nil
}

// ReportQuery validates the report parameters against the current month.
// Months strictly after the month containing now are rejected.
func ReportQuery(q dto.ReportQuery, now time.Time) (ReportParams, error) {
	if isBlank(q.ID) || isBlank(q.Year) || isBlank(q.Month) {
		return ReportParams{}, apperr.Validation(msgMissingParams)
	}
	if !isDigits(q.ID) {
		return ReportParams{}, apperr.Validation(msgNumericID)
	}

	year, ok := parseBounded(q.Year, 1000, 9999)
	if !ok {
		return ReportParams{}, apperr.Validation(msgInvalidYear)
	}
	month, ok := parseBounded(q.Month, 1, 12)
	if !ok {
		return ReportParams{}, apperr.Validation(msgInvalidMonth)
	}

	if year > now.Year() || (year == now.Year() && time.Month(month) > now.Month()) {
		return ReportParams{}, apperr.Validation(msgFutureMonth)
	}

	return ReportParams{UserID: q.ID, Year: year, Month: time.Month(month)}, nil
}

// UserID validates a user id path parameter.
func UserID(id string) error {
	if !isDigits(id) {
		return apperr.Validation(msgNumericID)
	}
	return nil
}

// rawScalar returns the text of a JSON string or literal, whether it was
// quoted, and whether a non-blank value was present.
func rawScalar(raw json.RawMessage) (string, bool, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return "", false, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return "", true, false
		}
		s = strings.TrimSpace(s)
		return s, true, s != ""
	}
	return string(trimmed), false, true
}

func parseBounded(value string, min, max int) (int, bool) {
	if !isDigits(value) {
		return 0, false
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < min || n > max {
		return 0, false
	}
	return n, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
