package models

import "time"

// DailyStats — агрегированная статистика за один день.
type DailyStats struct {
	Date      time.Time `json:"date"`
	PageViews int64     `json:"page_views"`
	Reactions int64     `json:"reactions"`
	Comments  int64     `json:"comments"`
}
