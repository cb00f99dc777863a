package domain

import (
	"time"
)

type Term struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	StartDate time.Time `json:"startDate"`
	EndDate   time.Time `json:"endDate"` // 含当天，持久化为当天 23:59:59
	Version   int32     `json:"-"`
}
