package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/schedule"
)

var weekdayNames = []string{"星期日", "星期一", "星期二", "星期三", "星期四", "星期五", "星期六"}

type dateInfo struct {
	Date        string `json:"date"` // 民用时区下的当天日期
	Weekday     int    `json:"weekday"`
	WeekdayName string `json:"weekdayName"`
}

func (h *Handler) civilDateInfo(now time.Time) dateInfo {
	local := now.In(h.engine.Location())
	weekday := int(local.Weekday())
	return dateInfo{
		Date:        local.Format("2006-01-02"),
		Weekday:     weekday,
		WeekdayName: weekdayNames[weekday],
	}
}

// GetSchedule 是展示页轮询的主接口：每次请求都重新推导当前的上课方式，
// 再返回对应的课节列表和学期进度
func (h *Handler) GetSchedule(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetSettings()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "系统尚未初始化")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	terms, err := h.repository.GetAllTerms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	now := time.Now()
	previousType := settings.CurrentDayType

	settings, err = h.engine.ApplyAutoDayType(settings, now, terms)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if settings.CurrentDayType != previousType {
		h.notifyDayTypeChanged(r, settings, true)
	}

	periods, err := h.repository.GetPeriodsByDayType(settings.CurrentDayType)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取课表成功", map[string]any{
		"dayType": settings.CurrentDayType,
		"periods": periods,
		"header": map[string]string{
			"schoolName":  settings.SchoolName,
			"managerName": settings.ManagerName,
		},
		"termStatus": schedule.ComputeTermStatus(terms, now),
		"dateInfo":   h.civilDateInfo(now),
		"updatedAt":  settings.UpdatedAt,
	})
}

func (h *Handler) GetHeader(w http.ResponseWriter, r *http.Request) {
	settings, err := h.repository.GetSettings()
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.errorResponse(w, r, "系统尚未初始化")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "获取页眉成功", map[string]any{
		"schoolName":  settings.SchoolName,
		"managerName": settings.ManagerName,
		"dateInfo":    h.civilDateInfo(time.Now()),
	})
}
