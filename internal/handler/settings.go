package handler

import (
	"net/http"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
	"github.com/dgzx-dev/schedule-board/backend/internal/schedule"
)

func (h *Handler) UpdateSchoolInfo(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SchoolName  string `json:"schoolName" validate:"required"`
		ManagerName string `json:"managerName" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings := r.Context().Value(SettingsCtx).(*domain.Settings)
	settings.SchoolName = req.SchoolName
	settings.ManagerName = req.ManagerName

	if err := h.repository.UpdateSchoolInfo(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存学校信息成功", settings)
}

// UpdateDayType 管理员手动切换上课方式
func (h *Handler) UpdateDayType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DayType string `json:"dayType" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if !domain.IsValidDayType(req.DayType) {
		h.errorResponse(w, r, "无效的上课方式")
		return
	}

	settings := r.Context().Value(SettingsCtx).(*domain.Settings)
	previousType := settings.CurrentDayType

	updated, err := h.repository.UpdateCurrentDayType(settings.ID, domain.DayType(req.DayType))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if updated.CurrentDayType != previousType {
		h.notifyDayTypeChanged(r, updated, false)
	}

	h.successResponse(w, r, "切换上课方式成功", updated)
}

// UpdateAutoDayType 保存自动切换配置并立刻重新推导一次上课方式
func (h *Handler) UpdateAutoDayType(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AutoDayTypeEnabled  bool   `json:"autoDayTypeEnabled"`
		OnSiteDays          any    `json:"onSiteDays"`
		RemoteDays          any    `json:"remoteDays"`
		TuesdayMode         string `json:"tuesdayMode"`
		TuesdayOddWeekType  string `json:"tuesdayOddWeekType"`
		TuesdayEvenWeekType string `json:"tuesdayEvenWeekType"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	settings := r.Context().Value(SettingsCtx).(*domain.Settings)
	settings.AutoDayTypeEnabled = req.AutoDayTypeEnabled
	settings.OnSiteDays = schedule.SerializeDaysField(schedule.NormalizeDayList(req.OnSiteDays))
	settings.RemoteDays = schedule.SerializeDaysField(schedule.NormalizeDayList(req.RemoteDays))
	settings.TuesdayMode = domain.ParseTuesdayMode(req.TuesdayMode)
	settings.TuesdayOddWeekType = domain.ParseDayType(req.TuesdayOddWeekType)
	if domain.IsValidDayType(req.TuesdayEvenWeekType) {
		settings.TuesdayEvenWeekType = domain.DayType(req.TuesdayEvenWeekType)
	} else {
		settings.TuesdayEvenWeekType = domain.DayTypeRemote
	}

	if err := h.repository.UpdateAutoDayTypeConfig(settings); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	previousType := settings.CurrentDayType

	applied, err := h.engine.ApplyAutoDayType(settings, time.Now(), nil)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if applied.CurrentDayType != previousType {
		h.notifyDayTypeChanged(r, applied, true)
	}

	h.successResponse(w, r, "保存自动切换配置成功", map[string]any{
		"settings":       applied,
		"appliedDayType": applied.CurrentDayType,
	})
}
