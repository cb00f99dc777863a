package handler

import (
	"net/http"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
	"github.com/dgzx-dev/schedule-board/backend/internal/utils"
)

// ReplacePeriods 整体保存某一上课方式下的课节列表
func (h *Handler) ReplacePeriods(w http.ResponseWriter, r *http.Request) {
	var req struct {
		DayType string `json:"dayType" validate:"required"`
		Periods []struct {
			Order     int32  `json:"order"`
			Name      string `json:"name"`
			StartTime string `json:"startTime" validate:"required"`
			EndTime   string `json:"endTime" validate:"required"`
		} `json:"periods" validate:"dive"`
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

	periods := make([]*domain.Period, 0, len(req.Periods))
	for _, p := range req.Periods {
		periods = append(periods, &domain.Period{
			Order:     p.Order,
			Name:      p.Name,
			StartTime: p.StartTime,
			EndTime:   p.EndTime,
		})
	}

	normalized, err := utils.NormalizePeriods(periods)
	if err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	settings := r.Context().Value(SettingsCtx).(*domain.Settings)

	if err := h.repository.ReplacePeriods(settings.ID, domain.DayType(req.DayType), normalized); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存课节成功", normalized)
}
