package handler

import (
	"net/http"
	"sort"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
	"github.com/dgzx-dev/schedule-board/backend/internal/utils"
)

const termDateLayout = "2006-01-02"

// 学期的结束日期含当天，持久化为当天的最后一秒
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

type termView struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}

func formatTerms(terms []*domain.Term) []termView {
	sorted := make([]*domain.Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	views := make([]termView, 0, len(sorted))
	for _, term := range sorted {
		views = append(views, termView{
			ID:        term.ID,
			Name:      term.Name,
			StartDate: term.StartDate.UTC().Format(termDateLayout),
			EndDate:   term.EndDate.UTC().Format(termDateLayout),
		})
	}
	return views
}

func (h *Handler) GetAllTerms(w http.ResponseWriter, r *http.Request) {
	terms, err := h.repository.GetAllTerms()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "获取学期列表成功", formatTerms(terms))
}

// ReplaceTerms 按提交的列表整体保存学期，没有重新提交的学期会被删除
func (h *Handler) ReplaceTerms(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Terms []struct {
			ID        int64  `json:"id"`
			Name      string `json:"name" validate:"required"`
			StartDate string `json:"startDate" validate:"required"`
			EndDate   string `json:"endDate" validate:"required"`
		} `json:"terms" validate:"required,dive"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	terms := make([]*domain.Term, 0, len(req.Terms))
	for _, t := range req.Terms {
		startDate, err := time.ParseInLocation(termDateLayout, t.StartDate, time.UTC)
		if err != nil {
			h.errorResponse(w, r, "学期日期格式错误，应为 YYYY-MM-DD")
			return
		}
		endDate, err := time.ParseInLocation(termDateLayout, t.EndDate, time.UTC)
		if err != nil {
			h.errorResponse(w, r, "学期日期格式错误，应为 YYYY-MM-DD")
			return
		}

		terms = append(terms, &domain.Term{
			ID:        t.ID,
			Name:      t.Name,
			StartDate: startDate,
			EndDate:   endDate.Add(endOfDay),
		})
	}

	if err := utils.ValidateTerms(terms); err != nil {
		h.errorResponse(w, r, err.Error())
		return
	}

	saved, err := h.repository.ReplaceTerms(terms)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "保存学期列表成功", formatTerms(saved))
}
