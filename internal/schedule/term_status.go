package schedule

import (
	"math"
	"sort"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

const dayDuration = 24 * time.Hour

type TermState string

const (
	TermStateActive   TermState = "active"
	TermStateUpcoming TermState = "upcoming"
	TermStateFinished TermState = "finished"
)

// TermStatus 是首页进度条所需的学期进度信息
type TermStatus struct {
	ID               int64     `json:"id"`
	Name             string    `json:"name"`
	StartDate        time.Time `json:"startDate"`
	EndDate          time.Time `json:"endDate"`
	Status           TermState `json:"status"`
	TotalDays        int       `json:"totalDays"`
	RemainingDays    int       `json:"remainingDays"`
	RemainingPercent float64   `json:"remainingPercent"`
	DaysUntilStart   *int      `json:"daysUntilStart,omitempty"`
}

// ComputeTermStatus 从学期列表中挑选当前应当展示的学期并计算进度。
// 选择顺序：正在进行的学期 > 最近一个还未开始的学期 > 最后一个学期。
// 纯函数，相同输入必定得到相同输出；没有任何学期时返回 nil
func ComputeTermStatus(terms []*domain.Term, now time.Time) *TermStatus {
	if len(terms) == 0 {
		return nil
	}

	sorted := make([]*domain.Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	var selected *domain.Term
	for _, term := range sorted {
		if !now.Before(term.StartDate) && !now.After(term.EndDate) {
			selected = term
			break
		}
	}
	if selected == nil {
		for _, term := range sorted {
			if term.StartDate.After(now) {
				selected = term
				break
			}
		}
	}
	if selected == nil {
		selected = sorted[len(sorted)-1]
	}

	status := TermStateFinished
	switch {
	case now.Before(selected.StartDate):
		status = TermStateUpcoming
	case !now.After(selected.EndDate):
		status = TermStateActive
	}

	totalMs := selected.EndDate.Sub(selected.StartDate)
	if totalMs < 0 {
		totalMs = 0
	}

	remainingMs := time.Duration(0)
	switch status {
	case TermStateUpcoming:
		remainingMs = totalMs
	case TermStateActive:
		remainingMs = selected.EndDate.Sub(now)
		if remainingMs < 0 {
			remainingMs = 0
		}
	}

	totalDays := int(math.Round(float64(totalMs) / float64(dayDuration)))
	if totalDays < 1 {
		totalDays = 1
	}

	remainingDays := int(math.Ceil(float64(remainingMs) / float64(dayDuration)))
	if remainingDays < 0 {
		remainingDays = 0
	}

	remainingPercent := 0.0
	if totalMs > 0 {
		remainingPercent = float64(remainingMs) / float64(totalMs) * 100
		if remainingPercent < 0 {
			remainingPercent = 0
		}
		if remainingPercent > 100 {
			remainingPercent = 100
		}
	}

	result := &TermStatus{
		ID:               selected.ID,
		Name:             selected.Name,
		StartDate:        selected.StartDate,
		EndDate:          selected.EndDate,
		Status:           status,
		TotalDays:        totalDays,
		RemainingDays:    remainingDays,
		RemainingPercent: remainingPercent,
	}

	if status == TermStateUpcoming {
		daysUntilStart := int(math.Ceil(float64(selected.StartDate.Sub(now)) / float64(dayDuration)))
		if daysUntilStart < 0 {
			daysUntilStart = 0
		}
		result.DaysUntilStart = &daysUntilStart
	}

	return result
}
