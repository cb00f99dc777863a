package utils

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// NormalizePeriods 校验课节列表并把序号规整为从 1 开始的连续整数。
// 按提交的序号排序后重新编号，因此客户端只需要保证相对顺序
func NormalizePeriods(periods []*domain.Period) ([]*domain.Period, error) {
	for i, period := range periods {
		if period.Order <= 0 {
			return nil, fmt.Errorf("第 %d 节课的序号必须是正整数", i+1)
		}

		startTime, err := time.Parse("15:04", period.StartTime)
		if err != nil {
			return nil, fmt.Errorf("第 %d 节课的开始时间格式错误", i+1)
		}
		endTime, err := time.Parse("15:04", period.EndTime)
		if err != nil {
			return nil, fmt.Errorf("第 %d 节课的结束时间格式错误", i+1)
		}
		if !endTime.After(startTime) {
			return nil, fmt.Errorf("第 %d 节课的结束时间必须晚于开始时间", i+1)
		}

		period.Name = strings.TrimSpace(period.Name)
	}

	// 检查课节之间是否有时间重叠
	for i := 0; i < len(periods); i++ {
		iStart, _ := time.Parse("15:04", periods[i].StartTime)
		iEnd, _ := time.Parse("15:04", periods[i].EndTime)

		for j := i + 1; j < len(periods); j++ {
			jStart, _ := time.Parse("15:04", periods[j].StartTime)
			jEnd, _ := time.Parse("15:04", periods[j].EndTime)

			if !(jStart.After(iEnd) || jStart.Equal(iEnd) || iStart.After(jEnd) || iStart.Equal(jEnd)) {
				return nil, fmt.Errorf("第 %d 节课和第 %d 节课的时间重叠", i+1, j+1)
			}
		}
	}

	normalized := make([]*domain.Period, len(periods))
	copy(normalized, periods)
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Order < normalized[j].Order
	})
	for i, period := range normalized {
		period.Order = int32(i + 1)
	}

	return normalized, nil
}

// ValidateTerms 校验学期列表：名称非空、日期都存在且结束不早于开始
func ValidateTerms(terms []*domain.Term) error {
	for i, term := range terms {
		if strings.TrimSpace(term.Name) == "" {
			return fmt.Errorf("第 %d 个学期缺少名称", i+1)
		}
		if term.StartDate.IsZero() || term.EndDate.IsZero() {
			return fmt.Errorf("第 %d 个学期缺少开始或结束日期", i+1)
		}
		if term.EndDate.Before(term.StartDate) {
			return fmt.Errorf("第 %d 个学期的结束日期不能早于开始日期", i+1)
		}
	}
	return nil
}
