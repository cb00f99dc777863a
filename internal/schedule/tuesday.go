package schedule

import (
	"sort"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// 1970-01-05 是 Unix 纪元之后的第一个周一，
// 隔周轮换以它为基准，保证奇偶性在任何时间点都稳定
var alternateEpoch = struct{ year, month, day int }{1970, 1, 5}

// civilMidnight 把时刻规整到民用时区当天的零点。
// 周数按日历天计算，先规整再相减，避免夏令时把一天算成 23 或 25 小时
func civilMidnight(t time.Time, loc *time.Location) time.Time {
	year, month, day := t.In(loc).Date()
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

func civilDaysBetween(from, to time.Time, loc *time.Location) int {
	start := civilMidnight(from, loc)
	end := civilMidnight(to, loc)
	hours := end.Sub(start).Hours()
	if hours >= 0 {
		return int(hours/24 + 0.5)
	}
	return -int(-hours/24 + 0.5)
}

// floorDiv 向负无穷取整的整除，now 早于学期开始时周数才能连续递减
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// relevantTermStart 找出与当前时刻最相关的学期开始日期：
// 正在进行的学期 > 最近一个还未开始的学期 > 最后一个学期；都没有则返回 false
func relevantTermStart(terms []*domain.Term, now time.Time) (time.Time, bool) {
	if len(terms) == 0 {
		return time.Time{}, false
	}

	sorted := make([]*domain.Term, len(terms))
	copy(sorted, terms)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].StartDate.Before(sorted[j].StartDate)
	})

	for _, term := range sorted {
		if !now.Before(term.StartDate) && !now.After(term.EndDate) {
			return term.StartDate, true
		}
	}
	for _, term := range sorted {
		if term.StartDate.After(now) {
			return term.StartDate, true
		}
	}
	return sorted[len(sorted)-1].StartDate, true
}

// termWeekNumber 计算 now 位于学期的第几周，开学当周为第 1 周
func termWeekNumber(termStart, now time.Time, loc *time.Location) int {
	return floorDiv(civilDaysBetween(termStart, now, loc), 7) + 1
}

// ResolveTuesdayDayType 计算周二应当采用的上课方式。
// mode 无法识别时按 TERM_WEEK_BASED 处理；odd/even 无法识别时
// 分别回退到线下/线上；找不到相关学期时返回 defaultType
func ResolveTuesdayDayType(
	mode domain.TuesdayMode,
	now time.Time,
	terms []*domain.Term,
	defaultType domain.DayType,
	oddWeekType domain.DayType,
	evenWeekType domain.DayType,
	loc *time.Location,
) domain.DayType {
	if !domain.IsValidDayType(string(oddWeekType)) {
		oddWeekType = domain.DayTypeOnSite
	}
	if !domain.IsValidDayType(string(evenWeekType)) {
		evenWeekType = domain.DayTypeRemote
	}

	switch mode {
	case domain.TuesdayModeManual:
		// 手动模式下周二规则不生效，由普通的星期规则决定
		return defaultType

	case domain.TuesdayModeFixedOnSite:
		return domain.DayTypeOnSite

	case domain.TuesdayModeFixedRemote:
		return domain.DayTypeRemote

	case domain.TuesdayModeWeeklyAlternate:
		epochMonday := time.Date(alternateEpoch.year, time.Month(alternateEpoch.month), alternateEpoch.day, 0, 0, 0, 0, loc)
		weeks := floorDiv(civilDaysBetween(epochMonday, now, loc), 7)
		if weeks%2 == 0 {
			return domain.DayTypeOnSite
		}
		return domain.DayTypeRemote

	case domain.TuesdayModeWeekNumberBased:
		termStart, ok := relevantTermStart(terms, now)
		if !ok {
			return defaultType
		}
		if termWeekNumber(termStart, now, loc)%2 != 0 {
			return oddWeekType
		}
		return evenWeekType

	default:
		// TERM_WEEK_BASED 以及所有无法识别的模式：
		// 开学第奇数周线下，第偶数周线上
		termStart, ok := relevantTermStart(terms, now)
		if !ok {
			return defaultType
		}
		if termWeekNumber(termStart, now, loc)%2 != 0 {
			return domain.DayTypeOnSite
		}
		return domain.DayTypeRemote
	}
}
