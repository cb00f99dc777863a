package schedule

import (
	"testing"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func TestComputeTermStatus_NoTerms(t *testing.T) {
	if got := ComputeTermStatus(nil, time.Now()); got != nil {
		t.Errorf("没有学期时应返回 nil，实际=%+v", got)
	}
	if got := ComputeTermStatus([]*domain.Term{}, time.Now()); got != nil {
		t.Errorf("空学期列表应返回 nil，实际=%+v", got)
	}
}

func TestComputeTermStatus_ActiveTerm(t *testing.T) {
	terms := []*domain.Term{
		{ID: 1, Name: "第一学期", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.March, 31)},
	}
	now := date(2024, time.February, 15)

	status := ComputeTermStatus(terms, now)
	if status == nil {
		t.Fatal("应返回学期进度")
	}
	if status.Status != TermStateActive {
		t.Errorf("期望 status=active，实际=%s", status.Status)
	}
	if status.TotalDays != 90 {
		t.Errorf("期望 totalDays=90，实际=%d", status.TotalDays)
	}
	if status.RemainingDays != 45 {
		t.Errorf("期望 remainingDays=45，实际=%d", status.RemainingDays)
	}
	if status.RemainingPercent <= 0 || status.RemainingPercent >= 100 {
		t.Errorf("进行中的学期剩余百分比应在 (0,100) 内，实际=%f", status.RemainingPercent)
	}
	if status.DaysUntilStart != nil {
		t.Error("进行中的学期不应返回 daysUntilStart")
	}
}

func TestComputeTermStatus_UpcomingTerm(t *testing.T) {
	terms := []*domain.Term{
		{ID: 1, Name: "第二学期", StartDate: date(2024, time.September, 1), EndDate: date(2025, time.January, 15)},
	}
	now := date(2024, time.August, 20)

	status := ComputeTermStatus(terms, now)
	if status == nil {
		t.Fatal("应返回学期进度")
	}
	if status.Status != TermStateUpcoming {
		t.Errorf("期望 status=upcoming，实际=%s", status.Status)
	}
	if status.RemainingPercent != 100 {
		t.Errorf("未开始的学期剩余百分比应为 100，实际=%f", status.RemainingPercent)
	}
	if status.DaysUntilStart == nil {
		t.Fatal("未开始的学期应返回 daysUntilStart")
	}
	if *status.DaysUntilStart != 12 {
		t.Errorf("期望 daysUntilStart=12，实际=%d", *status.DaysUntilStart)
	}
}

func TestComputeTermStatus_FinishedTerm(t *testing.T) {
	terms := []*domain.Term{
		{ID: 1, Name: "旧学期", StartDate: date(2023, time.September, 1), EndDate: date(2024, time.January, 15)},
	}
	now := date(2024, time.June, 1)

	status := ComputeTermStatus(terms, now)
	if status == nil {
		t.Fatal("应返回学期进度")
	}
	if status.Status != TermStateFinished {
		t.Errorf("期望 status=finished，实际=%s", status.Status)
	}
	if status.RemainingDays != 0 {
		t.Errorf("已结束的学期剩余天数应为 0，实际=%d", status.RemainingDays)
	}
	if status.RemainingPercent != 0 {
		t.Errorf("已结束的学期剩余百分比应为 0，实际=%f", status.RemainingPercent)
	}
}

func TestComputeTermStatus_PrefersActiveOverUpcoming(t *testing.T) {
	terms := []*domain.Term{
		{ID: 2, Name: "下学期", StartDate: date(2024, time.September, 1), EndDate: date(2025, time.January, 15)},
		{ID: 1, Name: "本学期", StartDate: date(2024, time.February, 20), EndDate: date(2024, time.July, 5)},
	}
	now := date(2024, time.March, 1)

	status := ComputeTermStatus(terms, now)
	if status == nil {
		t.Fatal("应返回学期进度")
	}
	if status.ID != 1 {
		t.Errorf("应选中正在进行的学期，实际选中 id=%d", status.ID)
	}
	if status.Status != TermStateActive {
		t.Errorf("期望 status=active，实际=%s", status.Status)
	}
}

func TestComputeTermStatus_FallsBackToLastTerm(t *testing.T) {
	terms := []*domain.Term{
		{ID: 1, Name: "第一学期", StartDate: date(2023, time.September, 1), EndDate: date(2024, time.January, 15)},
		{ID: 2, Name: "第二学期", StartDate: date(2024, time.February, 20), EndDate: date(2024, time.July, 5)},
	}
	now := date(2024, time.August, 1)

	status := ComputeTermStatus(terms, now)
	if status == nil {
		t.Fatal("应返回学期进度")
	}
	if status.ID != 2 {
		t.Errorf("所有学期都已结束时应选中最后一个学期，实际选中 id=%d", status.ID)
	}
	if status.Status != TermStateFinished {
		t.Errorf("期望 status=finished，实际=%s", status.Status)
	}
}

func TestComputeTermStatus_Deterministic(t *testing.T) {
	terms := []*domain.Term{
		{ID: 1, Name: "第一学期", StartDate: date(2024, time.January, 1), EndDate: date(2024, time.March, 31)},
	}
	now := date(2024, time.February, 15)

	first := ComputeTermStatus(terms, now)
	second := ComputeTermStatus(terms, now)
	if *first != *second {
		t.Errorf("相同输入应得到相同输出：%+v != %+v", first, second)
	}
}
