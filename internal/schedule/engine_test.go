package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// fakeStore 记录引擎发出的写入和学期查询，便于断言副作用次数
type fakeStore struct {
	terms        []*domain.Term
	termsErr     error
	getTermCalls int
	updates      []domain.DayType
	updated      *domain.Settings
}

func (s *fakeStore) UpdateCurrentDayType(id int64, dayType domain.DayType) (*domain.Settings, error) {
	s.updates = append(s.updates, dayType)
	if s.updated != nil {
		result := *s.updated
		result.CurrentDayType = dayType
		return &result, nil
	}
	return &domain.Settings{ID: id, CurrentDayType: dayType}, nil
}

func (s *fakeStore) GetAllTerms() ([]*domain.Term, error) {
	s.getTermCalls++
	return s.terms, s.termsErr
}

func baseSettings() *domain.Settings {
	return &domain.Settings{
		ID:                  1,
		CurrentDayType:      domain.DayTypeOnSite,
		AutoDayTypeEnabled:  true,
		OnSiteDays:          "1,3,5",
		RemoteDays:          "0,6",
		TuesdayMode:         domain.TuesdayModeManual,
		TuesdayOddWeekType:  domain.DayTypeOnSite,
		TuesdayEvenWeekType: domain.DayTypeRemote,
	}
}

func newTestEngine(t *testing.T, store Store) *Engine {
	t.Helper()
	return NewEngine(store, testLocation(t))
}

func TestApplyAutoDayType_NilSettings(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	result, err := engine.ApplyAutoDayType(nil, time.Now(), nil)
	if err != nil {
		t.Fatalf("settings 为 nil 时不应返回错误: %v", err)
	}
	if result != nil {
		t.Errorf("settings 为 nil 时应返回 nil，实际=%+v", result)
	}
	if len(store.updates) != 0 {
		t.Errorf("settings 为 nil 时不应写入，写入次数=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_Disabled(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.AutoDayTypeEnabled = false
	settings.CurrentDayType = domain.DayTypeRemote
	settings.OnSiteDays = "0,1,2,3,4,5,6"

	// 2024-01-08 是周一，规则本应切到线下
	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("未开启自动切换时不应返回错误: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("未开启自动切换时应保持原值，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 0 {
		t.Errorf("未开启自动切换时不应写入，写入次数=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_WeekdayRuleFlips(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.OnSiteDays = "3,5"
	settings.RemoteDays = "1"

	// 2024-01-08 是周一，配置为线上
	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("应用星期规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("周一应切换到 REMOTE，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 1 {
		t.Fatalf("应恰好写入一次，实际=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_AmbiguousWeekdayKeepsStored(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.CurrentDayType = domain.DayTypeRemote
	settings.OnSiteDays = "1"
	settings.RemoteDays = "1"

	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("应用星期规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("两边都配置了同一天时应保持存储值，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 0 {
		t.Errorf("保持存储值时不应写入，写入次数=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_NoWriteWhenUnchanged(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.OnSiteDays = "1"
	settings.RemoteDays = ""

	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("应用星期规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeOnSite {
		t.Errorf("推导值与存储值一致时应保持 ON_SITE，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 0 {
		t.Errorf("推导值一致时不应写入，写入次数=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_TuesdayFixedRemote(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.TuesdayMode = domain.TuesdayModeFixedRemote
	settings.OnSiteDays = "2"

	// 2024-01-09 是周二，周二规则优先于星期规则
	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 9), nil)
	if err != nil {
		t.Fatalf("应用周二规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("FIXED_REMOTE 周二应切换到 REMOTE，实际=%s", result.CurrentDayType)
	}
	if store.getTermCalls != 0 {
		t.Errorf("固定模式不需要学期数据，查询次数=%d", store.getTermCalls)
	}
}

func TestApplyAutoDayType_WeekdayFollowsCivilZone(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.TuesdayMode = domain.TuesdayModeFixedRemote
	settings.OnSiteDays = "1"
	settings.RemoteDays = ""

	// UTC 时间 2024-01-08 18:00 还是周一，但上海已经是周二凌晨；
	// 星期几必须按民用时区计算，此刻应触发周二规则而不是周一的星期规则
	now := time.Date(2024, time.January, 8, 18, 0, 0, 0, time.UTC)
	result, err := engine.ApplyAutoDayType(settings, now, nil)
	if err != nil {
		t.Fatalf("应用周二规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("上海时间已是周二，应切换到 REMOTE，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 1 {
		t.Fatalf("应恰好写入一次，实际=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_TuesdayManualUsesWeekdayRule(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.TuesdayMode = domain.TuesdayModeManual
	settings.OnSiteDays = ""
	settings.RemoteDays = "2"

	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 9), nil)
	if err != nil {
		t.Fatalf("应用星期规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeRemote {
		t.Errorf("手动模式下周二应走星期规则切到 REMOTE，实际=%s", result.CurrentDayType)
	}
}

func TestApplyAutoDayType_TuesdayLazyTermFetch(t *testing.T) {
	store := &fakeStore{
		terms: []*domain.Term{
			{ID: 1, Name: "学期", StartDate: date(2024, time.January, 2), EndDate: date(2024, time.June, 30)},
		},
	}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.TuesdayMode = domain.TuesdayModeTermWeekBased
	settings.CurrentDayType = domain.DayTypeRemote

	// 开学第 1 周的周二，应切到线下；terms 传 nil 触发懒加载
	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 2), nil)
	if err != nil {
		t.Fatalf("应用周二规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeOnSite {
		t.Errorf("开学第 1 周的周二应切换到 ON_SITE，实际=%s", result.CurrentDayType)
	}
	if store.getTermCalls != 1 {
		t.Errorf("应恰好查询一次学期数据，实际=%d", store.getTermCalls)
	}

	// 调用方已提供学期数据时不应再查询
	settings.CurrentDayType = domain.DayTypeRemote
	if _, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 2), store.terms); err != nil {
		t.Fatalf("应用周二规则失败: %v", err)
	}
	if store.getTermCalls != 1 {
		t.Errorf("已提供学期数据时不应再查询，实际=%d", store.getTermCalls)
	}
}

func TestApplyAutoDayType_TermFetchError(t *testing.T) {
	store := &fakeStore{termsErr: errors.New("数据库连接失败")}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.TuesdayMode = domain.TuesdayModeTermWeekBased

	if _, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 2), nil); err == nil {
		t.Error("学期查询失败时应返回错误")
	}
	if len(store.updates) != 0 {
		t.Errorf("学期查询失败时不应写入，写入次数=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_Idempotent(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.OnSiteDays = "3,5"
	settings.RemoteDays = "1"
	store.updated = settings

	first, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("第一次调用失败: %v", err)
	}
	second, err := engine.ApplyAutoDayType(first, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("第二次调用失败: %v", err)
	}
	if second.CurrentDayType != first.CurrentDayType {
		t.Errorf("第二次调用不应改变结果，第一次=%s 第二次=%s", first.CurrentDayType, second.CurrentDayType)
	}
	if len(store.updates) != 1 {
		t.Errorf("重复调用应只写入一次，实际=%d", len(store.updates))
	}
}

func TestApplyAutoDayType_CorrectsMalformedStoredValue(t *testing.T) {
	store := &fakeStore{}
	engine := newTestEngine(t, store)

	settings := baseSettings()
	settings.CurrentDayType = domain.DayType("BROKEN")
	settings.OnSiteDays = "1"
	settings.RemoteDays = ""

	result, err := engine.ApplyAutoDayType(settings, date(2024, time.January, 8), nil)
	if err != nil {
		t.Fatalf("应用星期规则失败: %v", err)
	}
	if result.CurrentDayType != domain.DayTypeOnSite {
		t.Errorf("损坏的存储值应被纠正为 ON_SITE，实际=%s", result.CurrentDayType)
	}
	if len(store.updates) != 1 {
		t.Errorf("纠正损坏值应写入一次，实际=%d", len(store.updates))
	}
}
