package schedule

import (
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// Store 是解析引擎对持久化层的唯一依赖，
// 由 repository 实现；引擎自身不关心存储细节
type Store interface {
	UpdateCurrentDayType(id int64, dayType domain.DayType) (*domain.Settings, error)
	GetAllTerms() ([]*domain.Term, error)
}

// Engine 负责决定当前应当采用的上课方式。
// 它是纯推导加一次条件写入：每个读请求都可以安全地调用，
// 推导结果与已存值一致时不产生任何副作用
type Engine struct {
	store Store
	loc   *time.Location
}

func NewEngine(store Store, loc *time.Location) *Engine {
	return &Engine{
		store: store,
		loc:   loc,
	}
}

func (e *Engine) Location() *time.Location {
	return e.loc
}

// ApplyAutoDayType 根据星期规则和周二规则重新推导上课方式。
// settings 为 nil 时返回 nil；未开启自动切换时原样返回；
// terms 传 nil 则仅在周二规则需要学期数据时才去查询。
// 推导值与存储值不同时写回存储，每次调用至多写一次
func (e *Engine) ApplyAutoDayType(settings *domain.Settings, now time.Time, terms []*domain.Term) (*domain.Settings, error) {
	if settings == nil {
		return nil, nil
	}
	if !settings.AutoDayTypeEnabled {
		return settings, nil
	}

	// 星期几必须按配置的民用时区计算，与服务器所在时区无关
	todayWeekday := int(now.In(e.loc).Weekday())

	currentType := domain.ParseDayType(string(settings.CurrentDayType))
	desiredType := currentType

	tuesdayMode := domain.ParseTuesdayMode(string(settings.TuesdayMode))

	if todayWeekday == int(time.Tuesday) && tuesdayMode != domain.TuesdayModeManual {
		// 周二规则优先于普通的星期规则
		if terms == nil && tuesdayModeNeedsTerms(tuesdayMode) {
			var err error
			terms, err = e.store.GetAllTerms()
			if err != nil {
				return nil, err
			}
		}
		desiredType = ResolveTuesdayDayType(
			tuesdayMode,
			now,
			terms,
			currentType,
			settings.TuesdayOddWeekType,
			settings.TuesdayEvenWeekType,
			e.loc,
		)
	} else {
		onSiteDays := ParseDaysField(settings.OnSiteDays)
		remoteDays := ParseDaysField(settings.RemoteDays)

		inOnSite := containsDay(onSiteDays, todayWeekday)
		inRemote := containsDay(remoteDays, todayWeekday)

		switch {
		case inRemote && !inOnSite:
			desiredType = domain.DayTypeRemote
		case inOnSite && !inRemote:
			desiredType = domain.DayTypeOnSite
		default:
			// 两边都配置或都没配置：保持管理员最后一次的选择
		}
	}

	if desiredType == settings.CurrentDayType {
		return settings, nil
	}

	return e.store.UpdateCurrentDayType(settings.ID, desiredType)
}

func tuesdayModeNeedsTerms(mode domain.TuesdayMode) bool {
	switch mode {
	case domain.TuesdayModeFixedOnSite, domain.TuesdayModeFixedRemote, domain.TuesdayModeWeeklyAlternate, domain.TuesdayModeManual:
		return false
	default:
		return true
	}
}
