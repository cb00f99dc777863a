package domain

import (
	"time"
)

type DayType string

const (
	DayTypeOnSite DayType = "ON_SITE"
	DayTypeRemote DayType = "REMOTE"
)

// ParseDayType 解析存储中的上课方式，无法识别时回退到线下上课，
// 保证配置损坏时页面仍然可以正常展示
func ParseDayType(value string) DayType {
	if DayType(value) == DayTypeRemote {
		return DayTypeRemote
	}
	return DayTypeOnSite
}

func IsValidDayType(value string) bool {
	return DayType(value) == DayTypeOnSite || DayType(value) == DayTypeRemote
}

type TuesdayMode string

const (
	TuesdayModeFixedOnSite     TuesdayMode = "FIXED_ON_SITE"
	TuesdayModeFixedRemote     TuesdayMode = "FIXED_REMOTE"
	TuesdayModeWeeklyAlternate TuesdayMode = "WEEKLY_ALTERNATE"
	TuesdayModeTermWeekBased   TuesdayMode = "TERM_WEEK_BASED"
	TuesdayModeWeekNumberBased TuesdayMode = "WEEK_NUMBER_BASED"
	TuesdayModeManual          TuesdayMode = "MANUAL"
)

var tuesdayModes = []TuesdayMode{
	TuesdayModeFixedOnSite,
	TuesdayModeFixedRemote,
	TuesdayModeWeeklyAlternate,
	TuesdayModeTermWeekBased,
	TuesdayModeWeekNumberBased,
	TuesdayModeManual,
}

// ParseTuesdayMode 解析周二规则，无法识别时回退到固定线下
func ParseTuesdayMode(value string) TuesdayMode {
	for _, mode := range tuesdayModes {
		if TuesdayMode(value) == mode {
			return mode
		}
	}
	return TuesdayModeFixedOnSite
}

// Settings 是整个系统唯一的配置单例
type Settings struct {
	ID                  int64       `json:"id"`
	SchoolName          string      `json:"schoolName"`
	ManagerName         string      `json:"managerName"`
	CurrentDayType      DayType     `json:"currentDayType"`
	AutoDayTypeEnabled  bool        `json:"autoDayTypeEnabled"`
	OnSiteDays          string      `json:"onSiteDays"`  // 逗号分隔的星期序号，0=周日 ... 6=周六
	RemoteDays          string      `json:"remoteDays"`  // 同上
	TuesdayMode         TuesdayMode `json:"tuesdayMode"`
	TuesdayOddWeekType  DayType     `json:"tuesdayOddWeekType"`
	TuesdayEvenWeekType DayType     `json:"tuesdayEvenWeekType"`
	AdminPasswordHash   string      `json:"-"`
	UpdatedAt           time.Time   `json:"updatedAt"`
	Version             int32       `json:"-"`
}
