package domain

type Period struct {
	ID        int64   `json:"id"`
	DayType   DayType `json:"dayType"`
	Order     int32   `json:"order"` // 同一上课方式内从 1 开始连续编号
	Name      string  `json:"name"`
	StartTime string  `json:"startTime"` // HH:MM，24 小时制
	EndTime   string  `json:"endTime"`
}
