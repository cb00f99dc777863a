package seed

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/dgzx-dev/schedule-board/backend/internal/config"
	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
	"github.com/dgzx-dev/schedule-board/backend/internal/repository"
	"github.com/dgzx-dev/schedule-board/backend/internal/utils"
)

var onSitePeriods = [][2]string{
	{"08:00", "08:45"},
	{"08:50", "09:35"},
	{"09:40", "10:25"},
	{"10:40", "11:25"},
	{"11:30", "12:15"},
	{"12:20", "13:05"},
}

var remotePeriods = [][2]string{
	{"09:00", "09:35"},
	{"09:40", "10:15"},
	{"10:20", "10:55"},
	{"11:10", "11:45"},
	{"11:50", "12:25"},
}

// EnsureSettings 确保配置单例存在，不存在时用初始值创建
func EnsureSettings(repo *repository.Repository, cfg *config.Config) (*domain.Settings, error) {
	settings, err := repo.GetSettings()
	if err == nil {
		return settings, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	password := cfg.InitialSettings.AdminPassword
	if password == "" {
		password = utils.GenerateRandomPassword(12)
		slog.Info("未配置初始密码，已随机生成", "password", password)
	}
	passwordHash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	settings = &domain.Settings{
		SchoolName:          cfg.InitialSettings.SchoolName,
		ManagerName:         cfg.InitialSettings.ManagerName,
		CurrentDayType:      domain.DayTypeOnSite,
		AutoDayTypeEnabled:  false,
		OnSiteDays:          "",
		RemoteDays:          "",
		TuesdayMode:         domain.TuesdayModeFixedOnSite,
		TuesdayOddWeekType:  domain.DayTypeOnSite,
		TuesdayEvenWeekType: domain.DayTypeRemote,
		AdminPasswordHash:   string(passwordHash),
	}
	if err := repo.CreateSettings(settings); err != nil {
		return nil, err
	}

	slog.Info("已创建初始配置", "schoolName", settings.SchoolName)
	return settings, nil
}

// SeedDefaultData 写入默认的课节表和学期表，用于新部署的演示数据
func SeedDefaultData(repo *repository.Repository, cfg *config.Config) error {
	settings, err := EnsureSettings(repo, cfg)
	if err != nil {
		return err
	}

	if err := seedPeriods(repo, settings.ID, domain.DayTypeOnSite, onSitePeriods); err != nil {
		return err
	}
	if err := seedPeriods(repo, settings.ID, domain.DayTypeRemote, remotePeriods); err != nil {
		return err
	}

	currentYear := time.Now().Year()
	terms := []*domain.Term{
		{
			Name:      fmt.Sprintf("%d 学年第一学期", currentYear),
			StartDate: time.Date(currentYear, time.September, 1, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(currentYear+1, time.January, 15, 23, 59, 59, 0, time.UTC),
		},
		{
			Name:      fmt.Sprintf("%d 学年第二学期", currentYear),
			StartDate: time.Date(currentYear+1, time.February, 20, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(currentYear+1, time.July, 5, 23, 59, 59, 0, time.UTC),
		},
	}
	if _, err := repo.ReplaceTerms(terms); err != nil {
		return err
	}

	slog.Info("默认数据已写入")
	return nil
}

func seedPeriods(repo *repository.Repository, settingsID int64, dayType domain.DayType, table [][2]string) error {
	periods := make([]*domain.Period, 0, len(table))
	for i, times := range table {
		periods = append(periods, &domain.Period{
			Order:     int32(i + 1),
			Name:      fmt.Sprintf("第 %d 节", i+1),
			StartTime: times[0],
			EndTime:   times[1],
		})
	}
	return repo.ReplacePeriods(settingsID, dayType, periods)
}
