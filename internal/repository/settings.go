package repository

import (
	"context"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// GetSettings 获取配置单例（按 id 最小的一行），不存在时返回 sql.ErrNoRows
func (r *Repository) GetSettings() (*domain.Settings, error) {
	query := `
		SELECT
			id,
			school_name,
			manager_name,
			current_day_type,
			auto_day_type_enabled,
			on_site_days,
			remote_days,
			tuesday_mode,
			tuesday_odd_week_type,
			tuesday_even_week_type,
			admin_password_hash,
			updated_at,
			version
		FROM settings
		ORDER BY id
		LIMIT 1
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.Settings{}

	dst := []any{
		&settings.ID,
		&settings.SchoolName,
		&settings.ManagerName,
		&settings.CurrentDayType,
		&settings.AutoDayTypeEnabled,
		&settings.OnSiteDays,
		&settings.RemoteDays,
		&settings.TuesdayMode,
		&settings.TuesdayOddWeekType,
		&settings.TuesdayEvenWeekType,
		&settings.AdminPasswordHash,
		&settings.UpdatedAt,
		&settings.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query).Scan(dst...); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) CreateSettings(settings *domain.Settings) error {
	query := `
		INSERT INTO settings (
			school_name,
			manager_name,
			current_day_type,
			auto_day_type_enabled,
			on_site_days,
			remote_days,
			tuesday_mode,
			tuesday_odd_week_type,
			tuesday_even_week_type,
			admin_password_hash
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id, updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		settings.SchoolName,
		settings.ManagerName,
		settings.CurrentDayType,
		settings.AutoDayTypeEnabled,
		settings.OnSiteDays,
		settings.RemoteDays,
		settings.TuesdayMode,
		settings.TuesdayOddWeekType,
		settings.TuesdayEvenWeekType,
		settings.AdminPasswordHash,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.ID, &settings.UpdatedAt, &settings.Version); err != nil {
		return err
	}

	return nil
}

// UpdateCurrentDayType 只更新当前上课方式，是解析引擎唯一的写入路径。
// 同值并发写入只是幂等覆盖，因此这里不带 version 条件
func (r *Repository) UpdateCurrentDayType(id int64, dayType domain.DayType) (*domain.Settings, error) {
	query := `
		UPDATE settings
		SET
			current_day_type = $1,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $2
		RETURNING
			school_name,
			manager_name,
			auto_day_type_enabled,
			on_site_days,
			remote_days,
			tuesday_mode,
			tuesday_odd_week_type,
			tuesday_even_week_type,
			admin_password_hash,
			updated_at,
			version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	settings := &domain.Settings{
		ID:             id,
		CurrentDayType: dayType,
	}

	dst := []any{
		&settings.SchoolName,
		&settings.ManagerName,
		&settings.AutoDayTypeEnabled,
		&settings.OnSiteDays,
		&settings.RemoteDays,
		&settings.TuesdayMode,
		&settings.TuesdayOddWeekType,
		&settings.TuesdayEvenWeekType,
		&settings.AdminPasswordHash,
		&settings.UpdatedAt,
		&settings.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, dayType, id).Scan(dst...); err != nil {
		return nil, err
	}

	return settings, nil
}

func (r *Repository) UpdateSchoolInfo(settings *domain.Settings) error {
	query := `
		UPDATE settings
		SET
			school_name = $1,
			manager_name = $2,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $3 AND version = $4
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{settings.SchoolName, settings.ManagerName, settings.ID, settings.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.UpdatedAt, &settings.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) UpdateAdminPasswordHash(settings *domain.Settings) error {
	query := `
		UPDATE settings
		SET
			admin_password_hash = $1,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $2
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	if err := r.dbpool.QueryRowContext(ctx, query, settings.AdminPasswordHash, settings.ID).Scan(&settings.UpdatedAt, &settings.Version); err != nil {
		return err
	}

	return nil
}

// UpdateAutoDayTypeConfig 更新自动切换相关的全部配置字段
func (r *Repository) UpdateAutoDayTypeConfig(settings *domain.Settings) error {
	query := `
		UPDATE settings
		SET
			auto_day_type_enabled = $1,
			on_site_days = $2,
			remote_days = $3,
			tuesday_mode = $4,
			tuesday_odd_week_type = $5,
			tuesday_even_week_type = $6,
			updated_at = NOW(),
			version = version + 1
		WHERE id = $7 AND version = $8
		RETURNING updated_at, version
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	args := []any{
		settings.AutoDayTypeEnabled,
		settings.OnSiteDays,
		settings.RemoteDays,
		settings.TuesdayMode,
		settings.TuesdayOddWeekType,
		settings.TuesdayEvenWeekType,
		settings.ID,
		settings.Version,
	}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&settings.UpdatedAt, &settings.Version); err != nil {
		return err
	}

	return nil
}
