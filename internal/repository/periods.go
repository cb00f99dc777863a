package repository

import (
	"context"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

func (r *Repository) GetPeriodsByDayType(dayType domain.DayType) ([]*domain.Period, error) {
	query := `
		SELECT id, day_type, "order", name, start_time, end_time
		FROM periods
		WHERE day_type = $1
		ORDER BY "order"
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, dayType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	periods := make([]*domain.Period, 0)
	for rows.Next() {
		period := &domain.Period{}
		dst := []any{&period.ID, &period.DayType, &period.Order, &period.Name, &period.StartTime, &period.EndTime}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		periods = append(periods, period)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return periods, nil
}

// ReplacePeriods 整体替换某一上课方式下的全部课节，
// 同时刷新 settings 的更新时间，方便前端轮询时感知变化
func (r *Repository) ReplacePeriods(settingsID int64, dayType domain.DayType, periods []*domain.Period) error {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx, `DELETE FROM periods WHERE day_type = $1`, dayType); err != nil {
		return err
	}

	insertQuery := `
		INSERT INTO periods (day_type, "order", name, start_time, end_time)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	for _, period := range periods {
		period.DayType = dayType
		if err := tx.QueryRowContext(ctx, insertQuery, dayType, period.Order, period.Name, period.StartTime, period.EndTime).Scan(&period.ID); err != nil {
			return err
		}
	}

	touchQuery := `
		UPDATE settings
		SET updated_at = NOW(), version = version + 1
		WHERE id = $1
	`
	if _, err := tx.ExecContext(ctx, touchQuery, settingsID); err != nil {
		return err
	}

	return tx.Commit()
}
