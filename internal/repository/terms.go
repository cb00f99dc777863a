package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/dgzx-dev/schedule-board/backend/internal/domain"
)

// GetAllTerms 获取全部学期，按开始日期升序
func (r *Repository) GetAllTerms() ([]*domain.Term, error) {
	query := `
		SELECT id, name, start_date, end_date, version
		FROM terms
		ORDER BY start_date
	`

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.QueryTimeout)*time.Second)
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	terms := make([]*domain.Term, 0)
	for rows.Next() {
		term := &domain.Term{}
		dst := []any{&term.ID, &term.Name, &term.StartDate, &term.EndDate, &term.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return terms, nil
}

// ReplaceTerms 按提交的列表整体替换学期：
// 没有重新提交的学期会被删除，带 id 的更新，不带 id 的新建
func (r *Repository) ReplaceTerms(terms []*domain.Term) ([]*domain.Term, error) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(r.cfg.Database.TransactionTimeout)*time.Second)
	defer cancel()

	tx, err := r.dbpool.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = tx.Rollback()
	}()

	idsToKeep := make([]int64, 0, len(terms))
	for _, term := range terms {
		if term.ID > 0 {
			idsToKeep = append(idsToKeep, term.ID)
		}
	}

	if len(idsToKeep) > 0 {
		if _, err := tx.ExecContext(ctx, `DELETE FROM terms WHERE id != ALL($1)`, idsToKeep); err != nil {
			return nil, err
		}
	} else {
		if _, err := tx.ExecContext(ctx, `DELETE FROM terms`); err != nil {
			return nil, err
		}
	}

	updateQuery := `
		UPDATE terms
		SET name = $1, start_date = $2, end_date = $3, version = version + 1
		WHERE id = $4
		RETURNING version
	`
	insertQuery := `
		INSERT INTO terms (name, start_date, end_date)
		VALUES ($1, $2, $3)
		RETURNING id, version
	`

	saved := make([]*domain.Term, 0, len(terms))
	for _, term := range terms {
		if term.ID > 0 {
			err := tx.QueryRowContext(ctx, updateQuery, term.Name, term.StartDate, term.EndDate, term.ID).Scan(&term.Version)
			if errors.Is(err, sql.ErrNoRows) {
				// 客户端带来的 id 已经不存在，退化为新建
				err = tx.QueryRowContext(ctx, insertQuery, term.Name, term.StartDate, term.EndDate).Scan(&term.ID, &term.Version)
			}
			if err != nil {
				return nil, err
			}
		} else {
			if err := tx.QueryRowContext(ctx, insertQuery, term.Name, term.StartDate, term.EndDate).Scan(&term.ID, &term.Version); err != nil {
				return nil, err
			}
		}
		saved = append(saved, term)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return saved, nil
}
