package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/myadmincaptiva/backend/internal/model"
)

const accountColumns = `id, username, password, mac_address, upload_limit_bytes, download_limit_bytes, timeout_seconds, created_at, updated_at`

// ListAccounts - 계정 전체 목록 조회 (최신순)
func (p *Postgres) ListAccounts(ctx context.Context) ([]model.Account, error) {
	rows, err := p.Pool.Query(ctx, `
		SELECT `+accountColumns+`
		FROM accounts
		ORDER BY seq DESC;
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer rows.Close()

	var accounts []model.Account
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, *acc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read accounts: %w", err)
	}
	if accounts == nil {
		accounts = []model.Account{}
	}
	return accounts, nil
}

// CreateAccount - 신규 계정 저장. username / mac_address 유니크 제약 위반 시 ErrDuplicate
func (p *Postgres) CreateAccount(ctx context.Context, input model.AccountInput) (*model.Account, error) {
	timeout := model.DefaultIdleTimeout
	if input.Timeout != nil {
		timeout = *input.Timeout
	}

	row := p.Pool.QueryRow(ctx, `
		INSERT INTO accounts (id, username, password, mac_address, upload_limit_bytes, download_limit_bytes, timeout_seconds, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+accountColumns+`;
	`, uuid.NewString(), input.Username, input.Password, nullableMAC(input.MACAddress),
		input.UploadLimitBytes, input.DownloadLimitBytes, timeout)

	acc, err := scanAccount(row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert account: %w", err)
	}
	return acc, nil
}

// UpdateAccount - ID로 계정 수정. timeout이 없으면 기존 값 유지
func (p *Postgres) UpdateAccount(ctx context.Context, id string, input model.AccountInput) (*model.Account, error) {
	row := p.Pool.QueryRow(ctx, `
		UPDATE accounts
		SET username = $2,
		    password = $3,
		    mac_address = $4,
		    upload_limit_bytes = $5,
		    download_limit_bytes = $6,
		    timeout_seconds = COALESCE($7, timeout_seconds),
		    updated_at = NOW()
		WHERE id = $1
		RETURNING `+accountColumns+`;
	`, id, input.Username, input.Password, nullableMAC(input.MACAddress),
		input.UploadLimitBytes, input.DownloadLimitBytes, input.Timeout)

	acc, err := scanAccount(row)
	if err != nil {
		if IsNoRows(err) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("failed to update account: %w", err)
	}
	return acc, nil
}

// DeleteAccount - ID로 계정 삭제 (없는 ID는 false, 에러 없음)
func (p *Postgres) DeleteAccount(ctx context.Context, id string) (bool, error) {
	tag, err := p.Pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1;`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete account: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanAccount(row pgx.Row) (*model.Account, error) {
	var acc model.Account
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.Password,
		&acc.MACAddress,
		&acc.UploadLimitBytes,
		&acc.DownloadLimitBytes,
		&acc.Timeout,
		&acc.CreatedAt,
		&acc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &acc, nil
}

func nullableMAC(mac string) *string {
	if mac == "" {
		return nil
	}
	return &mac
}
