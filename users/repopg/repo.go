package pguserrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/users"
)

var _ users.Repo = (*PGUserRepo)(nil)

// PGUserRepo is the postgres-backed user repository.
type PGUserRepo struct {
	db *pgxpool.Pool
}

func NewPGUserRepo(pool *pgxpool.Pool) *PGUserRepo {
	return &PGUserRepo{db: pool}
}

// EnsureSchema creates the users table if it does not exist yet.
func (ur *PGUserRepo) EnsureSchema(ctx context.Context) error {
	_, err := ur.db.Exec(ctx, `
		create table if not exists users (
			id uuid primary key,
			x_handle text not null unique,
			telegram_handle text not null,
			x_handle_referral text,
			has_kaito_yaps boolean not null default false,
			wallet_address text unique,
			join_time timestamptz not null default now()
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure users schema: %w", err)
	}
	return nil
}

func (ur *PGUserRepo) Upsert(ctx context.Context, user *users.User) (*users.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	handle := users.NormalizeHandle(user.XHandle)
	var out users.User
	var referral, wallet *string

	err := ur.db.QueryRow(ctx, `
		insert into users (id, x_handle, telegram_handle, x_handle_referral, has_kaito_yaps)
		values ($1, $2, $3, nullif($4, ''), $5)
		on conflict (x_handle) do update set
			telegram_handle = excluded.telegram_handle,
			x_handle_referral = excluded.x_handle_referral,
			has_kaito_yaps = excluded.has_kaito_yaps
		returning id, x_handle, telegram_handle, x_handle_referral, has_kaito_yaps, wallet_address, join_time
	`, uuid.New().String(), handle, user.TelegramHandle, user.XHandleReferral, user.HasKaitoYaps).Scan(
		&out.ID, &out.XHandle, &out.TelegramHandle, &referral, &out.HasKaitoYaps, &wallet, &out.JoinTime,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert user: %w", err)
	}

	if referral != nil {
		out.XHandleReferral = *referral
	}
	if wallet != nil {
		out.WalletAddress = *wallet
	}
	return &out, nil
}

func (ur *PGUserRepo) GetByHandle(ctx context.Context, xHandle string) (*users.User, error) {
	var out users.User
	var referral, wallet *string

	err := ur.db.QueryRow(ctx, `
		select id, x_handle, telegram_handle, x_handle_referral, has_kaito_yaps, wallet_address, join_time
		from users
		where x_handle = $1
	`, users.NormalizeHandle(xHandle)).Scan(
		&out.ID, &out.XHandle, &out.TelegramHandle, &referral, &out.HasKaitoYaps, &wallet, &out.JoinTime,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("get user by handle: %w", err)
	}

	if referral != nil {
		out.XHandleReferral = *referral
	}
	if wallet != nil {
		out.WalletAddress = *wallet
	}
	return &out, nil
}

func (ur *PGUserRepo) List(ctx context.Context) ([]*users.User, error) {
	rows, err := ur.db.Query(ctx, `
		select id, x_handle, telegram_handle, x_handle_referral, has_kaito_yaps, wallet_address, join_time
		from users
		order by join_time desc
	`)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	defer rows.Close()

	var all []*users.User
	for rows.Next() {
		var out users.User
		var referral, wallet *string
		if err := rows.Scan(&out.ID, &out.XHandle, &out.TelegramHandle, &referral, &out.HasKaitoYaps, &wallet, &out.JoinTime); err != nil {
			return nil, fmt.Errorf("scan user: %w", err)
		}
		if referral != nil {
			out.XHandleReferral = *referral
		}
		if wallet != nil {
			out.WalletAddress = *wallet
		}
		all = append(all, &out)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return all, nil
}

func (ur *PGUserRepo) SetWallet(ctx context.Context, xHandle, walletAddress string) (*users.User, error) {
	tag, err := ur.db.Exec(ctx, `
		update users set wallet_address = $2 where x_handle = $1
	`, users.NormalizeHandle(xHandle), walletAddress)
	if err != nil {
		return nil, fmt.Errorf("set wallet: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return nil, apperrors.ErrNotFound
	}
	return ur.GetByHandle(ctx, xHandle)
}
