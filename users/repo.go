package users

import "context"

// Repo persists user profiles keyed by lower-cased X handle. Upsert is
// assumed atomic per key at the storage layer.
type Repo interface {
	// Upsert inserts the profile or updates the mutable fields of an
	// existing one. JoinTime and WalletAddress are preserved on update.
	Upsert(ctx context.Context, user *User) (*User, error)
	GetByHandle(ctx context.Context, xHandle string) (*User, error)
	// List returns all profiles, newest joined first.
	List(ctx context.Context) ([]*User, error)
	SetWallet(ctx context.Context, xHandle, walletAddress string) (*User, error)
}
