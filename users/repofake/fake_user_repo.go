package fakeuserrepo

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	apperrors "github.com/wengro/greenhouse/internal/errors"
	"github.com/wengro/greenhouse/users"
)

var _ users.Repo = (*FakeUserRepo)(nil)

// FakeUserRepo is an in-memory user repository used in tests and when no
// database is configured.
type FakeUserRepo struct {
	users map[string]*users.User // lower-cased xHandle -> user
	lock  sync.RWMutex
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{
		users: make(map[string]*users.User),
	}
}

func (ur *FakeUserRepo) Upsert(_ context.Context, user *users.User) (*users.User, error) {
	if err := user.Validate(); err != nil {
		return nil, err
	}

	ur.lock.Lock()
	defer ur.lock.Unlock()

	handle := users.NormalizeHandle(user.XHandle)

	stored, exists := ur.users[handle]
	if !exists {
		stored = &users.User{
			ID:       uuid.New().String(),
			XHandle:  handle,
			JoinTime: time.Now(),
		}
		ur.users[handle] = stored
	}

	stored.TelegramHandle = user.TelegramHandle
	stored.XHandleReferral = user.XHandleReferral
	stored.HasKaitoYaps = user.HasKaitoYaps

	copied := *stored
	return &copied, nil
}

func (ur *FakeUserRepo) GetByHandle(_ context.Context, xHandle string) (*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	stored, ok := ur.users[users.NormalizeHandle(xHandle)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	copied := *stored
	return &copied, nil
}

func (ur *FakeUserRepo) List(_ context.Context) ([]*users.User, error) {
	ur.lock.RLock()
	defer ur.lock.RUnlock()

	all := make([]*users.User, 0, len(ur.users))
	for _, stored := range ur.users {
		copied := *stored
		all = append(all, &copied)
	}

	sort.Slice(all, func(i, j int) bool {
		return all[i].JoinTime.After(all[j].JoinTime)
	})
	return all, nil
}

func (ur *FakeUserRepo) SetWallet(_ context.Context, xHandle, walletAddress string) (*users.User, error) {
	ur.lock.Lock()
	defer ur.lock.Unlock()

	stored, ok := ur.users[users.NormalizeHandle(xHandle)]
	if !ok {
		return nil, apperrors.ErrNotFound
	}

	stored.WalletAddress = walletAddress
	copied := *stored
	return &copied, nil
}
