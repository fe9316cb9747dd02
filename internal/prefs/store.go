// Package prefs persists the two pre-authentication scalars, selected
// language and selected role, and exposes them as continuously observable
// values. Redis is the backing key-value store; the cells re-broadcast on
// every write so subscribers see changes without polling.
package prefs

import (
	"context"
	"fmt"

	"mandi-core/internal/domain"
	"mandi-core/internal/watch"

	"github.com/redis/go-redis/v9"
)

const (
	keyLanguage = "pref:language"
	keyRole     = "pref:role"

	// DefaultLanguage applies until the language picker has been used.
	DefaultLanguage = "English"
)

// Store is the preference store.
type Store struct {
	Rdb *redis.Client

	language *watch.Cell[string]
	role     *watch.Cell[domain.Role]
}

// NewStore seeds the observable values from Redis, applying defaults for
// missing keys.
func NewStore(ctx context.Context, rdb *redis.Client) (*Store, error) {
	s := &Store{Rdb: rdb}

	lang, err := rdb.Get(ctx, keyLanguage).Result()
	if err == redis.Nil {
		lang = DefaultLanguage
	} else if err != nil {
		return nil, fmt.Errorf("prefs: %v", err)
	}
	s.language = watch.NewCell(lang)

	roleStr, err := rdb.Get(ctx, keyRole).Result()
	if err == redis.Nil {
		roleStr = string(domain.RoleNone)
	} else if err != nil {
		return nil, fmt.Errorf("prefs: %v", err)
	}
	s.role = watch.NewCell(domain.ParseRole(roleStr))

	return s, nil
}

// ObserveLanguage returns a replay-latest stream of the selected language.
func (s *Store) ObserveLanguage(ctx context.Context) <-chan string {
	return s.language.Subscribe(ctx)
}

// ObserveRole returns a replay-latest stream of the selected role.
func (s *Store) ObserveRole(ctx context.Context) <-chan domain.Role {
	return s.role.Subscribe(ctx)
}

// Language returns the current language without subscribing.
func (s *Store) Language() string { return s.language.Get() }

// Role returns the current role without subscribing.
func (s *Store) Role() domain.Role { return s.role.Get() }

// SetLanguage persists and re-broadcasts the selected language.
func (s *Store) SetLanguage(ctx context.Context, lang string) error {
	if err := s.Rdb.Set(ctx, keyLanguage, lang, 0).Err(); err != nil {
		return fmt.Errorf("prefs: %v", err)
	}
	s.language.Set(lang)
	return nil
}

// SetRole persists and re-broadcasts the selected role.
func (s *Store) SetRole(ctx context.Context, role domain.Role) error {
	if err := s.Rdb.Set(ctx, keyRole, string(role), 0).Err(); err != nil {
		return fmt.Errorf("prefs: %v", err)
	}
	s.role.Set(role)
	return nil
}
