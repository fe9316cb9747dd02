package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"mandi-core/internal/domain"
	"mandi-core/internal/pkg/constants"
	"mandi-core/internal/watch"

	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// otpSentinel is the fixed verification code the demo backend accepts.
const otpSentinel = "123456"

// Service owns identity records and the login state machine. All mutations go
// through one path that demotes every identity before promoting a new one, so
// at most one identity is logged in at any observable instant.
type Service struct {
	DB      *gorm.DB
	Delay   time.Duration // simulated backend round trip
	Timeout time.Duration // bound on each operation; zero disables

	mu   sync.Mutex
	cell *watch.Cell[*domain.Identity]
}

// NewService builds a service and seeds the observable logged-in identity
// from the database.
func NewService(db *gorm.DB, delay, timeout time.Duration) *Service {
	s := &Service{
		DB:      db,
		Delay:   delay,
		Timeout: timeout,
		cell:    watch.NewCell[*domain.Identity](nil),
	}
	s.publish()
	return s
}

// ObserveLoggedIn returns a replay-latest stream of the logged-in identity,
// nil while nobody is logged in. A new value is emitted before any mutating
// call returns.
func (s *Service) ObserveLoggedIn(ctx context.Context) <-chan *domain.Identity {
	return s.cell.Subscribe(ctx)
}

// Current returns the logged-in identity without subscribing.
func (s *Service) Current() *domain.Identity {
	return s.cell.Get()
}

// Login resolves an existing identity by phone number or fabricates one, then
// promotes it as the single logged-in identity.
func (s *Service) Login(ctx context.Context, phone string, role domain.Role) (*domain.Identity, error) {
	if !constants.IsValidRole(string(role)) {
		return nil, ErrRoleRequired
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.resolve(phone, "Demo User", role)
	if err != nil {
		return nil, err
	}
	if err := s.promote(id); err != nil {
		return nil, err
	}
	log.Info().Str("phone", phone).Str("role", role.String()).Msg("Login settled")
	return id, nil
}

// Register stores a new identity (PIN hashed at rest) and promotes it.
func (s *Service) Register(ctx context.Context, name, phone, pin string, role domain.Role) (*domain.Identity, error) {
	if !constants.IsValidRole(string(role)) {
		return nil, ErrRoleRequired
	}
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("Failed to hash PIN: %v", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id := &domain.Identity{
		Name:        name,
		PhoneNumber: phone,
		Role:        role,
		PinHash:     string(hash),
	}
	if err := s.DB.Create(id).Error; err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	}
	if err := s.promote(id); err != nil {
		return nil, err
	}
	log.Info().Str("phone", phone).Str("role", role.String()).Msg("Registration settled")
	return id, nil
}

// VerifyOTP succeeds only for the fixed sentinel code. Any other code fails
// with ErrInvalidOTP and mutates nothing.
func (s *Service) VerifyOTP(ctx context.Context, phone, code string) (*domain.Identity, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}
	if code != otpSentinel {
		return nil, ErrInvalidOTP
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.resolve(phone, "Verified User", domain.RoleFarmer)
	if err != nil {
		return nil, err
	}
	if err := s.promote(id); err != nil {
		return nil, err
	}
	return id, nil
}

// VerifyPIN promotes the identity for phone without comparing the submitted
// PIN against the stored hash. The demo backend behaves this way; the hash is
// kept so a real comparison can be added without a migration.
func (s *Service) VerifyPIN(ctx context.Context, phone, pin string) (*domain.Identity, error) {
	ctx, cancel := s.bound(ctx)
	defer cancel()
	if err := s.roundTrip(ctx); err != nil {
		return nil, err
	}
	log.Warn().Str("phone", phone).Msg("VerifyPIN accepts any PIN; no comparison against stored hash")

	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.resolve(phone, "PIN Verified User", domain.RoleFarmer)
	if err != nil {
		return nil, err
	}
	if err := s.promote(id); err != nil {
		return nil, err
	}
	return id, nil
}

// Logout clears the logged-in flag on every identity. Records are kept.
func (s *Service) Logout(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.DB.WithContext(ctx).Model(&domain.Identity{}).
		Where("logged_in = ?", true).Update("logged_in", false).Error; err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	s.publish()
	return nil
}

// resolve finds the identity for phone, updating its role, or fabricates one.
// Caller holds s.mu.
func (s *Service) resolve(phone, fallbackName string, role domain.Role) (*domain.Identity, error) {
	var id domain.Identity
	err := s.DB.Where("phone_number = ?", phone).First(&id).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		id = domain.Identity{Name: fallbackName, PhoneNumber: phone, Role: role}
		if err := s.DB.Create(&id).Error; err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTransport, err)
		}
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrTransport, err)
	default:
		id.Role = role
	}
	return &id, nil
}

// promote demotes all identities, then flags id as logged in, atomically.
// Caller holds s.mu.
func (s *Service) promote(id *domain.Identity) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&domain.Identity{}).
			Where("logged_in = ?", true).Update("logged_in", false).Error; err != nil {
			return err
		}
		id.LoggedIn = true
		return tx.Save(id).Error
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrTransport, err)
	}
	s.publish()
	return nil
}

// publish re-reads the logged-in identity and broadcasts it.
func (s *Service) publish() {
	var id domain.Identity
	err := s.DB.Where("logged_in = ?", true).First(&id).Error
	if err != nil {
		s.cell.Set(nil)
		return
	}
	s.cell.Set(&id)
}

// roundTrip simulates backend latency, honouring cancellation. Expiry is a
// transport failure per the error taxonomy.
func (s *Service) roundTrip(ctx context.Context) error {
	if s.Delay <= 0 {
		if ctx.Err() != nil {
			return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
		}
		return nil
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %v", ErrTransport, ctx.Err())
	}
}

func (s *Service) bound(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.Timeout)
}
