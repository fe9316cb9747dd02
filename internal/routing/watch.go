package routing

import (
	"context"

	"mandi-core/internal/domain"
)

// Watch recomputes Route every time the identity or role stream emits and
// yields the active screen, deduplicated, until ctx is cancelled. The first
// value is produced as soon as both inputs have replayed their latest value.
func Watch(ctx context.Context, identities <-chan *domain.Identity, roles <-chan domain.Role, seenLanguagePicker bool) <-chan Screen {
	out := make(chan Screen, 1)
	go func() {
		defer close(out)
		var identity *domain.Identity
		role := domain.RoleNone
		haveIdentity, haveRole := false, false
		var last Screen
		emitted := false

		emit := func() {
			if !haveIdentity || !haveRole {
				return
			}
			next := Route(identity, role, seenLanguagePicker)
			if emitted && next == last {
				return
			}
			last = next
			emitted = true
			select {
			case out <- next:
			case <-ctx.Done():
			}
		}

		for {
			select {
			case id, ok := <-identities:
				if !ok {
					return
				}
				identity = id
				haveIdentity = true
				emit()
			case r, ok := <-roles:
				if !ok {
					return
				}
				role = r
				haveRole = true
				emit()
			case <-ctx.Done():
				return
			}
		}
	}()
	return out
}
