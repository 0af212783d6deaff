package ports

import (
	"context"
	"time"

	"github.com/frauddetect/fraud-detection/internal/auth/core/domain"
)

// TokenStore is the server-side registry binding opaque token values to
// identities. Entries expire after the TTL passed to Save; an expired entry
// behaves exactly like one that never existed.
type TokenStore interface {
	Save(ctx context.Context, value string, id domain.Identity, ttl time.Duration) error

	// Lookup resolves a token value. Unknown and expired values both
	// return domain.ErrInvalidToken; expired entries are evicted as a
	// side effect of being looked up.
	Lookup(ctx context.Context, value string) (*domain.Identity, error)

	Delete(ctx context.Context, value string) error
}
