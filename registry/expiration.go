package registry

import "time"

// BlockContext is the position of the host chain a call is evaluated
// against. Every expiration check compares against the context of the
// current call, never a cached one.
type BlockContext struct {
	Height uint64
	Time   time.Time
}

// Expiration bounds the validity of an approval or a pending ownership
// transfer. The zero value never expires. At most one of AtHeight and
// AtTime should be set, AtHeight wins when both are. A height bound of
// zero is distinct from no bound and is expired at every block.
type Expiration struct {
	AtHeight *uint64
	AtTime   time.Time
}

func NeverExpires() Expiration {
	return Expiration{}
}

func ExpiresAtHeight(height uint64) Expiration {
	return Expiration{AtHeight: &height}
}

func ExpiresAtTime(ts time.Time) Expiration {
	return Expiration{AtTime: ts}
}

func (e Expiration) IsNever() bool {
	return e.AtHeight == nil && e.AtTime.IsZero()
}

func (e Expiration) IsExpired(block BlockContext) bool {
	if e.AtHeight != nil {
		return block.Height >= *e.AtHeight
	}
	if !e.AtTime.IsZero() {
		return !block.Time.Before(e.AtTime)
	}
	return false
}
