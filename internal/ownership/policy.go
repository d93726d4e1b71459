package ownership

import "time"

// DefaultGracePeriod is the self-edit window used when no override is configured.
const DefaultGracePeriod = 7 * 24 * time.Hour

// Stamp carries the immutable ownership fields of a record.
type Stamp struct {
	CreatorID int64
	CreatedAt time.Time
}

// Equal reports whether both stamps name the same creator and instant.
func (s Stamp) Equal(other Stamp) bool {
	return s.CreatorID == other.CreatorID && s.CreatedAt.Equal(other.CreatedAt)
}

// Owned is implemented by every record type the policy protects.
type Owned interface {
	Ownership() Stamp
}

// Reason explains a denial.
type Reason int

const (
	// ReasonNone accompanies an allowed decision.
	ReasonNone Reason = iota
	// ReasonInsufficientPrivileges covers non-owners and owners past the window.
	ReasonInsufficientPrivileges
)

func (r Reason) String() string {
	switch r {
	case ReasonNone:
		return "none"
	case ReasonInsufficientPrivileges:
		return "insufficient_privileges"
	default:
		return "unknown"
	}
}

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  Reason
}

// Allow is the decision granting the mutation.
func Allow() Decision {
	return Decision{Allowed: true, Reason: ReasonNone}
}

// Deny is the decision refusing the mutation for reason.
func Deny(reason Reason) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// Err returns nil for an allowed decision and the matching sentinel otherwise.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return ErrInsufficientPrivileges
}

// Policy evaluates edit rights. The zero value has a zero grace period,
// which leaves only staff able to edit.
type Policy struct {
	gracePeriod time.Duration
}

// NewPolicy returns a Policy with the given grace period. Negative values are
// treated as zero.
func NewPolicy(gracePeriod time.Duration) Policy {
	if gracePeriod < 0 {
		gracePeriod = 0
	}
	return Policy{gracePeriod: gracePeriod}
}

// GracePeriod returns the configured self-edit window.
func (p Policy) GracePeriod() time.Duration {
	return p.gracePeriod
}

// Decide evaluates whether actor may mutate the record stamped with stamp at now.
func (p Policy) Decide(actor Actor, stamp Stamp, now time.Time) Decision {
	switch actor.Role {
	case RoleStaff:
		return Allow()
	case RoleMember:
		if actor.ID == stamp.CreatorID && now.Before(stamp.CreatedAt.Add(p.gracePeriod)) {
			return Allow()
		}
		return Deny(ReasonInsufficientPrivileges)
	default:
		return Deny(ReasonInsufficientPrivileges)
	}
}
