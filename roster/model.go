// Package roster maintains the administrator roster backing payment
// verification: who the admins are, which Telegram account each one is
// linked to, and which payment identifiers belong to them.
package roster

import (
	"database/sql"
	"fmt"
)

// Admin is a single roster row. UserID stays NULL until the person opens
// a private chat with the bot and the account gets linked to the row.
type Admin struct {
	ID            int64          `db:"id"`
	UserID        sql.NullInt64  `db:"user_id"`
	Username      string         `db:"username"`
	CryptoAddress sql.NullString `db:"crypto_address"`
	UPIID         sql.NullString `db:"upi_id"`
	IsSuperAdmin  bool           `db:"is_super_admin"`
}

// Linked reports whether the roster row has a Telegram account attached.
func (a *Admin) Linked() bool {
	return a.UserID.Valid
}

// PaymentMethod selects which payment identifier of an admin is addressed.
type PaymentMethod int

const (
	// MethodCrypto addresses the crypto wallet address.
	MethodCrypto PaymentMethod = iota
	// MethodUPI addresses the UPI id.
	MethodUPI
)

// String returns the lowercase method name used in commands and logs.
func (m PaymentMethod) String() string {
	switch m {
	case MethodCrypto:
		return "crypto"
	case MethodUPI:
		return "upi"
	default:
		return fmt.Sprintf("payment_method(%d)", int(m))
	}
}

// Valid reports whether the value is one of the declared methods.
func (m PaymentMethod) Valid() bool {
	return m == MethodCrypto || m == MethodUPI
}

// OwnerPlaceholderUsername is the synthetic username given to the owner row
// when reconciliation has to create it before the real handle is known.
func OwnerPlaceholderUsername(ownerID int64) string {
	return fmt.Sprintf("owner_placeholder_%d", ownerID)
}
