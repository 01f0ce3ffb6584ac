package models

import "strings"

// Column names of a report sheet
const (
	ColReceiverName     = "nama_penerima"
	ColReceiverCategory = "kategori_penerima"
	ColReceiverStatus   = "status_penerima"
	ColPayerName        = "nama_pembayar"
	ColPayerCategory    = "kategori_pembayar"
	ColPayerStatus      = "status_pembayar"
	ColBankCode         = "cKdBank"
	ColSTT              = "stt"
	ColYear             = "tahun"
	ColMonth            = "bulan"
)

// RequiredColumns must be present in every report sheet.
var RequiredColumns = []string{
	ColReceiverName,
	ColReceiverCategory,
	ColPayerName,
	ColPayerCategory,
	ColSTT,
}

// Role identifies which party of a record is being classified.
type Role string

// Roles
const (
	RoleReceiver Role = "penerima"
	RolePayer    Role = "pembayar"
)

// Roles lists both roles in evaluation order.
var Roles = []Role{RoleReceiver, RolePayer}

// ParseRole accepts the Indonesian role names and their English aliases.
func ParseRole(raw string) (Role, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "penerima", "receiver":
		return RoleReceiver, true
	case "pembayar", "payer":
		return RolePayer, true
	}
	return "", false
}

// NameColumn returns the name column for the role.
func (r Role) NameColumn() string {
	if r == RolePayer {
		return ColPayerName
	}
	return ColReceiverName
}

// CategoryColumn returns the category column name for the role.
func (r Role) CategoryColumn() string {
	if r == RolePayer {
		return ColPayerCategory
	}
	return ColReceiverCategory
}

// StatusColumn returns the status column name for the role.
func (r Role) StatusColumn() string {
	if r == RolePayer {
		return ColPayerStatus
	}
	return ColReceiverStatus
}

// Record is one row of a transaction report. Fields hold the raw cell text;
// malformed values are kept as-is and treated as "no match" by the engine.
type Record struct {
	RowNumber        int    `csv:"-"`
	ReceiverName     string `csv:"nama_penerima"`
	ReceiverCategory string `csv:"kategori_penerima"`
	ReceiverStatus   string `csv:"status_penerima"`
	PayerName        string `csv:"nama_pembayar"`
	PayerCategory    string `csv:"kategori_pembayar"`
	PayerStatus      string `csv:"status_pembayar"`
	BankCode         string `csv:"cKdBank"`
	STT              string `csv:"stt"`
	Year             string `csv:"tahun"`
	Month            string `csv:"bulan"`
}

// Party is the per-role view of a record.
type Party struct {
	Role     Role
	Name     string
	Category string
	Status   Status
}

// Party returns the name, recorded category and recorded status for role.
func (r Record) Party(role Role) Party {
	if role == RolePayer {
		return Party{Role: role, Name: r.PayerName, Category: strings.TrimSpace(r.PayerCategory), Status: NormalizeStatus(r.PayerStatus)}
	}
	return Party{Role: role, Name: r.ReceiverName, Category: strings.TrimSpace(r.ReceiverCategory), Status: NormalizeStatus(r.ReceiverStatus)}
}
