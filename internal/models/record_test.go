package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		raw  string
		role Role
		ok   bool
	}{
		{raw: "penerima", role: RoleReceiver, ok: true},
		{raw: " Receiver ", role: RoleReceiver, ok: true},
		{raw: "PEMBAYAR", role: RolePayer, ok: true},
		{raw: "payer", role: RolePayer, ok: true},
		{raw: "bank", ok: false},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			role, ok := ParseRole(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.role, role)
		})
	}
}

func TestRole_Columns(t *testing.T) {
	assert.Equal(t, ColReceiverCategory, RoleReceiver.CategoryColumn())
	assert.Equal(t, ColReceiverStatus, RoleReceiver.StatusColumn())
	assert.Equal(t, ColPayerCategory, RolePayer.CategoryColumn())
	assert.Equal(t, ColPayerStatus, RolePayer.StatusColumn())
	assert.Equal(t, ColReceiverName, RoleReceiver.NameColumn())
	assert.Equal(t, ColPayerName, RolePayer.NameColumn())
}

func TestRecord_Party(t *testing.T) {
	rec := Record{
		ReceiverName:     "Bank Negara Malaysia",
		ReceiverCategory: " C0 ",
		ReceiverStatus:   "my",
		PayerName:        "PT Wilmar Nabati Indonesia",
		PayerCategory:    "E0",
		PayerStatus:      "ID ",
	}

	receiver := rec.Party(RoleReceiver)
	assert.Equal(t, Party{Role: RoleReceiver, Name: "Bank Negara Malaysia", Category: "C0", Status: "MY"}, receiver)

	payer := rec.Party(RolePayer)
	assert.Equal(t, Party{Role: RolePayer, Name: "PT Wilmar Nabati Indonesia", Category: "E0", Status: StatusDomestic}, payer)
}

func TestDiscrepancy_Annotation(t *testing.T) {
	category := Discrepancy{
		Row:       2,
		Column:    ColReceiverCategory,
		Current:   "E0",
		Suggested: "B0",
		Name:      "Kedutaan Besar Jepang",
		BankCode:  "",
		Status:    "JP",
	}
	assert.False(t, category.IsStatusColumn())
	assert.Equal(t, "Suggested category: B0\nName: Kedutaan Besar Jepang\nBank code: \nStatus: JP", category.Annotation())

	status := Discrepancy{
		Row:       3,
		Column:    ColPayerStatus,
		Current:   "SG",
		Suggested: "ID/N1",
		Name:      "PT ABC",
		BankCode:  "008",
		Status:    "SG",
	}
	assert.True(t, status.IsStatusColumn())
	assert.Equal(t, "Suggested status: ID/N1\nName: PT ABC\nBank code: 008\nStatus: SG", status.Annotation())
}
