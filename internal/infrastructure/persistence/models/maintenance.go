package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/societyhub/backend/internal/domain/maintenance"
	"github.com/societyhub/backend/internal/domain/shared"
)

// PaymentModel is the persistence model for maintenance payments. Two unique
// indexes carry the integrity rules: transaction_id is globally unique, and
// (flat_number, month, year) admits a single payment per flat and period.
type PaymentModel struct {
	BaseModel
	TransactionID  string                  `gorm:"type:varchar(12);not null;uniqueIndex:idx_payments_transaction"`
	Month          int                     `gorm:"not null;uniqueIndex:idx_payments_flat_period,priority:2"`
	Year           int                     `gorm:"not null;uniqueIndex:idx_payments_flat_period,priority:3"`
	FlatNumber     string                  `gorm:"type:varchar(20);not null;uniqueIndex:idx_payments_flat_period,priority:1"`
	OwnerName      string                  `gorm:"type:varchar(200);not null"`
	OwnerMobile    string                  `gorm:"type:varchar(20)"`
	Amount         decimal.Decimal         `gorm:"type:decimal(18,2);not null"`
	PaymentType    maintenance.PaymentType `gorm:"type:varchar(20);not null"`
	ReceiptKey     string                  `gorm:"type:varchar(500)"`
	TreasurerID    uuid.UUID               `gorm:"type:uuid;not null;index"`
	TreasurerName  string                  `gorm:"type:varchar(200);not null"`
	TreasurerPhone string                  `gorm:"type:varchar(20)"`
	TreasurerUpiID string                  `gorm:"type:varchar(100)"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "maintenance_payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *maintenance.Payment {
	return &maintenance.Payment{
		BaseEntity:    m.BaseModel.ToDomain(),
		TransactionID: m.TransactionID,
		Period:        shared.Period{Month: m.Month, Year: m.Year},
		FlatNumber:    m.FlatNumber,
		OwnerName:     m.OwnerName,
		OwnerMobile:   m.OwnerMobile,
		Amount:        m.Amount,
		PaymentType:   m.PaymentType,
		ReceiptKey:    m.ReceiptKey,
		Treasurer: maintenance.TreasurerSnapshot{
			TreasurerID:    m.TreasurerID,
			TreasurerName:  m.TreasurerName,
			TreasurerPhone: m.TreasurerPhone,
			TreasurerUpiID: m.TreasurerUpiID,
		},
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *maintenance.Payment) {
	m.FromDomainBaseEntity(p.BaseEntity)
	m.TransactionID = p.TransactionID
	m.Month = p.Period.Month
	m.Year = p.Period.Year
	m.FlatNumber = p.FlatNumber
	m.OwnerName = p.OwnerName
	m.OwnerMobile = p.OwnerMobile
	m.Amount = p.Amount
	m.PaymentType = p.PaymentType
	m.ReceiptKey = p.ReceiptKey
	m.TreasurerID = p.Treasurer.TreasurerID
	m.TreasurerName = p.Treasurer.TreasurerName
	m.TreasurerPhone = p.Treasurer.TreasurerPhone
	m.TreasurerUpiID = p.Treasurer.TreasurerUpiID
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *maintenance.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
