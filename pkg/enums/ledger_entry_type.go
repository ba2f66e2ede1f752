package enums

import "fmt"

// LedgerEntryType maps to the ledger_entry_type_enum enum in Postgres.
// Each value names the unit of payable work that earned the credit.
type LedgerEntryType string

const (
	// LedgerEntryTypeConsolidationFee is the fixed fee a footman earns for
	// batching claimed orders and handing them to the rider pool.
	LedgerEntryTypeConsolidationFee LedgerEntryType = "consolidation_fee"
	// LedgerEntryTypeLocalDelivery is a footman completing an order directly.
	LedgerEntryTypeLocalDelivery LedgerEntryType = "local_delivery"
	// LedgerEntryTypeRiderDelivery is a rider completing the final leg.
	LedgerEntryTypeRiderDelivery LedgerEntryType = "rider_delivery"
)

var validLedgerEntryTypes = []LedgerEntryType{
	LedgerEntryTypeConsolidationFee,
	LedgerEntryTypeLocalDelivery,
	LedgerEntryTypeRiderDelivery,
}

// IsValid reports whether the value matches the canonical ledger entry enum.
func (t LedgerEntryType) IsValid() bool {
	for _, candidate := range validLedgerEntryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// ParseLedgerEntryType converts raw input into LedgerEntryType.
func ParseLedgerEntryType(value string) (LedgerEntryType, error) {
	for _, candidate := range validLedgerEntryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid ledger entry type %q", value)
}
