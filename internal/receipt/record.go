package receipt

// Record is the structured result of the extraction pipeline. The JSON
// key names are a compatibility contract with existing consumers and must
// not change. Every field is always populated: an extraction miss maps to
// a documented default, never to a missing key, so none of the fields
// carry omitempty.
type Record struct {
	// Amount is the detected total, 0.0 when nothing parsed
	Amount float64 `json:"montant"`
	// Date is the receipt date in YYYY-MM-DD form, today when absent
	Date string `json:"date"`
	// VAT extraction is not implemented yet; the field stays at 0.0 but
	// must remain in the output
	VAT float64 `json:"tvac"`
	// Merchant is the detected store name, or "Unknown Merchant"
	Merchant string `json:"marchand"`
	// Category is one of the closed expense category set
	Category string `json:"type_recu"`
	// Anomaly detection is not implemented yet; the field stays false
	// but must remain in the output
	Anomaly bool `json:"anomalie"`
}
