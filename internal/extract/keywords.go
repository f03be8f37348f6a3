package extract

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Keywords holds every allow/deny table the extractors consult. The defaults
// reproduce the two known invoice layouts; a JSON file can override any
// field so tuning for a new product range does not require a code change.
type Keywords struct {
	// ProductKeywords marks a line as a product description when present
	// (case-insensitive) anywhere in the line.
	ProductKeywords []string `json:"product_keywords"`

	// NameDenylist contains document/table header phrases that must never be
	// treated as a customer name, even when they are shaped like one.
	NameDenylist []string `json:"name_denylist"`

	// NewFormatStopLabels end the name-fragment scan below the ΕΠΩΝΥΜΙΑ label.
	NewFormatStopLabels []string `json:"new_format_stop_labels"`

	// NewFormatSkipPhrases mark lines inside the name window that are noise
	// rather than name fragments.
	NewFormatSkipPhrases []string `json:"new_format_skip_phrases"`

	// TableHeaderLabels are exact column/unit labels inside the item table
	// that can never be descriptions.
	TableHeaderLabels []string `json:"table_header_labels"`

	// EndOfTableMarkers terminate the description window.
	EndOfTableMarkers []string `json:"end_of_table_markers"`

	// Value-tier keywords used to rank items before price assignment.
	HighValueKeywords []string `json:"high_value_keywords"`
	MidValueKeywords  []string `json:"mid_value_keywords"`
	AccessoryKeywords []string `json:"accessory_keywords"`
}

// DefaultKeywords returns the keyword tables for the two known layouts.
func DefaultKeywords() *Keywords {
	return &Keywords{
		ProductKeywords: []string{
			"APPLE", "IPHONE", "CHARGER", "CABLE", "CASE", "USB",
			"SAMSUNG", "MAC", "JBL", "SPEAKER", "EARPODS", "HANDSFREE",
			"PORTABLE",
		},
		NameDenylist: []string{
			"Είδος Παραστατικού", "Παραστατικού", "Είδος",
			"ΑΠΟΔΕΙΞΗ", "ΛΙΑΝΙΚΗΣ", "Δ.ΑΠΟΣΤΟΛΗΣ",
			"Κωδικός Είδους", "Περιγραφή", "Ποσότητα",
			"Τιμή Μονάδος", "Έκπτωση", "Αξία",
		},
		NewFormatStopLabels: []string{
			"ΠΟΛΗ:", "Δ.Ο.Υ:", "ΤΗΛΕΦΩΝΟ:", "ΑΠΟΔΕΙΞΗ",
			"Ημερομηνία", "Σειρά", "Κωδικός Είδους",
		},
		NewFormatSkipPhrases: []string{
			"Είδος Παραστατικού", "Παραστατικού", "Δ.ΑΠΟΣΤΟΛΗΣ", "ΛΙΑΝΙΚΗΣ",
		},
		TableHeaderLabels: []string{
			"Ώρα", "Μ.Μ.", "Περιγραφή", "Ποσότητα", "Τιμή Μονάδος",
			"Σειρά", "TMX",
		},
		EndOfTableMarkers: []string{
			"ΣΚΟΠΟΣ ΔΙΑΚΙΝΗΣΗΣ", "ΤΟΠΟΣ ΑΠΟΣΤΟΛΗΣ", "ΣΧΟΛΙΑ",
			"Συνολική", "ΤΗΛΕΦΩΝΟ:", "ΠΟΛΗ:",
		},
		HighValueKeywords: []string{"IPHONE", "IPAD", "MACBOOK"},
		MidValueKeywords:  []string{"JBL"},
		AccessoryKeywords: []string{"CHARGER", "CABLE", "CASE", "EARPODS", "HANDSFREE"},
	}
}

// LoadKeywords reads keyword overrides from a JSON file. Fields missing from
// the file keep their default values.
func LoadKeywords(path string) (*Keywords, error) {
	kw := DefaultKeywords()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read keywords file: %w", err)
	}

	if err := json.Unmarshal(data, kw); err != nil {
		return nil, fmt.Errorf("failed to parse keywords file: %w", err)
	}

	return kw, nil
}

// containsAny reports whether s contains at least one of the phrases.
func containsAny(s string, phrases []string) bool {
	for _, p := range phrases {
		if strings.Contains(s, p) {
			return true
		}
	}
	return false
}

// containsAnyFold reports whether the upper-cased s contains at least one of
// the (already upper-case) keywords.
func containsAnyFold(s string, keywords []string) bool {
	upper := strings.ToUpper(s)
	for _, k := range keywords {
		if strings.Contains(upper, k) {
			return true
		}
	}
	return false
}

// equalsAny reports whether s is exactly one of the labels.
func equalsAny(s string, labels []string) bool {
	for _, l := range labels {
		if s == l {
			return true
		}
	}
	return false
}
