package extract

// Item is one recovered product line from the invoice table. Price is nil
// when no plausible unit price could be assigned, which is different from a
// price of zero.
type Item struct {
	SKU         string   `json:"sku"`
	Description string   `json:"description"`
	Price       *float64 `json:"price,omitempty"`
}

// FieldSet is the normalized field mapping produced by one extraction.
// Every field is a plain string and defaults to "" when nothing matched;
// sentinel substitution is the upload handler's concern, not the core's.
type FieldSet struct {
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Phone    string `json:"phone"`
	Invoice  string `json:"invoice"`
	CSTCode  string `json:"cst_code"`
	Material string `json:"material"`
	Product  string `json:"product"`
	Serial   string `json:"serial"`
}
