package extract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractMissingFile(t *testing.T) {
	e := newTestExtractor()

	fields := e.Extract("/nonexistent/invoice.pdf")
	assert.Equal(t, FieldSet{}, fields)
}

func TestFieldSetJSONKeys(t *testing.T) {
	data, err := json.Marshal(FieldSet{})
	require.NoError(t, err)

	var m map[string]string
	require.NoError(t, json.Unmarshal(data, &m))

	for _, key := range []string{
		"name", "surname", "phone", "invoice",
		"cst_code", "material", "product", "serial",
	} {
		assert.Contains(t, m, key)
	}
	assert.Len(t, m, 8)
}

func TestExtractDocumentOldFormat(t *testing.T) {
	e := newTestExtractor()

	doc := testDoc(
		"ΑΠΟΔΕΙΞΗ ΛΙΑΝΙΚΗΣ ΠΩΛΗΣΗΣ",
		"Αρ. παραστατικού: 123ΑΠΔΑ456",
		"Στοιχεία Πελάτη",
		"MICHAEL ANGELOU",
		"Τηλέφωνο: 99123456",
		"Κατάστημα P2",
		"Κωδικός Είδους",
		"1967787 HANDSFREE APPLE",
		"15,00",
		"Σειριακός αριθμός: 12345678901234",
	)

	fields := e.ExtractDocument(doc)

	assert.Equal(t, "ANGELOU", fields.Name)
	assert.Equal(t, "MICHAEL", fields.Surname)
	assert.Equal(t, "99123456", fields.Phone)
	assert.Equal(t, "123ΑΠΔΑ456", fields.Invoice)
	assert.Equal(t, "P2", fields.CSTCode)
	assert.Equal(t, "1967787", fields.Material)
	assert.Equal(t, "HANDSFREE APPLE", fields.Product)
	assert.Equal(t, "12345678901234", fields.Serial)
}

func TestExtractDocumentNewFormat(t *testing.T) {
	e := newTestExtractor()

	doc := testDoc(
		"ΕΠΩΝΥΜΙΑ:",
		"CHATZIGIANNIS",
		"KWNSTANTINOS",
		"ΤΗΛΕΦΩΝΟ: 99887766",
		"123456ΑΠΔΑ654321",
		"Κωδικός Είδους",
		"2345678",
		"JBL SPEAKER PORTABLE",
		"120,00",
	)

	fields := e.ExtractDocument(doc)

	assert.Equal(t, "KWNSTANTINOS", fields.Name)
	assert.Equal(t, "CHATZIGIANNIS", fields.Surname)
	assert.Equal(t, "99887766", fields.Phone)
	assert.Equal(t, "123456ΑΠΔΑ654321", fields.Invoice)
	assert.Empty(t, fields.CSTCode)
	assert.Equal(t, "2345678", fields.Material)
	assert.Equal(t, "JBL SPEAKER PORTABLE", fields.Product)
	assert.Empty(t, fields.Serial)
}

func TestExtractDocumentPicksHighestPricedItem(t *testing.T) {
	e := newTestExtractor()

	doc := testDoc(
		"Κωδικός Είδους",
		"1234567",
		"IPHONE 15 PRO",
		"2345678",
		"CHARGER 20W USB-C",
		"1.200,00",
		"50,00",
	)

	fields := e.ExtractDocument(doc)
	assert.Equal(t, "1234567", fields.Material)
	assert.Equal(t, "IPHONE 15 PRO", fields.Product)
}

func TestExtractDocumentDeterministic(t *testing.T) {
	e := newTestExtractor()

	doc := testDoc(
		"Στοιχεία Πελάτη",
		"MICHAEL ANGELOU",
		"Τηλέφωνο: 99123456",
		"Κωδικός Είδους",
		"1234567",
		"IPHONE 15 PRO",
		"1.200,00",
	)

	first := e.ExtractDocument(doc)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, e.ExtractDocument(doc))
	}
}

func TestCanonicalItem(t *testing.T) {
	p := func(v float64) *float64 { return &v }

	tests := []struct {
		name  string
		items []Item
		want  string
	}{
		{
			name: "highest price wins",
			items: []Item{
				{SKU: "1111111", Price: p(50)},
				{SKU: "2222222", Price: p(1200)},
			},
			want: "2222222",
		},
		{
			name: "absent price ranks lowest",
			items: []Item{
				{SKU: "1111111"},
				{SKU: "2222222", Price: p(15)},
			},
			want: "2222222",
		},
		{
			name: "tie keeps first discovered",
			items: []Item{
				{SKU: "1111111", Price: p(100)},
				{SKU: "2222222", Price: p(100)},
			},
			want: "1111111",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := canonicalItem(tt.items)
			require.NotNil(t, got)
			assert.Equal(t, tt.want, got.SKU)
		})
	}

	assert.Nil(t, canonicalItem(nil))
}
