package internal

type Format string

const (
	FormatLegacy   Format = "legacy"
	FormatExtended Format = "extended"
)

// UnmatchedIndex is the provenance sentinel for rows no shortening rule
// claimed; it sorts after every configured rule.
const UnmatchedIndex = 9999

type ParsedItem struct {
	Title               string
	ProductType         string
	Size                string
	RuleIndex           int
	ConditionIndex      int
	OriginalProductType string
}

type NormalizedRow struct {
	ParsedItem

	OrderNumber string
	SKU         string
	StoreName   string
	ShipDate    string
	Quantity    int
	ImageURL    string

	// Assigned by the bin pass, zero values until then.
	BinNumber   int
	BinOverflow string
	ItemIndex   int
	OrderItems  int
}

// HasBin reports whether the row's order got a physical sorting slot.
func (r NormalizedRow) HasBin() bool {
	return r.BinNumber > 0 || r.BinOverflow != ""
}

type ValidationRow struct {
	RowNumber   int    `json:"row_number"`
	ItemName    string `json:"item_name,omitempty"`
	OrderNumber string `json:"order_number,omitempty"`
	SKU         string `json:"sku,omitempty"`
	Product     string `json:"product,omitempty"`
	Size        string `json:"size,omitempty"`
	Quantity    string `json:"quantity,omitempty"`
	ImageURL    string `json:"datamatrix_url,omitempty"`

	MatchedProductType string `json:"matched_product_type,omitempty"`
	Title              string `json:"title,omitempty"`
}

type ValidationReport struct {
	Format         Format          `json:"format"`
	TotalRows      int             `json:"total_rows"`
	MatchedCount   int             `json:"matched_count"`
	UnmatchedCount int             `json:"unmatched_count"`
	MatchedRows    []ValidationRow `json:"matched_rows"`
	UnmatchedRows  []ValidationRow `json:"unmatched_rows"`
	Suggestions    []string        `json:"suggestions"`
}

type RunRecord struct {
	ID        int
	TraceID   string
	Kind      string
	Format    string
	Rows      int
	Pages     int
	CreatedAt string
}
