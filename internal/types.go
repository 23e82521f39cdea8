package internal

// Record is one raw input row: field name -> cell value, as decoded from
// JSON request bodies or spreadsheet readers before normalization.
type Record map[string]any

type AnalysisMode string

const (
	ModeSales AnalysisMode = "sales"
	ModeStock AnalysisMode = "stock"
)

// OtherCompany is the sentinel assigned to rows whose product name has no
// catalog match. It is never an error.
const OtherCompany = "Other"

// Canonical column names after alias normalization.
const (
	ColName    = "ITNAME"
	ColQty     = "QTY"
	ColTaxable = "TAXBLEAMT"
	ColTaxRate = "GST"
	ColOpening = "OPST"
	ColInward  = "INWARD"
	ColTotal   = "TOTAL"
	ColOutward = "OUTWARD"
	ColClosing = "CLST"
)

type SalesRow struct {
	Name          string  `json:"name"`
	Qty           float64 `json:"qty"`
	TaxableAmount float64 `json:"taxableAmount"`
	TaxRate       float64 `json:"taxRate"`

	Company           string  `json:"company"`
	UnitPrice         float64 `json:"unitPrice"`
	TaxAmount         float64 `json:"taxAmount"`
	TotalWithTax      float64 `json:"totalWithTax"`
	RevenuePercentile float64 `json:"revenuePercentile"`
	QtyPercentile     float64 `json:"qtyPercentile"`
	PerformanceScore  float64 `json:"performanceScore"`
}

type StockStatus string

const (
	StatusOutOfStock StockStatus = "Out of Stock"
	StatusLowStock   StockStatus = "Low Stock"
	StatusMedium     StockStatus = "Medium Stock"
	StatusGood       StockStatus = "Good Stock"
	StatusHigh       StockStatus = "High Stock"
)

type MovementType string

const (
	MoveNone   MovementType = "No Movement"
	MoveFast   MovementType = "Fast Moving"
	MoveMedium MovementType = "Medium Moving"
	MoveSlow   MovementType = "Slow Moving"
)

type StockRow struct {
	Name    string  `json:"name"`
	Opening float64 `json:"opening"`
	Inward  float64 `json:"inward"`
	Total   float64 `json:"total"`
	Outward float64 `json:"outward"`
	Closing float64 `json:"closing"`

	Company       string       `json:"company"`
	TurnoverRatio float64      `json:"turnoverRatio"`
	Status        StockStatus  `json:"status"`
	Movement      MovementType `json:"movement"`
	NegativeStock bool         `json:"negativeStock"`
	DeadStock     bool         `json:"deadStock"`
	Overstocked   bool         `json:"overstocked"`
}

// CompanySummary is one aggregate row per distinct company value, including
// the Other sentinel. Built fresh by each aggregation pass.
type CompanySummary struct {
	Company       string  `json:"company"`
	ProductCount  int     `json:"productCount"`
	TotalQuantity float64 `json:"totalQuantity"`
	AvgQuantity   float64 `json:"avgQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	AvgRevenue    float64 `json:"avgRevenue"`
	TotalTax      float64 `json:"totalTax"`
	TotalWithTax  float64 `json:"totalWithTax"`
	AvgUnitPrice  float64 `json:"avgUnitPrice"`
	MarketShare   float64 `json:"marketShare"`
}

type ProductSummary struct {
	Name             string  `json:"name"`
	Company          string  `json:"company"`
	TotalQuantity    float64 `json:"totalQuantity"`
	TotalRevenue     float64 `json:"totalRevenue"`
	TotalTax         float64 `json:"totalTax"`
	TotalWithTax     float64 `json:"totalWithTax"`
	AvgUnitPrice     float64 `json:"avgUnitPrice"`
	PerformanceScore float64 `json:"performanceScore"`
}

type TaxRateSummary struct {
	Rate          float64 `json:"rate"`
	ProductCount  int     `json:"productCount"`
	TaxableAmount float64 `json:"taxableAmount"`
	TaxCollected  float64 `json:"taxCollected"`
	TotalQuantity float64 `json:"totalQuantity"`
	Contribution  float64 `json:"contribution"`
}

type StockCompanySummary struct {
	Company            string  `json:"company"`
	ProductCount       int     `json:"productCount"`
	OpeningStock       float64 `json:"openingStock"`
	Inward             float64 `json:"inward"`
	TotalAvailable     float64 `json:"totalAvailable"`
	Outward            float64 `json:"outward"`
	ClosingStock       float64 `json:"closingStock"`
	AvgTurnoverRatio   float64 `json:"avgTurnoverRatio"`
	NegativeStockCount int     `json:"negativeStockCount"`
	DeadStockCount     int     `json:"deadStockCount"`
	OverstockedCount   int     `json:"overstockedCount"`
}

type StockOverview struct {
	TotalProducts    int     `json:"totalProducts"`
	TotalOpening     float64 `json:"totalOpening"`
	TotalInward      float64 `json:"totalInward"`
	TotalAvailable   float64 `json:"totalAvailable"`
	TotalOutward     float64 `json:"totalOutward"`
	TotalClosing     float64 `json:"totalClosing"`
	AvgTurnoverRatio float64 `json:"avgTurnoverRatio"`
	InStock          int     `json:"inStock"`
	OutOfStock       int     `json:"outOfStock"`
	NegativeStock    int     `json:"negativeStock"`
	DeadStock        int     `json:"deadStock"`
	FastMoving       int     `json:"fastMoving"`
	MediumMoving     int     `json:"mediumMoving"`
	SlowMoving       int     `json:"slowMoving"`
	NoMovement       int     `json:"noMovement"`
	Overstocked      int     `json:"overstocked"`
}

// Insight is one notable fact extracted from a batch. Kind is a stable
// machine-readable tag, Text the human-readable sentence.
type Insight struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}

type SalesAnalysis struct {
	Rows        []SalesRow       `json:"rows"`
	Companies   []CompanySummary `json:"companies"`
	Products    []ProductSummary `json:"products"`
	TaxRates    []TaxRateSummary `json:"taxRates"`
	Insights    []Insight        `json:"insights"`
	SkippedRows int              `json:"skippedRows"`

	TopPerformers    []SalesRow `json:"topPerformers"`
	BottomPerformers []SalesRow `json:"bottomPerformers"`

	TotalQuantity float64 `json:"totalQuantity"`
	TotalRevenue  float64 `json:"totalRevenue"`
	TotalTax      float64 `json:"totalTax"`
	GrandTotal    float64 `json:"grandTotal"`
	CompanyCount  int     `json:"companyCount"`
	Categorized   int     `json:"categorized"`
	Uncategorized int     `json:"uncategorized"`
}

type StockAnalysis struct {
	Rows        []StockRow            `json:"rows"`
	Companies   []StockCompanySummary `json:"companies"`
	Overview    StockOverview         `json:"overview"`
	Insights    []Insight             `json:"insights"`
	SkippedRows int                   `json:"skippedRows"`

	FastMovers         []StockRow `json:"fastMovers"`
	SlowMovers         []StockRow `json:"slowMovers"`
	DeadStock          []StockRow `json:"deadStock"`
	NegativeStock      []StockRow `json:"negativeStock"`
	Overstocked        []StockRow `json:"overstocked"`
	OutOfStock         []StockRow `json:"outOfStock"`
	LowStockHighDemand []StockRow `json:"lowStockHighDemand"`
}
