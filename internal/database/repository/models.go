package repository

// TransactionType distinguishes money in from money out.
type TransactionType string

const (
	TypeRevenue TransactionType = "revenue"
	TypeExpense TransactionType = "expense"
)

// PaymentStatus tracks liquidation. Transitions go pending -> paid only.
type PaymentStatus string

const (
	StatusPending PaymentStatus = "pending"
	StatusPaid    PaymentStatus = "paid"
)

// Account is the disposable-funds pool a PAID transaction settles into.
type Account string

const (
	AccountCash Account = "cash"
	AccountBank Account = "bank"
)

// ActivityType is the MEI activity classification driving tax treatment.
type ActivityType string

const (
	ActivityCommerce           ActivityType = "commerce"
	ActivityIndustry           ActivityType = "industry"
	ActivityServices           ActivityType = "services"
	ActivityPassengerTransport ActivityType = "passenger_transport"
	ActivityCargoTransport     ActivityType = "cargo_transport"
)

// ActivityTypes returns all activities in declaration order. Dominant-activity
// ties are broken by this order.
func ActivityTypes() []ActivityType {
	return []ActivityType{
		ActivityCommerce,
		ActivityIndustry,
		ActivityServices,
		ActivityPassengerTransport,
		ActivityCargoTransport,
	}
}

// Transaction represents a transaction row. Amount is always a positive
// magnitude; direction is carried by Type. Date is the due date until
// liquidation, then the effective payment date. Dates are ISO YYYY-MM-DD.
type Transaction struct {
	ID           string
	Description  string
	Amount       float64
	Date         string
	DueDate      string
	Type         TransactionType
	Status       PaymentStatus
	Account      Account
	Subcategory  string
	ProductID    *string
	ActivityType *ActivityType
	Method       string
}

// Product is a catalog entry used to default a revenue transaction's activity.
type Product struct {
	ID           string
	Name         string
	ActivityType ActivityType
}

// Category is a user-editable subcategory label scoped by transaction type.
type Category struct {
	Type      TransactionType
	Name      string
	SortOrder int
}

// MEIRule holds the per-activity tax parameters: the fraction of revenue
// presumed exempt, the INSS rate applied to minimum wage, and the flat
// monthly tax add-on.
type MEIRule struct {
	Activity         ActivityType
	ExemptionPercent float64
	INSSPercent      float64
	FixedTax         float64
}

// SalaryConfig holds the fiscal-year wage and revenue-ceiling parameters.
type SalaryConfig struct {
	Year             int
	MinWage          float64
	LimitStandard    float64
	LimitTrucker     float64
	MonthlyProLabore float64
}

// InitialBalance is the user-entered opening cash/bank position for a year.
type InitialBalance struct {
	Year int
	Cash float64
	Bank float64
}

// CompanyProfile stores the MEI registration data shown on the profile screen.
type CompanyProfile struct {
	CivilName        string
	CPF              string
	CNPJ             string
	OpeningDate      string
	LegalName        string
	ShareCapital     string
	RegistryStatus   string
	StatusDate       string
	CEP              string
	Street           string
	Number           string
	Complement       string
	District         string
	City             string
	State            string
	WorkMode         string
	MainOccupation   string
	MainCNAE         string
	OtherOccupations string
	OtherCNAE        string
}
