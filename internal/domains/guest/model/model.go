package model

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	TableName       = "guests"
	RemoteTableName = "guest_c"
	EntityName      = "guest"
)

const (
	AccountTypeIndividual = "individual"
	AccountTypeCorporate  = "corporate"

	DefaultPaymentTerms = "net30"
)

type Address struct {
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	Country string `json:"country"`
	ZipCode string `json:"zipCode"`
}

type LoyaltyProgram struct {
	Tier     string `json:"tier"`
	Points   int    `json:"points"`
	JoinDate string `json:"joinDate"`
}

// Stay is one completed visit, appended on check-out.
type Stay struct {
	ReservationID int64           `json:"reservationId"`
	RoomNumber    string          `json:"roomNumber"`
	CheckIn       time.Time       `json:"checkIn"`
	CheckOut      time.Time       `json:"checkOut"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

type Guest struct {
	ID                  int64           `json:"id"`
	FirstName           string          `json:"firstName"`
	LastName            string          `json:"lastName"`
	Email               string          `json:"email"`
	Phone               string          `json:"phone"`
	IDType              string          `json:"idType"`
	IDNumber            string          `json:"idNumber"`
	Address             Address         `json:"address"`
	Preferences         []string        `json:"preferences"`
	VIPStatus           bool            `json:"vipStatus"`
	LoyaltyProgram      LoyaltyProgram  `json:"loyaltyProgram"`
	AccountType         string          `json:"accountType"`
	CompanyName         string          `json:"companyName"`
	CompanyRegistration string          `json:"companyRegistration"`
	TaxID               string          `json:"taxId"`
	BillingContact      string          `json:"billingContact"`
	CreditLimit         decimal.Decimal `json:"creditLimit"`
	PaymentTerms        string          `json:"paymentTerms"`
	CorporateDiscount   decimal.Decimal `json:"corporateDiscount"`
	StayHistory         []Stay          `json:"stayHistory"`
	CreatedAt           time.Time       `json:"createdAt"`
}

func (g Guest) Name() string {
	return strings.TrimSpace(g.FirstName + " " + g.LastName)
}

func (g Guest) IsCorporate() bool {
	return g.AccountType == AccountTypeCorporate
}

func (g Guest) Identity() int64 {
	return g.ID
}

func (g Guest) WithIdentity(id int64) Guest {
	g.ID = id

	return g
}

func (g Guest) Clone() Guest {
	g.Preferences = slices.Clone(g.Preferences)
	g.StayHistory = slices.Clone(g.StayHistory)

	return g
}
