package dto

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelops/internal/domains/guest/model"
	"hotelops/shared/constant"
)

type CreateGuestRequest struct {
	FirstName           string               `json:"firstName"           validate:"required,max=100"`
	LastName            string               `json:"lastName"            validate:"required,max=100"`
	Email               string               `json:"email"               validate:"required,email"`
	Phone               string               `json:"phone"               validate:"omitempty,max=30"`
	IDType              string               `json:"idType"              validate:"omitempty,max=30"`
	IDNumber            string               `json:"idNumber"            validate:"omitempty,max=50"`
	Address             model.Address        `json:"address"`
	Preferences         []string             `json:"preferences"         validate:"omitempty,dive,required"`
	VIPStatus           bool                 `json:"vipStatus"`
	LoyaltyProgram      model.LoyaltyProgram `json:"loyaltyProgram"`
	AccountType         string               `json:"accountType"         validate:"omitempty,oneof=individual corporate"`
	CompanyName         string               `json:"companyName"         validate:"required_if=AccountType corporate,max=200"`
	CompanyRegistration string               `json:"companyRegistration" validate:"omitempty,max=100"`
	TaxID               string               `json:"taxId"               validate:"omitempty,max=50"`
	BillingContact      string               `json:"billingContact"      validate:"omitempty,max=200"`
	CreditLimit         decimal.Decimal      `json:"creditLimit"         validate:"omitempty,gte=0"`
	PaymentTerms        string               `json:"paymentTerms"        validate:"omitempty,max=20"`
	CorporateDiscount   decimal.Decimal      `json:"corporateDiscount"   validate:"omitempty,gte=0,lte=100"`
}

// ToModel fills the registration defaults: an individual account on net30 terms whose
// loyalty membership starts today.
func (c *CreateGuestRequest) ToModel(now time.Time) model.Guest {
	guest := model.Guest{
		FirstName:           strings.TrimSpace(c.FirstName),
		LastName:            strings.TrimSpace(c.LastName),
		Email:               strings.TrimSpace(c.Email),
		Phone:               c.Phone,
		IDType:              c.IDType,
		IDNumber:            c.IDNumber,
		Address:             c.Address,
		Preferences:         c.Preferences,
		VIPStatus:           c.VIPStatus,
		LoyaltyProgram:      c.LoyaltyProgram,
		AccountType:         c.AccountType,
		CompanyName:         c.CompanyName,
		CompanyRegistration: c.CompanyRegistration,
		TaxID:               c.TaxID,
		BillingContact:      c.BillingContact,
		CreditLimit:         c.CreditLimit,
		PaymentTerms:        c.PaymentTerms,
		CorporateDiscount:   c.CorporateDiscount,
		StayHistory:         []model.Stay{},
		CreatedAt:           now,
	}

	if guest.Preferences == nil {
		guest.Preferences = []string{}
	}

	if guest.AccountType == "" {
		guest.AccountType = model.AccountTypeIndividual
	}

	if guest.PaymentTerms == "" {
		guest.PaymentTerms = model.DefaultPaymentTerms
	}

	if guest.LoyaltyProgram.JoinDate == "" {
		guest.LoyaltyProgram.JoinDate = now.Format(constant.DayFormat)
	}

	return guest
}

type AddressPatch struct {
	Street  *string `json:"street"`
	City    *string `json:"city"`
	State   *string `json:"state"`
	Country *string `json:"country"`
	ZipCode *string `json:"zipCode"`
}

type LoyaltyProgramPatch struct {
	Tier     *string `json:"tier"`
	Points   *int    `json:"points"   validate:"omitempty,gte=0"`
	JoinDate *string `json:"joinDate" validate:"omitempty,datetime=2006-01-02"`
}

// UpdateGuestRequest is a partial profile edit. Address and loyalty program merge into the
// stored values field by field.
type UpdateGuestRequest struct {
	FirstName           *string              `json:"firstName"           validate:"omitempty,min=1,max=100"`
	LastName            *string              `json:"lastName"            validate:"omitempty,min=1,max=100"`
	Email               *string              `json:"email"               validate:"omitempty,email"`
	Phone               *string              `json:"phone"               validate:"omitempty,max=30"`
	IDType              *string              `json:"idType"              validate:"omitempty,max=30"`
	IDNumber            *string              `json:"idNumber"            validate:"omitempty,max=50"`
	Address             *AddressPatch        `json:"address"`
	Preferences         *[]string            `json:"preferences"`
	VIPStatus           *bool                `json:"vipStatus"`
	LoyaltyProgram      *LoyaltyProgramPatch `json:"loyaltyProgram"`
	AccountType         *string              `json:"accountType"         validate:"omitempty,oneof=individual corporate"`
	CompanyName         *string              `json:"companyName"         validate:"omitempty,max=200"`
	CompanyRegistration *string              `json:"companyRegistration" validate:"omitempty,max=100"`
	TaxID               *string              `json:"taxId"               validate:"omitempty,max=50"`
	BillingContact      *string              `json:"billingContact"      validate:"omitempty,max=200"`
	CreditLimit         *decimal.Decimal     `json:"creditLimit"         validate:"omitempty,gte=0"`
	PaymentTerms        *string              `json:"paymentTerms"        validate:"omitempty,max=20"`
	CorporateDiscount   *decimal.Decimal     `json:"corporateDiscount"   validate:"omitempty,gte=0,lte=100"`
}

func (u *UpdateGuestRequest) IsEmpty() bool {
	return *u == UpdateGuestRequest{}
}

type AddStayRequest struct {
	ReservationID int64           `json:"reservationId" validate:"omitempty,gt=0"`
	RoomNumber    string          `json:"roomNumber"    validate:"required"`
	CheckIn       time.Time       `json:"checkIn"       validate:"required"`
	CheckOut      time.Time       `json:"checkOut"      validate:"required,gtfield=CheckIn"`
	TotalAmount   decimal.Decimal `json:"totalAmount"   validate:"omitempty,gte=0"`
}

func (a *AddStayRequest) ToModel() model.Stay {
	return model.Stay{
		ReservationID: a.ReservationID,
		RoomNumber:    a.RoomNumber,
		CheckIn:       a.CheckIn,
		CheckOut:      a.CheckOut,
		TotalAmount:   a.TotalAmount,
	}
}
