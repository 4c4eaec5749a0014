package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"hotelops/config"
	"hotelops/infras/otel/mocks"
	"hotelops/internal/domains/guest/model"
	"hotelops/internal/domains/guest/model/dto"
	"hotelops/internal/domains/guest/service"
	"hotelops/shared/failure"
	gRepo "hotelops/shared/repository"
	repoMocks "hotelops/shared/repository/mocks"
)

func newService(seed ...model.Guest) service.Guest {
	otl := mocks.NewOtel()

	return service.New(gRepo.NewMemory[model.Guest](model.EntityName, 0, otl, seed...), &config.Config{}, otl)
}

func stringPtr(s string) *string {
	return &s
}

func TestGuestService_CreateDefaults(t *testing.T) {
	svc := newService()

	guest, err := svc.Create(context.Background(), dto.CreateGuestRequest{
		FirstName: " Ana ",
		LastName:  "Souza",
		Email:     "ana@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1), guest.ID)
	assert.Equal(t, "Ana Souza", guest.Name())
	assert.Equal(t, model.AccountTypeIndividual, guest.AccountType)
	assert.Equal(t, model.DefaultPaymentTerms, guest.PaymentTerms)
	assert.NotEmpty(t, guest.LoyaltyProgram.JoinDate)
	assert.NotNil(t, guest.StayHistory)
	assert.NotNil(t, guest.Preferences)

	got, err := svc.Get(context.Background(), guest.ID)
	require.NoError(t, err)
	assert.Equal(t, guest.Email, got.Email)
	assert.Equal(t, guest.LoyaltyProgram, got.LoyaltyProgram)
}

func TestGuestService_UpdateMergesNestedFields(t *testing.T) {
	svc := newService(model.Guest{
		FirstName:      "Ana",
		LastName:       "Souza",
		Email:          "ana@example.com",
		Address:        model.Address{Street: "1 Beach Rd", City: "Lisbon", Country: "PT"},
		LoyaltyProgram: model.LoyaltyProgram{Tier: "Silver", Points: 300, JoinDate: "2024-01-10"},
		Preferences:    []string{"quiet room"},
	})

	points := 900

	updated, err := svc.Update(context.Background(), 1, dto.UpdateGuestRequest{
		Address:        &dto.AddressPatch{City: stringPtr("Porto")},
		LoyaltyProgram: &dto.LoyaltyProgramPatch{Tier: stringPtr("Gold"), Points: &points},
	})
	require.NoError(t, err)

	assert.Equal(t, model.Address{Street: "1 Beach Rd", City: "Porto", Country: "PT"}, updated.Address)
	assert.Equal(t, model.LoyaltyProgram{Tier: "Gold", Points: 900, JoinDate: "2024-01-10"}, updated.LoyaltyProgram)
	assert.Equal(t, "ana@example.com", updated.Email)
	assert.Equal(t, []string{"quiet room"}, updated.Preferences)

	_, err = svc.Update(context.Background(), 1, dto.UpdateGuestRequest{})
	assert.ErrorIs(t, err, failure.EmptyUpdateRequest)

	_, err = svc.Update(context.Background(), 8, dto.UpdateGuestRequest{Phone: stringPtr("1")})
	assert.True(t, failure.IsNotFound(err))
}

func TestGuestService_CorporateAccounts(t *testing.T) {
	svc := newService(
		model.Guest{FirstName: "Ana", AccountType: model.AccountTypeIndividual},
		model.Guest{FirstName: "Acme", AccountType: model.AccountTypeCorporate, CompanyName: "Acme Ltd", CreditLimit: decimal.NewFromInt(10000)},
	)

	accounts, err := svc.GetCorporateAccounts(context.Background())
	require.NoError(t, err)
	require.Len(t, accounts, 1)
	assert.Equal(t, "Acme Ltd", accounts[0].CompanyName)

	account, err := svc.GetCorporateAccount(context.Background(), 2)
	require.NoError(t, err)
	assert.Equal(t, int64(2), account.ID)

	_, err = svc.GetCorporateAccount(context.Background(), 1)
	assert.True(t, failure.IsNotFound(err))

	_, err = svc.GetCorporateAccount(context.Background(), 5)
	assert.True(t, failure.IsNotFound(err))
}

func TestGuestService_AddStayAppends(t *testing.T) {
	svc := newService(model.Guest{FirstName: "Ana", StayHistory: []model.Stay{{RoomNumber: "101"}}})

	checkIn := time.Date(2025, 6, 1, 14, 0, 0, 0, time.UTC)

	guest, err := svc.AddStay(context.Background(), 1, model.Stay{
		ReservationID: 4,
		RoomNumber:    "305",
		CheckIn:       checkIn,
		CheckOut:      checkIn.AddDate(0, 0, 3),
		TotalAmount:   decimal.NewFromInt(450),
	})
	require.NoError(t, err)

	require.Len(t, guest.StayHistory, 2)
	assert.Equal(t, "101", guest.StayHistory[0].RoomNumber)
	assert.Equal(t, "305", guest.StayHistory[1].RoomNumber)
}

func TestGuestService_Delete(t *testing.T) {
	svc := newService(model.Guest{FirstName: "Ana"})

	deleted, err := svc.Delete(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Ana", deleted.FirstName)

	all, err := svc.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestGuestService_RepositoryError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := repoMocks.NewMockStore[model.Guest](ctrl)
	svc := service.New(store, &config.Config{}, mocks.NewOtel())

	store.EXPECT().All(gomock.Any()).Return(nil, errors.New("timeout")).Times(2)

	_, err := svc.GetAll(context.Background())
	assert.ErrorContains(t, err, "failed to get guests")

	_, err = svc.GetCorporateAccounts(context.Background())
	assert.ErrorContains(t, err, "failed to get corporate accounts")
}
