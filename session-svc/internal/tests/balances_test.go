package tests

import (
	"context"
	"testing"

	"meal-together/session-svc/internal/domain"
	"meal-together/session-svc/internal/mocks"
	"meal-together/session-svc/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCalculateBalances(t *testing.T) {
	owedBy := []domain.CounterpartyTotal{{UserID: 2, Total: price("30.00")}, {UserID: 3, Total: price("10.00")}}
	owedTo := []domain.CounterpartyTotal{{UserID: 2, Total: price("12.50")}, {UserID: 4, Total: price("7.00")}}

	got := service.CalculateBalances(owedBy, owedTo)

	assert.Len(t, got, 3)
	assert.True(t, price("17.50").Equal(got[2]))
	assert.True(t, price("10.00").Equal(got[3]))
	assert.True(t, price("-7.00").Equal(got[4]))
}

func TestBalanceService_Report(t *testing.T) {
	const creator, guest = 1, 2

	tests := []struct {
		name        string
		userID      int
		owedBy      []domain.CounterpartyTotal
		owedTo      []domain.CounterpartyTotal
		counterpart domain.User
		want        string
	}{
		{
			name:        "creator sees the debtor owing",
			userID:      creator,
			owedTo:      []domain.CounterpartyTotal{{UserID: guest, Total: price("30.00")}},
			counterpart: domain.User{ID: guest, Username: "u"},
			want:        "-30.00",
		},
		{
			name:        "debtor sees the creator as owed",
			userID:      guest,
			owedBy:      []domain.CounterpartyTotal{{UserID: creator, Total: price("30.00")}},
			counterpart: domain.User{ID: creator, Username: "c"},
			want:        "30.00",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			orders := mocks.NewOrderRepository(t)
			users := mocks.NewUserRepository(t)
			svc := service.NewBalanceService(orders, users)

			orders.On("CreditOwedByUser", mock.Anything, testCase.userID).Return(testCase.owedBy, nil).Once()
			orders.On("CreditOwedToUser", mock.Anything, testCase.userID).Return(testCase.owedTo, nil).Once()
			users.On("GetUsers", mock.Anything, []int{testCase.counterpart.ID}).
				Return([]domain.User{testCase.counterpart}, nil).Once()

			report, err := svc.Report(context.Background(), testCase.userID)

			require.NoError(t, err)
			require.Len(t, report.Balances, 1)
			assert.Equal(t, testCase.counterpart, report.Balances[0].User)
			assert.Equal(t, testCase.want, report.Balances[0].Balance.StringFixed(2))
			assert.Equal(t, testCase.want, report.TotalBalance.StringFixed(2))
		})
	}
}

func TestBalanceService_ReportDropsSettledCounterparties(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	users := mocks.NewUserRepository(t)
	svc := service.NewBalanceService(orders, users)

	orders.On("CreditOwedByUser", mock.Anything, 1).
		Return([]domain.CounterpartyTotal{{UserID: 2, Total: price("20.00")}}, nil).Once()
	orders.On("CreditOwedToUser", mock.Anything, 1).
		Return([]domain.CounterpartyTotal{{UserID: 2, Total: price("20.00")}}, nil).Once()

	report, err := svc.Report(context.Background(), 1)

	require.NoError(t, err)
	assert.NotNil(t, report.Balances)
	assert.Empty(t, report.Balances)
	assert.True(t, report.TotalBalance.IsZero())
}

func TestBalanceService_ReportRepositoryError(t *testing.T) {
	orders := mocks.NewOrderRepository(t)
	users := mocks.NewUserRepository(t)
	svc := service.NewBalanceService(orders, users)

	orders.On("CreditOwedByUser", mock.Anything, 1).Return(nil, assert.AnError).Once()

	_, err := svc.Report(context.Background(), 1)
	assert.ErrorIs(t, err, assert.AnError)
}
