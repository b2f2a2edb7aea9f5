package service

import (
	"context"
	"fmt"
	"sort"

	"meal-together/session-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// CalculateBalances nets credit debts per counterparty. A positive balance means the
// current user owes that counterparty, a negative one means the counterparty owes them.
func CalculateBalances(owedByUser, owedToUser []domain.CounterpartyTotal) map[int]decimal.Decimal {
	balances := make(map[int]decimal.Decimal)
	for _, entry := range owedByUser {
		balances[entry.UserID] = balances[entry.UserID].Add(entry.Total)
	}
	for _, entry := range owedToUser {
		balances[entry.UserID] = balances[entry.UserID].Sub(entry.Total)
	}
	return balances
}

type BalanceService struct {
	orders OrderRepository
	users  UserRepository
}

func NewBalanceService(orders OrderRepository, users UserRepository) *BalanceService {
	return &BalanceService{orders: orders, users: users}
}

func (s *BalanceService) Report(ctx context.Context, userID int) (*domain.BalanceReport, error) {
	owedBy, err := s.orders.CreditOwedByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load debts: %w", err)
	}
	owedTo, err := s.orders.CreditOwedToUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load credits: %w", err)
	}

	balances := CalculateBalances(owedBy, owedTo)

	report := &domain.BalanceReport{Balances: []domain.BalanceEntry{}, TotalBalance: decimal.Zero}
	var ids []int
	for id, balance := range balances {
		report.TotalBalance = report.TotalBalance.Add(balance)
		if !balance.IsZero() {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		return report, nil
	}
	sort.Ints(ids)

	users, err := s.users.GetUsers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load counterparties: %w", err)
	}
	byID := make(map[int]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	for _, id := range ids {
		user, ok := byID[id]
		if !ok {
			user = domain.User{ID: id}
		}
		report.Balances = append(report.Balances, domain.BalanceEntry{User: user, Balance: balances[id]})
	}
	return report, nil
}

var _ BalanceServiceInterface = (*BalanceService)(nil)
