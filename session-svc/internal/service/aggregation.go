package service

import (
	"sort"

	"meal-together/session-svc/internal/domain"

	"github.com/shopspring/decimal"
)

// AggregateOrderItems groups every item of the given orders by menu item name.
func AggregateOrderItems(orders []domain.Order) []domain.AggregatedItem {
	byName := make(map[string]*domain.AggregatedItem)
	for _, order := range orders {
		for _, item := range order.Items {
			agg, ok := byName[item.MenuItem.Name]
			if !ok {
				agg = &domain.AggregatedItem{Name: item.MenuItem.Name, TotalPrice: decimal.Zero}
				byName[item.MenuItem.Name] = agg
			}
			agg.Quantity += item.Quantity
			agg.TotalPrice = agg.TotalPrice.Add(item.LineTotal())
		}
	}

	result := make([]domain.AggregatedItem, 0, len(byName))
	for _, agg := range byName {
		result = append(result, *agg)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result
}

// ProcessParticipants builds one summary per participant from the session orders.
// With creatorInfo the summaries carry payment methods and the creator flag instead
// of the flattened item list.
func ProcessParticipants(session *domain.MealSession, participants []domain.User, orders []domain.Order, creatorInfo bool) []domain.ParticipantSummary {
	byUser := make(map[int][]domain.Order)
	for _, order := range orders {
		byUser[order.UserID] = append(byUser[order.UserID], order)
	}

	summaries := make([]domain.ParticipantSummary, 0, len(participants))
	for _, participant := range participants {
		userOrders := byUser[participant.ID]
		summary := domain.ParticipantSummary{
			User:       participant,
			TotalSpent: decimal.Zero,
			Orders:     userOrders,
		}
		if summary.Orders == nil {
			summary.Orders = []domain.Order{}
		}

		seen := make(map[domain.PaymentMethod]bool)
		for _, order := range userOrders {
			summary.TotalSpent = summary.TotalSpent.Add(order.TotalPrice)
			if creatorInfo {
				if !seen[order.PaymentMethod] {
					seen[order.PaymentMethod] = true
					summary.PaymentMethods = append(summary.PaymentMethods, order.PaymentMethod)
				}
			} else {
				summary.Items = append(summary.Items, order.Items...)
			}
		}

		if creatorInfo {
			summary.IsCreator = participant.ID == session.CreatorID
		}
		summaries = append(summaries, summary)
	}
	return summaries
}

func sumAggregated(items []domain.AggregatedItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		total = total.Add(item.TotalPrice)
	}
	return total
}
