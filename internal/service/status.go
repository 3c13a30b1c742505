package service

import "github.com/vibedit/vibedit-orders-service/internal/models"

var validTransitions = map[models.OrderStatus][]models.OrderStatus{
	models.OrderStatusIncomplete: {models.OrderStatusPending, models.OrderStatusCancelled},
	models.OrderStatusPending:    {models.OrderStatusInProgress, models.OrderStatusComplete, models.OrderStatusCancelled},
	models.OrderStatusInProgress: {models.OrderStatusComplete, models.OrderStatusCancelled},
	// A refund cancels a finished order.
	models.OrderStatusComplete:  {models.OrderStatusCancelled},
	models.OrderStatusCancelled: {},
}

func isValidStatusTransition(from, to models.OrderStatus) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}

	for _, status := range allowed {
		if status == to {
			return true
		}
	}
	return false
}
