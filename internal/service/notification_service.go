package service

import (
	"context"
	"encoding/json"

	"cartroyal/internal/models"
	"cartroyal/internal/repository"
)

// NotificationService persists in-app notifications and pushes them via FCM.
// Every method is safe to fire and forget.
type NotificationService struct {
	repo  *repository.NotificationRepository
	users UserStore
	fcm   *FCMService
}

func NewNotificationService(repo *repository.NotificationRepository, users UserStore, fcm *FCMService) *NotificationService {
	return &NotificationService{repo: repo, users: users, fcm: fcm}
}

func (s *NotificationService) Notify(userID, notifType, title, body string, data map[string]interface{}) error {
	var dataJSON string
	if data != nil {
		b, _ := json.Marshal(data)
		dataJSON = string(b)
	}
	err := s.repo.Create(&models.Notification{
		UserID: userID,
		Type:   notifType,
		Title:  title,
		Body:   body,
		Data:   dataJSON,
	})
	if err != nil {
		return err
	}
	s.sendPush(userID, title, body, data)
	return nil
}

func (s *NotificationService) sendPush(userID, title, body string, data map[string]interface{}) {
	if s.fcm == nil || s.users == nil {
		return
	}
	u, err := s.users.GetByUUID(userID)
	if err != nil || u.FCMToken == "" {
		return
	}
	push := make(map[string]string, len(data))
	for k, v := range data {
		if str, ok := v.(string); ok {
			push[k] = str
		}
	}
	_ = s.fcm.Send(context.Background(), u.FCMToken, title, body, push)
}

func (s *NotificationService) OrderPaid(userID, orderID string) error {
	return s.Notify(userID, "ORDER_PAID", "Payment confirmed",
		"Your payment was successful. We are preparing your order.",
		map[string]interface{}{"order_id": orderID})
}

func (s *NotificationService) OrderOutForDelivery(userID, orderID, orderCode string) error {
	return s.Notify(userID, "ORDER_SHIPPED", "Order out for delivery",
		"Order "+orderCode+" is on its way. Check your email for the confirmation link.",
		map[string]interface{}{"order_id": orderID})
}

func (s *NotificationService) OrderDelivered(userID, orderID string) error {
	return s.Notify(userID, "ORDER_DELIVERED", "Order delivered",
		"Thanks for confirming you received your order.",
		map[string]interface{}{"order_id": orderID})
}
