package consumer

import (
	"encoding/json"
	"log"

	"github.com/drivenevents/hotel-booking-service/internal/models"
	amqp "github.com/rabbitmq/amqp091-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SyncConsumer mirrors registration and hotel facts into the local database.
// This service never writes those rows itself; eligibility and capacity
// checks read them as externally owned state.
type SyncConsumer struct {
	db *gorm.DB
}

func NewSyncConsumer(db *gorm.DB) *SyncConsumer {
	return &SyncConsumer{db: db}
}

func (sc *SyncConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			sc.handleMessage(msg)
		}
		log.Println("[SyncConsumer] channel closed, stopping consumer")
	}()
}

func (sc *SyncConsumer) handleMessage(msg amqp.Delivery) {
	switch msg.RoutingKey {
	case "registration.enrollment":
		syncRecord(sc.db, msg, &models.Enrollment{},
			"user_id", "address", "updated_at")
	case "registration.ticket_type":
		syncRecord(sc.db, msg, &models.TicketType{},
			"name", "price", "is_remote", "includes_hotel", "updated_at")
	case "registration.ticket":
		syncRecord(sc.db, msg, &models.Ticket{},
			"enrollment_id", "ticket_type_id", "status", "updated_at")
	case "hotel.hotel":
		syncRecord(sc.db, msg, &models.Hotel{},
			"name", "image", "updated_at")
	case "hotel.room":
		syncRecord(sc.db, msg, &models.Room{},
			"name", "capacity", "hotel_id", "updated_at")
	default:
		log.Printf("[SyncConsumer] ignoring routing key %s", msg.RoutingKey)
		msg.Ack(false)
	}
}

// syncRecord upserts the payload: insert, or on an id conflict with an
// earlier copy, update the listed columns. Malformed payloads are dropped;
// database failures requeue the delivery.
func syncRecord[T any](db *gorm.DB, msg amqp.Delivery, record *T, columns ...string) {
	if err := json.Unmarshal(msg.Body, record); err != nil {
		log.Printf("[SyncConsumer] failed to unmarshal %s: %v", msg.RoutingKey, err)
		msg.Nack(false, false)
		return
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns(columns),
	}).Create(record)

	if result.Error != nil {
		log.Printf("[SyncConsumer] failed to upsert %s: %v", msg.RoutingKey, result.Error)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[SyncConsumer] synced %s", msg.RoutingKey)
	msg.Ack(false)
}
