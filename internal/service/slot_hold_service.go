package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// ErrSlotHeld is returned when another client holds the slot between
// selection and submission
var ErrSlotHeld = errors.New("slot is currently being booked by another client")

// releaseHoldScript deletes the hold key only when it still carries our
// token, so a hold that expired and was re-acquired by someone else is never
// released by the original client.
//
// Redis Go client automatically uses EVALSHA after the first call instead of
// sending the full script text every time.
var releaseHoldScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		return redis.call('DEL', KEYS[1])
	end
	return 0
`)

const (
	// Redis key prefix for slot holds
	slotHoldKeyPrefix = "slot:hold:"

	// How long a hold survives without being converted into a booking.
	// A crashed client cannot wedge a slot past this window.
	slotHoldTTL = 2 * time.Minute
)

// SlotHoldService serializes racing booking attempts on the same slot with a
// short-lived Redis hold (SET NX + TTL). The hold is an optimization, not
// the authority: the database unique constraint on (doctor_id,
// appointment_date) remains the final arbiter of double booking.
type SlotHoldService struct {
	redisClient *redis.Client
	log         *logrus.Logger
}

func NewSlotHoldService(redisClient *redis.Client, log *logrus.Logger) *SlotHoldService {
	return &SlotHoldService{
		redisClient: redisClient,
		log:         log,
	}
}

// Acquire takes the hold for one slot. Returns a release token on success
// and ErrSlotHeld when another client already holds it.
func (s *SlotHoldService) Acquire(ctx context.Context, doctorID uuid.UUID, date, slotTime string) (string, error) {
	key := slotHoldKey(doctorID, date, slotTime)
	token := uuid.New().String()

	ok, err := s.redisClient.SetNX(ctx, key, token, slotHoldTTL).Result()
	if err != nil {
		s.log.Warnf("Failed to acquire slot hold %s: %+v", key, err)
		return "", err
	}
	if !ok {
		return "", ErrSlotHeld
	}
	return token, nil
}

// Release gives the hold back early. Safe to call after TTL expiry; a hold
// re-acquired by another client is left untouched.
func (s *SlotHoldService) Release(ctx context.Context, doctorID uuid.UUID, date, slotTime, token string) error {
	key := slotHoldKey(doctorID, date, slotTime)

	if err := releaseHoldScript.Run(ctx, s.redisClient, []string{key}, token).Err(); err != nil && !errors.Is(err, redis.Nil) {
		s.log.Warnf("Failed to release slot hold %s: %+v", key, err)
		return err
	}
	return nil
}

func slotHoldKey(doctorID uuid.UUID, date, slotTime string) string {
	return fmt.Sprintf("%s%s:%s:%s", slotHoldKeyPrefix, doctorID, date, slotTime)
}
