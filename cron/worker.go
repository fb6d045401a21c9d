package cron

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"auxin/config"

	"github.com/hibiken/asynq"
)

const TypeHandshakePurge = "handshake:purge"

// HandshakeExpirer removes a pending sign-in handshake and its stored result.
type HandshakeExpirer interface {
	ExpireHandshake(ctx context.Context, state string)
}

type purgePayload struct {
	State string `json:"state"`
}

func redisOpts() asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	}
}

// PurgeClient schedules handshake purge tasks. It is the backstop for
// handshakes that were started but never waited on: the in-process deadline
// only fires inside an active wait.
type PurgeClient struct {
	client *asynq.Client
}

// NewPurgeClient creates a scheduler backed by the queue Redis DB.
func NewPurgeClient() *PurgeClient {
	return &PurgeClient{client: asynq.NewClient(redisOpts())}
}

// SchedulePurge enqueues a purge task to run at the given time.
func (p *PurgeClient) SchedulePurge(state string, at time.Time) error {
	payload, err := json.Marshal(purgePayload{State: state})
	if err != nil {
		return fmt.Errorf("failed to marshal purge payload: %w", err)
	}
	task := asynq.NewTask(TypeHandshakePurge, payload)
	if _, err := p.client.Enqueue(task, asynq.ProcessAt(at)); err != nil {
		return fmt.Errorf("failed to enqueue purge task: %w", err)
	}
	return nil
}

// Close releases the underlying queue connection.
func (p *PurgeClient) Close() error {
	return p.client.Close()
}

// InitPurgeWorker runs the async worker in background.
func InitPurgeWorker(expirer HandshakeExpirer) {
	srv := asynq.NewServer(
		redisOpts(),
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeHandshakePurge, handlePurgeTask(expirer))

	// Start async worker with retry logic
	go func() {
		log.Println("[PurgeWorker] Starting async worker...")
		const maxAttempts = 5

		for attempts := 1; attempts <= maxAttempts; attempts++ {
			if err := srv.Run(mux); err != nil {
				log.Printf("[PurgeWorker] Attempt %d/%d failed to start worker: %v", attempts, maxAttempts, err)

				if attempts == maxAttempts {
					log.Fatal("[PurgeWorker] Max retry attempts reached. Exiting.")
				}
				time.Sleep(time.Duration(attempts*2) * time.Second) // Exponential backoff
			} else {
				break
			}
		}
	}()
}

func handlePurgeTask(expirer HandshakeExpirer) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		var p purgePayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			log.Printf("[PurgeHandler] Invalid payload: %v", err)
			return err
		}

		// Idempotent: a handshake that already resolved is simply absent.
		expirer.ExpireHandshake(ctx, p.State)
		return nil
	}
}
