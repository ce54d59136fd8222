package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"cinebook/internal/notifications"
	"cinebook/internal/shared/config"

	"github.com/joho/godotenv"
)

// Booking event worker. Consumes booking.confirmed and booking.released
// events from Kafka and dispatches user notifications.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	cfg := config.Load()
	if !cfg.Kafka.Enabled {
		log.Fatal("Kafka is disabled, nothing to consume (set KAFKA_ENABLED=true)")
	}

	consumerConfig := notifications.DefaultConsumerConfig()
	consumerConfig.Brokers = cfg.Kafka.Brokers
	consumerConfig.Topics = []string{cfg.Kafka.Topic}

	numWorkers := 3
	if v := os.Getenv("NUM_CONSUMER_WORKERS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			numWorkers = n
		}
	}

	consumer, err := notifications.NewKafkaConsumer(consumerConfig, notifications.NewLogNotifier())
	if err != nil {
		log.Fatalf("Failed to create booking event consumer: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := consumer.Start(ctx, numWorkers); err != nil {
		log.Fatalf("Failed to start booking event consumer: %v", err)
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down booking event worker...")
	cancel()
	if err := consumer.Stop(); err != nil {
		log.Printf("Error stopping consumer: %v", err)
	}
	log.Println("Booking event worker exited")
}
