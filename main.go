package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Rebyuu/draw4friends/api"
	"github.com/Rebyuu/draw4friends/store"
	"github.com/Rebyuu/draw4friends/store/dynamo"
	"github.com/Rebyuu/draw4friends/store/file"
	"github.com/Rebyuu/draw4friends/store/redis"
)

const (
	defaultDrawingFile = "drawing.json"
	defaultTableName   = "Draw4Friends"
)

// newCanvasStore picks the persistence backend from the environment:
// Redis or DynamoDB when their endpoints are configured, the JSON file
// on local disk otherwise. One store per deployment, single shared
// canvas.
func newCanvasStore(ctx context.Context, devMode bool) (store.CanvasStore, error) {
	if redisEndpoint := os.Getenv("REDIS_ENDPOINT"); redisEndpoint != "" {
		return redis.NewRedisCanvasStore(ctx, devMode, redisEndpoint)
	}

	if dynamoEndpoint, tableName := os.Getenv("DYNAMODB_ENDPOINT"), os.Getenv("DYNAMODB_TABLE"); dynamoEndpoint != "" || tableName != "" {
		if tableName == "" {
			tableName = defaultTableName
		}
		return dynamo.NewDynamoCanvasStore(ctx, devMode, dynamoEndpoint, tableName)
	}

	drawingFile := os.Getenv("DRAWING_FILE")
	if drawingFile == "" {
		drawingFile = defaultDrawingFile
	}
	return file.NewFileCanvasStore(drawingFile)
}

func main() {
	ctx := context.Background()
	devMode := os.Getenv("DEV_MODE") == "true"

	canvasStore, err := newCanvasStore(ctx, devMode)
	if err != nil {
		log.Fatalf("Failed to create canvas store: %v", err)
	}

	// Frames are never echoed back to their sender; the drawing client
	// already applied its own stroke or clear locally.
	echoToSender := os.Getenv("ECHO_TO_SENDER") == "true"

	shutdownCtx, stop := signal.NotifyContext(
		context.Background(),
		os.Interrupt,
		syscall.SIGTERM,
	)
	defer stop()

	relayAPI := api.NewRelayAPI(canvasStore, echoToSender, shutdownCtx)

	mux := http.NewServeMux()
	relayAPI.RegisterRoutes(mux, os.Getenv("REQUIRED_ORIGIN"))

	hostPort := "3001"
	if p := os.Getenv("HOST_PORT"); p != "" {
		hostPort = p
	}
	log.Printf("Starting relay on host port: %s\n", hostPort)
	log.Fatal(http.ListenAndServe(":"+hostPort, mux))
}
