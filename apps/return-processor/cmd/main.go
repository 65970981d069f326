package main

import (
	"context"
	"fmt"
	"os"

	"github.com/cyphera/cyphera-tax/apps/return-processor/internal/processor"
	awsclient "github.com/cyphera/cyphera-tax/libs/go/client/aws"
	"github.com/cyphera/cyphera-tax/libs/go/helpers"
	"github.com/cyphera/cyphera-tax/libs/go/logger"
	"github.com/cyphera/cyphera-tax/libs/go/services"
	"github.com/cyphera/cyphera-tax/libs/go/states"
	"github.com/cyphera/cyphera-tax/libs/go/taxdata"

	"github.com/aws/aws-lambda-go/lambda"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = helpers.StageLocal
	}
	if !helpers.IsValidStage(stage) {
		panic(fmt.Sprintf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s, %s",
			stage, helpers.StageProd, helpers.StageDev, helpers.StageLocal, helpers.StageTest))
	}

	logger.InitLogger(stage, taxdata.SupportedYears()...)
	logger.Info("Lambda Cold Start: Initializing return processor for stage", zap.String("stage", stage))
	defer func() {
		_ = logger.Sync()
	}()

	queueURL := os.Getenv("RESULTS_QUEUE_URL")
	if queueURL == "" {
		logger.Fatal("RESULTS_QUEUE_URL environment variable is required")
	}

	publisher, err := awsclient.NewSQSPublisher(context.Background(), queueURL)
	if err != nil {
		logger.Fatal("Failed to initialize SQS publisher", zap.Error(err))
	}

	calculator := services.NewReturnService(states.NewRegistry())
	app := processor.NewReturnProcessor(calculator, publisher)

	lambda.Start(app.HandleSQSEvent)
}
