//go:build lambda
// +build lambda

package main

import (
	"context"

	"github.com/cyphera/cyphera-tax/apps/api/server"
	"github.com/cyphera/cyphera-tax/libs/go/logger"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
	"github.com/davecgh/go-spew/spew"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// @title           Cyphera Tax API
// @version         1.0
// @description     Federal and state income tax computation with value provenance
// @BasePath        /api/v1

var ginLambda *ginadapter.GinLambda

func init() {
	r := gin.New()
	r.Use(gin.Recovery())

	// Reads STAGE and initializes the logger
	server.InitializeHandlers()
	server.InitializeRoutes(r)

	ginLambda = ginadapter.New(r)
}

func Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	logger.Debug("Received Lambda request",
		zap.String("path", req.Path),
		zap.String("request", logger.RedactSSNs(spew.Sdump(req))),
	)

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	defer func() {
		_ = logger.Sync()
	}()
	lambda.Start(Handler)
}
