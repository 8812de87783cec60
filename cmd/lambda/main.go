package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"fundrebalance/api"
	"fundrebalance/cmd"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	ginadapter "github.com/awslabs/aws-lambda-go-api-proxy/gin"
)

type lambdaHandler struct {
	apiHandler *api.ApiHandler
}

func (m lambdaHandler) Handler(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	engine := m.apiHandler.InitializeRouterEngine()
	ginLambda := ginadapter.New(engine)

	bytes, _ := json.Marshal(req)
	fmt.Println(string(bytes))

	return ginLambda.ProxyWithContext(ctx, req)
}

func main() {
	apiHandler, _, err := cmd.InitializeDependencies()
	if err != nil {
		log.Fatal(err)
	}
	handler := lambdaHandler{
		apiHandler: apiHandler,
	}
	// no long-lived orderbook feed on lambda - /price reports the book
	// as unavailable there
	lambda.Start(handler.Handler)
}
