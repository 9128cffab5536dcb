//go:build lambda

package main

import (
	"context"
	_ "embed"
	"encoding/base64"
	"encoding/json"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"go.uber.org/zap"
)

//go:embed data/crew.json
var embeddedCatalog string

var jsonHeader = map[string]string{
	"Content-Type": "application/json",
}

var svc *service

func handler(_ context.Context, event events.LambdaFunctionURLRequest) (events.LambdaFunctionURLResponse, error) {
	body := event.Body
	if event.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(body)
		if err != nil {
			return jsonResp(400, errorBody{"invalid base64 body"})
		}
		body = string(decoded)
	}
	return jsonResp(svc.optimize([]byte(body)))
}

func jsonResp(code int, v any) (events.LambdaFunctionURLResponse, error) {
	body, _ := json.Marshal(v)
	return events.LambdaFunctionURLResponse{StatusCode: code, Headers: jsonHeader, Body: string(body)}, nil
}

func main() {
	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	cfg, err := LoadConfig()
	if err != nil {
		log.Fatal("config", zap.Error(err))
	}
	cat, err := parseCatalog(embeddedCatalog)
	if err != nil {
		log.Fatal("embedded catalog", zap.Error(err))
	}
	svc = newService(cat, NewHazardEstimator(cfg.OracleMaxHours), cfg, log)
	lambda.Start(handler)
}
