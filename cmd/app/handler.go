package main

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/aws/aws-lambda-go/lambdacontext"
)

const (
	greeting = "Hello from Lambda!"
	body     = `{"message": "` + greeting + `"}`
)

// Response is the record returned to the Lambda runtime. API Gateway proxy
// integrations read statusCode and body from it.
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

var logger = newLogger(os.Stdout)

func newLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo}))
}

// handler answers every invocation with the same response. The event is
// taken as raw JSON so that payloads of any shape are accepted and ignored.
func handler(ctx context.Context, event json.RawMessage) (Response, error) {
	l := logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		l = l.With(slog.String("requestId", lc.AwsRequestID))
	}
	l.InfoContext(ctx, greeting)

	return Response{
		StatusCode: http.StatusOK,
		Body:       body,
	}, nil
}
