package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
)

// Lambda dispatches a worker run by asynchronously invoking a function with
// the worker message. The invocation type is Event: the call returns once
// the message is accepted, not when processing completes.
type Lambda struct {
	client   *lambda.Client
	function string
}

var _ Dispatcher = (*Lambda)(nil)

// NewLambda creates a function-invoking dispatcher.
func NewLambda(awsCfg aws.Config, functionName string) (*Lambda, error) {
	if functionName == "" {
		return nil, errors.New("dispatch: worker function name is not set")
	}
	return &Lambda{
		client:   lambda.NewFromConfig(awsCfg),
		function: functionName,
	}, nil
}

func (d *Lambda) Dispatch(ctx context.Context, jobID string) error {
	payload, err := json.Marshal(NewWorkerMessage(jobID))
	if err != nil {
		return fmt.Errorf("dispatch: marshal worker message: %w", err)
	}

	_, err = d.client.Invoke(ctx, &lambda.InvokeInput{
		FunctionName:   aws.String(d.function),
		InvocationType: types.InvocationTypeEvent,
		Payload:        payload,
	})
	if err != nil {
		return fmt.Errorf("dispatch: invoke worker function: %w", err)
	}
	return nil
}
