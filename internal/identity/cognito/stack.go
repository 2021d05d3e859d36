package cognito

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/service/cloudformation"
	"github.com/aws/aws-sdk-go/service/cloudformation/cloudformationiface"
)

// ResolvePool reads the user pool and client ids from the exports of the
// deployment stack.
func ResolvePool(ctx context.Context, cf cloudformationiface.CloudFormationAPI, stackName string) (Pool, error) {
	out, err := cf.DescribeStacksWithContext(ctx, &cloudformation.DescribeStacksInput{
		StackName: aws.String(stackName),
	})
	if err != nil {
		return Pool{}, errFailedDescribe(stackName, err)
	}

	if len(out.Stacks) == 0 || out.Stacks[0] == nil {
		return Pool{}, errors.New(errPoolDetailsNotFound)
	}

	var pool Pool
	for _, o := range out.Stacks[0].Outputs {
		switch aws.StringValue(o.ExportName) {
		case exportUserPoolID:
			pool.UserPoolID = aws.StringValue(o.OutputValue)
		case exportClientID:
			pool.ClientID = aws.StringValue(o.OutputValue)
		}
	}

	if pool.UserPoolID == "" || pool.ClientID == "" {
		return Pool{}, errors.New(errPoolDetailsNotFound)
	}

	return pool, nil
}
