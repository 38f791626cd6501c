/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	stderrors "errors"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"

	"github.com/suparena/tablestore/errors"
)

// storageError wraps an SDK failure, keeping its HTTP status and error code.
// Context errors pass through unchanged.
func storageError(operation string, err error) error {
	if err == nil {
		return nil
	}
	if stderrors.Is(err, context.Canceled) || stderrors.Is(err, context.DeadlineExceeded) {
		return err
	}

	var (
		status int
		code   string
	)
	var respErr *awshttp.ResponseError
	if stderrors.As(err, &respErr) {
		status = respErr.HTTPStatusCode()
	}
	var apiErr smithy.APIError
	if stderrors.As(err, &apiErr) {
		code = apiErr.ErrorCode()
	}
	return errors.NewStorageError(operation, status, code, err)
}

// conditionFailure maps a failed ETag condition to NotFound when the row is
// gone and PreconditionFailed when it holds another version. It returns nil
// for any other error.
func conditionFailure(operation, tableName, key string, err error) error {
	var ccf *types.ConditionalCheckFailedException
	if !stderrors.As(err, &ccf) {
		return nil
	}
	if len(ccf.Item) == 0 {
		return errors.NewNotFoundError(tableName, key)
	}
	return errors.NewPreconditionFailedError(operation, key)
}

func isConditionalCheckFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return stderrors.As(err, &ccf)
}

func isResourceNotFound(err error) bool {
	var rnf *types.ResourceNotFoundException
	return stderrors.As(err, &rnf)
}

func isResourceInUse(err error) bool {
	var riu *types.ResourceInUseException
	return stderrors.As(err, &riu)
}
