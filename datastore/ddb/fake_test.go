/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package ddb

import (
	"context"
	"net/http"

	awshttp "github.com/aws/aws-sdk-go-v2/aws/transport/http"
	sdk "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/smithy-go"
	smithyhttp "github.com/aws/smithy-go/transport/http"

	"github.com/suparena/tablestore/storagemodels"
)

type Award struct {
	storagemodels.TableEntity
	Name     string `dynamodbav:"Name,omitempty"`
	Quantity int    `dynamodbav:"Quantity,omitempty"`
}

// fakeAPI records the last request of each kind and answers with the configured results.
type fakeAPI struct {
	getOut      *sdk.GetItemOutput
	getErr      error
	putErr      error
	updateErr   error
	deleteErr   error
	queryOut    *sdk.QueryOutput
	scanOut     *sdk.ScanOutput
	queryErr    error
	describeErr error
	createErr   error

	lastGet    *sdk.GetItemInput
	lastPut    *sdk.PutItemInput
	lastUpdate *sdk.UpdateItemInput
	lastDelete *sdk.DeleteItemInput
	lastQuery  *sdk.QueryInput
	lastScan   *sdk.ScanInput
	creates    int
}

func (f *fakeAPI) GetItem(_ context.Context, in *sdk.GetItemInput, _ ...func(*sdk.Options)) (*sdk.GetItemOutput, error) {
	f.lastGet = in
	if f.getOut == nil {
		return &sdk.GetItemOutput{}, f.getErr
	}
	return f.getOut, f.getErr
}

func (f *fakeAPI) PutItem(_ context.Context, in *sdk.PutItemInput, _ ...func(*sdk.Options)) (*sdk.PutItemOutput, error) {
	f.lastPut = in
	return &sdk.PutItemOutput{}, f.putErr
}

func (f *fakeAPI) UpdateItem(_ context.Context, in *sdk.UpdateItemInput, _ ...func(*sdk.Options)) (*sdk.UpdateItemOutput, error) {
	f.lastUpdate = in
	return &sdk.UpdateItemOutput{}, f.updateErr
}

func (f *fakeAPI) DeleteItem(_ context.Context, in *sdk.DeleteItemInput, _ ...func(*sdk.Options)) (*sdk.DeleteItemOutput, error) {
	f.lastDelete = in
	return &sdk.DeleteItemOutput{}, f.deleteErr
}

func (f *fakeAPI) Query(_ context.Context, in *sdk.QueryInput, _ ...func(*sdk.Options)) (*sdk.QueryOutput, error) {
	f.lastQuery = in
	if f.queryOut == nil {
		return &sdk.QueryOutput{}, f.queryErr
	}
	return f.queryOut, f.queryErr
}

func (f *fakeAPI) Scan(_ context.Context, in *sdk.ScanInput, _ ...func(*sdk.Options)) (*sdk.ScanOutput, error) {
	f.lastScan = in
	if f.scanOut == nil {
		return &sdk.ScanOutput{}, f.queryErr
	}
	return f.scanOut, f.queryErr
}

func (f *fakeAPI) DescribeTable(_ context.Context, _ *sdk.DescribeTableInput, _ ...func(*sdk.Options)) (*sdk.DescribeTableOutput, error) {
	return &sdk.DescribeTableOutput{}, f.describeErr
}

func (f *fakeAPI) CreateTable(_ context.Context, _ *sdk.CreateTableInput, _ ...func(*sdk.Options)) (*sdk.CreateTableOutput, error) {
	f.creates++
	return &sdk.CreateTableOutput{}, f.createErr
}

// httpError builds an SDK-shaped error carrying an HTTP status and a service error code.
func httpError(status int, code string) error {
	return &awshttp.ResponseError{
		ResponseError: &smithyhttp.ResponseError{
			Response: &smithyhttp.Response{Response: &http.Response{StatusCode: status}},
			Err:      &smithy.GenericAPIError{Code: code, Message: code},
		},
		RequestID: "req-1",
	}
}

func getOutput(item storagemodels.Item) *sdk.GetItemOutput {
	return &sdk.GetItemOutput{Item: item}
}

func queryOutput(items []storagemodels.Item, lastKey storagemodels.Item) *sdk.QueryOutput {
	out := &sdk.QueryOutput{LastEvaluatedKey: lastKey}
	for _, item := range items {
		out.Items = append(out.Items, item)
	}
	return out
}
