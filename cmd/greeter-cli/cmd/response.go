// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/ava-labs/hellocounter/codec"
)

type Response struct {
	// The index of the step that generated this response.
	ID int `json:"id"`
	// The result of the step.
	Result Result `json:"result"`
	// The error message if available.
	Error string `json:"error,omitempty"`
}

type Result struct {
	// The account the step operated on.
	Account string `json:"account,omitempty"`
	// The counter after the step has completed.
	Counter *uint32 `json:"counter,omitempty"`
	// Raw account data.
	Data codec.Bytes `json:"data,omitempty"`
	// An optional message.
	Msg       string `json:"msg,omitempty"`
	Timestamp int64  `json:"timestamp"`
}

func newResponse(id int) *Response {
	return &Response{
		ID: id,
	}
}

func (r *Response) setCounter(counter uint32) {
	r.Result.Counter = &counter
}

func (r *Response) setError(err error) {
	r.Error = err.Error()
}

func (r *Response) Print(w io.Writer) error {
	jsonBytes, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	_, err = fmt.Fprintln(w, string(jsonBytes))
	return err
}
