// Copyright (C) 2023, Ava Labs, Inc. All rights reserved.
// See the file LICENSE for licensing terms.

package cmd

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v2"
)

type Plan struct {
	// The name of the plan.
	Name string `json:"name" yaml:"name"`
	// A description of the plan.
	Description string `json:"description" yaml:"description"`
	// Steps to performed during simulation.
	Steps []Step `json:"steps" yaml:"steps"`
}

type Step struct {
	// Description of the step.
	Description string `json:"description" yaml:"description"`
	// The API endpoint to call. (required)
	Endpoint Endpoint `json:"endpoint" yaml:"endpoint"`
	// The instruction to execute. Only used by [ExecuteEndpoint].
	Method string `json:"method,omitempty" yaml:"method,omitempty"`
	// The name of the account the step operates on. (required)
	Account string `json:"account" yaml:"account"`
	// The owner of a created account. Defaults to the greeter program.
	Owner string `json:"owner,omitempty" yaml:"owner,omitempty"`
	// The data size of a created account. Defaults to the counter size.
	Space *uint64 `json:"space,omitempty" yaml:"space,omitempty"`
	// Define required assertions against this step.
	Require *Require `json:"require,omitempty" yaml:"require,omitempty"`
}

type Endpoint string

const (
	// Allocate a zeroed account.
	AccountEndpoint Endpoint = "account"
	// Invoke the greeter program on an account.
	ExecuteEndpoint Endpoint = "execute"
	// Read the counter held by an account.
	ReadEndpoint Endpoint = "read"
)

type Require struct {
	// Assertions against the counter after the step.
	Result *ResultAssertion `json:"result,omitempty" yaml:"result,omitempty"`
	// The step must fail with an error containing this text.
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type ResultAssertion struct {
	// The operator to use for the assertion.
	Operator string `json:"operator" yaml:"operator"`
	// The value to compare against.
	Value string `json:"value" yaml:"value"`
}

type Operator string

const (
	NumericGt Operator = ">"
	NumericLt Operator = "<"
	NumericGe Operator = ">="
	NumericLe Operator = "<="
	NumericEq Operator = "=="
	NumericNe Operator = "!="
)

func (p *Plan) Verify() error {
	if len(p.Steps) == 0 {
		return fmt.Errorf("%w: %s", ErrInvalidPlan, "no steps found")
	}
	for i := range p.Steps {
		if err := p.Steps[i].verify(); err != nil {
			return fmt.Errorf("%w %d: %w", ErrInvalidStep, i, err)
		}
	}
	return nil
}

func (s *Step) verify() error {
	if s.Account == "" {
		return ErrMissingAccountName
	}
	switch s.Endpoint {
	case AccountEndpoint, ReadEndpoint:
	case ExecuteEndpoint:
		if s.Method == "" {
			return fmt.Errorf("%w: missing method", ErrInvalidStep)
		}
	default:
		return fmt.Errorf("%w: %q", ErrInvalidEndpoint, s.Endpoint)
	}
	if s.Require != nil && s.Require.Result != nil {
		if _, err := validateAssertion(0, s.Require.Result); err != nil {
			return err
		}
	}
	return nil
}

// validateAssertion validates the assertion against the actual value.
func validateAssertion(actual uint32, assertion *ResultAssertion) (bool, error) {
	value, err := strconv.ParseUint(assertion.Value, 10, 32)
	if err != nil {
		return false, fmt.Errorf("%w: %q", ErrInvalidStep, assertion.Value)
	}
	expected := uint32(value)

	switch Operator(assertion.Operator) {
	case NumericGt:
		return actual > expected, nil
	case NumericLt:
		return actual < expected, nil
	case NumericGe:
		return actual >= expected, nil
	case NumericLe:
		return actual <= expected, nil
	case NumericEq:
		return actual == expected, nil
	case NumericNe:
		return actual != expected, nil
	default:
		return false, fmt.Errorf("%w: %q", ErrInvalidOperator, assertion.Operator)
	}
}

// checkRequire compares the outcome of step [i] against its requirements.
func checkRequire(i int, require *Require, counter uint32, stepErr error) error {
	if require == nil {
		return nil
	}
	if require.Error != "" {
		if stepErr == nil {
			return fmt.Errorf("%w: step %d: expected error %q", ErrResultAssertionFailed, i, require.Error)
		}
		if !strings.Contains(stepErr.Error(), require.Error) {
			return fmt.Errorf("%w: step %d: expected error %q, got %q", ErrResultAssertionFailed, i, require.Error, stepErr)
		}
		return nil
	}
	if require.Result == nil || stepErr != nil {
		return nil
	}
	ok, err := validateAssertion(counter, require.Result)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: step %d: %d %s %s",
			ErrResultAssertionFailed, i, counter, require.Result.Operator, require.Result.Value)
	}
	return nil
}

func unmarshalPlan(bytes []byte) (*Plan, error) {
	var p Plan
	switch {
	case isJSON(string(bytes)):
		if err := json.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	case isYAML(string(bytes)):
		if err := yaml.Unmarshal(bytes, &p); err != nil {
			return nil, err
		}
	default:
		return nil, ErrInvalidConfigFormat
	}

	return &p, nil
}

func isJSON(s string) bool {
	var js map[string]interface{}
	return json.Unmarshal([]byte(s), &js) == nil
}

func isYAML(s string) bool {
	var y map[string]interface{}
	return yaml.Unmarshal([]byte(s), &y) == nil
}
