// Copyright (c) 2025 EnterpriseNG Authors All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package mcpserver

import "fmt"

// getParams extracts parameters from a normalized JSON-RPC request.
func getParams(req map[string]any, method string) (map[string]any, error) {
	p, ok := req["params"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid %s params", method)
	}
	return p, nil
}

// getStringParam extracts a required string parameter from normalized params.
func getStringParam(params map[string]any, method, key string) (string, error) {
	v, ok := params[key].(string)
	if !ok {
		return "", fmt.Errorf("invalid params: %s requires string %q", method, key)
	}
	return v, nil
}

// getOptionalStringParam extracts an optional string parameter. A missing key
// yields the empty string; a present key with a non-string value is an error.
func getOptionalStringParam(params map[string]any, method, key string) (string, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return "", nil
	}
	v, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("invalid params: %s requires string %q", method, key)
	}
	return v, nil
}

// getMapParam extracts an optional object parameter from normalized params.
// A missing key yields a nil map; a present key with a non-object value is an error.
func getMapParam(params map[string]any, method, key string) (map[string]any, error) {
	raw, ok := params[key]
	if !ok || raw == nil {
		return nil, nil
	}
	v, ok := raw.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("invalid params: %s requires object %q", method, key)
	}
	return v, nil
}
