// SPDX-FileCopyrightText: 2026 api2spec
// SPDX-License-Identifier: FSL-1.1-MIT

package openapi

import (
	"fmt"
	"sort"
	"strings"

	"github.com/api2spec/zodgen/internal/util"
	"github.com/api2spec/zodgen/pkg/types"
)

// maxRefHops bounds chains of component references ($ref to a $ref ...).
const maxRefHops = 16

// Endpoint is one operation of the document with its schemas gathered per slot.
type Endpoint struct {
	Method      string
	Path        string
	Alias       string
	Description string
	Deprecated  bool
	Parameters  []EndpointParameter
	Body        *EndpointBody
	Responses   []EndpointResponse
}

// EndpointParameter is a path, query, header or cookie parameter.
type EndpointParameter struct {
	Name     string
	In       string
	Required bool
	Schema   *types.Schema
}

// EndpointBody is the request body of an operation.
type EndpointBody struct {
	Required  bool
	MediaType string
	Schema    *types.Schema
}

// EndpointResponse is one response of an operation keyed by status.
type EndpointResponse struct {
	Status      string
	Description string
	MediaType   string
	Schema      *types.Schema
}

// Endpoints extracts every operation of the document, ordered by path then method.
// Component references for parameters, bodies and responses are followed.
func Endpoints(r *Resolver) ([]Endpoint, error) {
	spec := r.Document().Spec
	if spec == nil || len(spec.Paths) == 0 {
		return nil, nil
	}

	paths := make([]string, 0, len(spec.Paths))
	for p := range spec.Paths {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	var endpoints []Endpoint
	for _, path := range paths {
		item := spec.Paths[path]
		if item.Ref != "" {
			var resolved types.PathItem
			if err := r.Lookup(item.Ref, &resolved); err != nil {
				return nil, fmt.Errorf("failed to resolve path item %s: %w", path, err)
			}
			item = resolved
		}

		for _, mo := range item.Operations() {
			ep, err := buildEndpoint(r, path, mo.Method, item.Parameters, mo.Operation)
			if err != nil {
				return nil, fmt.Errorf("failed to extract %s %s: %w", strings.ToUpper(mo.Method), path, err)
			}
			endpoints = append(endpoints, ep)
		}
	}
	return endpoints, nil
}

func buildEndpoint(r *Resolver, path, method string, shared []types.Parameter, op *types.Operation) (Endpoint, error) {
	ep := Endpoint{
		Method:      method,
		Path:        path,
		Alias:       util.OperationAlias(op.OperationID, method, path),
		Description: op.Doc(),
		Deprecated:  op.Deprecated,
	}

	params, err := mergeParameters(r, shared, op.Parameters)
	if err != nil {
		return ep, err
	}
	for _, p := range params {
		ep.Parameters = append(ep.Parameters, EndpointParameter{
			Name:     p.Name,
			In:       p.In,
			Required: p.IsRequired(),
			Schema:   p.ValueSchema(),
		})
	}

	if op.RequestBody != nil {
		body, err := resolveRequestBody(r, *op.RequestBody)
		if err != nil {
			return ep, err
		}
		if mediaType, media, ok := body.Content.Preferred(); ok && media.Schema != nil {
			ep.Body = &EndpointBody{Required: body.Required, MediaType: mediaType, Schema: media.Schema}
		}
	}

	statuses := make([]string, 0, len(op.Responses))
	for status := range op.Responses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statusLess(statuses[i], statuses[j]) })

	for _, status := range statuses {
		resp, err := resolveResponse(r, op.Responses[status])
		if err != nil {
			return ep, err
		}
		er := EndpointResponse{Status: status, Description: resp.Description}
		if mediaType, media, ok := resp.Content.Preferred(); ok {
			er.MediaType = mediaType
			er.Schema = media.Schema
		}
		ep.Responses = append(ep.Responses, er)
	}

	return ep, nil
}

// mergeParameters lays operation parameters over path-level ones, keyed by location and name.
func mergeParameters(r *Resolver, shared, own []types.Parameter) ([]types.Parameter, error) {
	var merged []types.Parameter
	index := make(map[string]int)

	for _, list := range [][]types.Parameter{shared, own} {
		for _, p := range list {
			resolved, err := resolveParameter(r, p)
			if err != nil {
				return nil, err
			}
			key := resolved.Key()
			if i, ok := index[key]; ok {
				merged[i] = resolved
				continue
			}
			index[key] = len(merged)
			merged = append(merged, resolved)
		}
	}
	return merged, nil
}

func resolveParameter(r *Resolver, p types.Parameter) (types.Parameter, error) {
	for hops := 0; p.Ref != ""; hops++ {
		if hops == maxRefHops {
			return p, &RefError{Op: "lookup", Ref: p.Ref, Err: ErrInvalidReference}
		}
		ref := p.Ref
		p = types.Parameter{}
		if err := r.Lookup(ref, &p); err != nil {
			return p, err
		}
	}
	return p, nil
}

func resolveRequestBody(r *Resolver, b types.RequestBody) (types.RequestBody, error) {
	for hops := 0; b.Ref != ""; hops++ {
		if hops == maxRefHops {
			return b, &RefError{Op: "lookup", Ref: b.Ref, Err: ErrInvalidReference}
		}
		ref := b.Ref
		b = types.RequestBody{}
		if err := r.Lookup(ref, &b); err != nil {
			return b, err
		}
	}
	return b, nil
}

func resolveResponse(r *Resolver, resp types.Response) (types.Response, error) {
	for hops := 0; resp.Ref != ""; hops++ {
		if hops == maxRefHops {
			return resp, &RefError{Op: "lookup", Ref: resp.Ref, Err: ErrInvalidReference}
		}
		ref := resp.Ref
		resp = types.Response{}
		if err := r.Lookup(ref, &resp); err != nil {
			return resp, err
		}
	}
	return resp, nil
}

// statusLess orders numeric statuses first, ascending, then ranges like "4XX", then "default".
func statusLess(a, b string) bool {
	rank := func(s string) int {
		switch {
		case s == "default":
			return 2
		case strings.ContainsAny(s, "xX"):
			return 1
		}
		return 0
	}
	if ra, rb := rank(a), rank(b); ra != rb {
		return ra < rb
	}
	return a < b
}
