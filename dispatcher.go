// SPDX-License-Identifier: GPL-3.0-or-later

package dockrpc

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sync"
)

// Dispatcher is the typed RPC method registry (C4, §4.4).
//
// Bind is single-threaded and must complete before [Dispatcher.Dispatch] is
// called concurrently: bindings are read-only once dispatch begins, so
// multiple workers may dispatch in parallel without synchronization.
type Dispatcher struct {
	mu       sync.RWMutex
	handlers map[string]*boundHandler
}

type boundHandler struct {
	fn         reflect.Value
	paramTypes []reflect.Type
}

// NewDispatcher returns an empty [Dispatcher].
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]*boundHandler)}
}

// Bind registers fn under name. fn must be a function; its arity and
// parameter types are recorded for argument conversion at dispatch time.
// Binding the same name twice replaces the prior binding.
//
// fn may return (T, error), (T), or just (error); a nil error (or no error
// return) is success.
func (d *Dispatcher) Bind(name string, fn any) {
	v := reflect.ValueOf(fn)
	t := v.Type()
	if t.Kind() != reflect.Func {
		panic(fmt.Sprintf("dockrpc: Bind(%q): not a function", name))
	}
	paramTypes := make([]reflect.Type, t.NumIn())
	for i := range paramTypes {
		paramTypes[i] = t.In(i)
	}
	d.mu.Lock()
	d.handlers[name] = &boundHandler{fn: v, paramTypes: paramTypes}
	d.mu.Unlock()
}

// Dispatch routes request to its bound handler and returns the response
// payload, never an error: every failure mode (§4.4) is represented as an
// `hasError` response with a stable code, matching the wire contract.
func (d *Dispatcher) Dispatch(request RPCRequestPayload) RPCResponsePayload {
	d.mu.RLock()
	h, ok := d.handlers[request.Method]
	d.mu.RUnlock()

	if !ok {
		return errorResponse(request.ID, &MethodNotFoundError{Method: request.Method})
	}
	if len(request.Params) != len(h.paramTypes) {
		return errorResponse(request.ID, &ArityMismatchError{
			Method:   request.Method,
			Expected: len(h.paramTypes),
			Actual:   len(request.Params),
		})
	}

	args := make([]reflect.Value, len(h.paramTypes))
	for i, pt := range h.paramTypes {
		argPtr := reflect.New(pt)
		if err := json.Unmarshal(request.Params[i], argPtr.Interface()); err != nil {
			return errorResponse(request.ID, &BadArgumentError{
				Method: request.Method,
				Index:  i,
				Reason: err.Error(),
			})
		}
		args[i] = argPtr.Elem()
	}

	return d.invoke(request.ID, request.Method, h, args)
}

func (d *Dispatcher) invoke(id, method string, h *boundHandler, args []reflect.Value) (resp RPCResponsePayload) {
	defer func() {
		if r := recover(); r != nil {
			resp = errorResponse(id, &HandlerFailedError{Method: method, Message: fmt.Sprintf("%v", r)})
		}
	}()

	out := h.fn.Call(args)
	var result reflect.Value
	var errVal error
	for _, o := range out {
		if o.Type() == errType {
			if !o.IsNil() {
				errVal, _ = o.Interface().(error)
			}
			continue
		}
		result = o
	}
	if errVal != nil {
		return errorResponse(id, &HandlerFailedError{Method: method, Message: errVal.Error()})
	}

	var raw json.RawMessage
	if result.IsValid() {
		var err error
		raw, err = json.Marshal(result.Interface())
		if err != nil {
			return errorResponse(id, &HandlerFailedError{Method: method, Message: err.Error()})
		}
	}
	return RPCResponsePayload{ID: id, HasError: false, Result: raw}
}

var errType = reflect.TypeOf((*error)(nil)).Elem()

func errorResponse(id string, err error) RPCResponsePayload {
	return RPCResponsePayload{
		ID:       id,
		HasError: true,
		Error: &RPCError{
			Code:    rpcErrorCode(err),
			Message: err.Error(),
		},
	}
}
