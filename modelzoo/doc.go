// Package modelzoo provides toy external graph constructors exercising
// dag.Builder: a fixed sequence of Builder calls assembling a realistic,
// if small, initial Graph for search.Run to optimize.
package modelzoo

import "github.com/graphforge/xflow/dag"

// Builder constructs a complete model graph against b, returning the
// graph's final output tensor. engine.Run resolves a model name to one of
// these from a caller-supplied registry.
type Builder func(b dag.Builder) (dag.Tensor, error)

// Registry is the standard name -> Builder table this package ships,
// handed to engine.Run by callers that want the stock models available
// by name.
func Registry() map[string]Builder {
	return map[string]Builder{
		"squeezenet": SqueezeNetComplex,
		"resnet-toy": ToyResNet,
	}
}
