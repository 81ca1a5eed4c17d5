package service

import (
	"net/url"

	"gopkg.in/go-playground/validator.v9"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/query/pagination"
)

var validate = validator.New()

// Options are the options of a single service function call.
type Options struct {
	// Includes are the names of the connections and custom properties to resolve eagerly.
	Includes []string `validate:"dive,required"`
	// Skip is the number of skipped related nodes.
	Skip int `validate:"gte=0"`
	// Limit is the maximum number of related nodes. Zero means no limit.
	Limit int `validate:"gte=0"`
	// RunBefores defines if the before hooks should be executed. Nil means true.
	RunBefores *bool
	// RunAfters defines if the after hooks should be executed. Nil means true.
	RunAfters *bool
	// URL is the request url used as the base of the paging links.
	URL *url.URL
	// Data is the node data of the create, update and connect functions. The connect
	// relationship properties are taken from its 'relationship' field.
	Data mapping.Properties
	// ConnectedKey is the key of the connected node used by the disconnect function.
	ConnectedKey interface{}
}

// Bool gets the pointer of the boolean value.
func Bool(b bool) *bool {
	return &b
}

// Validate checks if the options are valid.
func (o *Options) Validate() error {
	if err := validate.Struct(o); err != nil {
		return errors.Wrap(class.CommonInvalidOptions, err, "invalid options")
	}
	return nil
}

func (o *Options) runBefores() bool {
	return o.RunBefores == nil || *o.RunBefores
}

func (o *Options) runAfters() bool {
	return o.RunAfters == nil || *o.RunAfters
}

func (o *Options) included(name string) bool {
	for _, include := range o.Includes {
		if include == name {
			return true
		}
	}
	return false
}

func prepareOptions(o *Options) (*Options, error) {
	if o == nil {
		return &Options{}, nil
	}
	if err := o.Validate(); err != nil {
		return nil, err
	}
	return o, nil
}

// Result is the single node result.
type Result struct {
	Data mapping.Properties `json:"data"`
	// URL is the absolute node url, set if the service has a base url.
	URL string `json:"url,omitempty"`
}

// ListResult is the related nodes list result.
type ListResult struct {
	Data   []mapping.Properties `json:"data"`
	Count  int64                `json:"count"`
	Paging *pagination.Paging   `json:"paging,omitempty"`
}

// Failure is the structured failure of the service function.
type Failure struct {
	Error string `json:"error"`
	// Class is the error classification name.
	Class string `json:"class,omitempty"`
}

// FailureOf creates the failure for the error.
func FailureOf(err error) Failure {
	f := Failure{Error: err.Error()}
	if c := errors.ClassOf(err); c != 0 {
		f.Class = c.String()
	}
	return f
}
