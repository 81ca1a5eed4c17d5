// Package pagination contains the skip and limit based paging of the related nodes lists.
package pagination

import (
	"net/url"
	"strconv"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

// Paging query parameters.
const (
	// ParamSkip is the query parameter with the number of skipped items.
	ParamSkip = "skip"
	// ParamLimit is the query parameter with the maximum number of items.
	ParamLimit = "limit"
)

// Paging contains the links to the neighbour pages.
type Paging struct {
	Next     string `json:"next"`
	Previous string `json:"previous,omitempty"`
}

// Params are the paging parameters.
type Params struct {
	Skip  int
	Limit int
}

// Links computes the paging links of the 'base' url for the current 'skip' and 'limit'.
// The query parameters of the base url other than skip and limit are preserved.
// The previous link is set only if the skip is greater than zero.
// Returns nil if the limit was not requested.
func Links(base *url.URL, skip, limit int) *Paging {
	if limit <= 0 || base == nil {
		return nil
	}
	if skip < 0 {
		skip = 0
	}
	p := &Paging{Next: link(base, skip+limit, limit)}
	if skip > 0 {
		previous := skip - limit
		if previous < 0 {
			previous = 0
		}
		p.Previous = link(base, previous, limit)
	}
	return p
}

func link(base *url.URL, skip, limit int) string {
	u := *base
	q := u.Query()
	q.Set(ParamSkip, strconv.Itoa(skip))
	q.Set(ParamLimit, strconv.Itoa(limit))
	u.RawQuery = q.Encode()
	return u.String()
}

// ParseParams parses the skip and limit from the query values.
// Missing parameters are zero.
func ParseParams(q url.Values) (Params, error) {
	var (
		p   Params
		err error
	)
	if p.Skip, err = parseParam(q, ParamSkip); err != nil {
		return p, err
	}
	if p.Limit, err = parseParam(q, ParamLimit); err != nil {
		return p, err
	}
	return p, nil
}

func parseParam(q url.Values, name string) (int, error) {
	raw := q.Get(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, errors.NewDetf(class.CommonInvalidOptions, "invalid '%s' parameter value: '%s'", name, raw)
	}
	if v < 0 {
		return 0, errors.NewDetf(class.CommonInvalidOptions, "'%s' parameter must not be negative", name)
	}
	return v, nil
}
