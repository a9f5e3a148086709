package tools

import (
	"github.com/NERVsystems/kmapmcp/pkg/kakao"
)

// ParamMapping renames a logical input field to an upstream query parameter.
type ParamMapping struct {
	Field string
	Param string
}

// Map is shorthand for a ParamMapping.
func Map(field, param string) ParamMapping {
	return ParamMapping{Field: field, Param: param}
}

// BuildRequest maps in onto the query parameters of endpoint, in mapping
// order. Unset optional fields are omitted so the upstream applies its own
// default.
func BuildRequest(endpoint string, mappings []ParamMapping, in Input) kakao.Request {
	params := make([]kakao.Param, 0, len(mappings))
	for _, m := range mappings {
		v, ok := in.Get(m.Field)
		if !ok {
			continue
		}
		params = append(params, kakao.Param{Key: m.Param, Value: v.String()})
	}
	return kakao.Request{Endpoint: endpoint, Params: params}
}
