package source

import "github.com/MrJamesThe3rd/budget/internal/source"

type Response struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToResponse is exported for the expense handler, which nests the source.
func ToResponse(s *source.Source) Response {
	return Response{ID: s.ID, Name: s.Name, Type: s.Type}
}

func ToResponseList(sources []*source.Source) []Response {
	res := make([]Response, len(sources))
	for i, s := range sources {
		res[i] = ToResponse(s)
	}

	return res
}
